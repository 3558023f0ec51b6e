// Package gds writes a pad ring as a GDSII stream: one structure named after
// the design that references every placed cell by its foreign name.
package gds

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"fortio.org/safecast"

	"github.com/OpenTraceLab/padring/pkg/encode"
)

// Record types
const (
	recHeader  = 0x0002
	recBgnLib  = 0x0102
	recLibName = 0x0206
	recUnits   = 0x0305
	recEndLib  = 0x0400
	recBgnStr  = 0x0502
	recStrName = 0x0606
	recEndStr  = 0x0700
	recSRef    = 0x0A00
	recXY      = 0x1003
	recEndEl   = 0x1100
	recSName   = 0x1206
	recSTrans  = 0x1A01
	recAngle   = 0x1C05
)

const (
	streamVersion = 600
	// database unit in user units (microns) and in meters: 1 nm
	userUnit  = 1e-3
	meterUnit = 1e-9
	dbPerUser = 1000

	stransReflect = 0x8000
)

type options struct {
	libName   string
	timestamp time.Time
}

// Option configures the writer.
type Option func(*options)

// WithLibName sets the LIBNAME record. The default is the design name.
func WithLibName(name string) Option {
	return func(o *options) { o.libName = name }
}

// WithTimestamp sets the modification and access times. Without it the
// time fields are zero so that output is reproducible.
func WithTimestamp(t time.Time) Option {
	return func(o *options) { o.timestamp = t }
}

// Encode writes the design as a GDSII stream.
func Encode(w io.Writer, d *encode.Design, opts ...Option) error {
	o := options{libName: d.Name}
	for _, opt := range opts {
		opt(&o)
	}

	sw := &streamWriter{w: bufio.NewWriter(w)}
	sw.record(recHeader, int16s(streamVersion))
	sw.record(recBgnLib, timestamps(o.timestamp))
	sw.record(recLibName, paddedString(o.libName))
	sw.record(recUnits, append(real8(userUnit), real8(meterUnit)...))
	sw.record(recBgnStr, timestamps(o.timestamp))
	sw.record(recStrName, paddedString(d.Name))

	for i := range d.Placements {
		if err := sw.sref(&d.Placements[i]); err != nil {
			return err
		}
	}

	sw.record(recEndStr, nil)
	sw.record(recEndLib, nil)
	if sw.err != nil {
		return fmt.Errorf("gds: %w", sw.err)
	}
	if err := sw.w.Flush(); err != nil {
		return fmt.Errorf("gds: %w", err)
	}
	return nil
}

type streamWriter struct {
	w   *bufio.Writer
	err error
}

func (s *streamWriter) record(typ uint16, data []byte) {
	if s.err != nil {
		return
	}
	length, err := safecast.Conv[uint16](len(data) + 4)
	if err != nil {
		s.err = fmt.Errorf("record 0x%04X too long: %w", typ, err)
		return
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:], length)
	binary.BigEndian.PutUint16(hdr[2:], typ)
	if _, err := s.w.Write(hdr[:]); err != nil {
		s.err = err
		return
	}
	if _, err := s.w.Write(data); err != nil {
		s.err = err
	}
}

func (s *streamWriter) sref(p *encode.Placement) error {
	x, err := safecast.Round[int32](p.Origin.X * dbPerUser)
	if err != nil {
		return fmt.Errorf("gds: %s x coordinate %g: %w", p.Instance, p.Origin.X, err)
	}
	y, err := safecast.Round[int32](p.Origin.Y * dbPerUser)
	if err != nil {
		return fmt.Errorf("gds: %s y coordinate %g: %w", p.Instance, p.Origin.Y, err)
	}

	s.record(recSRef, nil)
	s.record(recSName, paddedString(p.Foreign))
	if p.Orientation.Mirror || p.Orientation.Angle != 0 {
		var strans uint16
		if p.Orientation.Mirror {
			strans |= stransReflect
		}
		s.record(recSTrans, binary.BigEndian.AppendUint16(nil, strans))
		if p.Orientation.Angle != 0 {
			s.record(recAngle, real8(float64(p.Orientation.Angle)))
		}
	}
	xy := binary.BigEndian.AppendUint32(nil, uint32(x))
	xy = binary.BigEndian.AppendUint32(xy, uint32(y))
	s.record(recXY, xy)
	s.record(recEndEl, nil)
	return nil
}

func int16s(vals ...int16) []byte {
	var b []byte
	for _, v := range vals {
		b = binary.BigEndian.AppendUint16(b, uint16(v))
	}
	return b
}

// timestamps encodes the modification and access time of BGNLIB/BGNSTR.
func timestamps(t time.Time) []byte {
	if t.IsZero() {
		return make([]byte, 24)
	}
	stamp := int16s(
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	)
	return append(stamp, stamp...)
}

// paddedString returns s padded with a NUL to an even length.
func paddedString(s string) []byte {
	b := []byte(s)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

// real8 encodes v as a GDSII 8-byte real: sign bit, excess-64 base-16
// exponent and a 56-bit mantissa.
func real8(v float64) []byte {
	return binary.BigEndian.AppendUint64(nil, real8Bits(v))
}

func real8Bits(v float64) uint64 {
	if v == 0 {
		return 0
	}
	var sign uint64
	if v < 0 {
		sign = 1 << 63
		v = -v
	}
	exp := 64
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16 {
		v *= 16
		exp--
	}
	mant := uint64(math.Round(v * (1 << 56)))
	if mant >= 1<<56 {
		mant >>= 4
		exp++
	}
	return sign | uint64(exp)<<56 | mant
}
