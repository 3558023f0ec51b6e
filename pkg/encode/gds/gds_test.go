package gds

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/OpenTraceLab/padring/pkg/encode"
	"github.com/OpenTraceLab/padring/pkg/geom"
)

type record struct {
	typ  uint16
	data []byte
}

func readRecords(t *testing.T, b []byte) []record {
	t.Helper()
	var recs []record
	for len(b) > 0 {
		if len(b) < 4 {
			t.Fatalf("truncated record header: % X", b)
		}
		n := int(binary.BigEndian.Uint16(b))
		if n < 4 || n > len(b) {
			t.Fatalf("bad record length %d with %d bytes left", n, len(b))
		}
		if n%2 != 0 {
			t.Fatalf("odd record length %d", n)
		}
		recs = append(recs, record{typ: binary.BigEndian.Uint16(b[2:]), data: b[4:n]})
		b = b[n:]
	}
	return recs
}

func TestReal8(t *testing.T) {
	tests := []struct {
		v    float64
		want uint64
	}{
		{0, 0},
		{1, 0x4110000000000000},
		{0.5, 0x4080000000000000},
		{90, 0x425A000000000000},
		{180, 0x42B4000000000000},
		{270, 0x4310E00000000000},
		{1e-3, 0x3E4189374BC6A7F0},
		{1e-9, 0x3944B82FA09B5A54},
		{-1, 0xC110000000000000},
	}
	for _, tt := range tests {
		if got := real8Bits(tt.v); got != tt.want {
			t.Errorf("real8(%g) = %016X, want %016X", tt.v, got, tt.want)
		}
	}
}

func TestPaddedString(t *testing.T) {
	if got := paddedString("ABC"); !bytes.Equal(got, []byte{'A', 'B', 'C', 0}) {
		t.Errorf("paddedString(ABC) = %q", got)
	}
	if got := paddedString("AB"); !bytes.Equal(got, []byte("AB")) {
		t.Errorf("paddedString(AB) = %q", got)
	}
}

func TestEncodeRecordSequence(t *testing.T) {
	d := &encode.Design{
		Name: "ring",
		Placements: []encode.Placement{
			{
				Instance:    "u1",
				Foreign:     "PAD",
				Orientation: geom.North,
				Origin:      geom.Position{X: 1.5, Y: 2},
			},
			{
				Instance:    "u2",
				Foreign:     "PADX",
				Orientation: geom.FlippedWest,
				Origin:      geom.Position{X: -3, Y: 0.001},
			},
		},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	recs := readRecords(t, buf.Bytes())

	wantTypes := []uint16{
		recHeader, recBgnLib, recLibName, recUnits, recBgnStr, recStrName,
		recSRef, recSName, recXY, recEndEl,
		recSRef, recSName, recSTrans, recAngle, recXY, recEndEl,
		recEndStr, recEndLib,
	}
	if len(recs) != len(wantTypes) {
		t.Fatalf("got %d records, want %d", len(recs), len(wantTypes))
	}
	for i, typ := range wantTypes {
		if recs[i].typ != typ {
			t.Errorf("record %d type = 0x%04X, want 0x%04X", i, recs[i].typ, typ)
		}
	}

	if v := binary.BigEndian.Uint16(recs[0].data); v != streamVersion {
		t.Errorf("HEADER version = %d", v)
	}
	if !bytes.Equal(recs[1].data, make([]byte, 24)) {
		t.Errorf("BGNLIB should be zeroed without a timestamp, got % X", recs[1].data)
	}
	if string(recs[2].data) != "ring" {
		t.Errorf("LIBNAME = %q", recs[2].data)
	}
	if u := binary.BigEndian.Uint64(recs[3].data); u != 0x3E4189374BC6A7F0 {
		t.Errorf("user unit = %016X", u)
	}
	if u := binary.BigEndian.Uint64(recs[3].data[8:]); u != 0x3944B82FA09B5A54 {
		t.Errorf("meter unit = %016X", u)
	}
	if string(recs[7].data) != "PAD\x00" {
		t.Errorf("SNAME = %q", recs[7].data)
	}

	x := int32(binary.BigEndian.Uint32(recs[8].data))
	y := int32(binary.BigEndian.Uint32(recs[8].data[4:]))
	if x != 1500 || y != 2000 {
		t.Errorf("first XY = (%d, %d), want (1500, 2000)", x, y)
	}

	if s := binary.BigEndian.Uint16(recs[12].data); s != stransReflect {
		t.Errorf("STRANS = 0x%04X, want 0x8000", s)
	}
	if a := binary.BigEndian.Uint64(recs[13].data); a != 0x425A000000000000 {
		t.Errorf("ANGLE = %016X", a)
	}
	x = int32(binary.BigEndian.Uint32(recs[14].data))
	y = int32(binary.BigEndian.Uint32(recs[14].data[4:]))
	if x != -3000 || y != 1 {
		t.Errorf("second XY = (%d, %d), want (-3000, 1)", x, y)
	}
}

func TestEncodeRotationWithoutMirror(t *testing.T) {
	d := &encode.Design{
		Name:       "r",
		Placements: []encode.Placement{{Foreign: "C", Orientation: geom.South}},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	recs := readRecords(t, buf.Bytes())
	for i, r := range recs {
		if r.typ != recSTrans {
			continue
		}
		if s := binary.BigEndian.Uint16(r.data); s != 0 {
			t.Errorf("STRANS = 0x%04X, want 0", s)
		}
		if recs[i+1].typ != recAngle {
			t.Fatalf("STRANS not followed by ANGLE")
		}
		if a := binary.BigEndian.Uint64(recs[i+1].data); a != 0x42B4000000000000 {
			t.Errorf("ANGLE = %016X", a)
		}
		return
	}
	t.Fatal("no STRANS record for a rotated placement")
}

func TestEncodeOptions(t *testing.T) {
	d := &encode.Design{Name: "top"}
	ts := time.Date(2024, 3, 7, 12, 30, 15, 0, time.UTC)

	var buf bytes.Buffer
	if err := Encode(&buf, d, WithLibName("LIB"), WithTimestamp(ts)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	recs := readRecords(t, buf.Bytes())
	if string(recs[2].data) != "LIB\x00" {
		t.Errorf("LIBNAME = %q", recs[2].data)
	}
	if string(recs[5].data) != "top\x00" {
		t.Errorf("STRNAME = %q", recs[5].data)
	}
	want := []uint16{2024, 3, 7, 12, 30, 15, 2024, 3, 7, 12, 30, 15}
	for i, w := range want {
		if got := binary.BigEndian.Uint16(recs[1].data[2*i:]); got != w {
			t.Errorf("BGNLIB field %d = %d, want %d", i, got, w)
		}
	}
}

func TestEncodeCoordinateOverflow(t *testing.T) {
	d := &encode.Design{
		Name:       "big",
		Placements: []encode.Placement{{Instance: "u", Foreign: "C", Origin: geom.Position{X: 1e7}}},
	}
	if err := Encode(&bytes.Buffer{}, d); err == nil {
		t.Fatal("expected an error for a coordinate outside int32 range")
	}
}
