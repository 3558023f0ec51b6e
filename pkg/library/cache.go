package library

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/lef"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is the SHA-256 of a LEF file's content.
type Digest = [32]byte

// DiskCache stores the cells extracted from LEF files, keyed by file content,
// so that large vendor libraries are parsed only once.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached form of one LEF file.
type DiskPayload struct {
	Schema        uint16       `msgpack:"schema"`
	DatabaseUnits int          `msgpack:"dbu"`
	Cells         []CachedCell `msgpack:"cells"`
}

// CachedCell is the cached form of a Cell.
type CachedCell struct {
	Name     string   `msgpack:"name"`
	Foreign  string   `msgpack:"foreign"`
	Class    string   `msgpack:"class"`
	SubClass string   `msgpack:"subclass"`
	Width    float64  `msgpack:"w"`
	Height   float64  `msgpack:"h"`
	Symmetry []string `msgpack:"sym,omitempty"`
	Site     string   `msgpack:"site,omitempty"`
	Filler   bool     `msgpack:"filler"`
}

func (c *CachedCell) cell() *Cell {
	return &Cell{
		Name:     c.Name,
		Foreign:  c.Foreign,
		Class:    c.Class,
		SubClass: c.SubClass,
		Size:     geom.Size{Width: c.Width, Height: c.Height},
		Symmetry: c.Symmetry,
		Site:     c.Site,
		IsFiller: c.Filler,
	}
}

func payloadFromLEF(file *lef.File) *DiskPayload {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion}
	if dbu, ok := file.DatabaseUnits(); ok {
		payload.DatabaseUnits = dbu
	}
	for _, m := range file.Macros() {
		c := cellFromMacro(m.Info())
		payload.Cells = append(payload.Cells, CachedCell{
			Name:     c.Name,
			Foreign:  c.Foreign,
			Class:    c.Class,
			SubClass: c.SubClass,
			Width:    c.Size.Width,
			Height:   c.Size.Height,
			Symmetry: c.Symmetry,
			Site:     c.Site,
			Filler:   c.IsFiller,
		})
	}
	return payload
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache returns a disk cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "lef", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	// Removing after a successful rename fails with ErrNotExist, which is fine.
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
