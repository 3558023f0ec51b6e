// Package library holds the physical footprints of the cells a pad ring can
// reference. Cells are loaded from LEF abstracts and looked up by name.
package library

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/lef"
)

// Cell is the footprint of one library cell.
type Cell struct {
	Name     string
	Foreign  string // structure name in the GDS library
	Class    string
	SubClass string
	Size     geom.Size
	Symmetry []string
	Site     string
	IsFiller bool
}

// Library looks up cell geometry by name.
type Library interface {
	Cell(name string) (*Cell, bool)
}

// MemoryLibrary is a Library backed by a map. It is safe for concurrent
// readers once loading is done.
type MemoryLibrary struct {
	mu     sync.RWMutex
	cells  map[string]*Cell
	order  []string
	dbu    int
	logger *log.Logger
	cache  *DiskCache
}

// Option configures a MemoryLibrary.
type Option func(*MemoryLibrary)

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *log.Logger) Option {
	return func(l *MemoryLibrary) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithCache makes LoadFiles and LoadDir consult and fill the given disk cache.
func WithCache(cache *DiskCache) Option {
	return func(l *MemoryLibrary) {
		l.cache = cache
	}
}

// New creates an empty library.
func New(opts ...Option) *MemoryLibrary {
	l := &MemoryLibrary{
		cells:  make(map[string]*Cell),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cell implements the Library interface.
func (l *MemoryLibrary) Cell(name string) (*Cell, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.cells[name]
	return c, ok
}

// Add registers a cell. A cell with the same name replaces the earlier one.
func (l *MemoryLibrary) Add(cell *Cell) {
	if cell == nil {
		return
	}
	if cell.Foreign == "" {
		cell.Foreign = cell.Name
	}
	if cell.Size.Width <= 0 || cell.Size.Height <= 0 {
		l.logger.Warn("cell has no usable size", "cell", cell.Name, "width", cell.Size.Width, "height", cell.Size.Height)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.cells[cell.Name]; dup {
		l.logger.Warn("duplicate cell definition, replacing", "cell", cell.Name)
	} else {
		l.order = append(l.order, cell.Name)
	}
	l.cells[cell.Name] = cell
}

// AddLEF registers every macro of a parsed LEF file.
func (l *MemoryLibrary) AddLEF(file *lef.File) {
	if file == nil {
		return
	}
	if dbu, ok := file.DatabaseUnits(); ok {
		l.setDatabaseUnits(dbu)
	}
	for _, m := range file.Macros() {
		l.Add(cellFromMacro(m.Info()))
	}
}

// Names returns the names of all cells, sorted.
func (l *MemoryLibrary) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.cells))
	for name := range l.cells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cells returns all cells in the order they were first defined.
func (l *MemoryLibrary) Cells() []*Cell {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cells := make([]*Cell, 0, len(l.order))
	for _, name := range l.order {
		cells = append(cells, l.cells[name])
	}
	return cells
}

// Len returns the number of cells.
func (l *MemoryLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cells)
}

// DatabaseUnits returns the DATABASE MICRONS value declared by the loaded
// LEF files, if any declared one.
func (l *MemoryLibrary) DatabaseUnits() (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dbu, l.dbu > 0
}

func (l *MemoryLibrary) setDatabaseUnits(dbu int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dbu != 0 && l.dbu != dbu {
		l.logger.Warn("conflicting database units, keeping the first", "have", l.dbu, "got", dbu)
		return
	}
	l.dbu = dbu
}

// LoadFiles parses the provided LEF files and adds their macros.
func (l *MemoryLibrary) LoadFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	parser, err := lef.NewParser()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := l.loadFile(parser, path); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir recursively loads all .lef files below root.
func (l *MemoryLibrary) LoadDir(root string) error {
	parser, err := lef.NewParser()
	if err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isLEFFile(path) {
			return nil
		}
		return l.loadFile(parser, path)
	})
}

func (l *MemoryLibrary) loadFile(parser *lef.Parser, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("library: read %s: %w", path, err)
	}
	key := sha256.Sum256(data)

	if l.cache != nil {
		var payload DiskPayload
		hit, err := l.cache.Get(key, &payload)
		if err != nil {
			l.logger.Warn("library cache unreadable, reparsing", "file", path, "err", err)
		} else if hit && payload.Schema == diskCacheSchemaVersion {
			l.logger.Debug("library cache hit", "file", path, "cells", len(payload.Cells))
			l.addPayload(&payload)
			return nil
		}
	}

	file, err := parser.ParseBytes(path, data)
	if err != nil {
		return fmt.Errorf("library: parse %s: %w", path, err)
	}
	l.logger.Debug("loaded LEF", "file", path, "macros", len(file.Macros()))
	l.AddLEF(file)

	if l.cache != nil {
		if err := l.cache.Put(key, payloadFromLEF(file)); err != nil {
			l.logger.Warn("library cache write failed", "file", path, "err", err)
		}
	}
	return nil
}

func (l *MemoryLibrary) addPayload(payload *DiskPayload) {
	if payload.DatabaseUnits > 0 {
		l.setDatabaseUnits(payload.DatabaseUnits)
	}
	for i := range payload.Cells {
		l.Add(payload.Cells[i].cell())
	}
}

func cellFromMacro(info *lef.MacroInfo) *Cell {
	return &Cell{
		Name:     info.Name,
		Foreign:  info.Foreign,
		Class:    info.Class,
		SubClass: info.SubClass,
		Size:     geom.Size{Width: info.Width, Height: info.Height},
		Symmetry: info.Symmetry,
		Site:     info.Site,
		IsFiller: info.IsSpacer(),
	}
}

func isLEFFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lef")
}
