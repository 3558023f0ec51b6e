package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/padring/pkg/config"
	"github.com/OpenTraceLab/padring/pkg/encode"
	"github.com/OpenTraceLab/padring/pkg/filler"
	"github.com/OpenTraceLab/padring/pkg/library"
	"github.com/OpenTraceLab/padring/pkg/ring"
)

const cacheApp = "padring"

var (
	// Library flags shared by generate, check and cells
	lefPaths     []string
	fillerPrefix string
	useCache     bool
	projectPath  string
)

func addLibraryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&lefPaths, "lef", "L", nil,
		"LEF file or directory (repeatable)")
	cmd.Flags().BoolVar(&useCache, "cache", false,
		"cache parsed LEF files on disk")
	cmd.Flags().StringVarP(&projectPath, "project", "p", "",
		"padring.toml project file")
}

// currentOptions collects the library flags and merges the project file.
func currentOptions(cmd *cobra.Command, opts runOptions) (runOptions, error) {
	opts.lefs = lefPaths
	opts.filler = fillerPrefix
	opts.cache = useCache
	if projectPath == "" {
		return opts, nil
	}
	cfg, err := loadProjectConfig(projectPath)
	if err != nil {
		return opts, err
	}
	return mergeProject(cmd, opts, cfg), nil
}

// loadLibrary reads every LEF path, files and directories alike.
func loadLibrary(logger *log.Logger, opts runOptions) (*library.MemoryLibrary, error) {
	if len(opts.lefs) == 0 {
		return nil, fmt.Errorf("no LEF files given, use --lef")
	}

	libOpts := []library.Option{library.WithLogger(logger)}
	if opts.cache {
		cache, err := library.OpenDiskCache(cacheApp)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		logger.Debug("using library cache", "dir", cache.Dir())
		libOpts = append(libOpts, library.WithCache(cache))
	}

	lib := library.New(libOpts...)
	for _, path := range opts.lefs {
		if err := loadPath(lib, path); err != nil {
			return nil, err
		}
	}
	logger.Info("library loaded", "cells", lib.Len())
	return lib, nil
}

// placedRing is a ring that went through layout and fill.
type placedRing struct {
	ring    *ring.Ring
	lib     *library.MemoryLibrary
	catalog *filler.Catalog
}

// placeRing parses the description, lays out the four edges and fills the
// gaps. It stops at the first error, before anything is written.
func placeRing(ctx context.Context, configPath string, opts runOptions) (*placedRing, error) {
	logger := loggerFromContext(ctx)

	lib, err := loadLibrary(logger, opts)
	if err != nil {
		return nil, err
	}

	events, err := config.ParseFile(configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed pad ring description", "file", configPath, "statements", len(events))

	ringOpts := []ring.Option{ring.WithLogger(logger)}
	if opts.filler != "" {
		ringOpts = append(ringOpts, ring.WithFillerPrefix(opts.filler))
	}
	r := ring.New(lib, ringOpts...)
	if err := r.ApplyAll(events); err != nil {
		return nil, err
	}
	if err := r.Layout(ctx); err != nil {
		return nil, err
	}

	catalog := filler.FromLibrary(lib, r.FillerPrefix())
	if err := r.Fill(catalog); err != nil {
		return nil, err
	}
	return &placedRing{ring: r, lib: lib, catalog: catalog}, nil
}

// design resolves the placements for the encoders.
func (p *placedRing) design() (*encode.Design, error) {
	die, _ := p.ring.Die()
	return encode.NewDesign(p.ring.Design(), die, p.ring.Placements())
}

func loadPath(lib *library.MemoryLibrary, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to load LEF: %w", err)
	}
	if info.IsDir() {
		return lib.LoadDir(path)
	}
	return lib.LoadFiles(path)
}
