package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// projectConfig is the optional padring.toml next to a pad ring description.
//
//	[library]
//	lef = ["pads.lef", "fill.lef"]
//	filler = "FILL"
//	cache = true
//
//	[output]
//	gds = "ring.gds"
//	def = "ring.def"
//	svg = "ring.svg"
type projectConfig struct {
	Library struct {
		LEF    []string `toml:"lef"`
		Filler string   `toml:"filler"`
		Cache  bool     `toml:"cache"`
	} `toml:"library"`
	Output struct {
		GDS string `toml:"gds"`
		DEF string `toml:"def"`
		SVG string `toml:"svg"`
	} `toml:"output"`
}

// loadProjectConfig reads a project file. Relative paths are taken from the
// directory of the file.
func loadProjectConfig(path string) (*projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	root := filepath.Dir(path)
	for i, p := range cfg.Library.LEF {
		cfg.Library.LEF[i] = resolvePath(root, p)
	}
	cfg.Output.GDS = resolvePath(root, cfg.Output.GDS)
	cfg.Output.DEF = resolvePath(root, cfg.Output.DEF)
	cfg.Output.SVG = resolvePath(root, cfg.Output.SVG)
	return &cfg, nil
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// runOptions are the settings of one generate or check run after merging
// flags over the project file.
type runOptions struct {
	lefs   []string
	filler string
	cache  bool
	gds    string
	def    string
	svg    string
}

// mergeProject fills every option whose flag was not set on the command line
// from the project file.
func mergeProject(cmd *cobra.Command, opts runOptions, cfg *projectConfig) runOptions {
	if cfg == nil {
		return opts
	}
	flags := cmd.Flags()
	if !flags.Changed("lef") {
		opts.lefs = cfg.Library.LEF
	}
	if !flags.Changed("filler") {
		opts.filler = cfg.Library.Filler
	}
	if !flags.Changed("cache") {
		opts.cache = cfg.Library.Cache
	}
	if flags.Lookup("output") != nil && !flags.Changed("output") {
		opts.gds = cfg.Output.GDS
	}
	if flags.Lookup("def") != nil && !flags.Changed("def") {
		opts.def = cfg.Output.DEF
	}
	if flags.Lookup("svg") != nil && !flags.Changed("svg") {
		opts.svg = cfg.Output.SVG
	}
	return opts
}
