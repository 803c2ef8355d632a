package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"tagtree/internal/config"
	"tagtree/internal/diag"
	"tagtree/internal/diagfmt"
	"tagtree/internal/driver"
)

// settings is tagtree.toml merged with the flags; a flag set on the
// command line wins over the file.
type settings struct {
	cfg      config.Config
	opts     driver.Options
	color    bool
	pathMode diagfmt.PathMode
	minSev   diag.Severity
	quiet    bool
	timings  bool
	progress progressMode
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	switch cfgPath {
	case "":
		cfg, err = config.Discover(".")
	case "none":
		cfg = config.Default()
	default:
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}

	colorMode := flagOr(cmd, "color", cfg.Output.Color)
	switch strings.ToLower(colorMode) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto", "":
		s.color = isTerminal(cmd.ErrOrStderr())
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	s.pathMode = diagfmt.ParsePathMode(flagOr(cmd, "path-mode", cfg.Output.PathMode))
	minSev, err := flags.GetString("min-severity")
	if err != nil {
		return nil, fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	if s.minSev, err = diag.ParseSeverity(minSev); err != nil {
		return nil, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	progress, ok := flags.Lookup("ui").Value.(*progressMode)
	if !ok {
		return nil, fmt.Errorf("failed to get ui flag")
	}
	s.progress = *progress

	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	s.opts = driver.Options{
		MaxDiagnostics: maxDiagnostics,
		MaxErrors:      cfg.Parse.MaxErrors,
		DecodeEntities: cfg.Parse.DecodeEntities,
		MaxDepth:       cfg.Parse.MaxDepth,
		MaxNodes:       cfg.Parse.MaxNodes,
		MaxTokenLength: cfg.Parse.MaxTokenLength,
	}
	return s, nil
}

// applyParseFlags overlays the parse-only flags on s.opts.
func (s *settings) applyParseFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("decode-entities") {
		v, err := flags.GetBool("decode-entities")
		if err != nil {
			return err
		}
		s.opts.DecodeEntities = v
	}
	if flags.Changed("max-errors") {
		v, err := flags.GetInt("max-errors")
		if err != nil {
			return err
		}
		if s.opts.MaxErrors, err = safecast.Conv[uint](v); err != nil {
			return fmt.Errorf("invalid --max-errors: %w", err)
		}
	}
	if flags.Changed("max-depth") {
		v, err := flags.GetInt("max-depth")
		if err != nil {
			return err
		}
		if s.opts.MaxDepth, err = safecast.Conv[uint](v); err != nil {
			return fmt.Errorf("invalid --max-depth: %w", err)
		}
	}
	if flags.Changed("max-nodes") {
		v, err := flags.GetInt("max-nodes")
		if err != nil {
			return err
		}
		if s.opts.MaxNodes, err = safecast.Conv[uint32](v); err != nil {
			return fmt.Errorf("invalid --max-nodes: %w", err)
		}
	}

	useCache := s.cfg.Cache.Enabled
	if flags.Changed("cache") {
		v, err := flags.GetBool("cache")
		if err != nil {
			return err
		}
		useCache = v
	}
	if !useCache {
		return nil
	}
	dir := flagOr(cmd, "cache-dir", s.cfg.Cache.Dir)
	var err error
	if dir == "" {
		s.opts.Cache, err = driver.OpenDiskCache("tagtree")
	} else {
		s.opts.Cache, err = driver.NewDiskCache(filepath.Clean(dir))
	}
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	return nil
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		PathMode:  s.pathMode,
		ShowNotes: true,
		ShowFixes: true,
	}
}

// flagOr returns the flag value when it was set explicitly, else fallback.
func flagOr(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) || fallback == "" {
		if v, err := cmd.Flags().GetString(name); err == nil {
			return v
		}
	}
	return fallback
}
