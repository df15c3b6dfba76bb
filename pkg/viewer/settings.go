package viewer

import (
	"fmt"

	"github.com/elves/gallery/pkg/cli/tk"
	"github.com/elves/gallery/pkg/config"
	"github.com/elves/gallery/pkg/prog"
	"github.com/elves/gallery/pkg/ui"
)

// Settings are the effective settings of the program, from the config file
// overridden by command-line flags.
type Settings struct {
	Variant     tk.Variant
	Keys        string
	CellWidth   int
	LoadingText string
	EmptyText   string
	DB, Bucket  string
	Demo        string
	// Nil when not configured.
	ItemStyling, StatusStyling ui.Styling
	// Empty when not configured, in which case DefaultQuitKeys are used.
	QuitKeys []ui.Key
}

// Resolve loads the config file named by the flags and merges the flags into
// it.
func Resolve(f *prog.Flags) (Settings, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return Settings{}, err
	}
	return merge(cfg, f)
}

func merge(cfg *config.Config, f *prog.Flags) (Settings, error) {
	s := Settings{
		Keys:        cfg.Keys,
		CellWidth:   cfg.CellWidth,
		LoadingText: cfg.Placeholder.Loading,
		EmptyText:   cfg.Placeholder.Empty,
		DB:          cfg.DB,
		Bucket:      cfg.Bucket,
		Demo:        cfg.Demo,
	}
	if cfg.Style.Item != "" {
		s.ItemStyling = ui.ParseStyling(cfg.Style.Item)
	}
	if cfg.Style.Status != "" {
		s.StatusStyling = ui.ParseStyling(cfg.Style.Status)
	}
	for _, name := range cfg.QuitKeys {
		k, err := ui.ParseKey(name)
		if err != nil {
			return Settings{}, fmt.Errorf("quit key %q: %w", name, err)
		}
		s.QuitKeys = append(s.QuitKeys, k)
	}
	if cfg.Variant != "" {
		variant, err := tk.ParseVariant(cfg.Variant)
		if err != nil {
			return Settings{}, err
		}
		s.Variant = variant
	}
	if f.Inset {
		s.Variant = tk.Inset
	}
	override(&s.Keys, f.Keys)
	override(&s.DB, f.DB)
	override(&s.Bucket, f.Bucket)
	override(&s.Demo, f.Demo)
	if f.CellWidth != 0 {
		if f.CellWidth < 0 {
			return Settings{}, prog.BadUsage("-cell-width must be positive")
		}
		s.CellWidth = f.CellWidth
	}
	return s, nil
}

func override[T comparable](p *T, v T) {
	var zero T
	if v != zero {
		*p = v
	}
}
