package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"work-manifest/artifact"
	"work-manifest/core/internal/config"
	"work-manifest/core/internal/store"
)

var (
	// ErrRootMissing means the scanned root is absent or not a directory.
	ErrRootMissing = errors.New("root directory not found")
	// ErrWriteManifest means the scan finished but the manifest could not be persisted.
	ErrWriteManifest = errors.New("write manifest")
)

// Selection is the artifact chosen for one project folder.
type Selection struct {
	Name string
	Kind artifact.Kind
	Path string
}

type Result struct {
	Selections []Selection
	Skipped    []string
	Output     store.WriteResult
}

func (r Result) Manifest() store.Manifest {
	items := make([]store.Item, 0, len(r.Selections))
	for _, s := range r.Selections {
		items = append(items, store.Item{Name: s.Name, Path: s.Path})
	}
	return store.Manifest{Items: items}
}

type Builder struct {
	cfg     config.Config
	log     zerolog.Logger
	finders []artifact.Finder
}

func New(cfg config.Config, log zerolog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log, finders: Finders(cfg)}
}

// Finders returns the selection rules in priority order: display image,
// render image, then a model under the model folder or the project folder.
func Finders(cfg config.Config) []artifact.Finder {
	images := artifact.NewExtensionSet(cfg.ImageExtensions...)
	models := artifact.NewExtensionSet(cfg.ModelExtensions...)

	return []artifact.Finder{
		{
			Kind: artifact.KindDisplayImage,
			Find: func(dir string) (string, bool) {
				return artifact.FirstImage(filepath.Join(dir, cfg.DisplayImageDir), images)
			},
		},
		{
			Kind: artifact.KindRenderImage,
			Find: func(dir string) (string, bool) {
				return artifact.FirstImage(filepath.Join(dir, cfg.RenderImageDir), images)
			},
		},
		{
			Kind: artifact.KindModel,
			Find: func(dir string) (string, bool) {
				for _, root := range []string{filepath.Join(dir, cfg.ModelDir), dir} {
					if p, ok := artifact.FirstModel(root, models, cfg.MaxDepth); ok {
						return p, true
					}
				}
				return "", false
			},
		},
	}
}

// Build scans every immediate subdirectory of the root and selects at most
// one artifact for each. Nothing is written.
func (b *Builder) Build() (Result, error) {
	root := b.cfg.RootPath()
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrRootMissing, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return Result{}, fmt.Errorf("list %s: %w", root, err)
	}

	var res Result
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()

		kind, found, ok := artifact.First(b.finders, filepath.Join(root, name))
		if !ok {
			b.log.Warn().Str("name", name).Msg("no image or model found, skipping")
			res.Skipped = append(res.Skipped, name)
			continue
		}

		rel, err := filepath.Rel(b.cfg.ProjectRoot, found)
		if err != nil {
			return Result{}, fmt.Errorf("relative path for %s: %w", found, err)
		}
		sel := Selection{Name: name, Kind: kind, Path: filepath.ToSlash(rel)}
		res.Selections = append(res.Selections, sel)

		b.log.Info().Str("name", name).Stringer("kind", kind).Str("path", sel.Path).Msg("selected artifact")
	}

	if len(res.Selections) == 0 {
		b.log.Warn().Str("root", root).Msg("manifest has no items, check the folder structure")
	}
	return res, nil
}

// Run builds the manifest and writes it to the configured output path.
func (b *Builder) Run() (Result, error) {
	res, err := b.Build()
	if err != nil {
		return res, err
	}

	out, err := store.Write(b.cfg.OutputPath(), res.Manifest())
	if err != nil {
		return res, fmt.Errorf("%w %s: %w", ErrWriteManifest, b.cfg.OutputPath(), err)
	}
	res.Output = out

	b.log.Info().
		Str("output", out.Path).
		Int("items", len(res.Selections)).
		Int("skipped", len(res.Skipped)).
		Str("sha256", out.SHA256).
		Bool("changed", out.Changed).
		Msg("manifest written")
	return res, nil
}
