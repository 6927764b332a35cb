package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

type Options struct {
	Root string
	// Levels is how many directory levels below Root get a watch.
	Levels   int
	Debounce time.Duration
	// Ignore lists files whose events never trigger a rebuild (the manifest itself).
	Ignore []string
	Logger zerolog.Logger
}

// Run calls rebuild after the tree under opts.Root has been quiet for
// opts.Debounce following a change. It blocks until ctx is done. Rebuild
// errors are logged and do not stop the loop.
func Run(ctx context.Context, opts Options, rebuild func() error) error {
	info, err := os.Stat(opts.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("watch root is not a directory: " + opts.Root)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	tw := &treeWatcher{w: w, root: filepath.Clean(opts.Root), levels: opts.Levels, log: opts.Logger}
	if err := w.Add(tw.root); err != nil {
		return err
	}
	tw.addChildren(tw.root, 0)

	ignore := make(map[string]bool, len(opts.Ignore)*2)
	for _, p := range opts.Ignore {
		p = filepath.Clean(p)
		ignore[p] = true
		ignore[p+".tmp"] = true
	}

	opts.Logger.Info().Str("root", tw.root).Int("watches", len(w.WatchList())).Msg("watching for changes")

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignore[filepath.Clean(ev.Name)] || ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Lstat(ev.Name); err == nil && fi.IsDir() {
					tw.addTree(ev.Name)
				}
			}
			opts.Logger.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change")
			fire = time.After(opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Warn().Err(err).Msg("watch error")

		case <-fire:
			fire = nil
			if err := rebuild(); err != nil {
				opts.Logger.Error().Err(err).Msg("rebuild failed")
			}
		}
	}
}

type treeWatcher struct {
	w      *fsnotify.Watcher
	root   string
	levels int
	log    zerolog.Logger
}

func (t *treeWatcher) depth(dir string) int {
	rel, err := filepath.Rel(t.root, dir)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// addTree watches a newly created directory and whatever already exists below it.
func (t *treeWatcher) addTree(dir string) {
	d := t.depth(dir)
	if d > t.levels {
		return
	}
	if err := t.w.Add(dir); err != nil {
		t.log.Debug().Err(err).Str("dir", dir).Msg("watch add failed")
		return
	}
	t.addChildren(dir, d)
}

func (t *treeWatcher) addChildren(dir string, depth int) {
	if depth >= t.levels {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		child := filepath.Join(dir, e.Name())
		if err := t.w.Add(child); err != nil {
			t.log.Debug().Err(err).Str("dir", child).Msg("watch add failed")
			continue
		}
		t.addChildren(child, depth+1)
	}
}
