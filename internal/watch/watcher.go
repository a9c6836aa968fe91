package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultInterval is the polling interval used when Config.Interval is zero.
const DefaultInterval = 250 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Paths are fixture files or directories holding them.
	Paths []string

	// Interval is the polling interval.
	Interval time.Duration
}

// Watcher reports fixture files that were created, modified or deleted.
type Watcher struct {
	config   Config
	mu       sync.Mutex
	stamps   map[string]time.Time
	onChange func(path string)
}

// New creates a Watcher and records the current state of its paths, so the
// first poll only reports later changes.
func New(config Config) *Watcher {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	w := &Watcher{config: config}
	w.stamps = w.scan()
	return w
}

// OnChange sets the callback run for each changed path.
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			changed := w.Poll()
			w.mu.Lock()
			fn := w.onChange
			w.mu.Unlock()
			if fn == nil {
				continue
			}
			for _, p := range changed {
				fn(p)
			}
		}
	}
}

// Poll rescans the paths and returns the changed files in sorted order.
func (w *Watcher) Poll() []string {
	current := w.scan()

	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for p, mod := range current {
		if last, ok := w.stamps[p]; !ok || !mod.Equal(last) {
			changed = append(changed, p)
		}
	}
	for p := range w.stamps {
		if _, ok := current[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.stamps = current
	sort.Strings(changed)
	return changed
}

func (w *Watcher) scan() map[string]time.Time {
	stamps := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			stamps[root] = info.ModTime()
			continue
		}
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if p != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !isFixture(p) {
				return nil
			}
			if info, err := d.Info(); err == nil {
				stamps[p] = info.ModTime()
			}
			return nil
		})
	}
	return stamps
}

func isFixture(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
