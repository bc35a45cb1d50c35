// Package watch reports changes to SQL files so they can be re-checked.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultDelay is how long the watcher waits for writes to settle
const DefaultDelay = 100 * time.Millisecond

// Config selects what a Watcher observes
type Config struct {
	// Dirs are watched recursively. Hidden directories are skipped.
	Dirs []string

	// Patterns are base-name globs; empty means "*.sql"
	Patterns []string

	// Delay is the debounce window; zero means DefaultDelay
	Delay time.Duration
}

// Watcher monitors directories and calls back with the files changed in
// each burst of writes
type Watcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	dirs      []string
	patterns  []string
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// New creates a watcher. onChange receives the sorted paths of changed files.
func New(config Config, logger *zap.Logger, onChange func(files []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	patterns := config.Patterns
	if len(patterns) == 0 {
		patterns = []string{"*.sql"}
	}
	dirs := config.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	delay := config.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	w := &Watcher{
		watcher:   fsw,
		debouncer: NewDebouncer(delay),
		dirs:      dirs,
		patterns:  patterns,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
	w.debouncer.SetCallback(onChange)

	return w, nil
}

// Start adds the configured directories and begins watching in the
// background
func (w *Watcher) Start() error {
	for _, dir := range w.dirs {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}

	w.wg.Add(1)
	go w.watch()

	return nil
}

// Stop stops the watcher. Calling it more than once is safe.
func (w *Watcher) Stop() error {
	select {
	case <-w.stopChan:
		return nil
	default:
		close(w.stopChan)
	}

	w.wg.Wait()
	w.debouncer.Stop()
	return w.watcher.Close()
}

// addTree watches dir and every non-hidden directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		w.logger.Debug("watching directory", zap.String("dir", path))
		return nil
	})
}

// watch is the main event loop
func (w *Watcher) watch() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	if !w.matches(event.Name) {
		return
	}
	w.logger.Debug("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
	w.debouncer.Add(event.Name)
}

// matches reports whether path is a visible file matching a pattern
func (w *Watcher) matches(path string) bool {
	if isHidden(path) {
		return false
	}
	base := filepath.Base(path)
	return lo.ContainsBy(w.patterns, func(pattern string) bool {
		matched, _ := filepath.Match(pattern, base)
		return matched
	})
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

// Debouncer collects file changes and triggers callbacks after a delay
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
	}
}

// Add records a file and restarts the delay
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush triggers the callback with the accumulated files, sorted
func (d *Debouncer) flush() {
	d.mutex.Lock()
	if len(d.files) == 0 || d.stopped {
		d.mutex.Unlock()
		return
	}
	files := lo.Keys(d.files)
	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	sort.Strings(files)
	if callback != nil {
		callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop cancels any pending flush. Later Adds are ignored.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.stopped = true
}
