// Package watcher signals when the board's database file changes on disk.
// It is the fallback refresh source when no daemon is reachable.
package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyStarted is returned by a second Start
var ErrAlreadyStarted = errors.New("watcher already started")

// Config configures a Watcher
type Config struct {
	DBPath      string        // database file; its -wal and -shm siblings count too
	DebounceDur time.Duration // quiet period before a change is signalled
	Logger      *slog.Logger
}

// DefaultConfig returns a Config for dbPath with a 100ms debounce
func DefaultConfig(dbPath string) Config {
	return Config{DBPath: dbPath, DebounceDur: 100 * time.Millisecond}
}

// Watcher coalesces writes to a SQLite database into change signals
type Watcher struct {
	cfg     Config
	log     *slog.Logger
	changes chan struct{}

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	started  bool
	stopped  bool
	done     chan struct{}
	stopLoop chan struct{}
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("watcher: empty database path")
	}
	if cfg.DebounceDur <= 0 {
		cfg.DebounceDur = 100 * time.Millisecond
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		cfg:      cfg,
		log:      log.With("component", "watcher"),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopLoop: make(chan struct{}),
	}, nil
}

// Changes receives one value per debounced burst of writes. The channel
// holds at most one pending signal and is never closed.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start watches the directory holding the database. The directory is
// watched rather than the file so that rewrites and WAL files are seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started || w.stopped {
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.cfg.DBPath)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch database directory: %w", err)
	}

	w.fsw = fsw
	w.started = true
	go w.loop()

	w.log.Debug("watching database", "path", w.cfg.DBPath)
	return nil
}

// Stop ends watching and waits for the loop to exit. It is safe to call
// more than once and before Start.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	if !started {
		return nil
	}

	close(w.stopLoop)
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopLoop:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.DebounceDur)
			} else {
				timer.Reset(w.cfg.DebounceDur)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", "error", err)

		case <-timerC:
			timerC = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// relevant reports whether ev touches the database or its journal files
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(w.cfg.DBPath)
	name := filepath.Base(ev.Name)
	return name == base || strings.HasPrefix(name, base+"-")
}
