package catalog

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"resuscan/internal/errors"
)

// Watcher is a Source backed by an override file. Each successful reload
// swaps in a new immutable snapshot; a failed reload keeps the previous one.
type Watcher struct {
	path          string
	current       atomic.Pointer[Catalog]
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	logger        *errors.Logger

	mu            sync.Mutex
	debounceTimer *time.Timer
	stopChan      chan struct{}
	reloadChan    chan struct{}
	running       bool
	reloads       atomic.Int64
}

// NewWatcher loads path once and returns a Watcher serving that snapshot.
// Call Start to follow later changes.
func NewWatcher(path string, debounceDelay time.Duration, logger *errors.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	cat, err := Load(absPath)
	if err != nil {
		return nil, err
	}
	if debounceDelay <= 0 {
		debounceDelay = 500 * time.Millisecond
	}

	w := &Watcher{
		path:          absPath,
		debounceDelay: debounceDelay,
		logger:        logger,
		reloadChan:    make(chan struct{}, 1),
	}
	w.current.Store(cat)
	return w, nil
}

func (w *Watcher) Current() *Catalog {
	return w.current.Load()
}

// Reloads reports how many reloads have been applied.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Start begins watching the override file's directory so atomic
// rename-based writes are seen too. A stopped watcher can be started again.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("catalog watcher is already running")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fsWatcher = fsw
	w.stopChan = make(chan struct{})
	w.running = true
	go w.watchLoop(fsw, w.stopChan)

	w.logger.Info("Catalog watcher started", "file", w.path, "debounce_delay", w.debounceDelay)
	return nil
}

// Stop ends the watch loop. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.running = false
	if err := w.fsWatcher.Close(); err != nil {
		return err
	}
	w.logger.Info("Catalog watcher stopped")
	return nil
}

func (w *Watcher) watchLoop(fsw *fsnotify.Watcher, stop <-chan struct{}) {
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.isRelevant(event) {
				w.scheduleReload()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.LogError(err, "Catalog watcher error")
		case <-w.reloadChan:
			w.reload()
		case <-stop:
			return
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) reload() {
	cat, err := Load(w.path)
	if err != nil {
		w.logger.LogError(err, "Catalog reload rejected, keeping previous snapshot", "file", w.path)
		return
	}
	w.current.Store(cat)
	w.reloads.Add(1)
	w.logger.Info("Catalog reloaded", "file", w.path, "job_categories", len(cat.atsKeywords))
}
