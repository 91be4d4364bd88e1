// Package watcher watches a project tree and emits debounced batches of
// changed lintable files for incremental re-linting.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pallendes/eslint-plugin-react/internal/jsast"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/paths"
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
	EventRename
)

// String returns a string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	case EventRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event represents a change to one lintable file. Path is repo-relative
// with forward slashes, matching runner discovery output.
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// BatchHandler is called with each debounced batch of events
type BatchHandler func(events []Event)

// Config contains watcher configuration
type Config struct {
	DebounceMs int `json:"debounceMs" mapstructure:"debounceMs"`
}

// DefaultConfig returns the default watcher configuration
func DefaultConfig() Config {
	return Config{
		DebounceMs: 500,
	}
}

// skippedDirNames are never watched
var skippedDirNames = map[string]bool{
	"node_modules":       true,
	"vendor":             true,
	paths.ProjectDirName: true,
}

// Watcher monitors a project tree with fsnotify
type Watcher struct {
	root    string
	config  Config
	logger  *logging.Logger
	handler BatchHandler

	fsw     *fsnotify.Watcher
	batcher *BatchDebouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.RWMutex
	watchedDirs int
}

// New creates a watcher for the tree rooted at root
func New(root string, config Config, logger *logging.Logger, handler BatchHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if config.DebounceMs <= 0 {
		config.DebounceMs = DefaultConfig().DebounceMs
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		root:    root,
		config:  config,
		logger:  logger,
		handler: handler,
		fsw:     fsw,
		ctx:     ctx,
		cancel:  cancel,
	}
	w.batcher = NewBatchDebouncer(time.Duration(config.DebounceMs)*time.Millisecond, w.emit)

	return w, nil
}

// Start adds watches for every directory under the root and begins
// processing events
func (w *Watcher) Start() error {
	if err := w.addWatches(w.root); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.processEvents()

	w.mu.RLock()
	dirs := w.watchedDirs
	w.mu.RUnlock()

	w.logger.Info("File watcher started", map[string]interface{}{
		"root":       w.root,
		"dirs":       dirs,
		"debounceMs": w.config.DebounceMs,
	})

	return nil
}

// Stop stops watching and waits for in-flight processing to finish.
// Pending batched events are discarded.
func (w *Watcher) Stop() error {
	w.cancel()

	err := w.fsw.Close()
	w.wg.Wait()
	w.batcher.Cancel()

	w.logger.Info("File watcher stopped", nil)
	return err
}

// addWatches recursively adds watches for root and its subdirectories,
// pruning the same directories run discovery prunes
func (w *Watcher) addWatches(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if !info.IsDir() {
			return nil
		}

		name := info.Name()
		if path != root && (strings.HasPrefix(name, ".") || skippedDirNames[name]) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return nil
		}

		w.mu.Lock()
		w.watchedDirs++
		w.mu.Unlock()

		return nil
	})
}

// processEvents consumes fsnotify events until the watcher stops
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// handleEvent filters one fsnotify event down to a lintable-file change
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// New directories need their own watches so files created inside
	// them are seen
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.ignoredDir(path) {
				_ = w.addWatches(path)
			}
			return
		}
	}

	if w.ignoredPath(path) {
		return
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := jsast.LanguageFromExtension(ext); !ok {
		return
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	var eventType EventType
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = EventCreate
	case event.Op&fsnotify.Write != 0:
		eventType = EventModify
	case event.Op&fsnotify.Remove != 0:
		eventType = EventDelete
	case event.Op&fsnotify.Rename != 0:
		eventType = EventRename
	default:
		return
	}

	w.batcher.Add(Event{
		Type:      eventType,
		Path:      rel,
		Timestamp: time.Now(),
	})
}

// ignoredDir reports whether a directory lies in pruned territory
func (w *Watcher) ignoredDir(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") || skippedDirNames[part] {
			return true
		}
	}
	return false
}

// ignoredPath reports whether a file lies under a pruned directory
func (w *Watcher) ignoredPath(path string) bool {
	return w.ignoredDir(filepath.Dir(path))
}

// emit hands a debounced batch to the handler
func (w *Watcher) emit(events []Event) {
	w.logger.Debug("Change batch ready", map[string]interface{}{
		"events": len(events),
	})
	if w.handler != nil {
		w.handler(events)
	}
}

// Stats returns watcher statistics
func (w *Watcher) Stats() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return map[string]interface{}{
		"root":        w.root,
		"watchedDirs": w.watchedDirs,
		"debounceMs":  w.config.DebounceMs,
		"pending":     w.batcher.EventCount(),
	}
}
