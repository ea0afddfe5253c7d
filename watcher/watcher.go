// Package watcher watches a directory tree for wikitext file changes.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/reflinks/config"
	"github.com/c360studio/reflinks/document"
	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 500

	defaultDebounce = 500 * time.Millisecond
)

// Event represents a wikitext file change.
type Event struct {
	// Path is the file path relative to the watched root.
	Path string

	// Operation is the type of change.
	Operation Operation

	// AbsPath is the absolute file path.
	AbsPath string
}

// Operation indicates the type of file operation.
type Operation string

// OpCreate, OpModify, and OpDelete enumerate the file watch operation types.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Watcher watches for wikitext file changes and emits events.
type Watcher struct {
	debounce   time.Duration
	root       string
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool
	excludes   map[string]bool

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.RWMutex
	hashes map[string]string

	// Output channel
	events chan Event

	droppedEvents atomic.Int64
}

// New creates a watcher for the tree rooted at root.
func New(cfg config.WatchConfig, root string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	debounce := cfg.DebounceDelay
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	// Build extension set
	extensions := make(map[string]bool)
	exts := cfg.FileExtensions
	if len(exts) == 0 {
		exts = config.DefaultConfig().Watch.FileExtensions
	}
	for _, ext := range exts {
		// Ensure extension starts with .
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[strings.ToLower(ext)] = true
	}

	excludes := make(map[string]bool)
	for _, dir := range cfg.ExcludeDirs {
		excludes[dir] = true
	}

	return &Watcher{
		debounce:   debounce,
		root:       root,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching the root directory for changes.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	// Start the event processing goroutine
	go w.processEvents(ctx)

	w.logger.Info("Watcher started",
		"root", w.root,
		"debounce", w.debounce)

	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// Watches reports whether path has a watched extension.
func (w *Watcher) Watches(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// Accepts reports whether changes to path are reported: the extension is
// watched, the file is not hidden, and no directory below the root is
// excluded or hidden.
func (w *Watcher) Accepts(path string) bool {
	if !w.Watches(path) || strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	dir := filepath.Dir(w.Rel(path))
	if dir == "." {
		return true
	}
	for _, part := range strings.Split(dir, string(filepath.Separator)) {
		if part != ".." && w.skipDir(part) {
			return false
		}
	}
	return true
}

// SetHash records the content hash of a file, keyed by its path relative to
// the root. Record the hash after rewriting a file so the resulting change
// event is suppressed.
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// GetHash returns the recorded hash for a file.
func (w *Watcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// Rel returns path relative to the watched root.
func (w *Watcher) Rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}

// addWatchesRecursive adds watches to all directories.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Only watch directories
		if !info.IsDir() {
			return nil
		}

		// Skip excluded and hidden directories
		if path != root && w.skipDir(filepath.Base(path)) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

func (w *Watcher) skipDir(base string) bool {
	return w.excludes[base] || (strings.HasPrefix(base, ".") && base != ".")
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events) // Close events channel when goroutine exits
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if !w.Watches(path) {
		// But handle directory creation (for new watches)
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	if !w.Accepts(path) {
		return
	}
	relPath := w.Rel(path)

	// Accumulate pending changes
	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected",
		"path", relPath,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	if w.skipDir(filepath.Base(path)) {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending processes accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	// Copy and clear pending
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath := w.Rel(path)
		event := Event{
			Path:    relPath,
			AbsPath: path,
		}

		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			event.Operation = OpDelete

			w.hashMu.Lock()
			delete(w.hashes, relPath)
			w.hashMu.Unlock()

			w.sendEvent(event)
			continue
		}
		if err != nil {
			w.logger.Warn("Failed to read file for hash check",
				"path", relPath,
				"error", err)
			continue
		}

		newHash := document.ContentHash(content)

		// Check if content actually changed
		oldHash, hadHash := w.GetHash(relPath)
		if hadHash && oldHash == newHash {
			continue
		}

		w.SetHash(relPath, newHash)

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = OpCreate
		} else {
			event.Operation = OpModify
		}

		w.sendEvent(event)
	}
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}
