package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a single file and emits an event once writes to it settle.
// The parent directory is watched so editors that replace the file on save
// are still noticed.
type Watcher struct {
	watcher       *fsnotify.Watcher
	filePath      string
	debounce      time.Duration
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	pending       FileEventType
	running       bool
	stopChan      chan struct{}
	eventChan     chan<- FileEvent
}

// NewWatcher creates a new file system watcher
func NewWatcher(eventChan chan<- FileEvent, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:   watcher,
		debounce:  debounce,
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching filePath for changes
func (w *Watcher) Start(ctx context.Context, filePath string) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	w.filePath = abs
	slog.Info("Starting file watcher", "path", abs)

	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	w.running = true
	go w.watchLoop(ctx)
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)

	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()

	w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.filePath {
		return
	}

	var eventType FileEventType
	switch {
	case event.Has(fsnotify.Create):
		eventType = FileCreated
	case event.Has(fsnotify.Write):
		eventType = FileModified
	default:
		return
	}
	slog.Debug("Detected file change", "file", event.Name, "op", event.Op.String())

	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.pending = eventType
	w.debounceTimer = time.AfterFunc(w.debounce, w.emitDebounceEvent)
}

func (w *Watcher) emitDebounceEvent() {
	w.debounceMutex.Lock()
	eventType := w.pending
	w.debounceMutex.Unlock()

	event := FileEvent{
		Path:      w.filePath,
		EventType: eventType,
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Debug("Emitted file event after debounce", "path", event.Path)
	default:
		slog.Warn("Event channel full, dropping file event", "path", event.Path)
	}
}
