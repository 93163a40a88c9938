package dismiss

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileTrigger dismisses a dialog when a watched path is created, written,
// removed or renamed.
type FileTrigger struct {
	watcher  *fsnotify.Watcher
	filePath string
	logger   *slog.Logger
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewFileTrigger creates a trigger for path. The path need not exist yet.
func NewFileTrigger(path string, logger *slog.Logger) (*FileTrigger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileTrigger{
		watcher:  watcher,
		filePath: abs,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching and calls fire on the first matching change.
func (t *FileTrigger) Start(fire func()) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = true
	t.mu.Unlock()

	// Watch the directory so creation of a missing file is seen too.
	if err := t.watcher.Add(filepath.Dir(t.filePath)); err != nil {
		return err
	}

	go t.watch(fire)
	t.logger.Debug("dismiss file watch started", "path", t.filePath)
	return nil
}

// Path returns the absolute path being watched.
func (t *FileTrigger) Path() string {
	return t.filePath
}

// watch is the main watch loop.
func (t *FileTrigger) watch(fire func()) {
	filename := filepath.Base(t.filePath)

	for {
		select {
		case event, ok := <-t.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				t.logger.Debug("dismiss file changed", "path", t.filePath, "op", event.Op.String())
				fire()
				return
			}

		case err, ok := <-t.watcher.Errors:
			if !ok {
				return
			}
			t.logger.Warn("dismiss file watcher error", "error", err)

		case <-t.done:
			return
		}
	}
}

// Stop stops the watcher. It is safe to call more than once.
func (t *FileTrigger) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.done:
		return nil
	default:
	}
	close(t.done)
	t.running = false
	return t.watcher.Close()
}
