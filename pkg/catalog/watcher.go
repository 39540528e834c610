package catalog

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Reload is emitted by a Watcher each time the catalog file settles after a
// change. Exactly one of Catalog and Err is set.
type Reload struct {
	Catalog *Catalog
	Err     error
}

// Watcher monitors a catalog file and re-parses it after writes.
type Watcher struct {
	Path    string
	Reloads <-chan Reload

	reloads  chan Reload
	done     chan struct{}
	started  bool
	stopOnce sync.Once
	fs      afero.Fs
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewWatcher creates a watcher for the catalog at path. Nothing is watched
// until Start is called.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:    path,
		Reloads: ch,
		reloads: ch,
		done:    make(chan struct{}),
		fs:      afero.NewOsFs(),
		watcher: fw,
		logger:  logger,
	}, nil
}

// Start begins watching. The parent directory is watched so that editors
// which replace the file by rename are still picked up. On error the
// underlying watcher is released and Stop is still safe to call.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Reloads channel. It may be called more
// than once, and without a prior Start, but not concurrently with Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.watcher.Close()
		if w.started {
			<-w.done
		}
		close(w.reloads)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	target := filepath.Clean(w.Path)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.emit()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watch error", "path", w.Path, "error", err)
		}
	}
}

func (w *Watcher) emit() {
	c, err := LoadFS(w.fs, w.Path)
	r := Reload{Catalog: c, Err: err}
	if err == nil {
		w.logger.Info("catalog reloaded", "path", w.Path, "regions", len(c.Regions))
	}
	// Never block the loop on a slow consumer; Stop must always return.
	select {
	case w.reloads <- r:
	default:
		w.logger.Warn("catalog reload dropped, consumer not keeping up", "path", w.Path)
	}
}
