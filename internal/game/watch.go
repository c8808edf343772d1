package game

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches the config file's directory and reports YAML
// writes, debounced so editors that fire several events per save only
// trigger one reload.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewConfigWatcher starts watching the directory containing path.
func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher. Safe to call more than once. The Events and
// Errors channels are left open; the forwarding goroutine just stops
// feeding them.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
	})
	return err
}

func (cw *ConfigWatcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isConfigFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			cw.forward(event.Name)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case cw.Errors <- err:
			default:
			}
		case <-cw.closeCh:
			return
		}
	}
}

// forward hands an event to the consumer without ever blocking the
// watch loop: with no reader draining Events, excess notifications are
// dropped rather than wedging shutdown.
func (cw *ConfigWatcher) forward(name string) {
	select {
	case cw.Events <- name:
	default:
	}
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
