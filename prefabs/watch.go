package prefabs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/milk9111/controller2d/controller"
	"github.com/milk9111/controller2d/physics"
)

// Debounce is the window in which repeated events for one file collapse into
// a single change.
const Debounce = 100 * time.Millisecond

// Watcher reports edits to spec and script files under a set of paths.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given files or directories.
func NewWatcher(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watch: %w", err)
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", p, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll drains pending change notifications without blocking. Each path is
// reported once.
func (w *Watcher) Poll() []string {
	var changed []string
	seen := map[string]bool{}
	for {
		select {
		case name := <-w.Events:
			if !seen[name] {
				seen[name] = true
				changed = append(changed, name)
			}
		default:
			return changed
		}
	}
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

// ReloadController re-reads the controller spec and applies it to ctrl and,
// when body is set, to the body's friction and gravity scale. An invalid spec
// is logged and leaves both untouched. Collider size changes are only logged;
// they apply the next time the character is built.
func ReloadController(ctrl *controller.Controller, body *physics.Body, override string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	spec, err := LoadControllerSpec(override)
	if err != nil {
		log.Warn("prefabs: reload rejected", "err", err)
		return err
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		log.Warn("prefabs: reload rejected", "err", err)
		return err
	}
	if err := ctrl.SetConfig(cfg); err != nil {
		log.Warn("prefabs: reload rejected", "err", err)
		return err
	}
	if body != nil {
		body.SetFrictionless(cfg.Frictionless)
		body.SetGravityScale(spec.Body.Scale())
		if size := spec.Body.Size(); !size.ApproxEqual(body.Size()) {
			log.Info("prefabs: body size change needs a restart", "size", size, "current", body.Size())
		}
	}
	log.Info("prefabs: controller reloaded", "name", spec.Name, "speed", cfg.Speed, "jump_height", cfg.JumpHeight, "probe", cfg.ProbeShape)
	return nil
}

// DrainErrors returns pending watcher errors without blocking.
func (w *Watcher) DrainErrors() []error {
	var errs []error
	for {
		select {
		case err := <-w.Errors:
			errs = append(errs, err)
		default:
			return errs
		}
	}
}
