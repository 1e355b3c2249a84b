package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/conduit-lang/buildconf/internal/logging"
)

// DefaultDelay is how long the watcher waits for editors to finish writing
const DefaultDelay = 100 * time.Millisecond

// ScriptWatcher monitors a project directory and reports changes to the build
// script. The directory is watched rather than the file because editors often
// replace files by renaming over them.
type ScriptWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	dir       string
	names     map[string]struct{}
	onChange  func([]string) error
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewScriptWatcher creates a watcher for the named files inside dir
func NewScriptWatcher(dir string, names []string, delay time.Duration, logger *zap.Logger, onChange func([]string) error) (*ScriptWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if delay <= 0 {
		delay = DefaultDelay
	}

	sw := &ScriptWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(delay),
		dir:       dir,
		names:     make(map[string]struct{}, len(names)),
		onChange:  onChange,
		logger:    logging.OrNop(logger),
		stopChan:  make(chan struct{}),
	}
	for _, name := range names {
		sw.names[name] = struct{}{}
	}

	sw.debouncer.SetCallback(func(files []string) {
		if err := sw.onChange(files); err != nil {
			sw.logger.Warn("error handling build script change", zap.Error(err))
		}
	})

	return sw, nil
}

// Start begins watching the directory
func (sw *ScriptWatcher) Start() error {
	if err := sw.watcher.Add(sw.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", sw.dir, err)
	}
	sw.logger.Debug("watching directory", zap.String("dir", sw.dir))

	sw.wg.Add(1)
	go sw.watch()

	return nil
}

// Stop stops the watcher. Calling it more than once is a no-op.
func (sw *ScriptWatcher) Stop() error {
	select {
	case <-sw.stopChan:
		return nil
	default:
		close(sw.stopChan)
	}

	sw.wg.Wait()
	sw.debouncer.Stop()
	return sw.watcher.Close()
}

func (sw *ScriptWatcher) watch() {
	defer sw.wg.Done()

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if sw.matches(event.Name) {
				sw.logger.Debug("build script changed", zap.String("file", event.Name))
				sw.debouncer.Add(event.Name)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("watch error", zap.Error(err))

		case <-sw.stopChan:
			return
		}
	}
}

// matches reports whether path names one of the watched files
func (sw *ScriptWatcher) matches(path string) bool {
	if len(sw.names) == 0 {
		return true
	}
	_, ok := sw.names[filepath.Base(path)]
	return ok
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

// Add records a changed file and restarts the delay
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

// flush triggers the callback with accumulated files, sorted
func (d *Debouncer) flush() {
	d.mutex.Lock()
	if len(d.files) == 0 || d.stopped {
		d.mutex.Unlock()
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	sort.Strings(files)
	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

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

// Stop cancels any pending flush
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.stopped = true
}
