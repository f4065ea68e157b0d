package scene

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to scene files and scenario scripts so the testbed
// can hot-reload them. Watches are placed on directories, never on the files
// themselves: editors that save by renaming a temp file over the target
// would otherwise take the watched inode with them and silence the watch
// after the first save. Events carry the changed path; duplicate bursts from
// editors that write in several syscalls are debounced.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool // exact files to report
	dirs    map[string]bool // directories whose every matching file is reported
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given paths. A directory reports every scene or
// scenario file inside it; a file path watches its parent directory and
// reports changes to that file only.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	watched := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		dir := p
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			dir = filepath.Dir(p)
			files[p] = true
		} else {
			dirs[p] = true
		}
		if watched[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
		watched[dir] = true
	}

	w := &Watcher{
		watcher: fw,
		files:   files,
		dirs:    dirs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Events and Errors are closed once the event loop
// has wound down.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

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
			name := filepath.Clean(event.Name)
			if !isSceneFile(name) && !isScenarioFile(name) {
				continue
			}
			if !w.files[name] && !w.dirs[filepath.Dir(name)] {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[name] = now
			w.Events <- name
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

func isSceneFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

func isScenarioFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
