package backend

import (
	"os"
	"sync"
	"time"
)

// DefaultWatchInterval is how often a loaded config file is checked for
// changes.
const DefaultWatchInterval = 60 * time.Second

// watcher polls a file and calls onChange when its modification time or
// size differs from the previous poll. A missing file is not a change.
type watcher struct {
	path     string
	onChange func()
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

type fileStamp struct {
	mod  time.Time
	size int64
}

func (s fileStamp) equal(o fileStamp) bool {
	return s.size == o.size && s.mod.Equal(o.mod)
}

func stampOf(path string) (fileStamp, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, false
	}
	return fileStamp{mod: info.ModTime(), size: info.Size()}, true
}

func startWatcher(path string, interval time.Duration, onChange func()) *watcher {
	w := &watcher{
		path:     path,
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	last, _ := stampOf(path)
	go w.run(interval, last)
	return w
}

func (w *watcher) run(interval time.Duration, last fileStamp) {
	defer close(w.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			cur, ok := stampOf(w.path)
			if !ok || cur.equal(last) {
				continue
			}
			last = cur
			w.onChange()
		}
	}
}

// Stop ends polling and waits for a running onChange to return.
func (w *watcher) Stop() {
	w.once.Do(func() { close(w.stop) })
	<-w.done
}
