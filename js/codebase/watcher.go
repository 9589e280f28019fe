package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ChangeKind tells a watch callback what happened to a file.
type ChangeKind int

const (
	FileChanged ChangeKind = iota
	FileRemoved
)

func (k ChangeKind) String() string {
	if k == FileRemoved {
		return "removed"
	}
	return "changed"
}

// FileWatcher polls the project sources, keeps the codebase current and
// reports every change to its callback.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string, kind ChangeKind)
}

func NewFileWatcher(c *Codebase, onChange func(path string, kind ChangeKind)) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

// SetPollInterval must be called before Start.
func (w *FileWatcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

func (w *FileWatcher) Start() {
	go w.run()
}

// Stop ends polling and waits for an in-flight scan to finish.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *FileWatcher) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)
	p := w.codebase.Project()
	outDir, _ := filepath.Abs(p.OutDir)

	filepath.Walk(w.codebase.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(w.codebase.RootDir(), path)
		if info.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules" || p.Excluded(rel) {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && abs == outDir {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := p.TransformsFor(path); !ok || p.Excluded(rel) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			if err := w.codebase.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
				return nil
			}
			w.notify(path, FileChanged)
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.notify(path, FileRemoved)
		}
	}
}

func (w *FileWatcher) notify(path string, kind ChangeKind) {
	log.Debugf("%s %s", kind, path)
	if w.onChange != nil {
		w.onChange(path, kind)
	}
}
