// Package watcher keeps the LexicalIndex and VectorStore synchronized with
// a directory tree by watching it with fsnotify and replaying changes
// through the Orchestrator's full index/update/delete pipeline.
package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dillonfkhanna/multi-search/src/go/orchestrator"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// FileOperation represents the type of file operation observed on disk.
type FileOperation int

const (
	OpCreate FileOperation = iota
	OpModify
	OpDelete
)

func (op FileOperation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent describes one debounced filesystem change ready to be replayed
// through the Orchestrator.
type FileEvent struct {
	Path      string
	Operation FileOperation
	Timestamp time.Time
}

// DocumentParser turns raw file bytes into the (title, body) pair the
// Orchestrator needs. Format-specific parsers (PDF, office documents) are
// an external collaborator; DefaultParser below is the plain-text fallback.
type DocumentParser func(path string, content []byte) (title, body string, err error)

// DefaultParser treats content as UTF-8 text, using its first non-empty
// line as the title and the whole content as the body.
func DefaultParser(path string, content []byte) (string, string, error) {
	text := string(content)
	title := filepath.Base(path)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			title = line
			break
		}
	}
	return title, text, nil
}

// Watcher monitors a directory tree and replays changes through an
// Orchestrator.
type Watcher struct {
	fsWatcher      *fsnotify.Watcher
	orch           *orchestrator.Orchestrator
	parser         DocumentParser
	sourceType     string
	debounceTime   time.Duration
	ignorePatterns []string
	mu             sync.RWMutex
	watchedDirs    map[string]bool
}

// New creates a Watcher that replays filesystem changes into orch. parser
// may be nil, in which case DefaultParser is used. sourceType tags every
// document this watcher indexes (e.g. "note", "document").
func New(orch *orchestrator.Orchestrator, debounceMs int, sourceType string, parser DocumentParser) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}
	if parser == nil {
		parser = DefaultParser
	}

	return &Watcher{
		fsWatcher:    fsWatcher,
		orch:         orch,
		parser:       parser,
		sourceType:   sourceType,
		debounceTime: time.Duration(debounceMs) * time.Millisecond,
		watchedDirs:  make(map[string]bool),
		ignorePatterns: []string{
			".git",
			"node_modules",
			".cache",
			"*.tmp",
		},
	}, nil
}

// SetIgnorePatterns replaces the glob-ish ignore patterns used by shouldIgnore.
func (w *Watcher) SetIgnorePatterns(patterns []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignorePatterns = patterns
}

// AddPath adds a file or directory to watch, recursing into directories.
func (w *Watcher) AddPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path %s: %w", path, err)
	}
	if info.IsDir() {
		return w.addDirectory(path)
	}
	return w.addDirectory(filepath.Dir(path))
}

func (w *Watcher) addDirectory(dir string) error {
	w.mu.RLock()
	already := w.watchedDirs[dir]
	w.mu.RUnlock()
	if already {
		return nil
	}

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if w.shouldIgnore(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if err := w.fsWatcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			w.mu.Lock()
			w.watchedDirs[path] = true
			w.mu.Unlock()
		}
		return nil
	})
}

func (w *Watcher) shouldIgnore(path string) bool {
	w.mu.RLock()
	patterns := w.ignorePatterns
	w.mu.RUnlock()

	base := filepath.Base(path)
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(base, pattern[1:]) {
				return true
			}
		} else if base == pattern || strings.Contains(path, string(filepath.Separator)+pattern+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run debounces raw fsnotify events and replays them through the
// Orchestrator until ctx is cancelled. It blocks; call it from a goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	debouncer := make(map[string]*time.Timer)
	var debounceMu sync.Mutex

	fire := func(event fsnotify.Event) {
		debounceMu.Lock()
		delete(debouncer, event.Name)
		debounceMu.Unlock()
		w.handleEvent(ctx, event)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(event.Name) {
				continue
			}

			debounceMu.Lock()
			if timer, exists := debouncer[event.Name]; exists {
				timer.Stop()
			}
			debouncer[event.Name] = time.AfterFunc(w.debounceTime, func() { fire(event) })
			debounceMu.Unlock()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher: fs event error: %v", err)
		}
	}
}

// handleEvent resolves the debounced fsnotify event into an
// Orchestrator.Index/Delete call.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if err := w.orch.Delete(ctx, event.Name); err != nil {
			log.Printf("watcher: delete %s: %v", event.Name, err)
		}
		return
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.indexPath(ctx, event.Name)
		return
	}
}

func (w *Watcher) indexPath(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Printf("watcher: stat %s: %v", path, err)
		return
	}
	if info.IsDir() {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("watcher: read %s: %v", path, err)
		return
	}

	title, body, err := w.parser(path, content)
	if err != nil {
		log.Printf("watcher: parse %s: %v", path, err)
		return
	}

	err = w.orch.Index(ctx, types.RawDocument{
		Path:         path,
		Title:        title,
		Body:         body,
		SourceType:   w.sourceType,
		ModifiedDate: info.ModTime(),
	})
	if err != nil {
		log.Printf("watcher: index %s: %v", path, err)
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
