package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/giarcheuli/docparser/document_scanner"
	"github.com/giarcheuli/docparser/utils"
)

// debounceInterval is how long the tree must stay quiet before a batch of
// changes is reported. Editors and sync tools fire bursts of events per save.
const debounceInterval = 500 * time.Millisecond

// Watcher observes a directory tree recursively and reports settled batches
// of supported document changes.
type Watcher struct {
	notifier        *fsnotify.Watcher
	root            string
	excludePatterns []string
}

// NewWatcher builds a watcher over every non-excluded directory under root.
func NewWatcher(root string, excludePatterns []string) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("cannot watch %s: not a directory", root)
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watcher := &Watcher{
		notifier:        notifier,
		root:            root,
		excludePatterns: excludePatterns,
	}
	if err := watcher.addRecursive(root); err != nil {
		notifier.Close()
		return nil, err
	}
	return watcher, nil
}

// Watch emits one batch of changed document paths per quiet period until ctx
// is cancelled. When the consumer is still busy with the previous batch,
// later changes merge into the next one instead of blocking the event loop.
func (watcher *Watcher) Watch(ctx context.Context) <-chan []string {
	changes := make(chan []string, 1)

	go func() {
		defer close(changes)

		pending := make(map[string]struct{})
		timer := time.NewTimer(debounceInterval)
		if !timer.Stop() {
			<-timer.C
		}

		resetTimer := func() {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounceInterval)
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.notifier.Events:
				if !ok {
					return
				}
				if !watcher.relevant(event) {
					continue
				}
				pending[event.Name] = struct{}{}
				resetTimer()

			case <-timer.C:
				if len(pending) == 0 {
					continue
				}
				batch := make([]string, 0, len(pending))
				for path := range pending {
					batch = append(batch, path)
				}
				sort.Strings(batch)

				select {
				case changes <- batch:
					pending = make(map[string]struct{})
				default:
					// consumer still busy, retry after another quiet period
					timer.Reset(debounceInterval)
				}

			case err, ok := <-watcher.notifier.Errors:
				if !ok {
					return
				}
				log.Printf("Warning: file watcher error: %v", err)
			}
		}
	}()

	return changes
}

// Close stops the underlying notifier. Pending batches are dropped.
func (watcher *Watcher) Close() error {
	return watcher.notifier.Close()
}

// relevant filters events down to supported document changes, registering
// newly created directories along the way.
func (watcher *Watcher) relevant(event fsnotify.Event) bool {
	if utils.IsExcluded(watcher.relativePath(event.Name), watcher.excludePatterns) {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.addRecursive(event.Name); err != nil {
				log.Printf("Warning: watching new directory %s: %v", event.Name, err)
			}
			return false
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	_, supported := document_scanner.Classify(event.Name)
	return supported
}

// addRecursive registers dir and every non-excluded directory below it.
func (watcher *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if utils.IsExcluded(watcher.relativePath(path), watcher.excludePatterns) {
			return filepath.SkipDir
		}
		if err := watcher.notifier.Add(path); err != nil {
			log.Printf("Warning: cannot watch %s: %v", path, err)
		}
		return nil
	})
}

func (watcher *Watcher) relativePath(path string) string {
	relative, err := filepath.Rel(watcher.root, path)
	if err != nil || relative == "." {
		return ""
	}
	return strings.ReplaceAll(relative, "\\", "/")
}
