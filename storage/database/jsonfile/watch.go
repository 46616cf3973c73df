package jsonfiledb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch reloads the document whenever another process rewrites the data file.
// The parent directory is watched since atomic writes replace the file inode.
// Watching stops on Close.
func (db *DB) Watch() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.watcher != nil {
		return errors.New("already watching data file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	if err = watcher.Add(filepath.Dir(db.path)); err != nil {
		_ = watcher.Close()
		return errors.Wrap(err, "watching data directory")
	}

	db.watcher = watcher
	db.done = make(chan struct{})
	go db.watch(watcher)
	return nil
}

func (db *DB) watch(watcher *fsnotify.Watcher) {
	defer close(db.done)

	target := filepath.Clean(db.path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := db.Reload(); err != nil {
					db.warn(fmt.Sprintf("reloading %s", db.path), err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			db.warn("data file watcher", err)
		}
	}
}

// Reload re-reads the data file. Content identical to our last write is skipped.
// The read happens under the write lock so a concurrent write is never replaced by an older file.
// On a parse error the in-memory document is kept.
func (db *DB) Reload() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	raw, err := os.ReadFile(db.path)
	if err != nil {
		return errors.Wrap(err, "reading data file")
	}
	if bytes.Equal(raw, db.lastSaved) {
		return nil // our own write
	}
	doc, err := decode(raw)
	if err != nil {
		return errors.Wrap(err, "parsing data file")
	}
	db.reset(doc)
	db.lastSaved = raw
	return nil
}
