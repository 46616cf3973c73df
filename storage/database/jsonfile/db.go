package jsonfiledb

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
)

type (
	// DB is a flat JSON file holding every course and log.
	// The whole document is kept in memory and rewritten atomically after each write.
	DB struct {
		path   string
		logger core.Logger

		mu        sync.RWMutex
		data      document
		courseIdx map[string]int
		logIdx    map[string]int
		lastSaved []byte // file content as of our last load or write

		watcher *fsnotify.Watcher
		done    chan struct{}
	}

	document struct {
		Courses []course.Course  `json:"courses"`
		Logs    []studentlog.Log `json:"logs"`
	}
)

// Open loads the file at path, creating it (and its parent directories) when missing.
// logger may be nil.
func Open(path string, logger core.Logger) (*DB, error) {
	if path == "" {
		return nil, errors.New("data file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	db := &DB{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		db.reset(document{})
		if err = db.persist(); err != nil {
			return nil, errors.Wrap(err, "creating data file")
		}
	case err != nil:
		return nil, errors.Wrap(err, "reading data file")
	default:
		doc, err := decode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing data file %s", path)
		}
		db.reset(doc)
		db.lastSaved = raw
	}
	return db, nil
}

func decode(raw []byte) (document, error) {
	var doc document
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, err
	}
	return doc, nil
}

// reset replaces the in-memory document and rebuilds the indexes. Callers hold mu.
func (db *DB) reset(doc document) {
	db.data = doc
	db.courseIdx = make(map[string]int, len(doc.Courses))
	for i, crs := range doc.Courses {
		db.courseIdx[crs.ID] = i
	}
	db.logIdx = make(map[string]int, len(doc.Logs))
	for i, lg := range doc.Logs {
		db.logIdx[lg.ID] = i
	}
}

// persist writes the in-memory document to disk. Callers hold mu.
func (db *DB) persist() error {
	doc := db.data
	if doc.Courses == nil {
		doc.Courses = []course.Course{}
	}
	if doc.Logs == nil {
		doc.Logs = []studentlog.Log{}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding data file")
	}
	if err = writeFileAtomic(db.path, raw, 0o644); err != nil {
		return err
	}
	db.lastSaved = raw
	return nil
}

// writeFileAtomic writes to a temp file in the same directory then renames it over path,
// so readers never observe a half-written document.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return errors.Wrap(err, "setting file mode")
	}
	if err = os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrap(err, "replacing data file")
	}
	return nil
}

// Path returns the location of the data file.
func (db *DB) Path() string { return db.path }

func (db *DB) Close() error {
	db.mu.Lock()
	watcher := db.watcher
	db.watcher = nil
	db.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-db.done
	return err
}

func (db *DB) warn(msg string, args ...interface{}) {
	if db.logger != nil {
		db.logger.Warn(msg, args...)
	}
}
