package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/newtron-network/fabricgen/pkg/util"
)

// Logger is an audit log backend.
type Logger interface {
	Log(event *Event) error
	Query(filter Filter) ([]*Event, error)
	Close() error
}

// RotationConfig bounds the size of the log.
type RotationConfig struct {
	MaxSize    int64 // bytes before the live file is rotated; 0 disables rotation
	MaxBackups int   // rotated files kept; 0 keeps all
}

// FileLogger appends events to a JSON-lines file. Rotated files sit next to
// it as <path>.<timestamp> and are still searched by Query.
type FileLogger struct {
	mu       sync.RWMutex
	path     string
	file     *os.File
	rotation RotationConfig
}

// NewFileLogger opens (or creates) the log at path.
func NewFileLogger(path string, rotation RotationConfig) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating audit log directory: %w", err)
	}
	l := &FileLogger{path: path, rotation: rotation}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLogger) open() error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	l.file = f
	return nil
}

// Log appends event as one line, rotating first when the file is full.
func (l *FileLogger) Log(event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.full() {
		if err := l.rotate(); err != nil {
			return fmt.Errorf("rotating audit log: %w", err)
		}
	}
	_, err = l.file.Write(append(data, '\n'))
	return err
}

func (l *FileLogger) full() bool {
	if l.rotation.MaxSize <= 0 {
		return false
	}
	info, err := l.file.Stat()
	return err == nil && info.Size() >= l.rotation.MaxSize
}

// Query returns the matching events oldest first, across rotated files.
// Offset and Limit count back from the newest event, so Limit: 10 is the
// last ten runs.
func (l *FileLogger) Query(filter Filter) ([]*Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var events []*Event
	for _, path := range append(l.backups(), l.path) {
		found, err := readEvents(path, filter)
		if err != nil {
			return nil, err
		}
		events = append(events, found...)
	}

	end := max(len(events)-filter.Offset, 0)
	start := 0
	if filter.Limit > 0 {
		start = max(end-filter.Limit, 0)
	}
	return events[start:end], nil
}

// readEvents scans one file. A missing file holds no events; malformed
// lines are skipped with a warning.
func readEvents(path string, filter Filter) ([]*Event, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log := util.WithComponent("audit")
	var events []*Event
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		e := &Event{}
		if err := json.Unmarshal(scanner.Bytes(), e); err != nil {
			log.Warnf("%s:%d: skipping malformed entry: %v", filepath.Base(path), n, err)
			continue
		}
		if filter.matches(e) {
			events = append(events, e)
		}
	}
	return events, scanner.Err()
}

func (f Filter) matches(e *Event) bool {
	switch {
	case f.Operation != "" && e.Operation != f.Operation:
		return false
	case f.Store != "" && e.Store != f.Store:
		return false
	case f.Device != "" && !e.HasDevice(f.Device):
		return false
	case !f.StartTime.IsZero() && e.Timestamp.Before(f.StartTime):
		return false
	case !f.EndTime.IsZero() && e.Timestamp.After(f.EndTime):
		return false
	case f.SuccessOnly && !e.Success:
		return false
	case f.FailureOnly && e.Success:
		return false
	}
	return true
}

// Close closes the live file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// backupSuffix sorts chronologically.
const backupSuffix = "20060102-150405.000000000"

// backups lists the rotated files, oldest first.
func (l *FileLogger) backups() []string {
	paths, err := filepath.Glob(l.path + ".*")
	if err != nil {
		return nil
	}
	sort.Strings(paths)
	return paths
}

func (l *FileLogger) rotate() error {
	if err := l.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(l.path, l.path+"."+time.Now().Format(backupSuffix)); err != nil {
		return err
	}
	if err := l.open(); err != nil {
		return err
	}

	old := l.backups()
	if l.rotation.MaxBackups <= 0 || len(old) <= l.rotation.MaxBackups {
		return nil
	}
	for _, path := range old[:len(old)-l.rotation.MaxBackups] {
		if err := os.Remove(path); err != nil {
			util.WithComponent("audit").Warnf("removing %s: %v", path, err)
		}
	}
	return nil
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// SetDefaultLogger sets the logger used by Log and Query. nil disables
// auditing.
func SetDefaultLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Log records event with the default logger, if one is set.
func Log(event *Event) error {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultLogger == nil {
		return nil
	}
	return defaultLogger.Log(event)
}

// Query searches the default logger. Without one there is no history.
func Query(filter Filter) ([]*Event, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultLogger == nil {
		return nil, nil
	}
	return defaultLogger.Query(filter)
}
