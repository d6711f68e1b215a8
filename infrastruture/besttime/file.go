// Package besttime holds the best-time store backends.
//
// Every backend treats a missing or malformed record as "no best time yet" and
// only ever lowers the stored value.
package besttime

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps the best time as a single decimal number in a text file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Load reads the stored best time.
func (f *FileStore) Load() (float64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileStore) load() (float64, bool, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reading best time: %w", err)
	}
	best, ok := parseBest(string(raw))
	return best, ok, nil
}

// Save records best when it beats the stored value.
func (f *FileStore) Save(best float64) error {
	if best < 0 {
		return ErrNegativeTime
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok, err := f.load()
	if err != nil {
		return err
	}
	if ok && current <= best {
		return nil
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".best_time-*")
	if err != nil {
		return fmt.Errorf("writing best time: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(formatBest(best)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing best time: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing best time: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("writing best time: %w", err)
	}
	return nil
}

// ErrNegativeTime is returned when a negative duration is offered as a record.
var ErrNegativeTime = errors.New("best time cannot be negative")

func parseBest(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func formatBest(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
