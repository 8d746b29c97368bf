package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

var (
	ErrCorrupted = errors.New("collection file is corrupted")
	ErrDuplicate = errors.New("record already exists")
)

// Collection is a JSON array of records kept in a single file. Appends
// read the whole array, add the record and atomically replace the file.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

func NewCollection[T any](path string) (*Collection[T], error) {
	c := &Collection[T]{path: path}
	if err := c.init(); err != nil {
		return nil, err
	}

	return c, nil
}

// init creates the parent directory and an empty array when the file is missing.
func (c *Collection[T]) init() error {
	_, err := os.Stat(c.path)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", c.path, err)
	}

	if err := c.write([]T{}); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", c.path, err)
	}

	return nil
}

func (c *Collection[T]) Path() string {
	return c.path
}

func (c *Collection[T]) Append(record T) error {
	return c.AppendUnique(record, nil)
}

// AppendUnique appends record unless conflict reports an existing one
// as the same, in which case it returns ErrDuplicate.
func (c *Collection[T]) AppendUnique(record T, conflict func(existing T) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.init(); err != nil {
		return err
	}

	records, err := c.read()
	if err != nil {
		return err
	}

	if conflict != nil {
		for _, existing := range records {
			if conflict(existing) {
				return ErrDuplicate
			}
		}
	}

	records = append(records, record)

	if err := c.write(records); err != nil {
		return fmt.Errorf("failed to write to %s: %w", c.path, err)
	}

	return nil
}

func (c *Collection[T]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}

		return nil, err
	}

	return records, nil
}

func (c *Collection[T]) Truncate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.write([]T{})
}

func (c *Collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrCorrupted, c.path, err.Error())
	}

	return records, nil
}

func (c *Collection[T]) write(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(c.path, bytes.NewReader(data))
}
