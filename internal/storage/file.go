package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FileStorage keeps all keys in one JSON object on disk. Writes go through a
// temporary file and a rename so readers never see a half written file.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, errors.New("file storage requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{path: path}, nil
}

func (f *FileStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

func (f *FileStorage) SetItem(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	items[key] = value
	return f.write(items)
}

func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		err := fmt.Errorf("could not read storage file: %w", err)
		log.Error(err)
		return nil, err
	}
	items := map[string]string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		err := fmt.Errorf("could not decode storage file %s: %w", f.path, err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func (f *FileStorage) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		err := fmt.Errorf("could not create temporary storage file: %w", err)
		log.Error(err)
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write storage file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		err := fmt.Errorf("could not replace storage file: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
