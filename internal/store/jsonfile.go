package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONStore keeps the high score in a JSON document, leaving other keys
// in the file untouched.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func jsonKeyPath() string {
	return strings.ReplaceAll(HighScoreKey, ".", `\.`)
}

// LoadHighScore reads the stored score; a missing file or key is 0.
func (js *JSONStore) LoadHighScore(_ context.Context) (int, error) {
	js.mu.Lock()
	defer js.mu.Unlock()
	return js.load()
}

func (js *JSONStore) load() (int, error) {
	data, err := os.ReadFile(js.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if !gjson.ValidBytes(data) {
		return 0, fmt.Errorf("corrupt high score file %s", js.path)
	}
	res := gjson.GetBytes(data, jsonKeyPath())
	if !res.Exists() {
		return 0, nil
	}
	return parseScore(res.Raw)
}

// SaveHighScore rewrites the file atomically with the new score unless the
// file already holds a higher one.
func (js *JSONStore) SaveHighScore(_ context.Context, score int) (int, error) {
	js.mu.Lock()
	defer js.mu.Unlock()
	if cur, err := js.load(); err == nil && cur >= score {
		return cur, nil
	}
	if err := js.write(score); err != nil {
		return 0, err
	}
	return score, nil
}

// ResetHighScore stores 0.
func (js *JSONStore) ResetHighScore(_ context.Context) error {
	js.mu.Lock()
	defer js.mu.Unlock()
	return js.write(0)
}

func (js *JSONStore) write(score int) error {
	data, err := os.ReadFile(js.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(data) == 0 || !gjson.ValidBytes(data) {
		data = []byte("{}")
	}
	data, err = sjson.SetBytes(data, jsonKeyPath(), score)
	if err != nil {
		return fmt.Errorf("failed to set high score: %w", err)
	}
	return writeFileAtomic(js.path, data)
}

// Close is a no-op.
func (js *JSONStore) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create high score dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "highscore-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp high score file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write high score file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close high score file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write high score file: %w", err)
	}
	return nil
}
