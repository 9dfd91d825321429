package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/free-cluster/internal/storage"
)

func file(dir, name string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.json", name))
}

// Save writes value as <dir>/<name>.json, creating dir if needed.
// The file is replaced in one step, so a concurrent Load sees either the old or the new value.
func Save(dir string, name string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode '%s': %w", name, err)
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create dir '%s': %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create file in '%s': %w", dir, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write '%s': %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close '%s': %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), file(dir, name)); err != nil {
		return fmt.Errorf("could not move '%s' into place: %w", name, err)
	}
	return nil
}

// Load decodes <dir>/<name>.json into value.
func Load(dir string, name string, value interface{}) error {
	p := file(dir, name)
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no file '%s': %w", p, storage.NotFoundErr)
	} else if err != nil {
		return fmt.Errorf("could not read '%s': %v: %w", p, err, storage.CouldNotLoadErr)
	}
	if err := json.Unmarshal(b, value); err != nil {
		return fmt.Errorf("could not decode '%s': %v: %w", p, err, storage.CouldNotLoadErr)
	}
	return nil
}
