// CLAUDE:SUMMARY File-backed catalog sources: YAML documents and gob snapshots, fingerprinted by size and mtime.
package catalog

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/autolex/pkg/lexicon"
)

func init() {
	Register(yamlSource{})
	Register(gobSource{})
}

// yamlSource reads hand-maintained catalogs.
type yamlSource struct{}

func (yamlSource) Scheme() string { return "yaml" }

func (yamlSource) Read(_ context.Context, location string) (*lexicon.Definitions, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", location, err)
	}
	return decodeYAML(data, location)
}

func (yamlSource) Fingerprint(_ context.Context, location string) (string, error) {
	return fileFingerprint(location)
}

func (yamlSource) Write(_ context.Context, location string, defs *lexicon.Definitions) error {
	data, err := yaml.Marshal(defs)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := ensureDir(filepath.Dir(location)); err != nil {
		return err
	}
	return os.WriteFile(location, data, 0o644)
}

func decodeYAML(data []byte, name string) (*lexicon.Definitions, error) {
	var defs lexicon.Definitions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		// An empty document is an empty catalog.
		if len(bytes.TrimSpace(data)) == 0 {
			return &defs, nil
		}
		return nil, fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return &defs, nil
}

// gobSource reads snapshots produced by SaveGob.
type gobSource struct{}

func (gobSource) Scheme() string { return "gob" }

func (gobSource) Read(_ context.Context, location string) (*lexicon.Definitions, error) {
	return LoadGob(location)
}

func (gobSource) Fingerprint(_ context.Context, location string) (string, error) {
	return fileFingerprint(location)
}

func (gobSource) Write(_ context.Context, location string, defs *lexicon.Definitions) error {
	if err := ensureDir(filepath.Dir(location)); err != nil {
		return err
	}
	return SaveGob(defs, location)
}

// LoadGob decodes a gob snapshot.
func LoadGob(path string) (*lexicon.Definitions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var defs lexicon.Definitions
	if err := gob.NewDecoder(f).Decode(&defs); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return &defs, nil
}

// SaveGob serializes defs to a gob-encoded file at path.
func SaveGob(defs *lexicon.Definitions, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(defs); err != nil {
		f.Close()
		return fmt.Errorf("encode gob: %w", err)
	}
	return f.Close()
}

func fileFingerprint(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat catalog %s: %w", path, err)
	}
	return strconv.FormatInt(fi.Size(), 10) + "-" + strconv.FormatInt(fi.ModTime().UnixNano(), 10), nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}
