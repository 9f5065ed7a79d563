package fortunetable

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"numerology_fortune_bot/internal/domain/fortune"
)

//go:embed fortunes.yaml
var defaultTable []byte

type entryDTO struct {
	Text string `yaml:"text"`
	Mark string `yaml:"mark"`
}

// Load reads the fortune table from path, or the built-in table when path
// is empty.
func Load(path string) (*fortune.Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fortune table %s: %w", path, err)
	}
	tbl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fortune table %s: %w", path, err)
	}
	return tbl, nil
}

// Default parses the built-in table.
func Default() (*fortune.Table, error) {
	tbl, err := Parse(defaultTable)
	if err != nil {
		return nil, fmt.Errorf("built-in fortune table: %w", err)
	}
	return tbl, nil
}

// Parse decodes a YAML table. Unknown fields, unknown keys and marks that
// disagree with their number are errors.
func Parse(data []byte) (*fortune.Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	raw := map[string]entryDTO{}
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}

	entries := make(map[string]fortune.Entry, len(raw))
	for key, dto := range raw {
		mark, err := fortune.ParseMark(dto.Mark)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		entries[key] = fortune.Entry{Text: dto.Text, Mark: mark}
	}
	return fortune.NewTable(entries)
}
