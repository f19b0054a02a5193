package vocabulary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a word list from path. CSV files contribute the first column of
// every record; anything else is decoded as YAML (and therefore JSON), either
// a plain sequence or a mapping with a "words" sequence.
func Load(path string) (*Vocabulary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer file.Close()

	var words []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		words, err = readCSV(file)
	default:
		words, err = readYAML(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file %s: %w", path, err)
	}

	v, err := New(words)
	if err != nil {
		return nil, fmt.Errorf("vocabulary file %s: %w", path, err)
	}
	return v, nil
}

func readCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var words []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse CSV: %w", err)
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		words = append(words, record[0])
	}
	return words, nil
}

func readYAML(r io.Reader) ([]string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var words []string
		if err := root.Decode(&words); err != nil {
			return nil, fmt.Errorf("decode word list: %w", err)
		}
		return words, nil
	case yaml.MappingNode:
		var wrapper struct {
			Words []string `yaml:"words"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("decode words mapping: %w", err)
		}
		return wrapper.Words, nil
	default:
		return nil, fmt.Errorf("expected a list of words or a mapping with a words key")
	}
}
