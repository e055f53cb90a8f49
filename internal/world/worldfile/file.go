package worldfile

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/world/worldgen"
	"gopkg.in/yaml.v3"
)

// Decode reads a YAML document. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, apperrors.Wrap(apperrors.CodeWorldFileInvalid, "decode world file", err)
	}
	return &doc, nil
}

// Load decodes a document and builds its registries.
func Load(r io.Reader) (*worldgen.Registries, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// LoadFile loads the world file at path.
func LoadFile(path string) (*worldgen.Registries, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open world file: %w", err)
	}
	defer fp.Close()
	regs, err := Load(fp)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return regs, nil
}

// Write exports regs as YAML.
func Write(w io.Writer, regs *worldgen.Registries) error {
	doc, err := Export(regs)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode world file: %w", err)
	}
	return enc.Close()
}

// WriteFile exports regs to path, replacing any existing file.
func WriteFile(path string, regs *worldgen.Registries) error {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create world file: %w", err)
	}
	if err := Write(fp, regs); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
