package seeder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// File is the layout of the content file.
type File struct {
	Products     []domain.Product     `yaml:"products"`
	Team         []domain.TeamMember  `yaml:"team"`
	Publications []domain.Publication `yaml:"publications"`
	News         []domain.NewsUpdate  `yaml:"news"`
	Documents    []domain.Document    `yaml:"documents"`
}

// ReadFile parses the content file at path.
func ReadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a content file. Unknown keys are rejected, every item needs
// an id, and document file types must be known.
func Parse(raw []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode content file: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	var errs []error
	check := func(section string, i int, id uuid.UUID) {
		if id == uuid.Nil {
			errs = append(errs, fmt.Errorf("%s[%d]: id is required", section, i))
		}
	}

	for i, p := range f.Products {
		check("products", i, p.ID)
	}
	for i, m := range f.Team {
		check("team", i, m.ID)
	}
	for i, p := range f.Publications {
		check("publications", i, p.ID)
	}
	for i, n := range f.News {
		check("news", i, n.ID)
	}
	for i, d := range f.Documents {
		check("documents", i, d.ID)
		if !d.FileType.IsValid() {
			errs = append(errs, fmt.Errorf("documents[%d]: unknown file type %q", i, d.FileType))
		}
	}
	return errors.Join(errs...)
}
