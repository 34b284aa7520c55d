package leadsearch

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Vocabulary holds the tables the generator draws from.
type Vocabulary struct {
	FirstNames    []string `yaml:"first_names" validate:"min=1,dive,required"`
	Surnames      []string `yaml:"surnames" validate:"min=1,dive,required"`
	Companies     []string `yaml:"companies" validate:"min=1,dive,required"`
	Industries    []string `yaml:"industries" validate:"min=1,unique,dive,required"`
	Needs         []string `yaml:"needs" validate:"min=1,unique,dive,required"`
	Sources       []string `yaml:"sources" validate:"min=1,dive,required"`
	ContactDomain string   `yaml:"contact_domain" validate:"required,startswith=."`
}

var validate = validator.New()

// Validate reports empty tables, blank entries and duplicate industries or needs.
func (v *Vocabulary) Validate() error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVocabulary, err)
	}
	return nil
}

// ParseVocabulary decodes and validates a YAML vocabulary document.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidVocabulary, err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// DefaultVocabulary returns the embedded tables.
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic("leadsearch: embedded vocabulary is invalid: " + err.Error())
	}
	return v
}

// LoadVocabulary reads tables from path, or returns the embedded default
// when path is empty.
func LoadVocabulary(path string) (*Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	v, err := ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	return v, nil
}
