package templates

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// ErrInvalidTemplate is returned when a custom template fails validation.
var ErrInvalidTemplate = errors.New("invalid template")

// Load decodes a YAML template from r. Unknown keys are rejected.
func Load(r io.Reader) (*models.Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tpl models.Template
	if err := dec.Decode(&tpl); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTemplate)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if err := Validate(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// LoadFile reads a YAML template from disk.
func LoadFile(path string) (*models.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks that the template and every nested section carry a title.
func Validate(tpl *models.Template) error {
	if tpl == nil || tpl.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidTemplate)
	}
	return validateSections(tpl.Sections, "sections")
}

func validateSections(sections []models.Section, path string) error {
	for i, s := range sections {
		at := fmt.Sprintf("%s[%d]", path, i)
		if s.Title == "" {
			return fmt.Errorf("%w: %s has no title", ErrInvalidTemplate, at)
		}
		if err := validateSections(s.Subsections, at+".subsections"); err != nil {
			return err
		}
	}
	return nil
}
