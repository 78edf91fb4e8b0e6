// internal/page/formdef.go
//
// Formrelay – Contact form presentation definition.
//
// Context
//   Labels, placeholders, and control types live in a YAML file so operators
//   can reword the page without a rebuild.  Validation rules do NOT live
//   here; they are fixed in internal/contact.  LoadFormDef parses one file,
//   checks structural rules, and returns the definition for the renderer.
//
//------------------------------------------------------------------------------

package page

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yanizio/formrelay/internal/contact"
)

// FormDef describes how the contact form is presented.
type FormDef struct {
	ID          string     `yaml:"id"`           // Stable identifier, e.g. "contact".
	Title       string     `yaml:"title"`        // Page heading, optional.
	SubmitLabel string     `yaml:"submit_label"` // Trigger text, defaults to "Send".
	Fields      []FieldDef `yaml:"fields"`
}

// FieldDef describes one input control.  Name must be one of the contact
// package's field names; unknown fields would be relayed nowhere.
type FieldDef struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Type        string `yaml:"type"` // text, email, tel, textarea
	Placeholder string `yaml:"placeholder"`
	Required    bool   `yaml:"required"` // presentation hint only (asterisk)
}

// Anchor returns the scroll anchor for the field's wrapper element.
func (f FieldDef) Anchor() string { return "field-" + f.Name }

// LoadFormDef parses and validates one YAML presentation file.
func LoadFormDef(path string) (*FormDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}

	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	if err := validateFormDef(&fd, path); err != nil {
		return nil, err
	}
	if fd.SubmitLabel == "" {
		fd.SubmitLabel = "Send"
	}
	return &fd, nil
}

// validateFormDef enforces structural rules that YAML tags cannot express.
func validateFormDef(fd *FormDef, path string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", path)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must declare 'fields'", path)
	}

	known := make(map[string]struct{}, len(contact.FieldOrder))
	for _, n := range contact.FieldOrder {
		known[n] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, f := range fd.Fields {
		if f.Name == "" {
			return fmt.Errorf("form %s: field missing 'name'", path)
		}
		if _, ok := known[f.Name]; !ok {
			return fmt.Errorf("form %s: unknown field '%s'", path, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field '%s'", path, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Label == "" {
			return fmt.Errorf("form %s: field '%s' missing 'label'", path, f.Name)
		}
		if f.Type == "" {
			return fmt.Errorf("form %s: field '%s' missing 'type'", path, f.Name)
		}
	}

	// The validated trio must be present or the page could never submit.
	for _, required := range []string{contact.FieldName, contact.FieldEmail, contact.FieldMessage} {
		if _, ok := seen[required]; !ok {
			return fmt.Errorf("form %s: required field '%s' not declared", path, required)
		}
	}
	return nil
}
