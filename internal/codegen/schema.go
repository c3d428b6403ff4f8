// Package codegen generates typed table definitions from a YAML schema.
//
//	package: schema
//	tables:
//	  - name: users
//	    columns:
//	      - {name: id, type: int64}
//	      - {name: email, type: string}
package codegen

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchema wraps every schema validation failure.
var ErrInvalidSchema = errors.New("invalid schema")

// DefaultPackage is used when the schema names no package.
const DefaultPackage = "schema"

// Schema is a set of tables to generate.
type Schema struct {
	Package string  `yaml:"package"`
	Tables  []Table `yaml:"tables"`
}

// Table is one table definition.
type Table struct {
	Name    string   `yaml:"name"`
	Alias   string   `yaml:"alias"`
	Columns []Column `yaml:"columns"`
}

// Column is one typed column.
type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadSchema decodes and validates a schema document.
func LoadSchema(r io.Reader) (*Schema, error) {
	var s Schema
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
		}
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names and types, and fills in the default package.
func (s *Schema) Validate() error {
	if s.Package == "" {
		s.Package = DefaultPackage
	}
	if !isIdent(s.Package) {
		return fmt.Errorf("%w: bad package name %q", ErrInvalidSchema, s.Package)
	}
	if len(s.Tables) == 0 {
		return fmt.Errorf("%w: no tables", ErrInvalidSchema)
	}

	seen := make(map[string]string)
	for i, t := range s.Tables {
		if t.Name == "" {
			return fmt.Errorf("%w: table %d has no name", ErrInvalidSchema, i+1)
		}
		id := GoName(t.Name)
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: tables %q and %q both map to %s", ErrInvalidSchema, prev, t.Name, id)
		}
		seen[id] = t.Name
		if len(t.Columns) == 0 {
			return fmt.Errorf("%w: table %q has no columns", ErrInvalidSchema, t.Name)
		}

		fields := map[string]string{"Table": "(embedded)"}
		for _, c := range t.Columns {
			if c.Name == "" {
				return fmt.Errorf("%w: table %q has a column with no name", ErrInvalidSchema, t.Name)
			}
			if _, ok := goTypes[strings.ToLower(c.Type)]; !ok {
				return fmt.Errorf("%w: column %s.%s has unknown type %q", ErrInvalidSchema, t.Name, c.Name, c.Type)
			}
			f := GoName(c.Name)
			if prev, ok := fields[f]; ok {
				return fmt.Errorf("%w: columns %q and %q of %q both map to field %s", ErrInvalidSchema, prev, c.Name, t.Name, f)
			}
			fields[f] = c.Name
		}
	}
	return nil
}

var initialisms = map[string]bool{
	"id": true, "url": true, "uuid": true, "api": true, "ip": true,
	"http": true, "json": true, "sql": true, "uri": true, "html": true,
}

// GoName converts a snake_case SQL name to an exported Go identifier.
func GoName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var sb strings.Builder
	for _, p := range parts {
		lower := strings.ToLower(p)
		if initialisms[lower] {
			sb.WriteString(strings.ToUpper(lower))
			continue
		}
		r := []rune(lower)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	out := sb.String()
	if out == "" {
		return "X"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "X" + out
	}
	return out
}

func isIdent(s string) bool {
	for i, r := range s {
		if !(unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return s != ""
}
