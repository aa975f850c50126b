package importer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field identifies a target field a source column can be mapped to.
type Field string

const (
	FieldDate        Field = "date"
	FieldAmount      Field = "amount"
	FieldDescription Field = "description"
	FieldMerchant    Field = "merchant"
	FieldNotes       Field = "notes"
	FieldCheckNumber Field = "check_number"
	FieldCategory    Field = "category"

	// FieldIgnore is the sentinel for columns the user chose not to import.
	FieldIgnore Field = "ignore"
)

var validFields = map[Field]bool{
	FieldDate: true, FieldAmount: true, FieldDescription: true,
	FieldMerchant: true, FieldNotes: true, FieldCheckNumber: true,
	FieldCategory: true, FieldIgnore: true,
}

// ColumnMapping maps source column names to target fields. Mappings whose
// source column does not occur in the parsed headers are simply absent from
// the resolved index; they do not error.
type ColumnMapping map[string]Field

// Validate checks that every mapped field is known.
func (m ColumnMapping) Validate() error {
	for column, field := range m {
		if !validFields[field] {
			return fmt.Errorf("column %q is mapped to unknown field %q", column, field)
		}
	}
	return nil
}

// LoadColumnMapping reads a column mapping from a YAML file of the form
//
//	Date: date
//	Amount: amount
//	Payee: description
func LoadColumnMapping(path string) (ColumnMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading mapping file: %w", err)
	}
	var mapping ColumnMapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("error parsing mapping file: %w", err)
	}
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	return mapping, nil
}

// resolve builds a field -> column-index lookup by matching the mapping's
// source column names against the actual parsed headers, case-insensitively.
// When several columns map to the same field, the first header position wins.
func (m ColumnMapping) resolve(headers []string) map[Field]int {
	index := make(map[Field]int)
	for i, header := range headers {
		field, ok := m[header]
		if !ok {
			// Fall back to a case-insensitive scan of the mapping keys.
			for column, f := range m {
				if strings.EqualFold(column, header) {
					field, ok = f, true
					break
				}
			}
		}
		if !ok || field == FieldIgnore {
			continue
		}
		if _, exists := index[field]; !exists {
			index[field] = i
		}
	}
	return index
}
