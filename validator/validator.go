package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ridoystarlord/tablegen/schema"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// identifierRe matches identifiers that need no quoting in SQLite DDL.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationError represents a validation error with details
type ValidationError struct {
	Type     string `json:"type"`
	Record   string `json:"record,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

// Options tune validation.
type Options struct {
	// Strict reports declared types without an explicit mapping as errors
	// instead of warnings. Generation itself still defaults them to TEXT.
	Strict bool
}

func (r *ValidationResult) add(v ValidationError) {
	switch v.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, v)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, v)
	default:
		r.Info = append(r.Info, v)
	}
}

// ValidateRecords checks record shapes before generation. It never touches a
// database.
func ValidateRecords(shapes []schema.RecordShape, opts Options) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	tables := make(map[string]string, len(shapes))
	for _, shape := range shapes {
		validateRecord(shape, opts, result)

		if strings.TrimSpace(shape.Name) == "" {
			continue
		}
		table := schema.TableName(shape.Name)
		if other, ok := tables[table]; ok {
			result.add(ValidationError{
				Type:     "duplicate_table",
				Record:   shape.Name,
				Message:  fmt.Sprintf("Records '%s' and '%s' both map to table '%s'", other, shape.Name, table),
				Severity: SeverityError,
			})
			continue
		}
		tables[table] = shape.Name
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateRecord(shape schema.RecordShape, opts Options, result *ValidationResult) {
	if strings.TrimSpace(shape.Name) == "" {
		result.add(ValidationError{
			Type:     "record_name",
			Message:  "Record name must not be empty",
			Severity: SeverityError,
		})
	} else if !identifierRe.MatchString(shape.Name) {
		result.add(ValidationError{
			Type:     "record_name",
			Record:   shape.Name,
			Message:  fmt.Sprintf("Record name '%s' is not a plain SQL identifier", shape.Name),
			Severity: SeverityWarning,
		})
	}

	if len(shape.Fields) == 0 {
		result.add(ValidationError{
			Type:     "no_fields",
			Record:   shape.Name,
			Message:  fmt.Sprintf("Record '%s' declares no fields", shape.Name),
			Severity: SeverityError,
		})
		return
	}

	seen := make(map[string]bool, len(shape.Fields))
	for _, f := range shape.Fields {
		validateField(shape.Name, f, opts, result)

		if f.Name == "" {
			continue
		}
		if seen[f.Name] {
			result.add(ValidationError{
				Type:     "duplicate_field",
				Record:   shape.Name,
				Field:    f.Name,
				Message:  fmt.Sprintf("Field '%s' is declared more than once", f.Name),
				Severity: SeverityError,
			})
		}
		seen[f.Name] = true
	}

	if _, ok := schema.BuildSchema(shape).PrimaryKey(); !ok {
		result.add(ValidationError{
			Type:     "no_primary_key",
			Record:   shape.Name,
			Message:  fmt.Sprintf("Table '%s' has no primary key (declare an integer 'id' field to get one)", schema.TableName(shape.Name)),
			Severity: SeverityInfo,
		})
	}
}

func validateField(record string, f schema.FieldDescriptor, opts Options, result *ValidationResult) {
	if strings.TrimSpace(f.Name) == "" {
		result.add(ValidationError{
			Type:     "field_name",
			Record:   record,
			Message:  "Field name must not be empty",
			Severity: SeverityError,
		})
		return
	}
	if !identifierRe.MatchString(f.Name) {
		result.add(ValidationError{
			Type:     "field_name",
			Record:   record,
			Field:    f.Name,
			Message:  fmt.Sprintf("Field name '%s' is not a plain SQL identifier", f.Name),
			Severity: SeverityWarning,
		})
	}

	if !schema.IsMapped(f.DeclaredType) {
		severity := SeverityWarning
		if opts.Strict {
			severity = SeverityError
		}
		result.add(ValidationError{
			Type:     "unmapped_type",
			Record:   record,
			Field:    f.Name,
			Message:  fmt.Sprintf("Type '%s' has no explicit mapping and is stored as TEXT", f.DeclaredType),
			Severity: severity,
		})
	}

	if f.Name == "id" && schema.MapType(f.DeclaredType) != schema.Integer {
		result.add(ValidationError{
			Type:     "id_not_integer",
			Record:   record,
			Field:    f.Name,
			Message:  fmt.Sprintf("Field 'id' has type '%s' which is not an integer type, so it is not a primary key", f.DeclaredType),
			Severity: SeverityInfo,
		})
	}
}
