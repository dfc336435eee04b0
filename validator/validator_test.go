package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/tablegen/schema"
)

func types(issues []ValidationError) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Type)
	}
	return out
}

func TestValidateRecords_Valid(t *testing.T) {
	res := ValidateRecords([]schema.RecordShape{
		{
			Name: "User",
			Fields: []schema.FieldDescriptor{
				{Name: "id", DeclaredType: "i32"},
				{Name: "name", DeclaredType: "String"},
				{Name: "is_active", DeclaredType: "bool"},
			},
		},
	}, Options{})

	require.True(t, res.Valid)
	require.Empty(t, res.Errors)
	require.Empty(t, res.Warnings)
	require.Empty(t, res.Info)
}

func TestValidateRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shapes       []schema.RecordShape
		opts         Options
		wantValid    bool
		wantErrors   []string
		wantWarnings []string
		wantInfo     []string
	}{
		{
			name:       "empty record name",
			shapes:     []schema.RecordShape{{Name: " ", Fields: []schema.FieldDescriptor{{Name: "id", DeclaredType: "i32"}}}},
			wantErrors: []string{"record_name"},
		},
		{
			name:       "no fields",
			shapes:     []schema.RecordShape{{Name: "Empty"}},
			wantErrors: []string{"no_fields"},
		},
		{
			name: "empty field name",
			shapes: []schema.RecordShape{{Name: "User", Fields: []schema.FieldDescriptor{
				{Name: "id", DeclaredType: "i32"}, {Name: "", DeclaredType: "String"},
			}}},
			wantErrors: []string{"field_name"},
		},
		{
			name: "duplicate id field",
			shapes: []schema.RecordShape{{Name: "User", Fields: []schema.FieldDescriptor{
				{Name: "id", DeclaredType: "i32"}, {Name: "id", DeclaredType: "i64"},
			}}},
			wantErrors: []string{"duplicate_field"},
		},
		{
			name: "duplicate table",
			shapes: []schema.RecordShape{
				{Name: "User", Fields: []schema.FieldDescriptor{{Name: "id", DeclaredType: "i32"}}},
				{Name: "USER", Fields: []schema.FieldDescriptor{{Name: "id", DeclaredType: "i32"}}},
			},
			wantErrors: []string{"duplicate_table"},
		},
		{
			name: "unmapped type is a warning",
			shapes: []schema.RecordShape{{Name: "Event", Fields: []schema.FieldDescriptor{
				{Name: "id", DeclaredType: "i64"}, {Name: "at", DeclaredType: "time.Time"},
			}}},
			wantValid:    true,
			wantWarnings: []string{"unmapped_type"},
		},
		{
			name: "unmapped type is an error when strict",
			shapes: []schema.RecordShape{{Name: "Event", Fields: []schema.FieldDescriptor{
				{Name: "id", DeclaredType: "i64"}, {Name: "at", DeclaredType: "CustomType"},
			}}},
			opts:       Options{Strict: true},
			wantErrors: []string{"unmapped_type"},
		},
		{
			name: "text id",
			shapes: []schema.RecordShape{{Name: "Tag", Fields: []schema.FieldDescriptor{
				{Name: "id", DeclaredType: "String"},
			}}},
			wantValid: true,
			wantInfo:  []string{"id_not_integer", "no_primary_key"},
		},
		{
			name: "odd identifiers",
			shapes: []schema.RecordShape{{Name: "Line-Item", Fields: []schema.FieldDescriptor{
				{Name: "id", DeclaredType: "i32"}, {Name: "unit price", DeclaredType: "f64"},
			}}},
			wantValid:    true,
			wantWarnings: []string{"record_name", "field_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := ValidateRecords(tt.shapes, tt.opts)
			require.Equal(t, tt.wantValid, res.Valid)
			if tt.wantErrors != nil {
				require.Equal(t, tt.wantErrors, types(res.Errors))
			} else {
				require.Empty(t, res.Errors)
			}
			if tt.wantWarnings != nil {
				require.Equal(t, tt.wantWarnings, types(res.Warnings))
			}
			if tt.wantInfo != nil {
				require.Equal(t, tt.wantInfo, types(res.Info))
			}
			for _, e := range res.Errors {
				require.Equal(t, SeverityError, e.Severity)
			}
		})
	}
}
