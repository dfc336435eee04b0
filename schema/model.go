package schema

// FieldDescriptor is one declared field of a record: its name and the
// source-level type tag it was declared with (e.g. "i32", "String").
type FieldDescriptor struct {
	Name         string `json:"name" yaml:"name"`
	DeclaredType string `json:"type" yaml:"type"`
}

// RecordShape is the static description of a record type that is to be
// materialized as a table. Field order is column order.
type RecordShape struct {
	Name   string            `json:"name" yaml:"name"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
}

// ColumnDescriptor is a derived table column.
type ColumnDescriptor struct {
	Name         string      `json:"name"`
	StorageType  StorageType `json:"storageType"`
	IsPrimaryKey bool        `json:"isPrimaryKey"`
}

// SchemaDescriptor is the backend-agnostic description of a table.
// At most one column has IsPrimaryKey set.
type SchemaDescriptor struct {
	TableName string             `json:"tableName"`
	Columns   []ColumnDescriptor `json:"columns"`
}

// PrimaryKey returns the primary-key column, if any.
func (s SchemaDescriptor) PrimaryKey() (ColumnDescriptor, bool) {
	for _, c := range s.Columns {
		if c.IsPrimaryKey {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}
