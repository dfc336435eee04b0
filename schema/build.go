package schema

import "strings"

// primaryKeyField is the only field name eligible for the automatic primary key.
const primaryKeyField = "id"

// TableName derives a table name from a record name by lower-casing it and
// appending "s". There is no irregular pluralization: "Class" becomes
// "classs" and "Category" becomes "categorys".
func TableName(recordName string) string {
	return strings.ToLower(recordName) + "s"
}

// BuildSchema converts a record shape into a schema descriptor.
//
// A column is the primary key when its field is named exactly "id" and its
// declared type maps to Integer. Only the first such column is marked;
// later duplicates are rendered as ordinary columns.
func BuildSchema(shape RecordShape) SchemaDescriptor {
	desc := SchemaDescriptor{
		TableName: TableName(shape.Name),
		Columns:   make([]ColumnDescriptor, 0, len(shape.Fields)),
	}

	hasPK := false
	for _, f := range shape.Fields {
		col := ColumnDescriptor{
			Name:        f.Name,
			StorageType: MapType(f.DeclaredType),
		}
		if !hasPK && col.Name == primaryKeyField && col.StorageType == Integer {
			col.IsPrimaryKey = true
			hasPK = true
		}
		desc.Columns = append(desc.Columns, col)
	}

	return desc
}
