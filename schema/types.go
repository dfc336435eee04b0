package schema

import "encoding/json"

// StorageType is the closed set of column types a declared type resolves to.
type StorageType int

const (
	Text StorageType = iota
	Integer
	Real
	Blob
)

func (t StorageType) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Blob:
		return "BLOB"
	default:
		return "TEXT"
	}
}

// MarshalJSON renders the type by its SQL name.
func (t StorageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// typeMap holds the explicitly mapped declared types. Lookup is
// case-sensitive and exact.
var typeMap = map[string]StorageType{
	"i32":   Integer,
	"i64":   Integer,
	"u32":   Integer,
	"u64":   Integer,
	"isize": Integer,
	"usize": Integer,

	"f32": Real,
	"f64": Real,

	"String":       Text,
	"string-slice": Text,

	// stored as 0/1
	"bool": Integer,

	"byte-sequence": Blob,
}

// MapType resolves a declared type tag to its storage type. Unknown tags
// map to Text; MapType never fails.
func MapType(declaredType string) StorageType {
	if t, ok := typeMap[declaredType]; ok {
		return t
	}
	return Text
}

// IsMapped reports whether declaredType has an explicit entry in the
// mapping table, as opposed to falling back to Text.
func IsMapped(declaredType string) bool {
	_, ok := typeMap[declaredType]
	return ok
}
