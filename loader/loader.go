package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ridoystarlord/tablegen/schema"
)

// LoadRecords reads record shapes from a declaration file, choosing the
// format by extension: .yaml/.yml or .hcl.
func LoadRecords(filename string) ([]schema.RecordShape, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		return LoadRecordsFromYAML(filename)
	case ".hcl":
		return LoadRecordsFromHCL(filename)
	default:
		return nil, fmt.Errorf("unsupported records file %q: want .yaml, .yml or .hcl", filename)
	}
}

// Load reads record shapes from modelsDir when it is set, otherwise from
// filename.
func Load(filename, modelsDir string) ([]schema.RecordShape, error) {
	if modelsDir != "" {
		return LoadRecordsFromSource(modelsDir)
	}
	return LoadRecords(filename)
}
