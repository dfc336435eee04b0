package loader

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/ridoystarlord/tablegen/schema"
)

type hclFile struct {
	Records []hclRecord `hcl:"record,block"`
}

type hclRecord struct {
	Name   string     `hcl:"name,label"`
	Fields []hclField `hcl:"field,block"`
}

type hclField struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

// LoadRecordsFromHCL reads record shapes from an HCL file of the form:
//
//	record "User" {
//	  field "id" { type = "i32" }
//	  field "name" { type = "String" }
//	}
func LoadRecordsFromHCL(filename string) ([]schema.RecordShape, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	return parseHCL(filename, data)
}

// parseHCL decodes src; filename must end in .hcl (or .json for the JSON
// syntax) and is used in diagnostics.
func parseHCL(filename string, src []byte) ([]schema.RecordShape, error) {
	var hf hclFile
	if err := hclsimple.Decode(filename, src, nil, &hf); err != nil {
		return nil, fmt.Errorf("decoding HCL: %w", err)
	}

	shapes := make([]schema.RecordShape, 0, len(hf.Records))
	for _, r := range hf.Records {
		shape := schema.RecordShape{Name: r.Name}
		for _, f := range r.Fields {
			shape.Fields = append(shape.Fields, schema.FieldDescriptor{
				Name:         f.Name,
				DeclaredType: f.Type,
			})
		}
		shapes = append(shapes, shape)
	}

	return shapes, nil
}
