package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/tablegen/schema"
)

type yamlFile struct {
	Records []yamlRecord `yaml:"records"`
}

type yamlRecord struct {
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadRecordsFromYAML reads record shapes from a YAML file of the form:
//
//	records:
//	  - name: User
//	    fields:
//	      - {name: id, type: i32}
//	      - {name: name, type: String}
func LoadRecordsFromYAML(filename string) ([]schema.RecordShape, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) ([]schema.RecordShape, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	shapes := make([]schema.RecordShape, 0, len(yf.Records))
	for _, r := range yf.Records {
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
