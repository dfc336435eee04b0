package cmd

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ridoystarlord/tablegen/config"
	"github.com/ridoystarlord/tablegen/loader"
	"github.com/ridoystarlord/tablegen/schema"
	"github.com/ridoystarlord/tablegen/validator"
)

// loadRecords resolves the configuration and loads the declared records.
func loadRecords() (*config.Config, []schema.RecordShape, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	shapes, err := loader.Load(cfg.File, cfg.Models)
	if err != nil {
		return nil, nil, fmt.Errorf("loading records: %w", err)
	}
	if len(shapes) == 0 {
		source := cfg.File
		if cfg.Models != "" {
			source = cfg.Models
		}
		return nil, nil, fmt.Errorf("no records declared in %s", source)
	}

	return cfg, shapes, nil
}

// checkRecords refuses records that would produce unusable DDL.
func checkRecords(shapes []schema.RecordShape) error {
	result := validator.ValidateRecords(shapes, validator.Options{})
	if result.Valid {
		return nil
	}

	red := color.New(color.FgRed)
	for _, e := range result.Errors {
		red.Printf("   - %s\n", describeIssue(e))
	}
	return fmt.Errorf("%d invalid record declaration(s); run 'tablegen validate' for details", len(result.Errors))
}

func describeIssue(e validator.ValidationError) string {
	s := ""
	if e.Record != "" {
		s += fmt.Sprintf("[%s]", e.Record)
	}
	if e.Field != "" {
		s += fmt.Sprintf(".%s", e.Field)
	}
	if s != "" {
		s += ": "
	}
	return s + e.Message
}
