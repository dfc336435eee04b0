package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/ridoystarlord/tablegen/database"
)

type ExistingTable struct {
	TableName string           `json:"tableName"`
	Columns   []ExistingColumn `json:"columns"`
}

type ExistingColumn struct {
	ColumnName   string `json:"columnName"`
	DataType     string `json:"dataType"`
	IsPrimaryKey bool   `json:"isPrimaryKey"`
}

// ListTables returns the user tables of a SQLite database, sorted by name.
func ListTables(ctx context.Context, db database.Querier) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
	SELECT name
	FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer rows.Close()

	var tableNames []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tableNames = append(tableNames, tableName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table rows: %w", err)
	}

	return tableNames, nil
}

// TableExists reports whether tableName exists.
func TableExists(ctx context.Context, db database.Querier, tableName string) (bool, error) {
	tables, err := ListTables(ctx, db)
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if strings.EqualFold(t, tableName) {
			return true, nil
		}
	}
	return false, nil
}

// IntrospectDatabase returns every user table with its columns.
func IntrospectDatabase(ctx context.Context, db database.Querier) ([]ExistingTable, error) {
	tableNames, err := ListTables(ctx, db)
	if err != nil {
		return nil, err
	}

	tables := make([]ExistingTable, 0, len(tableNames))
	for _, tableName := range tableNames {
		columns, err := getColumns(ctx, db, tableName)
		if err != nil {
			return nil, fmt.Errorf("getting columns for table %s: %w", tableName, err)
		}
		tables = append(tables, ExistingTable{
			TableName: tableName,
			Columns:   columns,
		})
	}

	return tables, nil
}

func getColumns(ctx context.Context, db database.Querier, tableName string) ([]ExistingColumn, error) {
	// PRAGMA does not take bind parameters; the name comes from sqlite_master.
	query := fmt.Sprintf(`PRAGMA table_info("%s");`, strings.ReplaceAll(tableName, `"`, `""`))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var columns []ExistingColumn
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		columns = append(columns, ExistingColumn{
			ColumnName:   name,
			DataType:     strings.ToUpper(typ),
			IsPrimaryKey: pk > 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}

	return columns, nil
}
