package checks

import (
	"fmt"
	"reflect"
	"strings"

	"geotree/core/database"
	"geotree/core/taxonomy"

	"gorm.io/gorm"
)

// SchemaModels are the models whose tables must exist with every tagged column.
var SchemaModels = []any{
	taxonomy.TermData{},
	taxonomy.TermFieldData{},
	taxonomy.Language{},
}

// SchemaReport is the result of a schema integrity check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema verifies the taxonomy tables against the GORM models.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range SchemaModels {
		val := reflect.TypeOf(model)
		tabler, ok := reflect.New(val).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", val.Name())
		}
		tableName := tabler.TableName()

		tblReport := TableReport{MissingColumns: []string{}, Status: "ok"}

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			tblReport.Status = "error"
			report.Tables[tableName] = tblReport
			continue
		}
		if len(actualCols) == 0 {
			// SQLite reports a missing table as an empty column list.
			report.Matched = false
			tblReport.Status = "missing"
			report.Tables[tableName] = tblReport
			continue
		}

		actual := make(map[string]struct{}, len(actualCols))
		for _, col := range actualCols {
			actual[col.Field] = struct{}{}
		}

		for i := 0; i < val.NumField(); i++ {
			colName := parseGormColumn(val.Field(i).Tag.Get("gorm"))
			if colName == "" {
				continue
			}
			if _, exists := actual[colName]; !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, colName)
				tblReport.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[tableName] = tblReport
	}

	return report, nil
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
