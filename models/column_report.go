package models

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report

Compares the live tables with the Go models and lists database columns that no
model field maps to. Run the server with GENERATE_COLUMN_REPORT=true to print the
report and exit; it never alters the schema.

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - created_at
*/

// All returns every model served by the API, keyed by table name.
func All() map[string]interface{} {
	return map[string]interface{}{
		Project{}.TableName():     &Project{},
		DemoProject{}.TableName(): &DemoProject{},
	}
}

// TableReport lists the columns of one table that the matching model does not declare.
type TableReport struct {
	Table     string
	Exists    bool
	Unmatched []string
	ModelOnly []string
}

// ColumnMismatchReport inspects each model's table and reports unmapped columns, sorted by table name.
func ColumnMismatchReport(db *gorm.DB) ([]TableReport, error) {
	cache := &sync.Map{}
	tables := All()

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	reports := make([]TableReport, 0, len(names))
	for _, tableName := range names {
		model := tables[tableName]
		report := TableReport{Table: tableName}

		if !db.Migrator().HasTable(model) {
			reports = append(reports, report)
			continue
		}
		report.Exists = true

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("error parsing model for table %s: %w", tableName, err)
		}

		report.Unmatched = findColumnMismatches(dbColumns, s.DBNames)
		report.ModelOnly = findColumnMismatches(s.DBNames, dbColumns)
		reports = append(reports, report)
	}
	return reports, nil
}

// PrintColumnMismatchReport writes the report in the human-readable format shown above.
func PrintColumnMismatchReport(reports []TableReport) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	total := 0
	for _, r := range reports {
		fmt.Printf("\n--- Table: %s ---\n", r.Table)
		if !r.Exists {
			fmt.Println("Table does not exist")
			continue
		}
		if len(r.Unmatched) > 0 {
			fmt.Printf("Found %d columns not accounted for in model:\n", len(r.Unmatched))
			for _, col := range r.Unmatched {
				fmt.Printf("  - %s\n", col)
			}
			total += len(r.Unmatched)
		} else {
			fmt.Println("All columns are accounted for in the model.")
		}
		for _, col := range r.ModelOnly {
			fmt.Printf("  ! model field %s has no column\n", col)
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", total)
}

// findColumnMismatches returns the entries of have that are missing from want
func findColumnMismatches(have, want []string) []string {
	wantSet := make(map[string]bool, len(want))
	for _, field := range want {
		wantSet[field] = true
	}

	var mismatches []string
	for _, col := range have {
		if !wantSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
