package models

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

Set GENERATE_COLUMN_REPORT=true and start the app. For every table the report lists
database columns that no field of the Go model maps to:

=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_slug

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&AdminUser{},
		&Technology{},
		&ProjectCategory{},
		&Project{},
		&ProjectImage{},
		&CodeSnippet{},
		&DemoInstance{},
		&DemoStat{},
		&ContactMessage{},
		&SiteSettings{},
		&VisitorAnalytics{},
		&ContentBlock{},
		&Testimonial{},
		&RotatingText{},
		&Experience{},
		&Education{},
		&Resume{},
	}
}

// Migrate creates or updates every table, join table and index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func GenerateModels(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(AllModels()...)

	fmt.Println("Migrating models...")
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
		Logger:                 newLogger,
	})
	if err := Migrate(migrateDB); err != nil {
		fmt.Printf("Error during models migration: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database migration completed successfully!")

	GenerateColumnMismatchReport(db)

	g.Execute()
	fmt.Println("Model generation complete!")
}

// ColumnMismatches maps each table to the database columns its model does not declare.
func ColumnMismatches(db *gorm.DB) (map[string][]string, error) {
	cache := &sync.Map{}
	result := make(map[string][]string)

	for _, model := range AllModels() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
		if !db.Migrator().HasTable(s.Table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(s.Table)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", s.Table, err)
		}

		declared := make(map[string]bool, len(s.DBNames))
		for _, name := range s.DBNames {
			declared[name] = true
		}

		var missing []string
		for _, col := range columnTypes {
			if !declared[col.Name()] {
				missing = append(missing, col.Name())
			}
		}
		sort.Strings(missing)
		result[s.Table] = missing
	}
	return result, nil
}

// GenerateColumnMismatchReport prints ColumnMismatches for every table
func GenerateColumnMismatchReport(db *gorm.DB) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	mismatches, err := ColumnMismatches(db)
	if err != nil {
		fmt.Printf("Error generating report: %v\n", err)
		return
	}

	tables := make([]string, 0, len(mismatches))
	for table := range mismatches {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		fmt.Printf("\n--- Table: %s ---\n", table)
		cols := mismatches[table]
		if len(cols) == 0 {
			fmt.Println("All columns are accounted for in the model.")
			continue
		}
		fmt.Printf("Found %d columns not accounted for in model:\n", len(cols))
		for _, col := range cols {
			fmt.Printf("  - %s\n", col)
		}
		total += len(cols)
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", total)
}
