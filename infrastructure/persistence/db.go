// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"
	"strings"

	"github.com/wooldanji/console/internal/database"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(allModels()...); err != nil {
		return err
	}
	return postMigrate(db)
}

// postMigrate creates the cascading foreign keys on PostgreSQL. SQLite
// relies on the stores' transactional cascades instead, since its foreign
// key enforcement is per-connection.
func postMigrate(db database.Database) error {
	if !db.IsPostgres() {
		return nil
	}

	gdb := db.GORM()

	constraints := []struct {
		table      string
		name       string
		definition string
	}{
		{
			table:      "apartment_buildings",
			name:       "fk_apartment_buildings_apartment",
			definition: "FOREIGN KEY (apartment_id) REFERENCES apartments(id) ON DELETE CASCADE",
		},
		{
			table:      "building_lines",
			name:       "fk_building_lines_building",
			definition: "FOREIGN KEY (building_id) REFERENCES apartment_buildings(id) ON DELETE CASCADE",
		},
		{
			table:      "staff_apartments",
			name:       "fk_staff_apartments_staff",
			definition: "FOREIGN KEY (staff_id) REFERENCES staff(id) ON DELETE CASCADE",
		},
		{
			table:      "staff_apartments",
			name:       "fk_staff_apartments_apartment",
			definition: "FOREIGN KEY (apartment_id) REFERENCES apartments(id) ON DELETE CASCADE",
		},
	}

	for _, c := range constraints {
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s`, c.table, c.name,
		)).Error; err != nil {
			return fmt.Errorf("drop constraint %s.%s: %w", c.table, c.name, err)
		}
		if err := gdb.Exec(fmt.Sprintf(
			`ALTER TABLE %s ADD CONSTRAINT %s %s`, c.table, c.name, c.definition,
		)).Error; err != nil {
			return fmt.Errorf("create constraint %s.%s: %w", c.table, c.name, err)
		}
	}

	return nil
}

// allModels returns every GORM model that AutoMigrate manages.
func allModels() []any {
	return []any{
		&ApartmentModel{},
		&BuildingModel{},
		&LineModel{},
		&DeviceModel{},
		&StaffModel{},
		&StaffApartmentModel{},
		&ResidentModel{},
		&InquiryModel{},
		&HeaderModel{},
		&NoticeModel{},
		&DialogModel{},
	}
}

// ValidateSchema verifies every GORM model field has a corresponding column
// in the database. Returns an error listing any missing columns.
func ValidateSchema(db database.Database) error {
	gdb := db.GORM()
	migrator := gdb.Migrator()

	var missing []string
	for _, model := range allModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse model schema: %w", err)
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("get column types for %s: %w", stmt.Table, err)
		}

		actual := make(map[string]bool, len(columnTypes))
		for _, ct := range columnTypes {
			actual[ct.Name()] = true
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || field.DBName == "-" {
				continue
			}
			if !actual[field.DBName] {
				missing = append(missing, stmt.Table+"."+field.DBName)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema validation failed, missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
