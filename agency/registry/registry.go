// Package registry holds the static mapping from table name to the metadata
// the generic CRUD routes need: a blank record factory, the declared column
// order, and typed query helpers. The mapping is cross-checked against the
// gorm schema at startup so an unknown filter column can never reach the
// database.
package registry

import (
	"encoding/json"
	"fmt"
	"sync"

	"agency_platform/agency/schema"

	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"
)

type TableConfig struct {
	Name    string
	Columns []string

	Blank func() schema.Record
	Find  func(db *gorm.DB) ([]schema.Record, error)
	Get   func(db *gorm.DB, id int64) (schema.Record, error)

	columnSet map[string]struct{}
}

func (c *TableConfig) HasColumn(column string) bool {
	_, ok := c.columnSet[column]
	return ok
}

type Registry map[string]*TableConfig

func newTable[T any](name string, columns ...string) *TableConfig {
	columnSet := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		columnSet[col] = struct{}{}
	}

	return &TableConfig{
		Name:      name,
		Columns:   columns,
		columnSet: columnSet,
		Blank: func() schema.Record {
			return any(new(T)).(schema.Record)
		},
		Find: func(db *gorm.DB) ([]schema.Record, error) {
			var rows []T
			if err := db.Find(&rows).Error; err != nil {
				return nil, err
			}
			records := make([]schema.Record, 0, len(rows))
			for i := range rows {
				records = append(records, any(&rows[i]).(schema.Record))
			}
			return records, nil
		},
		Get: func(db *gorm.DB, id int64) (schema.Record, error) {
			var row T
			if err := db.First(&row, "id = ?", id).Error; err != nil {
				return nil, err
			}
			return any(&row).(schema.Record), nil
		},
	}
}

var tables = Registry{
	"artist":          newTable[schema.Artist]("artist", "id", "full_name", "genre", "organizer_id", "phone_number", "work_experience"),
	"client":          newTable[schema.Client]("client", "id", "full_name", "phone", "email", "age", "organizer_id"),
	"concert_program": newTable[schema.ConcertProgram]("concert_program", "id", "title", "date", "venue_id", "duration", "address", "number_of_performances", "time"),
	"organizer":       newTable[schema.Organizer]("organizer", "id", "full_name", "phone", "position", "work_experience"),
	"performance":     newTable[schema.Performance]("performance", "id", "title", "duration", "genre", "number_of_artists"),
	"test":            newTable[schema.Test]("test", "id", "a", "b"),
	"ticket":          newTable[schema.Ticket]("ticket", "id", "ticket_number", "price", "client_id", "concert_program_id", "place", "address", "date", "time"),
	"venue":           newTable[schema.Venue]("venue", "id", "name", "address", "capacity", "type"),
}

func Tables() Registry {
	return tables
}

// Validate checks every declared column against the parsed gorm schema.
// Called once at startup, a mismatch here is a programming error.
func (r Registry) Validate() error {
	for name, cfg := range r {
		parsed, err := gormschema.Parse(cfg.Blank(), &sync.Map{}, gormschema.NamingStrategy{})
		if err != nil {
			return fmt.Errorf("error parsing schema for table '%v': %w", name, err)
		}

		known := make(map[string]struct{}, len(parsed.Fields))
		for _, field := range parsed.Fields {
			if field.DBName != "" {
				known[field.DBName] = struct{}{}
			}
		}

		for _, col := range cfg.Columns {
			if _, ok := known[col]; !ok {
				return fmt.Errorf("table '%v' declares column '%v' which does not exist in the schema", name, col)
			}
		}
	}
	return nil
}

// Row serializes a record into the column -> value form used by the query
// result cache and the CSV export.
func Row(rec schema.Record) (map[string]interface{}, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("error serializing %v record: %w", rec.TableName(), err)
	}
	var row map[string]interface{}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("error serializing %v record: %w", rec.TableName(), err)
	}
	return row, nil
}

func Rows(records []schema.Record) ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		row, err := Row(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
