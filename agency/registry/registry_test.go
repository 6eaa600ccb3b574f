package registry

import (
	"testing"

	"agency_platform/agency/schema"
)

func TestRegistryMatchesSchema(t *testing.T) {
	if err := Tables().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestExpectedTables(t *testing.T) {
	expected := []string{"artist", "client", "concert_program", "organizer", "performance", "test", "ticket", "venue"}

	tables := Tables()
	if len(tables) != len(expected) {
		t.Fatalf("expected %d tables, found %d", len(expected), len(tables))
	}
	for _, name := range expected {
		cfg, ok := tables[name]
		if !ok {
			t.Fatalf("missing table %v", name)
		}
		if cfg.Columns[0] != "id" {
			t.Fatalf("table %v must lead with the id column", name)
		}
		if !cfg.HasColumn("id") || cfg.HasColumn("no_such_column") {
			t.Fatalf("column lookup broken for table %v", name)
		}
	}
}

func TestRowSerialization(t *testing.T) {
	experience := 3
	artist := &schema.Artist{Id: 7, FullName: "Miles", Genre: "Jazz", WorkExperience: &experience}

	row, err := Row(artist)
	if err != nil {
		t.Fatal(err)
	}

	if row["id"] != float64(7) || row["full_name"] != "Miles" || row["genre"] != "Jazz" {
		t.Fatalf("wrong row values: %v", row)
	}
	if row["organizer_id"] != nil || row["phone_number"] != nil {
		t.Fatalf("unset nullable fields should serialize as null: %v", row)
	}
	if row["work_experience"] != float64(3) {
		t.Fatalf("wrong work_experience: %v", row)
	}

	// Every declared column must be present in the serialized form.
	for _, col := range Tables()["artist"].Columns {
		if _, ok := row[col]; !ok {
			t.Fatalf("declared column %v missing from serialized row", col)
		}
	}
}

func TestBlankRecords(t *testing.T) {
	for name, cfg := range Tables() {
		record := cfg.Blank()
		if record.TableName() != name {
			t.Fatalf("blank record for %v reports table %v", name, record.TableName())
		}
		record.SetPrimaryKey(42)
		if record.PrimaryKey() != 42 {
			t.Fatalf("primary key roundtrip broken for %v", name)
		}
	}
}
