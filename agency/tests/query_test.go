package tests

import (
	"errors"
	"testing"
)

func TestRawSelect(t *testing.T) {
	c := setupTestEnv(t).newClient()

	for _, name := range []string{"Arena", "Club"} {
		_, err := c.createRecord("venue", record{
			"name": name, "address": "Somewhere", "capacity": 100, "type": "hall",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	result, err := c.execQuery("select name, capacity from venue order by id")
	if err != nil {
		t.Fatal(err)
	}

	rows, ok := result["rows"].([]interface{})
	if !ok || len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", result)
	}
	first, ok := rows[0].(map[string]interface{})
	if !ok || first["name"] != "Arena" {
		t.Fatalf("wrong first row: %v", rows[0])
	}

	if c.lastQueryId == "" {
		t.Fatal("row returning query should yield a result token")
	}
}

func TestRawStatement(t *testing.T) {
	c := setupTestEnv(t).newClient()

	result, err := c.execQuery("insert into test (a, b) values (1, 'x')")
	if err != nil {
		t.Fatal(err)
	}
	if result["rowcount"] != float64(1) {
		t.Fatalf("expected rowcount 1, got %v", result)
	}

	result, err = c.execQuery("update test set a = 2")
	if err != nil {
		t.Fatal(err)
	}
	if result["rowcount"] != float64(1) {
		t.Fatalf("expected rowcount 1 after update, got %v", result)
	}

	result, err = c.execQuery("select a, b from test")
	if err != nil {
		t.Fatal(err)
	}
	rows := result["rows"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected the inserted row, got %v", rows)
	}
}

func TestMutationInvalidatesCachedResults(t *testing.T) {
	c := setupTestEnv(t).newClient()

	if _, err := c.execQuery("select 1 as one"); err != nil {
		t.Fatal(err)
	}

	if _, err := c.execQuery("insert into test (a) values (5)"); err != nil {
		t.Fatal(err)
	}

	// The cached select predates the mutation and must not be exportable.
	_, err := c.exportCsv(nil)
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("stale results should be dropped after a mutation, got %v", err)
	}
}

func TestInvalidSql(t *testing.T) {
	c := setupTestEnv(t).newClient()

	if _, err := c.execQuery("select * from no_such_table"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("select from missing table should 400, got %v", err)
	}
	if _, err := c.execQuery("delete from no_such_table"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("statement on missing table should 400, got %v", err)
	}
}
