package tests

import (
	"errors"
	"testing"
)

func TestCreateAndGetRoundtrip(t *testing.T) {
	c := setupTestEnv(t).newClient()

	created, err := c.createRecord("organizer", record{
		"full_name":       "Anna Petrova",
		"phone":           "+7 900 111 22 33",
		"position":        "Lead organizer",
		"work_experience": 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	id := recordId(created)
	if id <= 0 {
		t.Fatalf("created record has no id: %v", created)
	}

	fetched, err := c.getRecord("organizer", id)
	if err != nil {
		t.Fatal(err)
	}
	if fetched["full_name"] != "Anna Petrova" || fetched["position"] != "Lead organizer" {
		t.Fatalf("wrong record: %v", fetched)
	}
	if fetched["work_experience"] != float64(5) {
		t.Fatalf("wrong work_experience: %v", fetched["work_experience"])
	}
}

func TestListRecords(t *testing.T) {
	c := setupTestEnv(t).newClient()

	for _, name := range []string{"Main Hall", "Open Stage"} {
		_, err := c.createRecord("venue", record{
			"name": name, "address": "Center St 1", "capacity": 300, "type": "concert hall",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	venues, err := c.listRecords("venue")
	if err != nil {
		t.Fatal(err)
	}
	if len(venues) != 2 {
		t.Fatalf("expected 2 venues, got %d", len(venues))
	}
}

func TestUpdateIsFullReplace(t *testing.T) {
	c := setupTestEnv(t).newClient()

	created, err := c.createRecord("client", record{
		"full_name": "Ivan Ivanov", "phone": "123", "email": "ivan@example.com", "age": 30,
	})
	if err != nil {
		t.Fatal(err)
	}
	id := recordId(created)

	// Fields omitted from the update payload must be cleared, not preserved.
	updated, err := c.updateRecord("client", id, record{
		"full_name": "Ivan Ivanov", "phone": "456", "email": "ivan@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated["phone"] != "456" {
		t.Fatalf("phone not updated: %v", updated)
	}

	fetched, err := c.getRecord("client", id)
	if err != nil {
		t.Fatal(err)
	}
	if fetched["age"] != nil {
		t.Fatalf("omitted age should be cleared, got %v", fetched["age"])
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	c := setupTestEnv(t).newClient()

	_, err := c.updateRecord("venue", 999, record{
		"name": "Ghost", "address": "Nowhere", "capacity": 10, "type": "club",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	c := setupTestEnv(t).newClient()

	created, err := c.createRecord("performance", record{
		"title": "Solo", "duration": 45, "genre": "Jazz", "number_of_artists": 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	id := recordId(created)

	if err := c.deleteRecord("performance", id); err != nil {
		t.Fatal(err)
	}

	if _, err := c.getRecord("performance", id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	if err := c.deleteRecord("performance", id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestOrganizerDeleteCascades(t *testing.T) {
	c := setupTestEnv(t).newClient()

	organizer, err := c.createRecord("organizer", record{
		"full_name": "Boss", "phone": "1", "position": "head",
	})
	if err != nil {
		t.Fatal(err)
	}
	organizerId := recordId(organizer)

	artist, err := c.createRecord("artist", record{
		"full_name": "Singer", "genre": "Pop", "organizer_id": organizerId,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.deleteRecord("organizer", organizerId); err != nil {
		t.Fatal(err)
	}

	if _, err := c.getRecord("artist", recordId(artist)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("artist should be removed with its organizer, got %v", err)
	}
}

func TestTicketKeepsSeatWhenClientRemoved(t *testing.T) {
	c := setupTestEnv(t).newClient()

	client, err := c.createRecord("client", record{
		"full_name": "Petr", "phone": "2", "email": "p@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	clientId := recordId(client)

	ticket, err := c.createRecord("ticket", record{
		"ticket_number": "A-001", "price": 1500, "client_id": clientId, "date": "2026-09-01",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.deleteRecord("client", clientId); err != nil {
		t.Fatal(err)
	}

	fetched, err := c.getRecord("ticket", recordId(ticket))
	if err != nil {
		t.Fatal(err)
	}
	if fetched["client_id"] != nil {
		t.Fatalf("ticket client_id should be null after client removal, got %v", fetched["client_id"])
	}
}

func TestDuplicateTicketNumberRejected(t *testing.T) {
	c := setupTestEnv(t).newClient()

	ticket := record{"ticket_number": "B-100", "price": 900, "date": "2026-09-01"}
	if _, err := c.createRecord("ticket", ticket); err != nil {
		t.Fatal(err)
	}
	if _, err := c.createRecord("ticket", ticket); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("duplicate ticket_number should be rejected, got %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	c := setupTestEnv(t).newClient()

	// Missing required field.
	_, err := c.createRecord("organizer", record{"phone": "1", "position": "head"})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("missing full_name should be rejected, got %v", err)
	}

	// Out of range value.
	_, err = c.createRecord("client", record{
		"full_name": "X", "phone": "1", "email": "x@example.com", "age": -1,
	})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("negative age should be rejected, got %v", err)
	}

	// Malformed date.
	_, err = c.createRecord("ticket", record{
		"ticket_number": "C-1", "price": 100, "date": "01.09.2026",
	})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("malformed date should be rejected, got %v", err)
	}
}

func TestUnknownRoutes(t *testing.T) {
	c := setupTestEnv(t).newClient()

	if err := c.Get("/api/no_such_table").Do(nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown table route should 404, got %v", err)
	}
	if err := c.Get("/api/artist/not-a-number").Do(nil); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("non numeric id should 400, got %v", err)
	}
}
