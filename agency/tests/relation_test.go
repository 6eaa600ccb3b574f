package tests

import (
	"errors"
	"fmt"
	"testing"
)

func makeArtistAndPerformance(t *testing.T, c *client) (int64, int64) {
	artist, err := c.createRecord("artist", record{"full_name": "Duo Member", "genre": "Folk"})
	if err != nil {
		t.Fatal(err)
	}
	performance, err := c.createRecord("performance", record{
		"title": "Evening set", "duration": 60, "genre": "Folk", "number_of_artists": 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	return recordId(artist), recordId(performance)
}

func TestLinkAndUnlink(t *testing.T) {
	c := setupTestEnv(t).newClient()
	artistId, performanceId := makeArtistAndPerformance(t, c)

	if err := c.link("artist", artistId, "performance", performanceId); err != nil {
		t.Fatal(err)
	}

	if err := c.unlink("artist", artistId, "performance", performanceId); err != nil {
		t.Fatal(err)
	}
}

func TestDuplicateLinkIsConflict(t *testing.T) {
	c := setupTestEnv(t).newClient()
	artistId, performanceId := makeArtistAndPerformance(t, c)

	if err := c.link("artist", artistId, "performance", performanceId); err != nil {
		t.Fatal(err)
	}
	err := c.link("artist", artistId, "performance", performanceId)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate link should conflict, got %v", err)
	}
}

func TestUnlinkAbsentRelation(t *testing.T) {
	c := setupTestEnv(t).newClient()
	artistId, performanceId := makeArtistAndPerformance(t, c)

	err := c.unlink("artist", artistId, "performance", performanceId)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unlinking an absent relation should 404, got %v", err)
	}
}

func TestLinkMissingEndpoint(t *testing.T) {
	c := setupTestEnv(t).newClient()
	artistId, _ := makeArtistAndPerformance(t, c)

	err := c.link("artist", artistId, "performance", 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("linking to a missing performance should 404, got %v", err)
	}
	err = c.link("artist", 999, "performance", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("linking from a missing artist should 404, got %v", err)
	}
}

func TestOrganizerAndProgramPairs(t *testing.T) {
	c := setupTestEnv(t).newClient()

	organizer, err := c.createRecord("organizer", record{"full_name": "Olga", "phone": "7", "position": "manager"})
	if err != nil {
		t.Fatal(err)
	}
	program, err := c.createRecord("concert_program", record{
		"title": "Autumn gala", "date": "2026-10-10", "duration": 120, "number_of_performances": 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	performance, err := c.createRecord("performance", record{
		"title": "Opening", "duration": 20, "genre": "Classical", "number_of_artists": 12,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.link("organizer", recordId(organizer), "concert_program", recordId(program)); err != nil {
		t.Fatal(err)
	}
	if err := c.link("performance", recordId(performance), "concert_program", recordId(program)); err != nil {
		t.Fatal(err)
	}

	// Pairs not declared as relations have no route at all.
	endpoint := fmt.Sprintf("/api/client/%d/venue/%d/add", 1, 1)
	if err := c.Post(endpoint).Do(nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("undeclared relation pair should 404, got %v", err)
	}
}
