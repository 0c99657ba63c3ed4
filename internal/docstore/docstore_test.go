package docstore

import (
	"errors"
	"os"
	"testing"

	"github.com/EscoLessgo/word-craft-arena/internal/database"
)

func newTestStore(t *testing.T, dbPath string) *Store {
	t.Helper()

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return New(db)
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path         string
		wantDocument bool
		valid        bool
	}{
		{"users/u1/games/2024-01-05", true, true},
		{"users/u1", true, true},
		{"users/u1/games", true, false},
		{"users", true, false},
		{"users/u1/games", false, true},
		{"users/u1", false, false},
		{"", true, false},
		{"users//games/2024-01-05", true, false},
		{"/users/u1", true, false},
	}

	for _, tt := range tests {
		err := validatePath(tt.path, tt.wantDocument)
		if tt.valid && err != nil {
			t.Errorf("validatePath(%q, %v) = %v, want nil", tt.path, tt.wantDocument, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidPath) {
			t.Errorf("validatePath(%q, %v) = %v, want ErrInvalidPath", tt.path, tt.wantDocument, err)
		}
	}
}

func TestDocumentLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestStore(t, "test_docstore.db")
	path := "users/u1/games/2024-01-05"

	// Missing documents read back as nil without error
	doc, err := store.GetDocument(path)
	if err != nil {
		t.Fatalf("GetDocument on missing path: %v", err)
	}
	if doc != nil {
		t.Fatalf("Expected nil for missing document, got %v", doc)
	}

	if err := store.SetDocument(path, Document{"score": 120, "rank": "Solid"}, false); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}

	doc, err = store.GetDocument(path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc["rank"] != "Solid" {
		t.Errorf("rank = %v, want Solid", doc["rank"])
	}
	// JSON numbers decode as float64
	if doc["score"] != float64(120) {
		t.Errorf("score = %v, want 120", doc["score"])
	}

	// Replace without merge drops unnamed fields
	if err := store.SetDocument(path, Document{"score": 140}, false); err != nil {
		t.Fatalf("SetDocument replace: %v", err)
	}
	doc, _ = store.GetDocument(path)
	if _, ok := doc["rank"]; ok {
		t.Errorf("replace should have dropped rank, got %v", doc)
	}

	if err := store.DeleteDocument(path); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	doc, _ = store.GetDocument(path)
	if doc != nil {
		t.Errorf("Expected nil after delete, got %v", doc)
	}

	// Deleting again is a no-op
	if err := store.DeleteDocument(path); err != nil {
		t.Errorf("Deleting missing document: %v", err)
	}
}

func TestSetDocumentMerge(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestStore(t, "test_docstore_merge.db")
	path := "users/u1/stats/summary"

	if err := store.SetDocument(path, Document{"current_streak": 3, "games_played": 10}, false); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}

	// Merge updates named fields and leaves the rest untouched
	if err := store.SetDocument(path, Document{"current_streak": 4}, true); err != nil {
		t.Fatalf("SetDocument merge: %v", err)
	}

	doc, err := store.GetDocument(path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc["current_streak"] != float64(4) {
		t.Errorf("current_streak = %v, want 4", doc["current_streak"])
	}
	if doc["games_played"] != float64(10) {
		t.Errorf("games_played = %v, want 10 (merge must not drop it)", doc["games_played"])
	}

	// Merge against a missing document behaves like a plain write
	if err := store.SetDocument("users/u2/stats/summary", Document{"games_played": 1}, true); err != nil {
		t.Fatalf("SetDocument merge on missing: %v", err)
	}
	doc, _ = store.GetDocument("users/u2/stats/summary")
	if doc["games_played"] != float64(1) {
		t.Errorf("games_played = %v, want 1", doc["games_played"])
	}
}

func TestQueryCollection(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestStore(t, "test_docstore_query.db")

	games := map[string]Document{
		"users/u1/games/2024-01-01": {"game_date": "2024-01-01", "score": 50},
		"users/u1/games/2024-01-05": {"game_date": "2024-01-05", "score": 200},
		"users/u1/games/2024-01-03": {"game_date": "2024-01-03", "score": 50},
	}
	for path, doc := range games {
		if err := store.SetDocument(path, doc, false); err != nil {
			t.Fatalf("SetDocument %s: %v", path, err)
		}
	}
	// A different user's games must not leak into the collection
	if err := store.SetDocument("users/u2/games/2024-01-04", Document{"game_date": "2024-01-04"}, false); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}

	docs, err := store.QueryCollection("users/u1/games", Query{OrderBy: "game_date", Descending: true})
	if err != nil {
		t.Fatalf("QueryCollection: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(docs))
	}
	wantOrder := []string{"2024-01-05", "2024-01-03", "2024-01-01"}
	for i, want := range wantOrder {
		if docs[i]["game_date"] != want {
			t.Errorf("position %d: got %v, want %s", i, docs[i]["game_date"], want)
		}
	}

	docs, err = store.QueryCollection("users/u1/games", Query{
		Filters: []Filter{{Field: "score", Value: 50}},
	})
	if err != nil {
		t.Fatalf("QueryCollection with filter: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("Expected 2 documents with score 50, got %d", len(docs))
	}

	docs, err = store.QueryCollection("users/u1/games", Query{OrderBy: "game_date", Limit: 2})
	if err != nil {
		t.Fatalf("QueryCollection with limit: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("Expected limit of 2, got %d", len(docs))
	}

	if _, err := store.QueryCollection("users/u1/games/2024-01-01", Query{}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Querying a document path should fail, got %v", err)
	}
}

func TestRunTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	store := newTestStore(t, "test_docstore_tx.db")
	gamePath := "users/u1/games/2024-01-05"
	statsPath := "users/u1/stats/summary"

	err := store.RunTransaction(func(tx *Tx) error {
		if err := tx.SetDocument(gamePath, Document{"score": 120}, false); err != nil {
			return err
		}
		return tx.SetDocument(statsPath, Document{"games_played": 1}, true)
	})
	if err != nil {
		t.Fatalf("RunTransaction: %v", err)
	}

	if doc, _ := store.GetDocument(gamePath); doc == nil {
		t.Error("game document missing after commit")
	}
	if doc, _ := store.GetDocument(statsPath); doc == nil {
		t.Error("stats document missing after commit")
	}

	// A failing callback rolls back every write
	failure := errors.New("boom")
	err = store.RunTransaction(func(tx *Tx) error {
		if err := tx.SetDocument("users/u1/games/2024-01-06", Document{"score": 1}, false); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("Expected callback error, got %v", err)
	}
	if doc, _ := store.GetDocument("users/u1/games/2024-01-06"); doc != nil {
		t.Errorf("write should have rolled back, got %v", doc)
	}
}
