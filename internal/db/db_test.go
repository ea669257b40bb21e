package db

import (
	"database/sql"
	"errors"
	"testing"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatal(err)
	}
	if err := InitSchema(db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitSchema(t *testing.T) {
	db := testDB(t)

	tables := map[string]bool{}
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('transcriptions','chat_messages')`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		tables[name] = true
	}

	for _, want := range []string{"transcriptions", "chat_messages"} {
		if !tables[want] {
			t.Errorf("table %q not created", want)
		}
	}
}

func TestInsertTranscription(t *testing.T) {
	db := testDB(t)

	created, err := InsertTranscription(db, "meeting.mp3", "Hello world")
	if err != nil {
		t.Fatal(err)
	}
	if created.ID <= 0 {
		t.Errorf("expected positive id, got %d", created.ID)
	}
	if created.Filename != "meeting.mp3" || created.Content != "Hello world" {
		t.Errorf("unexpected row: %+v", created)
	}
	if created.CreatedAt == 0 {
		t.Error("expected non-zero created_at")
	}

	got, err := GetTranscription(db, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "Hello world" {
		t.Errorf("expected 'Hello world', got %q", got.Content)
	}
}

func TestInsertTranscription_EmptyContentAllowed(t *testing.T) {
	db := testDB(t)

	created, err := InsertTranscription(db, "silence.wav", "")
	if err != nil {
		t.Fatal(err)
	}
	if created.Content != "" {
		t.Errorf("expected empty content, got %q", created.Content)
	}
}

func TestInsertTranscription_EmptyFilename(t *testing.T) {
	db := testDB(t)

	if _, err := InsertTranscription(db, "  ", "text"); err == nil {
		t.Fatal("expected error for empty filename")
	}
}

func TestGetTranscription_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := GetTranscription(db, 999)
	if !errors.Is(err, ErrTranscriptionNotFound) {
		t.Fatalf("expected ErrTranscriptionNotFound, got %v", err)
	}
}

func TestListTranscriptions(t *testing.T) {
	db := testDB(t)

	list, err := ListTranscriptions(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	if _, err := InsertTranscription(db, "a.mp3", "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := InsertTranscription(db, "b.mp3", "second"); err != nil {
		t.Fatal(err)
	}

	list, err = ListTranscriptions(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 transcriptions, got %d", len(list))
	}
	if list[0].Filename != "a.mp3" || list[1].Filename != "b.mp3" {
		t.Errorf("unexpected order: %+v", list)
	}
}
