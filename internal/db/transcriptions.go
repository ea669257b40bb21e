package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var ErrTranscriptionNotFound = errors.New("transcription not found")

// Transcription is a stored text result of converting an audio file to text.
// Rows are created once and never mutated.
type Transcription struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// InsertTranscription stores a new transcription and returns the full row.
// Content may be empty (a silent recording still transcribes), filename may not.
func InsertTranscription(database *sql.DB, filename, content string) (*Transcription, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}

	res, err := database.Exec(
		`INSERT INTO transcriptions (filename, content) VALUES (?, ?)`,
		filename, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transcription: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get transcription id: %w", err)
	}
	return GetTranscription(database, id)
}

// GetTranscription returns the transcription with the given id, or
// ErrTranscriptionNotFound if it does not exist.
func GetTranscription(database *sql.DB, id int64) (*Transcription, error) {
	row := database.QueryRow(
		`SELECT id, filename, content, created_at FROM transcriptions WHERE id = ?`,
		id,
	)
	var t Transcription
	if err := row.Scan(&t.ID, &t.Filename, &t.Content, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTranscriptionNotFound
		}
		return nil, fmt.Errorf("get transcription %d: %w", id, err)
	}
	return &t, nil
}

// ListTranscriptions returns all transcriptions in insertion order.
func ListTranscriptions(database *sql.DB) ([]Transcription, error) {
	rows, err := database.Query(
		`SELECT id, filename, content, created_at FROM transcriptions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list transcriptions: %w", err)
	}
	defer rows.Close()

	var results []Transcription
	for rows.Next() {
		var t Transcription
		if err := rows.Scan(&t.ID, &t.Filename, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
