package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Message role constants.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var ErrInvalidRole = errors.New("invalid message role")

// ChatMessage is one turn in a conversation anchored to a transcription.
// Rows are created during a chat turn and never mutated or deleted.
type ChatMessage struct {
	ID              int64  `json:"id"`
	TranscriptionID int64  `json:"transcription_id"`
	Role            string `json:"role"`
	Content         string `json:"content"`
	CreatedAt       int64  `json:"created_at"`
}

// InsertChatMessage stores a single message as one atomic write and returns
// the full row. The caller is responsible for checking that the transcription
// exists; the store does not enforce the reference.
func InsertChatMessage(database *sql.DB, transcriptionID int64, role, content string) (*ChatMessage, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content cannot be empty")
	}

	res, err := database.Exec(
		`INSERT INTO chat_messages (transcription_id, role, content) VALUES (?, ?, ?)`,
		transcriptionID, role, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get chat message id: %w", err)
	}

	row := database.QueryRow(
		`SELECT id, transcription_id, role, content, created_at FROM chat_messages WHERE id = ?`,
		id,
	)
	var m ChatMessage
	if err := row.Scan(&m.ID, &m.TranscriptionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("read back chat message %d: %w", id, err)
	}
	return &m, nil
}

// ListChatMessages returns every message for a transcription in chronological
// order. Ties in created_at keep insertion order via the id tiebreak.
func ListChatMessages(database *sql.DB, transcriptionID int64) ([]ChatMessage, error) {
	rows, err := database.Query(
		`SELECT id, transcription_id, role, content, created_at
		   FROM chat_messages
		  WHERE transcription_id = ?
		  ORDER BY created_at ASC, id ASC`,
		transcriptionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var results []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.TranscriptionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// CountChatMessages returns the number of stored messages for a transcription.
func CountChatMessages(database *sql.DB, transcriptionID int64) (int, error) {
	var n int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM chat_messages WHERE transcription_id = ?`,
		transcriptionID,
	).Scan(&n)
	return n, err
}
