package context

import "database/sql"

// SQLiteProvider reads conversation history from a SQLite database.
type SQLiteProvider struct {
	DB *sql.DB
}

// GetHistory returns the most recent `limit` messages for the given
// transcription, ordered chronologically (oldest first). Messages written in
// the same second keep insertion order via the id tiebreak. Messages
// belonging to other transcriptions are never included.
func (p *SQLiteProvider) GetHistory(transcriptionID int64, limit int) ([]Message, error) {
	rows, err := p.DB.Query(
		`SELECT role, content FROM chat_messages
		  WHERE transcription_id = ?
		  ORDER BY created_at DESC, id DESC LIMIT ?`,
		transcriptionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Message
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			continue
		}
		results = append(results, Message{Role: role, Content: content})
	}

	// Reverse to chronological order.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}
