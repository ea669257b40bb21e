// Package transcribe turns uploaded audio into stored transcriptions.
package transcribe

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/stupiduntilnot/voxchat/internal/db"
)

// Transcriber converts an audio stream to text.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Service transcribes audio and persists the result.
type Service struct {
	db          *sql.DB
	transcriber Transcriber
}

func NewService(database *sql.DB, transcriber Transcriber) *Service {
	return &Service{db: database, transcriber: transcriber}
}

// FromUpload transcribes an uploaded file and stores the result.
func (s *Service) FromUpload(ctx context.Context, audio io.Reader, filename string) (*db.Transcription, error) {
	text, err := s.transcriber.TranscribeAudio(ctx, audio, filename)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", filename, err)
	}
	return db.InsertTranscription(s.db, filename, text)
}

// FromData transcribes raw audio bytes, as sent by the real-time recording
// endpoint, and stores the result only when save is set. The stored row uses
// a synthetic filename derived from the extension.
func (s *Service) FromData(ctx context.Context, data []byte, fileExtension string, save bool) (string, *db.Transcription, error) {
	if fileExtension == "" {
		fileExtension = ".webm"
	}
	filename := "real-time-recording" + fileExtension

	text, err := s.transcriber.TranscribeAudio(ctx, bytes.NewReader(data), filename)
	if err != nil {
		return "", nil, fmt.Errorf("transcribe audio data: %w", err)
	}
	if !save {
		return text, nil, nil
	}

	transcription, err := db.InsertTranscription(s.db, filename, text)
	if err != nil {
		return "", nil, err
	}
	return text, transcription, nil
}
