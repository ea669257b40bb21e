// Package chat implements the conversation turn against a transcription:
// resolve the transcription, load the bounded history, persist the user
// message, ask the model, persist its reply.
package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	ctxpkg "github.com/stupiduntilnot/voxchat/internal/context"
	"github.com/stupiduntilnot/voxchat/internal/db"
	"github.com/stupiduntilnot/voxchat/internal/model"
)

var (
	// ErrEmptyMessage is returned before any write when the user message is blank.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrProvider marks completion provider failures. When a caller sees it,
	// the user message of the failed turn has already been stored; retrying
	// will not lose it, but it will add another user row.
	ErrProvider = errors.New("completion provider failure")
)

const systemPromptPrefix = "You are an assistant helping with questions about a transcribed audio. Here is the transcription: "

// Service orchestrates one chat turn over injected collaborators.
type Service struct {
	db         *sql.DB
	history    ctxpkg.Provider
	compressor ctxpkg.Compressor
	assembler  ctxpkg.Assembler
	provider   model.Provider
	window     int
}

// NewService wires a chat service. window bounds how many prior messages are
// sent to the provider per turn.
func NewService(
	database *sql.DB,
	history ctxpkg.Provider,
	compressor ctxpkg.Compressor,
	assembler ctxpkg.Assembler,
	provider model.Provider,
	window int,
) *Service {
	return &Service{
		db:         database,
		history:    history,
		compressor: compressor,
		assembler:  assembler,
		provider:   provider,
		window:     window,
	}
}

// HandleTurn processes one user message against a transcription and returns
// the assistant's reply. Each step's write is durable before the next begins:
// the user message is stored before the provider call and is never rolled
// back, so a provider failure leaves exactly one new user row behind. The
// sequence as a whole is deliberately not transactional.
func (s *Service) HandleTurn(ctx context.Context, transcriptionID int64, userMessage string) (string, error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", ErrEmptyMessage
	}

	transcription, err := db.GetTranscription(s.db, transcriptionID)
	if err != nil {
		return "", err
	}

	history, err := s.history.GetHistory(transcriptionID, s.window)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	history = s.compressor.Compress(history)

	if _, err := db.InsertChatMessage(s.db, transcriptionID, db.RoleUser, userMessage); err != nil {
		return "", fmt.Errorf("store user message: %w", err)
	}

	messages := s.assembler.Assemble(systemPromptPrefix+transcription.Content, history, userMessage)

	resp, err := s.provider.ChatCompletion(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if _, err := db.InsertChatMessage(s.db, transcriptionID, db.RoleAssistant, resp.Content); err != nil {
		return "", fmt.Errorf("store assistant message: %w", err)
	}

	return resp.Content, nil
}

// History returns every stored message for a transcription in chronological
// order. An unknown transcription yields an empty history, not an error.
func (s *Service) History(transcriptionID int64) ([]db.ChatMessage, error) {
	return db.ListChatMessages(s.db, transcriptionID)
}
