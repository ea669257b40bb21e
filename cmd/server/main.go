package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stupiduntilnot/voxchat/internal/chat"
	"github.com/stupiduntilnot/voxchat/internal/config"
	ctxpkg "github.com/stupiduntilnot/voxchat/internal/context"
	"github.com/stupiduntilnot/voxchat/internal/db"
	"github.com/stupiduntilnot/voxchat/internal/httpapi"
	"github.com/stupiduntilnot/voxchat/internal/openai"
	"github.com/stupiduntilnot/voxchat/internal/transcribe"
)

func main() {
	// Missing .env is fine; variables may come from the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[server] %v", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	defer database.Close()

	if err := db.InitSchema(database); err != nil {
		log.Fatalf("[server] failed to init schema: %v", err)
	}

	// One provider client for the whole process, passed in explicitly.
	client := openai.NewClient(
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		cfg.ChatModel,
		cfg.TranscribeModel,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second,
	)

	chatService := chat.NewService(
		database,
		&ctxpkg.SQLiteProvider{DB: database},
		&ctxpkg.SimpleCompressor{MaxMessages: cfg.HistoryWindow},
		&ctxpkg.StandardAssembler{},
		client,
		cfg.HistoryWindow,
	)
	transcribeService := transcribe.NewService(database, client)

	router := httpapi.NewRouter(&httpapi.Handler{
		DB:          database,
		Chat:        chatService,
		Transcribe:  transcribeService,
		FrontendDir: cfg.FrontendDir,
	}, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf(
			"server listening addr=%s env=%s chat_model=%s transcribe_model=%s history_window=%d",
			cfg.Addr, cfg.Environment, cfg.ChatModel, cfg.TranscribeModel, cfg.HistoryWindow,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[server] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
}
