package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/MuhammadAhmed-503/study-buddy/internal/config"
	"github.com/MuhammadAhmed-503/study-buddy/internal/events"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
	"github.com/MuhammadAhmed-503/study-buddy/internal/platform/openai"
	"github.com/MuhammadAhmed-503/study-buddy/internal/platform/postgres"
	"github.com/MuhammadAhmed-503/study-buddy/internal/service"
	"github.com/MuhammadAhmed-503/study-buddy/internal/service/auth"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
	"github.com/MuhammadAhmed-503/study-buddy/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore  store.UserStore
	docStore   store.DocumentStore
	summaries  store.SummaryStore
	flashcards store.FlashcardStore
	quizzes    store.QuizStore
	chats      store.ChatStore
	reviews    store.ReviewStore
	taskStore  task.TaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	generator        generation.Generator
	documentService  service.DocumentService
	contentService   service.ContentService
	chatService      service.ChatService
	reviewService    service.ReviewService

	// Event system and task handling
	eventEmitter events.EventEmitter
	taskFactory  *task.DocumentGenerationTaskFactory
	taskRunner   *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized and the task runner started.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores. The task store reconstructs recovered tasks through the
	// factory, which is wired further down; the closure reads it at
	// execution time.
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	app.docStore = postgres.NewPostgresDocumentStore(db)
	app.summaries = postgres.NewPostgresSummaryStore(db)
	app.flashcards = postgres.NewPostgresFlashcardStore(db)
	app.quizzes = postgres.NewPostgresQuizStore(db)
	app.chats = postgres.NewPostgresChatStore(db)
	app.reviews = postgres.NewPostgresReviewStore(db)
	app.taskStore = postgres.NewPostgresTaskStore(db, app.reconstructTask)

	app.generator = setupGenerator(cfg, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.documentService, err = service.NewDocumentService(app.docStore, db, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create document service: %w", err)
	}
	app.contentService, err = service.NewContentService(
		app.summaries, app.flashcards, app.quizzes, app.reviews, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}
	app.chatService, err = service.NewChatService(app.chats, app.docStore, app.generator, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}
	app.reviewService, err = service.NewReviewService(app.reviews, app.flashcards, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	app.taskFactory = task.NewDocumentGenerationTaskFactory(
		app.documentService,
		app.contentService,
		app.generator,
		logger,
	)

	app.taskRunner = task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		WorkerCount:            cfg.Task.WorkerCount,
		QueueSize:              cfg.Task.QueueSize,
		StuckTaskAge:           time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
		StuckTaskCheckInterval: time.Duration(cfg.Task.StuckCheckIntervalMinutes) * time.Minute,
	}, logger)

	handler := task.NewTaskFactoryEventHandler(app.taskFactory, app.taskRunner, logger)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(handler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	// Start last so recovery can reconstruct tasks through the factory.
	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// setupGenerator builds the content generation stack: the remote OpenAI
// backend when configured, always backed by the local heuristic engine.
func setupGenerator(cfg *config.Config, logger *slog.Logger) generation.Generator {
	local := generation.NewLocalEngine()

	var remote generation.Generator
	if cfg.LLM.Configured() {
		client, err := openai.NewClient(openai.Options{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
		}, logger)
		if err != nil {
			logger.Warn("remote generator unavailable, using local generation only",
				"error", err)
		} else {
			remote = client
			logger.Info("remote generator initialized", "model", cfg.LLM.Model)
		}
	} else {
		logger.Info("no LLM API key configured, using local generation only")
	}

	return generation.NewFallbackGenerator(remote, local, logger)
}

// reconstructTask rebuilds the execution logic for tasks recovered from the
// database after a restart.
func (app *application) reconstructTask(taskType string, payload []byte) (func(ctx context.Context) error, error) {
	if taskType != task.TaskTypeDocumentGeneration {
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}

	var p events.DocumentGenerationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	return func(ctx context.Context) error {
		t, err := app.taskFactory.CreateTask(p.DocumentID, p.UserID)
		if err != nil {
			return err
		}
		return t.Execute(ctx)
	}, nil
}

// Run starts the HTTP server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
