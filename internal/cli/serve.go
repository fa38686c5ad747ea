package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"ultimate-quiz-service/internal/app"
	"ultimate-quiz-service/internal/config"
	"ultimate-quiz-service/internal/infra/file"
	"ultimate-quiz-service/internal/infra/memory"
	pgstore "ultimate-quiz-service/internal/infra/postgres"
	"ultimate-quiz-service/internal/infra/rabbit"
	redisstore "ultimate-quiz-service/internal/infra/redis"
	"ultimate-quiz-service/internal/infra/sqlite"
	transport "ultimate-quiz-service/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var catalogStore app.CatalogStore
	var boardStore app.LeaderboardStore
	switch cfg.Storage.Backend {
	case "postgres":
		if cfg.Postgres.URL == "" {
			log.Printf("postgres backend selected but no url configured, falling back to file storage")
			catalogStore, boardStore = fileStores(cfg)
			break
		}
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		catalogStore = pgstore.NewCatalogStore(pool)
		boardStore = pgstore.NewLeaderboardStore(pool)
	case "sqlite":
		path := cfg.Storage.SQLitePath
		if path == "" {
			path = "quiz.db"
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		catalogStore = store
		boardStore = store.Leaderboard()
	case "memory":
		catalogStore = memory.NewCatalogStore(defaultCatalog())
		boardStore = memory.NewLeaderboardStore()
	default:
		catalogStore, boardStore = fileStores(cfg)
	}

	cacheTTL := config.TTLDuration(cfg.Storage.CacheTTL, 10*time.Minute)
	catalogSvc := app.NewCatalogService(memory.NewCatalogCache(catalogStore, cacheTTL), defaultCatalog())

	sessionTTL := config.TTLDuration(cfg.Session.TTL, 30*time.Minute)
	var sessions app.SessionStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = redisstore.NewSessionStore(client, sessionTTL)
	} else {
		sessions = memory.NewSessionStore(sessionTTL)
	}

	var events app.Publisher = app.NopPublisher{}
	if cfg.Rabbit.URL != "" {
		exchange := cfg.Rabbit.Exchange
		if exchange == "" {
			exchange = "quiz.events"
		}
		publisher, err := rabbit.NewPublisher(cfg.Rabbit.URL, exchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		events = publisher
	}

	board := app.NewLeaderboard(boardStore)
	quizSvc := app.NewQuizService(catalogSvc, app.NewComposer(), sessions, board, events)
	handler := transport.NewHandler(quizSvc, catalogSvc, board)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func fileStores(cfg config.Config) (app.CatalogStore, app.LeaderboardStore) {
	questionsPath := cfg.Storage.QuestionsFile
	if questionsPath == "" {
		questionsPath = "questions.json"
	}
	scoresPath := cfg.Storage.ScoresFile
	if scoresPath == "" {
		scoresPath = "high_scores.json"
	}
	return file.NewCatalogStore(questionsPath), file.NewLeaderboardStore(scoresPath)
}
