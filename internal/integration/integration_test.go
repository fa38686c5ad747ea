package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"ultimate-quiz-service/internal/app"
	"ultimate-quiz-service/internal/domain"
	pgstore "ultimate-quiz-service/internal/infra/postgres"
	"ultimate-quiz-service/internal/infra/postgres/migrations"
	infraredis "ultimate-quiz-service/internal/infra/redis"
)

func TestQuizLifecycleEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	runMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	catalogStore := pgstore.NewCatalogStore(pool)
	if err := catalogStore.Save(ctx, sampleCatalog()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	catalog := app.NewCatalogService(catalogStore, nil)
	composer := app.NewComposerWithRand(rand.New(rand.NewSource(1)))
	sessions := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	board := app.NewLeaderboard(pgstore.NewLeaderboardStore(pool))
	service := app.NewQuizService(catalog, composer, sessions, board, nil)

	start, err := service.Start(ctx, app.StartRequest{
		Category:   "Science",
		Difficulty: domain.DifficultyMixed,
		Count:      2,
		PlayerName: "alice",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(start.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(start.Questions))
	}

	result, err := service.Submit(ctx, start.SessionID, []int{0, 0})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.TotalQuestions != 2 {
		t.Fatalf("expected 2 graded questions, got %d", result.TotalQuestions)
	}

	if _, err := service.Submit(ctx, start.SessionID, []int{0, 0}); !errors.Is(err, domain.ErrSessionAlreadyGraded) {
		t.Fatalf("expected ErrSessionAlreadyGraded, got %v", err)
	}

	scores := service.HighScores(ctx)
	if len(scores) != 1 || scores[0].PlayerName != "alice" {
		t.Fatalf("expected alice on the leaderboard, got %+v", scores)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func runMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		"Science": {
			Easy: []domain.Question{{
				Text:         "What gas do plants absorb?",
				Options:      []string{"Carbon dioxide", "Oxygen", "Nitrogen", "Helium"},
				CorrectIndex: 0,
				Explanation:  "Photosynthesis consumes carbon dioxide.",
			}},
			Medium: []domain.Question{{
				Text:         "What is the chemical symbol for gold?",
				Options:      []string{"Ag", "Fe", "Au", "Pb"},
				CorrectIndex: 2,
				Explanation:  "Au comes from the Latin aurum.",
			}},
			Hard: []domain.Question{},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
