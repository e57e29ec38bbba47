//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/config"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9010
	serverHost = "localhost"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Suite struct {
	DB             *sql.DB
	dockerPool     *dockertest.Pool
	server         *internal.Server
	hevyStub       *httptest.Server
	embeddingsStub *httptest.Server
	teardown       []func()
}

// newSuite spins up redis and postgres in docker, stubs the two remote APIs
// with httptest servers, and starts the full service against them.
func newSuite(ctx context.Context, hevyHandler http.Handler) (_ *Suite) {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := suite.redisSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup redis: %s", err.Error())
	}

	pgPort, err := suite.postgresSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	suite.hevyStub = httptest.NewServer(hevyHandler)
	suite.embeddingsStub = httptest.NewServer(http.HandlerFunc(serveEmbeddings))
	suite.teardown = append(suite.teardown, suite.hevyStub.Close, suite.embeddingsStub.Close)

	cfg := getTestConfig(redisPort, pgPort, suite.hevyStub.URL, suite.embeddingsStub.URL)
	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:           cfg,
			EmbeddingsAPIKey: "test",
			RedisPassword:    "",
			VersionInfo:      "test-version-info",
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(cfg.Host, cfg.Port)

	return suite
}

func (s *Suite) cleanup() {
	if s.DB != nil {
		s.DB.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
	if s.server != nil {
		s.server.GracefulShutdown()
	}
}

// serveEmbeddings is a deterministic stand-in for the embeddings API: every
// text gets the same unit vector, which is enough for index round trips.
func serveEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input []string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	type dataItem struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	}
	data := make([]dataItem, 0, len(req.Input))
	for i := range req.Input {
		data = append(data, dataItem{Index: i, Embedding: []float32{1, 0}})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": data}); err != nil {
		log.Printf("failed to encode embeddings response: %s", err)
	}
}

func getTestConfig(redisPort, postgresPort, hevyBaseURL, embeddingsBaseURL string) *config.Config {
	redisPortInt, err := strconv.Atoi(redisPort)
	if err != nil {
		log.Fatalf("invalid redis port %q: %s", redisPort, err)
	}
	return &config.Config{
		Host:                  serverHost,
		Port:                  serverPort,
		PrometheusMetricsHost: serverHost,
		PrometheusMetricsPort: "9191",
		DBHost:                "localhost",
		DBPort:                postgresPort,
		DBName:                "formava_sync",
		RedisHost:             "localhost",
		RedisPort:             redisPortInt,
		HevyBaseURL:           hevyBaseURL,
		EmbeddingsBaseURL:     embeddingsBaseURL,
		EmbeddingsModel:       "text-embedding-3-small",
		SyncRecentWindowDays:  30,
		SyncRetryAttempts:     1,
		SyncDeletionPolicy:    "soft_delete",
		SyncRateLimitPerMin:   100,
	}
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		redisResource.Close()
	})

	redisPort := redisResource.GetPort("6379/tcp")
	return redisPort, nil
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "12",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=formava_sync",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/formava_sync?sslmode=disable", pgPort)

	var db *sql.DB
	if err := s.dockerPool.Retry(func() error {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return fmt.Errorf("open db conn: %s", err)
		}
		return db.Ping()
	}); err != nil {
		return "", fmt.Errorf("connect to postgres: %s", err)
	}
	s.DB = db

	if _, err := db.Exec(initSQL); err != nil {
		return "", fmt.Errorf("run init script: %s", err)
	}

	return pgPort, nil
}

const initSQL = `
CREATE TABLE public.workout
(
    id               VARCHAR PRIMARY KEY,
    user_id          VARCHAR NOT NULL,
    remote_id        VARCHAR NOT NULL,
    title            VARCHAR NOT NULL,
    description      VARCHAR,
    start_time       VARCHAR NOT NULL,
    end_time         VARCHAR NOT NULL,
    exercises        JSONB   NOT NULL DEFAULT '[]',
    exercise_count   INTEGER NOT NULL DEFAULT 0,
    duration_minutes INTEGER NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at       TIMESTAMPTZ,
    CONSTRAINT uq_workout_user_remote UNIQUE (user_id, remote_id)
);

ALTER TABLE public.workout OWNER TO postgres;
CREATE INDEX ix_workout_user_start_time ON public.workout (user_id, start_time);

CREATE TABLE public.user_sync_state
(
    user_id        VARCHAR PRIMARY KEY,
    last_synced_at TIMESTAMPTZ NOT NULL
);

ALTER TABLE public.user_sync_state OWNER TO postgres;

CREATE TABLE public.exercise_template
(
    id                      VARCHAR PRIMARY KEY,
    title                   VARCHAR NOT NULL,
    primary_muscle_group    VARCHAR NOT NULL,
    secondary_muscle_groups JSONB   NOT NULL DEFAULT '[]',
    equipment               VARCHAR,
    is_custom               BOOLEAN NOT NULL DEFAULT FALSE,
    user_id                 VARCHAR,
    updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);

ALTER TABLE public.exercise_template OWNER TO postgres;
`
