package internal

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/config"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/db"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/gymsync"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/hevy"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/metrics"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/middleware"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/search"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/workouts"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/coocood/freecache"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	workoutsRepo *workouts.Repo
	syncEngine   *gymsync.Engine
	searchIndex  *search.Index

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config           *config.Config
	EmbeddingsAPIKey string
	RedisPassword    string
	VersionInfo      string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.DBHost,
		DBPort:         cfg.DBPort,
		DBName:         cfg.DBName,
		TracingEnabled: cfg.TracingEnabled,
	})
	if err != nil {
		return nil, err
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.DBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("formava", "sync", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(cfg.TracingEnabled, "formava-sync", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Minute,
	}

	// one cache for all remote clients, since a client lives only for a
	// single sync run
	megabyte := 1024 * 1024
	templateCache := freecache.NewCache(10 * megabyte)

	workoutsRepo := workouts.NewRepo(dbPool)
	embedder := search.NewOpenAIEmbedder(
		cfg.EmbeddingsBaseURL,
		params.EmbeddingsAPIKey,
		cfg.EmbeddingsModel,
		tracedHttpClient,
	)
	searchIndex := search.NewIndex(rdb, embedder)

	syncEngine := gymsync.NewEngine(gymsync.NewEngineParams{
		Store:    workoutsRepo,
		Resolver: workouts.NewResolver(workoutsRepo),
		Index:    searchIndex,
		Status:   gymsync.NewStatusRegistry(),
		Metrics:  metricsManager,
		NewRemoteClient: func(apiKey string) gymsync.RemoteAPI {
			return hevy.NewClient(cfg.HevyBaseURL, apiKey, tracedHttpClient, templateCache)
		},
		RecentWindow:   time.Duration(cfg.SyncRecentWindowDays) * 24 * time.Hour,
		RetryAttempts:  cfg.SyncRetryAttempts,
		RetryBackoff:   cfg.RetryBackoff(),
		DeletionPolicy: gymsync.DeletionPolicy(cfg.SyncDeletionPolicy),
	})

	return &Server{
		config:         cfg,
		dbPool:         dbPool,
		redisClient:    rdb,
		workoutsRepo:   workoutsRepo,
		syncEngine:     syncEngine,
		searchIndex:    searchIndex,
		versionInfo:    params.VersionInfo,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("formava-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	syncHandler := gymsync.NewHandler(s.syncEngine)
	r.Handle(
		"/sync",
		middleware.RateLimit(reqRateLimiter, "sync-trigger", s.config.SyncRateLimitPerMin)(
			http.HandlerFunc(syncHandler.HandleSync),
		),
	).Methods("POST", "OPTIONS").Name("trigger-sync")
	r.HandleFunc("/sync/status/{userId}", syncHandler.HandleStatus).Methods("GET", "OPTIONS").Name("sync-status")

	workoutsHandler := workouts.NewHandler(s.workoutsRepo)
	r.HandleFunc("/workouts/{userId}/history", workoutsHandler.HandleHistory).Methods("GET", "OPTIONS").Name("workout-history")

	searchHandler := search.NewHandler(s.searchIndex)
	r.HandleFunc("/search/exercises", searchHandler.HandleSearchExercises).Methods("GET", "OPTIONS").Name("search-exercises")
	r.HandleFunc("/search/workouts/{userId}", searchHandler.HandleSearchWorkoutHistory).Methods("GET", "OPTIONS").Name("search-workouts")

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("sync service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	s.otelShutdown()

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
