package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/Yordanos7/gym-app-V2-pro/internal/auth"
	"github.com/Yordanos7/gym-app-V2-pro/internal/config"
	"github.com/Yordanos7/gym-app-V2-pro/internal/db"
	"github.com/Yordanos7/gym-app-V2-pro/internal/geoip"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/dashboard"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/events"
	fitnessmcp "github.com/Yordanos7/gym-app-V2-pro/internal/gym/mcp"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/nutrition"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/profile"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/programs"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
	"github.com/Yordanos7/gym-app-V2-pro/internal/media"
	"github.com/Yordanos7/gym-app-V2-pro/internal/middleware"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/metrics"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

const ipInfoCacheSizeMegabytes = 8

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	mcpSecret         string // guards /mcp

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	location    *time.Location
	// nil when ipinfo lookups are disabled
	locator   *geoip.Locator
	signer    media.Signer
	publisher events.Publisher
	// drains activity_event into kafka, nil when kafka is disabled
	dispatcher *events.Dispatcher

	authService    *auth.Service
	sessionChecker *auth.SessionChecker

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	PostgresPassword        string
	RedisPassword           string
	IpInfoAPIKey            string
	McpSecret               string
	MediaAccessKeyID        string
	MediaSecretAccessKey    string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, dbPool); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Infoln("db schema migrated")
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	otelShutdown := func() {}
	if params.HoneycombTracingEnabled {
		otelShutdown, err = tracing.HoneycombSetup(ctx, "gym-app-backend")
		if err != nil {
			return nil, err
		}
	}

	location, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("load default timezone: %w", err)
	}

	var locator *geoip.Locator
	if cfg.IpInfoEnabled {
		tracedHttpClient := &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Second,
		}
		locator = geoip.NewLocator(tracedHttpClient, params.IpInfoAPIKey, ipInfoCacheSizeMegabytes, location)
	}

	var signer media.Signer = media.PassthroughSigner{}
	if cfg.MediaS3Enabled {
		signer, err = media.NewS3Signer(ctx, media.S3Params{
			Endpoint:        cfg.MediaS3Endpoint,
			Region:          cfg.MediaS3Region,
			Bucket:          cfg.MediaS3Bucket,
			AccessKeyID:     params.MediaAccessKeyID,
			SecretAccessKey: params.MediaSecretAccessKey,
			URLValidity:     cfg.MediaURLValidity.Duration,
		})
		if err != nil {
			return nil, fmt.Errorf("media signer: %w", err)
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.KafkaEnabled {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicPrefix)
		log.Infof("publishing activity events to kafka topic %s", events.ActivityTopic(cfg.KafkaTopicPrefix))
	}

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		location:    location,
		locator:     locator,
		signer:      signer,
		publisher:   publisher,
		versionInfo: params.VersionInfo,
		mcpSecret:   params.McpSecret,

		authService:    auth.NewAuthService(cfg.SessionTTL.Duration, rdb),
		sessionChecker: auth.NewSessionChecker(cfg.SessionTTL.Duration, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, healthResponse{Status: "ok", Version: s.versionInfo}, http.StatusOK)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleHealth).Methods("GET").Name("health")

	// auth
	authHandler := auth.NewHandler(
		auth.NewAccounts(auth.NewUsersRepo(s.dbPool), s.authService),
		s.config.SessionTTL.Duration,
	)
	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"auth",
		s.config.AuthRateLimitAllowedPerMin,
		s.metricsManager,
	))
	authRouter.HandleFunc("/sign-up", authHandler.HandleSignUp).Methods("POST", "OPTIONS").Name("sign-up")
	authRouter.HandleFunc("/sign-in", authHandler.HandleSignIn).Methods("POST", "OPTIONS").Name("sign-in")
	authRouter.HandleFunc("/sign-out", authHandler.HandleSignOut).Methods("POST", "OPTIONS").Name("sign-out")
	authRouter.HandleFunc("/session", authHandler.HandleSession).Methods("GET", "OPTIONS").Name("session")

	// activity events are recorded by every domain service
	activity := events.NewService(events.NewRepo(s.dbPool))
	eventsHandler := events.NewHandler(activity)
	r.HandleFunc("/api/progress/activity/page/{page}/size/{size}", eventsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-activity")

	// catalog
	catalogRepo := catalog.NewRepo(s.dbPool)
	catalogService := catalog.NewService(catalogRepo, s.signer)
	catalogHandler := catalog.NewHandler(catalogService)
	r.HandleFunc("/api/exercises", catalogHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/api/exercises/{id}", catalogHandler.HandleGetExercise).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/api/muscles", catalogHandler.HandleListMuscles).Methods("GET", "OPTIONS").Name("list-muscles")

	programsRepo := programs.NewRepo(s.dbPool)
	programsService := programs.NewService(programsRepo, activity)
	programsHandler := programs.NewHandler(programsService)
	r.HandleFunc("/api/programs", programsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-programs")
	r.HandleFunc("/api/programs/enroll", programsHandler.HandleEnroll).Methods("POST", "OPTIONS").Name("enroll-program")
	r.HandleFunc("/api/programs/quit", programsHandler.HandleQuit).Methods("POST", "OPTIONS").Name("quit-program")
	r.HandleFunc("/api/programs/{id}", programsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-program")

	// profile
	profileService := profile.NewService(profile.NewRepo(s.dbPool), activity)
	profileHandler := profile.NewHandler(profileService)
	r.HandleFunc("/api/profile", profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/api/profile", profileHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-profile")

	// workout sessions
	sessionsRepo := sessions.NewRepo(s.dbPool)
	sessionsService := sessions.NewService(sessionsRepo, activity, s.metricsManager)
	sessionsHandler := sessions.NewHandler(sessionsService)
	r.HandleFunc("/api/workout-session", sessionsHandler.HandleStart).Methods("POST", "OPTIONS").Name("start-session")
	r.HandleFunc("/api/workout-session/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/api/workout-session/{id}/summary", sessionsHandler.HandleSummary).Methods("GET", "OPTIONS").Name("session-summary")
	r.HandleFunc("/api/workout-session/{id}/exercise", sessionsHandler.HandleAttachExercise).Methods("POST", "OPTIONS").Name("attach-exercise")
	r.HandleFunc("/api/workout-session/{id}/set", sessionsHandler.HandleLogSet).Methods("POST", "OPTIONS").Name("log-set")
	r.HandleFunc("/api/workout-session/{id}/finish", sessionsHandler.HandleFinish).Methods("PUT", "OPTIONS").Name("finish-session")

	// nutrition
	nutritionHandler := nutrition.NewHandler(
		nutrition.NewService(nutrition.NewRepo(s.dbPool), activity, s.metricsManager),
	)
	r.HandleFunc("/api/nutrition", nutritionHandler.HandleList).Methods("GET", "OPTIONS").Name("list-meals")
	r.HandleFunc("/api/nutrition", nutritionHandler.HandleLog).Methods("POST", "OPTIONS").Name("log-meal")
	r.HandleFunc("/api/nutrition/{id}", nutritionHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-meal")

	// dashboard & progress
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(
		dashboard.NewRepo(s.dbPool),
		profileService,
		programsService,
		sessionsService,
		activity,
	))
	r.HandleFunc("/api/dashboard", dashboardHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/api/progress", dashboardHandler.HandleProgress).Methods("GET", "OPTIONS").Name("progress")
	r.HandleFunc("/api/progress/weight", dashboardHandler.HandleLogWeight).Methods("POST", "OPTIONS").Name("log-weight")

	if s.config.McpEnabled {
		mcpServer := fitnessmcp.NewServer(s.dbPool, catalogService, programsRepo, sessionsRepo)
		r.PathPrefix("/mcp").Handler(fitnessmcp.NewHTTPHandler(mcpServer, s.mcpSecret)).Name("mcp")
	}

	// all the rest - unhandled paths
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, "not found", http.StatusNotFound)
	}).Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessionChecker)

	// a nil *geoip.Locator must not reach the middleware as a non-nil interface
	timezone := middleware.Timezone(nil, s.location)
	if s.locator != nil {
		timezone = middleware.Timezone(s.locator, s.location)
	}

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(timezone)
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
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
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	go s.cleanSessions(ctx, time.Duration(s.config.SessionCleanupIntervalHours)*time.Hour)

	if s.config.KafkaEnabled {
		s.dispatcher = events.NewDispatcher(events.NewRepo(s.dbPool), s.publisher, s.metricsManager)
		go s.dispatcher.Start(ctx)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) cleanSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	if s.dispatcher != nil {
		// serve ctx is canceled by now, the loop exits after its current batch
		dispatcherDone := make(chan struct{})
		go func() {
			s.dispatcher.Wait()
			close(dispatcherDone)
		}()
		select {
		case <-dispatcherDone:
			log.Debugln("activity dispatcher stopped")
		case <-ctx.Done():
			log.Warnln("activity dispatcher did not stop in time")
		}
	}
	if s.publisher != nil {
		err = multierr.Append(err, s.publisher.Close())
	}
	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, e := range multierr.Errors(err) {
		log.Errorf("shutdown: %s", e)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Sub(1)
	}
}
