package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/calor-home/calor/internal/api/handlers"
	mw "github.com/calor-home/calor/internal/api/middleware"
	"github.com/calor-home/calor/internal/config"
	"github.com/calor-home/calor/internal/domain"
	"github.com/calor-home/calor/internal/hass"
	"github.com/calor-home/calor/internal/service"
	"github.com/calor-home/calor/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router and the cycle engine for lifecycle management.
type App struct {
	Router       *chi.Mux
	Engine       *service.Engine
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	roomStore := store.NewRoomStore(db)
	rateStore := store.NewRateObservationStore(db)

	// External collaborator: Home Assistant serves calendar, presence,
	// temperatures and radiator actuation.
	hassClient := hass.NewClient(config.HassURL(), config.HassToken(), config.CalendarEntity(), logger)

	// Services
	window := time.Duration(config.DerivativeWindowMinutes()) * time.Minute
	history := service.NewHistoryStore(window)
	roomSvc := service.NewRoomService(roomStore, history)
	presenceSvc := service.NewPresenceService(hassClient, config.PresenceTrackers(), logger)
	learnerSvc := service.NewLearnerService(rateStore, logger)
	planner := service.NewPreheatPlanner(config.SecurityFactor(), config.MinPreheatMinutes(), config.DefaultHeatingRate())
	overrides := service.NewOverrideRegistry()

	engine := service.NewEngine(service.EngineDeps{
		Rooms:       roomSvc,
		Presence:    presenceSvc,
		Learner:     learnerSvc,
		Planner:     planner,
		Overrides:   overrides,
		History:     history,
		Calendar:    hassClient,
		Thermometer: hassClient,
		Actuator:    hassClient,
	}, time.Duration(config.UpdateIntervalSeconds())*time.Second, config.OutdoorSensor(), logger)

	// Handlers
	roomHandler := handlers.NewRoomHandler(roomSvc, engine)
	overrideHandler := handlers.NewOverrideHandler(roomSvc, overrides, engine)
	stateHandler := handlers.NewStateHandler(roomSvc, learnerSvc, engine)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Engine:    engine,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health (no auth)
	r.Get("/health", healthHandler(db))

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.TokenAuth(config.APIToken()))

		r.Get("/state", stateHandler.GetHouse)
		r.Post("/refresh", stateHandler.Refresh)
		r.Delete("/overrides", overrideHandler.ClearAll)

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", roomHandler.List)
			r.Post("/", roomHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", roomHandler.GetByID)
				r.Put("/", roomHandler.Update)
				r.Delete("/", roomHandler.Delete)
				r.Get("/state", roomHandler.GetState)
				r.Get("/learning", stateHandler.GetLearning)
				r.Post("/override", overrideHandler.Set)
				r.Delete("/override", overrideHandler.Clear)
			})
		})
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.RoomStore            = (*store.RoomStore)(nil)
	_ domain.RateObservationStore = (*store.RateObservationStore)(nil)
	_ domain.CalendarSource       = (*hass.Client)(nil)
	_ domain.PresenceSource       = (*hass.Client)(nil)
	_ domain.TemperatureSource    = (*hass.Client)(nil)
	_ domain.Actuator             = (*hass.Client)(nil)
)
