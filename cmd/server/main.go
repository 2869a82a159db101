package main

import (
	"flag"
	"log"
	"net/http"

	"chartwise/internal/api"
	"chartwise/internal/config"
	"chartwise/internal/datasource"
	"chartwise/internal/logger"
	"chartwise/internal/state"
	"chartwise/internal/suggest"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logg.Sync()

	// Initialize Services
	store := state.NewStore(cfg.Store.Path, logg)
	suggester := suggest.NewSuggester()

	// Initialize Handler
	handler := api.NewHandler(logg, suggester, store, cfg.UploadDir)

	// Connect the configured database, if any. The server still serves
	// uploads and raw shape requests without one.
	if cfg.Database != nil {
		ds := &datasource.PostgresSource{}
		if err := ds.Connect(*cfg.Database); err != nil {
			logg.Warn("configured database unreachable", "host", cfg.Database.Host, "error", err)
		} else {
			handler.CurrentDB = ds
			logg.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)
		}
	}

	// Router Setup
	r := chi.NewRouter()

	// Middleware
	r.Use(api.RequestLogger(logg))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// CORS - Allow frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Chartwise Suggestion Server is Running"))
	})

	// Register all API Routes
	handler.RegisterRoutes(r)

	logg.Info("starting server", "addr", cfg.Server.Addr, "upload_dir", cfg.UploadDir)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		logg.Fatal("server failed to start", "error", err)
	}
}
