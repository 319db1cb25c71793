package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	mem "whoofsy-server/internal/adapters/storage/memory"
	pg "whoofsy-server/internal/adapters/storage/postgres"
	"whoofsy-server/internal/domain/coupons"
	"whoofsy-server/internal/domain/pets"
	"whoofsy-server/internal/domain/scans"
	"whoofsy-server/internal/domain/tags"
	"whoofsy-server/internal/domain/users"
	"whoofsy-server/internal/middleware"
	"whoofsy-server/internal/platform/logger"
	"whoofsy-server/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: nil => el resolver no despacha alertas (solo el descriptor).
	Alerter notify.Notifier

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CaptureClientMeta)

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		userRepo   users.Repository
		petRepo    pets.Repository
		tagRepo    tags.Repository
		scanRepo   scans.Repository
		couponRepo coupons.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		tagRepo = pg.NewTagsRepo(db)
		scanRepo = pg.NewScansRepo(db)
		couponRepo = pg.NewCouponsRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		tagRepo = mem.NewTagRepo()
		scanRepo = mem.NewScanRepo()
		couponRepo = mem.NewCouponRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)
	tagsSvc := tags.NewService(tagRepo)
	couponsSvc := coupons.NewService(couponRepo)
	scansSvc := scans.NewService(tagRepo, petRepo, userRepo, scanRepo, opts.Alerter, log)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	tags.RegisterRoutes(r, tagsSvc, petsSvc)
	scans.RegisterRoutes(r, scansSvc)
	coupons.RegisterRoutes(r, couponsSvc)

	r.Get("/", rootHandler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/test", diagnosticsHandler(db))
	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Whoofsy backend is live",
		})
	}
}

// diagnosticsHandler replica el /test del MVP: estado del backend, del
// store y la lista de colecciones/tablas visibles.
func diagnosticsHandler(db *sql.DB) http.HandlerFunc {
	memoryCollections := []string{"users", "pets", "tags", "scan_events", "coupons"}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"backend":     "running",
			"database":    "memory",
			"collections": memoryCollections,
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			resp["database"] = "postgres"
			resp["collections"] = []string{}

			if err := db.PingContext(ctx); err != nil {
				resp["database"] = "unavailable: " + truncate(err.Error(), 80)
			} else if names, err := pg.Collections(ctx, db); err == nil {
				resp["collections"] = names
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
