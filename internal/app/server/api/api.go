//GET    /health             # Проверка живости
//GET    /records            # Список записей, новые первыми
//GET    /records/search?q=  # Поиск по подстроке
//GET    /record/{id}        # Получить запись
//POST   /record             # Создать запись
//PATCH  /record/{id}        # Частично обновить запись
//DELETE /record/{id}        # Удалить запись

package api

import (
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"employees/internal/app/server/api/http/apierror"
	healthAPI "employees/internal/app/server/api/http/health"
	"employees/internal/app/server/api/http/middleware"
	"employees/internal/app/server/api/http/middleware/logger"
	recordAPI "employees/internal/app/server/api/http/record"
	"employees/internal/app/server/config"
	"employees/internal/domain/record"
)

type Handlers struct {
	Health *healthAPI.Handler
	Record *recordAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(repo record.Repository, cfg *config.Config, log *slog.Logger, opts ...record.Option) *chi.Mux {
	apierror.Install()

	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(middleware.Recoverer(log, cfg.IsProd()))
	mux.Use(middleware.SecurityHeaders)
	mux.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// неизвестный метод на известном пути тоже считается несуществующим маршрутом
	routeNotFound := writeError(apierror.New(http.StatusNotFound, apierror.KindRouteNotFound, "Route not found"))
	mux.NotFound(routeNotFound)
	mux.MethodNotAllowed(routeNotFound)

	humaConfig := huma.DefaultConfig("Employee Records API", "1.0.0")
	API := humachi.New(mux, humaConfig)

	h := handlers(repo, cfg, log, opts)
	h.Health.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	return mux
}

func handlers(repo record.Repository, cfg *config.Config, log *slog.Logger, opts []record.Option) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear(), record.Now)

	recordService := record.NewService(repo, log, opts...)
	middlewares.Add(loggerMW.Middleware())
	recordHandler := recordAPI.NewHandler(recordService, log, middlewares.GetAllAndClear(), cfg.IsProd())

	return &Handlers{
		Health: healthHandler,
		Record: recordHandler,
	}
}

func writeError(e *apierror.Error) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(e.Status)
		_ = json.NewEncoder(w).Encode(e)
	}
}
