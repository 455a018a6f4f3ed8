package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"employees/internal/app/server/api/http/apierror"
)

// Recoverer превращает панику хендлера в 500 в формате apierror.
func Recoverer(log *slog.Logger, prod bool) func(http.Handler) http.Handler {
	log = log.With(slog.String("component", "http_recoverer"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				log.Error("panic recovered",
					slog.Any("panic", rvr),
					slog.String("path", r.URL.Path),
					slog.String("request_id", chimw.GetReqID(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)

				body := apierror.FromDomain(fmt.Errorf("panic: %v", rvr), prod)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(body.Status)
				_ = json.NewEncoder(w).Encode(body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
