package api

import (
	"kundli-service/internal/api/handlers"
	"kundli-service/internal/domain"
	"net/http"
	"strings"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Options struct {
	DefaultAyanamsa domain.Ayanamsa
	StrictStatus    bool
	// Comma separated; "*" allows any origin.
	CORSOrigins string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(svc handlers.ChartCaster, opts Options) http.Handler {
	kundli := &handlers.KundliHandler{
		Service:         svc,
		DefaultAyanamsa: opts.DefaultAyanamsa,
		StrictStatus:    opts.StrictStatus,
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/kundli", kundli.Cast).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins(splitOrigins(opts.CORSOrigins)),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		ghandlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return loggingMiddleware(cors(r))
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
