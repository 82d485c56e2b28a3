// Package server exposes one invoice session over HTTP.
package server

import (
	"net/http"
	"sync"
	"time"

	_ "github.com/invoice-builder/docs" // swagger spec
	"github.com/invoice-builder/pkg/export"
	"github.com/invoice-builder/pkg/invoice"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	CurrencySymbol string
	ShowTax        bool
	AllowedOrigins []string
}

// Server owns a single session. The mutex makes every action run to
// completion before the next one is accepted.
type Server struct {
	mu       sync.Mutex
	session  *invoice.Session
	exporter *export.Exporter
	opts     Options
	metrics  *metrics
	registry *prometheus.Registry
}

func New(session *invoice.Session, exporter *export.Exporter, opts Options) *Server {
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = invoice.DefaultCurrencySymbol
	}
	reg := prometheus.NewRegistry()
	return &Server{
		session:  session,
		exporter: exporter,
		opts:     opts,
		metrics:  newMetrics(reg),
		registry: reg,
	}
}

// Router returns the routes without CORS handling.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/session", s.getSession).Methods("GET")
	api := r.PathPrefix("/api/session").Subrouter()
	api.HandleFunc("/header", s.updateHeader).Methods("PUT")
	api.HandleFunc("/items", s.addItem).Methods("POST")
	api.HandleFunc("/items/{id}", s.editItem).Methods("PATCH")
	api.HandleFunc("/items/{id}", s.deleteItem).Methods("DELETE")
	api.HandleFunc("/review", s.review).Methods("POST")
	api.HandleFunc("/close", s.closeReview).Methods("POST")
	api.HandleFunc("/next", s.nextInvoice).Methods("POST")
	api.HandleFunc("/preview", s.showPreview).Methods("GET")
	api.HandleFunc("/export", s.downloadPDF).Methods("GET")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	r.Use(logRequests)
	return r
}

// Handler returns the router behind CORS.
func (s *Server) Handler() http.Handler {
	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	})
	return c.Handler(s.Router())
}

// ListenAndServe serves until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
