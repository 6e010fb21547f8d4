package control

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minhph/orderflow/internal/observe/metrics"
	"github.com/minhph/orderflow/internal/orchestrate"
)

// Server provides the HTTP surface: order processing, health, metrics.
type Server struct {
	svc    *Service
	server *http.Server
}

// NewServer creates the HTTP server.
func NewServer(svc *Service, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		svc: svc,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/orders/", s.handleProcess)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleProcess serves POST /orders/{id}/process.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/orders/")
	orderID, ok := strings.CutSuffix(path, "/process")
	if !ok || orderID == "" || strings.Contains(orderID, "/") {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	start := time.Now()
	result, err := s.svc.orchestrator.ProcessOrder(r.Context(), orderID)
	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		metrics.OrdersProcessed.WithLabelValues("failure").Inc()
		status := http.StatusBadGateway
		var failure *orchestrate.Failure
		if f, ok := err.(*orchestrate.Failure); ok {
			failure = f
			if len(f.Causes) == 1 && strings.Contains(f.Causes[0], "not found") {
				status = http.StatusNotFound
			}
		} else {
			failure = &orchestrate.Failure{Causes: []string{err.Error()}}
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"causes": failure.Causes})
		return
	}

	metrics.OrdersProcessed.WithLabelValues("success").Inc()
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.svc.Health(r.Context())

	status := http.StatusOK
	for _, v := range health {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(health)
}
