/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package server exposes the license decoders over HTTP.
package server

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/internal/metrics"
)

// MaxBodySize is the largest request body the decode routes accept.
const MaxBodySize = 64 << 10

// Server routes decode requests to the decoders.
type Server struct {
	log      *zap.SugaredLogger
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	router   chi.Router
}

// New returns a Server with its own metrics registry.
func New(log *zap.SugaredLogger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		log:      log,
		metrics:  metrics.New(reg),
		registry: reg,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(WithLogging(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/drivers-license", s.decode(licensecode.DriversLicense))
		r.Post("/vehicle-license", s.decode(licensecode.VehicleLicense))
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer builds an http.Server for handler listening on addr.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) decode(format licensecode.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readBody(w, r)
		if err != nil {
			s.log.Debugw("rejected request body",
				"request_id", GetRequestID(r.Context()), "error", err)
			s.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		start := time.Now()
		rec, err := licensecode.Decode(format, data)
		result := metrics.ResultOK
		if err != nil {
			result = licensecode.KindOf(err).String()
		}
		s.metrics.ObserveDecode(string(format), result, time.Since(start))

		if err != nil {
			s.writeJSON(w, r, http.StatusUnprocessableEntity, licensecode.NewErrorBody(err))
			return
		}
		s.writeJSON(w, r, http.StatusOK, rec)
	}
}

// readBody reads the capture from the request body, decoding it from hex
// when the request asks for that.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "unable to read request body")
	}

	switch enc := r.URL.Query().Get("encoding"); enc {
	case "", "raw":
		return data, nil
	case "hex":
		decoded, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, errors.Wrap(err, "unable to decode body as hex")
		}
		return decoded, nil
	default:
		return nil, errors.Errorf("unsupported encoding %q", enc)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Errorw("unable to marshal response",
			"request_id", GetRequestID(r.Context()), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
