package http

import (
	"context"
	"errors"
	"fmt"
	"kiel-home/internal/ports"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const defaultShutdownGrace = 15 * time.Second

type Server struct {
	hour  ports.HourPort
	grace time.Duration
	log   logrus.FieldLogger

	// serve holds one request at a time
	serve sync.Mutex
	srv   *http.Server
}

// NewServer builds the server. grace bounds how long shutdown waits for an
// in-flight request; it should cover the longest /hour run.
func NewServer(hour ports.HourPort, grace time.Duration, log logrus.FieldLogger) *Server {
	if grace <= 0 {
		grace = defaultShutdownGrace
	}
	return &Server{
		hour:  hour,
		grace: grace,
		log:   log,
	}
}

// Handler returns the route table. Routes match by path prefix.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.PathPrefix("/service/").Methods(http.MethodGet).HandlerFunc(s.handleService)
	r.PathPrefix("/hour").Methods(http.MethodGet).HandlerFunc(s.handleHour)
	r.Use(s.serialize)
	return r
}

// ListenAndServe blocks until ctx is cancelled, then shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("running server")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	err := s.srv.Shutdown(shutdownCtx)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.log.WithField("grace", s.grace).Warn("request still running at shutdown, closing")
		s.srv.Close()
	case err != nil:
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.serve.Lock()
		defer s.serve.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleService(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 3 || parts[2] == "" {
		http.Error(w, "missing service token", http.StatusBadRequest)
		return
	}
	echo := parts[2]

	s.log.WithField("token", echo).Info("Kiel service request received!")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Kiel says hello, %s!", echo)
}

func (s *Server) handleHour(w http.ResponseWriter, r *http.Request) {
	s.log.WithField("path", r.URL.Path).Info("Hour executed")
	// The reply stays the server default regardless of the outcome; the
	// result only goes to the log. A client hanging up does not stop the
	// command, only the hour timeout does.
	_, _ = s.hour.Execute(context.WithoutCancel(r.Context()))
}
