// TodoWebService is a single-user task-tracking web application.
//
// Tasks are short text items persisted to a local sqlite file. The service
// renders HTML pages for listing, adding, editing, toggling and deleting
// tasks; mutations answer with a redirect and a one-time flash message.
// Rate limit of 2 events per second with a burst of 20 events protects
// against abuse. Prometheus metrics track per-endpoint calls and errors.
//
// The following endpoints are available:
//
//  1. GET  /            - List all tasks
//  2. GET  /add         - Show the add-task form
//  3. POST /add         - Create a new task
//  4. GET  /edit/{id}   - Show the edit form for a task
//  5. POST /edit/{id}   - Update an existing task
//  6. GET  /delete/{id} - Delete a task
//  7. GET  /toggle/{id} - Toggle a task's completed flag
//  8. GET  /healthz     - Liveness probe
//  9. GET  /metrics     - Display Prometheus metrics
//
// You may use godoc -http=:6060 to view the documentation in your browser.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"TodoWebService/config"
	"TodoWebService/flash"
	"TodoWebService/handlers"
	"TodoWebService/repository"
	"TodoWebService/response"
	"TodoWebService/storage"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	errorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "todoapp_errors_total",
		Help: "Total number of errors occurred in the application.",
	}, []string{"endpoint"})
	endPointCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "todoapp_endpoint_calls_total",
		Help: "Total number of calls per endpoint.",
	}, []string{"endpoint"})
	log = logrus.New()
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Error loading .env file")
	}
	cfg := config.Load()

	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Env == "dev" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	prometheus.MustRegister(errorCounter)
	prometheus.MustRegister(endPointCounter)

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		log.Fatal(err)
	}

	repo := repository.New(store)
	flashes := flash.NewStore(cfg.SecretKey)
	h := handlers.New(repo, store, flashes, log, endPointCounter, errorCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", rateLimiter(h, rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening on " + cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	select {
	case sig := <-stop:
		log.Infof("signal %s received, shutting down", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}

// rateLimiter is a middleware function that implements rate limiting for HTTP requests.
// If the request is not allowed due to rate limiting, it returns a JSON response
// with an error message and HTTP status code 429 (Too Many Requests).
func rateLimiter(next http.Handler, limiter *rate.Limiter) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		if !limiter.Allow() {
			message := response.Message{
				Status: "Request Failed",
				Body:   "The API is at capacity, try again later.",
			}
			res.Header().Set("Content-Type", "application/json")
			res.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(res).Encode(&message)
			return
		}
		next.ServeHTTP(res, req)
	})
}
