/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the
suggestion pipeline and database service into the router.
*/
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fitsuggest/internal/database"
	"fitsuggest/internal/suggestion"
)

// Suggester is the part of the suggestion pipeline the handlers call.
type Suggester interface {
	Generate(ctx context.Context, username, question string) (suggestion.Result, error)
	Latest(ctx context.Context, username string) (suggestion.Stored, error)
}

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	// db provides access to the database service and connection pool.
	db database.Service

	// suggester generates and reads back user suggestions.
	suggester Suggester

	// startedAt feeds the uptime reported by /health.
	startedAt time.Time
}

// New builds the Server without starting it.
func New(port int, db database.Service, suggester Suggester) *Server {
	return &Server{
		port:      port,
		db:        db,
		suggester: suggester,
		startedAt: time.Now(),
	}
}

// NewServer returns a configured *http.Server. writeTimeout must leave room
// for the model call, so it is derived from the LLM timeout.
func NewServer(port int, db database.Service, suggester Suggester, llmTimeout time.Duration) *http.Server {
	s := New(port, db, suggester)

	writeTimeout := 30 * time.Second
	if llmTimeout+15*time.Second > writeTimeout {
		writeTimeout = llmTimeout + 15*time.Second
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,      // Time to wait for the next request on keep-alive connections.
		ReadTimeout:  10 * time.Second, // Maximum duration for reading the entire request.
		WriteTimeout: writeTimeout,
	}
}
