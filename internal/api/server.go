package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/roach88/todod/internal/todo"
)

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Welcome to the To-Do List API!"

// DefaultMaxBodyBytes bounds request bodies unless WithMaxBodyBytes is used.
const DefaultMaxBodyBytes = 1 << 20

// Repository is the storage the handlers need. *store.Store implements it.
//
// Get, Update and Delete return an error wrapping store.ErrNotFound when the
// id does not exist.
type Repository interface {
	Create(ctx context.Context, d todo.Draft) (todo.Todo, error)
	Get(ctx context.Context, id int64) (todo.Todo, error)
	List(ctx context.Context) ([]todo.Todo, error)
	Update(ctx context.Context, t todo.Todo) (todo.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// Server holds the handler dependencies. It keeps no per-request state.
type Server struct {
	repo    Repository
	logger  *zap.Logger
	ids     IDGenerator
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithIDGenerator sets the request id source. The default is UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Server) { s.ids = g }
}

// WithMaxBodyBytes bounds the accepted request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// NewServer returns a Server backed by repo.
func NewServer(repo Repository, opts ...Option) *Server {
	s := &Server{
		repo:    repo,
		logger:  zap.NewNop(),
		ids:     UUIDv7Generator{},
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler wrapped in the request id, access log
// and panic recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /todos", s.handleList)
	mux.HandleFunc("POST /todos", s.handleCreate)
	mux.HandleFunc("GET /todos/{id}", s.handleGet)
	mux.HandleFunc("PUT /todos/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /todos/{id}", s.handleDelete)

	return s.withRequestID(s.withAccessLog(s.withRecover(mux)))
}
