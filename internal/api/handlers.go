package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/roach88/todod/internal/store"
	"github.com/roach88/todod/internal/todo"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, WelcomeMessage)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := s.repo.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, todos)
}

// handleCreate writes on a context detached from client cancellation, as do
// handleUpdate and handleDelete: once a write starts it commits even if the
// client has gone away.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	draft, errs := todo.DecodeDraft(body)
	if errs != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errs)
		return
	}

	created, err := s.repo.Create(context.WithoutCancel(r.Context()), draft)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/todos/%d", created.ID))
	s.writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	t, err := s.repo.Get(r.Context(), id)
	if err != nil {
		s.repoError(w, r, id, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, t)
}

// handleUpdate loads the record first so a missing id is a 404 even when
// the body is also invalid.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		s.repoError(w, r, id, err)
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	patch, errs := todo.DecodePatch(body)
	if errs != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errs)
		return
	}
	if patch.IsEmpty() {
		s.writeJSON(w, r, http.StatusOK, current)
		return
	}

	updated, err := s.repo.Update(ctx, patch.Apply(current))
	if err != nil {
		s.repoError(w, r, id, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

// handleDelete relies on the single-row DELETE to report a missing id.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.repo.Delete(context.WithoutCancel(r.Context()), id); err != nil {
		s.repoError(w, r, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// repoError maps a repository failure for id onto a response.
func (s *Server) repoError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, fmt.Sprintf("todo %d not found", id))
		return
	}
	s.internalError(w, r, err)
}
