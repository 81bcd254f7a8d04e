package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/todod/internal/todo"
)

// Create inserts a new todo and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, d todo.Draft) (todo.Todo, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO todo (title, completed)
		VALUES (?, ?)
	`, d.Title, d.Completed)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return todo.Todo{}, fmt.Errorf("create todo: last insert id: %w", err)
	}

	return todo.Todo{ID: id, Title: d.Title, Completed: d.Completed}, nil
}

// Get retrieves a single todo by id.
// Returns an error wrapping ErrNotFound if no row has that id.
func (s *Store) Get(ctx context.Context, id int64) (todo.Todo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, completed
		FROM todo
		WHERE id = ?
	`, id)

	var t todo.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todo.Todo{}, fmt.Errorf("get todo %d: %w", id, ErrNotFound)
		}
		return todo.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return t, nil
}

// List returns every todo ordered by id.
//
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) List(ctx context.Context) ([]todo.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, completed
		FROM todo
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []todo.Todo{}
	for rows.Next() {
		var t todo.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}

	return todos, nil
}

// Update overwrites title and completed of the row with t.ID.
// Returns an error wrapping ErrNotFound if the row no longer exists.
func (s *Store) Update(ctx context.Context, t todo.Todo) (todo.Todo, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE todo
		SET title = ?, completed = ?
		WHERE id = ?
	`, t.Title, t.Completed, t.ID)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("update todo %d: %w", t.ID, err)
	}

	if err := requireOneRow(result); err != nil {
		return todo.Todo{}, fmt.Errorf("update todo %d: %w", t.ID, err)
	}
	return t, nil
}

// Delete removes the row with the given id. There is no tombstone.
// Returns an error wrapping ErrNotFound if no row had that id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todo WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	if err := requireOneRow(result); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
