package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/romansndlr/remix-todos/internal/adapter/database/sqlite"
	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
	tel "github.com/romansndlr/remix-todos/internal/core/telemetry"
)

const table = "todo"

type TodoRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (tr *TodoRepository) ListAll(ctx context.Context) ([]domain.Todo, error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "ListAll", "todo", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     table,
		"db.operation": "SELECT",
	})

	query, args, err := tr.db.QueryBuilder.Select("id", "title", "done").
		From(table).
		ToSql()

	if err != nil {
		return nil, op.End(err)
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "ListAll", "todo", query, args)

	rows, err := tr.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, op.End(err)
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		var todo domain.Todo

		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Done); err != nil {
			return nil, op.End(err)
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, op.End(err)
	}

	op.Span().SetAttributes(map[string]interface{}{
		"db.rows_returned": len(todos),
	})

	return todos, op.End(nil)
}

func (tr *TodoRepository) Create(ctx context.Context, title string) (domain.Todo, error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "Create", "todo", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     table,
		"db.operation": "INSERT",
	})

	query, args, err := tr.db.QueryBuilder.Insert(table).
		Columns("title").
		Values(title).
		Suffix("RETURNING id, title, done").
		ToSql()

	if err != nil {
		return domain.Todo{}, op.End(err)
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Create", "todo", query, args)

	var todo domain.Todo

	err = tr.db.QueryRowContext(ctx, query, args...).Scan(&todo.ID, &todo.Title, &todo.Done)

	if err != nil {
		return domain.Todo{}, op.End(err)
	}

	op.Span().SetAttributes(map[string]interface{}{
		"todo.id": todo.ID,
	})

	return todo, op.End(nil)
}

func (tr *TodoRepository) SetDone(ctx context.Context, id int, done bool) error {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "SetDone", "todo", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     table,
		"db.operation": "UPDATE",
		"todo.id":      id,
	})

	query, args, err := tr.db.QueryBuilder.Update(table).
		Set("done", done).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return op.End(err)
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "SetDone", "todo", query, args)

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return op.End(err)
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return op.End(err)
	}

	op.Span().SetAttributes(map[string]interface{}{
		"db.rows_affected": rowsAffected,
	})

	if rowsAffected == 0 {
		return op.End(domain.ErrTodoNotFound)
	}

	return op.End(nil)
}
