package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/romansndlr/remix-todos/internal/adapter/database/postgres"
	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
	tel "github.com/romansndlr/remix-todos/internal/core/telemetry"
)

const table = "todo"

type TodoRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *postgres.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{db: db, telemetry: telemetry}
}

func (tr *TodoRepository) ListAll(ctx context.Context) ([]domain.Todo, error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "ListAll", "todo", map[string]interface{}{
		"db.system":    "postgresql",
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

	rows, err := tr.db.Query(ctx, query, args...)

	if err != nil {
		return nil, op.End(err)
	}

	todos, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Todo])

	if err != nil {
		return nil, op.End(err)
	}

	if todos == nil {
		todos = []domain.Todo{}
	}

	op.Span().SetAttributes(map[string]interface{}{
		"db.rows_returned": len(todos),
	})

	return todos, op.End(nil)
}

func (tr *TodoRepository) Create(ctx context.Context, title string) (domain.Todo, error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "Create", "todo", map[string]interface{}{
		"db.system":    "postgresql",
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

	err = tr.db.QueryRow(ctx, query, args...).Scan(&todo.ID, &todo.Title, &todo.Done)

	if err != nil {
		return domain.Todo{}, op.End(err)
	}

	return todo, op.End(nil)
}

func (tr *TodoRepository) SetDone(ctx context.Context, id int, done bool) error {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "SetDone", "todo", map[string]interface{}{
		"db.system":    "postgresql",
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

	tag, err := tr.db.Exec(ctx, query, args...)

	if err != nil {
		return op.End(err)
	}

	op.Span().SetAttributes(map[string]interface{}{
		"db.rows_affected": tag.RowsAffected(),
	})

	if tag.RowsAffected() == 0 {
		return op.End(domain.ErrTodoNotFound)
	}

	return op.End(nil)
}
