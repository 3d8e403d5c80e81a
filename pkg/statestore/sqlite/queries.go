package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type KeyboardState struct {
	App         string
	Layout      string
	Orientation string
}

const getState = `
select app, layout, orientation
from keyboard_states
where app = ?
`

func (q *Queries) GetState(ctx context.Context, app string) (KeyboardState, error) {
	row := q.db.QueryRowContext(ctx, getState, app)
	var i KeyboardState
	err := row.Scan(&i.App, &i.Layout, &i.Orientation)
	return i, err
}

const setState = `
insert into keyboard_states (app, layout, orientation)
values (?, ?, ?)
on conflict (app) do update
set layout      = excluded.layout,
    orientation = excluded.orientation,
    updated_at  = current_timestamp
`

type SetStateParams struct {
	App         string
	Layout      string
	Orientation string
}

func (q *Queries) SetState(ctx context.Context, arg SetStateParams) error {
	_, err := q.db.ExecContext(ctx, setState, arg.App, arg.Layout, arg.Orientation)
	return err
}

const dumpTables = `
select sql from sqlite_master
where type = 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpTables(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpTables)
}

const dumpRest = `
select sql from sqlite_master
where type != 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpRest(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpRest)
}

func (q *Queries) dump(ctx context.Context, query string) ([]*string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*string
	for rows.Next() {
		var stmt *string
		if err := rows.Scan(&stmt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, stmt)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
