package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/rosary/internal/devotion"
)

var builder = entsql.Dialect(dialect.SQLite)

// sessionRepo implements SessionRepo with the ent SQL builder.
type sessionRepo struct {
	drv    *entsql.Driver
	max    int
	logger *slog.Logger
}

func (r *sessionRepo) List(ctx context.Context, opts QueryOpts) ([]devotion.Session, error) {
	q := selectSessions(opts)
	out, err := querySessions(ctx, r.drv, q)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) ListFinished(ctx context.Context, opts QueryOpts) ([]devotion.Session, error) {
	q := selectSessions(opts).Where(entsql.NotNull(colStop))
	out, err := querySessions(ctx, r.drv, q)
	if err != nil {
		return nil, fmt.Errorf("list finished sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) Get(ctx context.Context, id int64) (devotion.Session, error) {
	q := selectSessions(QueryOpts{Limit: 1}).Where(entsql.EQ(colID, id))
	out, err := querySessions(ctx, r.drv, q)
	if err != nil {
		return devotion.Session{}, fmt.Errorf("get session %d: %w", id, err)
	}
	if len(out) == 0 {
		return devotion.Session{}, fmt.Errorf("get session %d: %w", id, ErrNotFound)
	}
	return out[0], nil
}

func (r *sessionRepo) Create(ctx context.Context, s devotion.Session) (id int64, err error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin create session: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	isDM := 0
	if s.Kind.IsDM() {
		isDM = 1
	}
	insert := builder.Insert(sessionTable).
		Columns(colIsDM, colStart, colStop, colIntention).
		Values(isDM, formatMillis(s.StartMillis()), nullableMillis(s.Stop), nullableText(s.Intention))
	query, args := insert.Query()

	var res sql.Result
	if err = tx.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("insert session id: %w", err)
	}

	count, err := countSessions(ctx, tx)
	if err != nil {
		return 0, err
	}
	if excess := count - r.max; excess > 0 {
		oldest := builder.Select(colID).
			From(builder.Table(sessionTable)).
			OrderBy(entsql.Asc(colID)).
			Limit(excess)
		query, args := builder.Delete(sessionTable).
			Where(entsql.In(colID, oldest)).
			Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return 0, fmt.Errorf("evict oldest sessions: %w", err)
		}
		r.logger.Info("evicted old sessions", "count", excess, "max", r.max)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create session: %w", err)
	}
	return id, nil
}

func (r *sessionRepo) Finish(ctx context.Context, id int64, stop time.Time) error {
	query, args := builder.Update(sessionTable).
		Set(colStop, formatMillis(stop.UnixMilli())).
		Where(entsql.EQ(colID, id)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("finish session %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish session %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id int64) error {
	query, args := builder.Delete(sessionTable).
		Where(entsql.EQ(colID, id)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete session %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *sessionRepo) DeleteUnfinished(ctx context.Context) (int64, error) {
	query, args := builder.Delete(sessionTable).
		Where(entsql.IsNull(colStop)).
		Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete unfinished sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete unfinished sessions: %w", err)
	}
	return n, nil
}

func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	return countSessions(ctx, r.drv)
}

func selectSessions(opts QueryOpts) *entsql.Selector {
	sel := builder.Select(colID, colIsDM, colStart, colStop, colIntention).
		From(builder.Table(sessionTable)).
		OrderBy(entsql.Desc(colID))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func querySessions(ctx context.Context, q dialect.ExecQuerier, sel *entsql.Selector) ([]devotion.Session, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []devotion.Session
	for rows.Next() {
		var (
			id        int64
			isDM      int
			start     string
			stop      sql.NullString
			intention sql.NullString
		)
		if err := rows.Scan(&id, &isDM, &start, &stop, &intention); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s := devotion.Session{
			ID:        id,
			Kind:      devotion.KindFromDM(isDM != 0),
			Intention: intention.String,
		}
		if ms, err := strconv.ParseInt(start, 10, 64); err == nil && ms != 0 {
			s.Start = time.UnixMilli(ms)
		}
		if stop.Valid {
			if ms, err := strconv.ParseInt(stop.String, 10, 64); err == nil {
				t := time.UnixMilli(ms)
				s.Stop = &t
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func countSessions(ctx context.Context, q dialect.ExecQuerier) (int, error) {
	query, args := builder.Select(entsql.Count("*")).
		From(builder.Table(sessionTable)).
		Query()
	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("count sessions: %w", err)
		}
	}
	return n, rows.Err()
}

func formatMillis(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

func nullableMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatMillis(t.UnixMilli())
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
