package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bajo3/Emme-Client/internal/catalog"
)

// DB is the slice of pgx the store needs; *pgxpool.Pool and pgxmock both
// satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads and writes appointments in the relational database.
type Store struct {
	db DB
}

// NewStore initializes a store backed by pgxpool.
func NewStore(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &Store{db: pool}
}

// NewStoreWithDB allows injecting a mock database for tests.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

// Filter narrows a fetch. DateEquals wins over the range fields; all dates
// are YYYY-MM-DD strings. The zero Filter fetches everything, ordered by
// date then start time.
type Filter struct {
	DateEquals string
	DateFrom   string
	DateTo     string
	Descending bool
}

const selectColumns = `
		a.id,
		to_char(a.date, 'YYYY-MM-DD'),
		to_char(a.start_time, 'HH24:MI'),
		to_char(a.end_time, 'HH24:MI'),
		a.status,
		a.service_name,
		COALESCE(a.amount, a.price, a.total, 0),
		COALESCE(a.notes, ''),
		c.id,
		c.name,
		c.phone,
		c.instagram`

// FetchAppointments returns appointments matching the filter with the client
// row embedded. Legacy money columns (price, total) are coalesced into the
// canonical amount at scan time so the engine never probes field names.
func (s *Store) FetchAppointments(ctx context.Context, f Filter) ([]Appointment, error) {
	var (
		where []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case f.DateEquals != "":
		where = append(where, "a.date = "+next(f.DateEquals))
	default:
		if f.DateFrom != "" {
			where = append(where, "a.date >= "+next(f.DateFrom))
		}
		if f.DateTo != "" {
			where = append(where, "a.date <= "+next(f.DateTo))
		}
	}

	query := "SELECT" + selectColumns + `
	FROM appointments a
	LEFT JOIN clients c ON c.id = a.client_id`
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	if f.Descending {
		query += "\n\tORDER BY a.date DESC, a.start_time DESC NULLS LAST"
	} else {
		query += "\n\tORDER BY a.date ASC, a.start_time ASC NULLS LAST"
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: rows failed: %w", err)
	}
	return out, nil
}

// UpdateStatus persists a status change and returns the updated row. Per the
// original booking flow, moving to done also sets is_archived; cancelled does
// not, even though both filter as archived. That asymmetry is preserved on
// purpose pending a product decision.
func (s *Store) UpdateStatus(ctx context.Context, id string, to Status) (*Appointment, error) {
	if !to.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}

	set := "status = $2"
	if to == StatusDone {
		set = "status = $2, is_archived = TRUE"
	}
	query := fmt.Sprintf(`UPDATE appointments SET %s
	WHERE id = $1
	RETURNING
		id,
		to_char(date, 'YYYY-MM-DD'),
		to_char(start_time, 'HH24:MI'),
		to_char(end_time, 'HH24:MI'),
		status,
		service_name,
		COALESCE(amount, price, total, 0),
		COALESCE(notes, '')`, set)

	row := s.db.QueryRow(ctx, query, id, string(to))
	var (
		a           Appointment
		start, end  *string
		serviceName *string
	)
	if err := row.Scan(&a.ID, &a.Date, &start, &end, &a.Status, &serviceName, &a.Amount, &a.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: update status failed: %w", err)
	}
	a.StartTime = deref(start)
	a.EndTime = deref(end)
	a.ServiceName = deref(serviceName)
	return &a, nil
}

func scanAppointment(rows pgx.Rows) (Appointment, error) {
	var (
		a           Appointment
		start, end  *string
		serviceName *string
		clientID    *string
		clientName  *string
		clientPhone *string
		clientInsta *string
	)
	if err := rows.Scan(
		&a.ID,
		&a.Date,
		&start,
		&end,
		&a.Status,
		&serviceName,
		&a.Amount,
		&a.Notes,
		&clientID,
		&clientName,
		&clientPhone,
		&clientInsta,
	); err != nil {
		return Appointment{}, err
	}
	a.StartTime = deref(start)
	a.EndTime = deref(end)
	a.ServiceName = deref(serviceName)
	if clientID != nil {
		a.Client = &catalog.Client{
			ID:        *clientID,
			Name:      deref(clientName),
			Phone:     deref(clientPhone),
			Instagram: deref(clientInsta),
		}
	}
	return a, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
