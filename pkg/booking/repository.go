package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// ListForDate returns the non-cancelled appointments for the business and
	// calendar day, ordered by start time.
	ListForDate(ctx context.Context, businessId int, date time.Time) ([]Appointment, error)
	// Commit atomically re-validates the appointment against the current
	// ledger state and inserts it. It is the final authority on conflicts:
	// the overlap re-check and the insert happen in one transaction holding a
	// per-(business, date) advisory lock. Returns ErrConflict on overlap.
	Commit(ctx context.Context, appointment Appointment) (Appointment, error)
	Get(ctx context.Context, businessId int, id uuid.UUID) (Appointment, error)
	// UpdateStatus transitions an appointment from one status to another and
	// reports whether a row actually changed.
	UpdateStatus(ctx context.Context, businessId int, id uuid.UUID, from, to Status) (bool, error)
	CountFutureForService(ctx context.Context, businessId int, serviceId int, from time.Time) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const appointmentColumns = `id, business_id, service_id, client_id, date, start_minute, duration_minutes, status, created_at`

func (r *RepositoryImpl) ListForDate(ctx context.Context, businessId int, date time.Time) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
              FROM appointment
              WHERE business_id = $1 AND date = $2 AND status <> 'cancelled'
              ORDER BY start_minute`

	rows, err := r.db.Query(ctx, query, businessId, date)
	if err != nil {
		err := fmt.Errorf("could not query appointments: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	appointments := make([]Appointment, 0, 10)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return appointments, nil
}

func (r *RepositoryImpl) Commit(ctx context.Context, appointment Appointment) (Appointment, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Appointment{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize all commits for this business and day. Two concurrent
	// requests for the same slot both reach this point; the second waits here
	// and then fails the overlap re-check below.
	lockKey := fmt.Sprintf("appointment:%d:%s", appointment.BusinessID, appointment.Date.Format("2006-01-02"))
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1)::bigint)`, lockKey); err != nil {
		err := fmt.Errorf("could not acquire commit lock: %w", err)
		log.Error(err)
		return Appointment{}, err
	}

	var overlaps bool
	overlapQuery := `SELECT EXISTS (
                       SELECT 1 FROM appointment
                       WHERE business_id = $1 AND date = $2 AND status <> 'cancelled'
                         AND start_minute < $3
                         AND start_minute + duration_minutes > $4
                     )`
	newEnd := appointment.StartMinute + appointment.DurationMinutes
	err = tx.QueryRow(ctx, overlapQuery,
		appointment.BusinessID,
		appointment.Date,
		newEnd,
		appointment.StartMinute,
	).Scan(&overlaps)
	if err != nil {
		err := fmt.Errorf("could not re-check ledger: %w", err)
		log.Error(err)
		return Appointment{}, err
	}
	if overlaps {
		return Appointment{}, ErrConflict
	}

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.Status = StatusPending

	insert := `INSERT INTO appointment (id, business_id, service_id, client_id, date, start_minute, duration_minutes, status)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING created_at`
	err = tx.QueryRow(ctx, insert,
		appointment.ID,
		appointment.BusinessID,
		appointment.ServiceID,
		appointment.ClientID,
		appointment.Date,
		appointment.StartMinute,
		appointment.DurationMinutes,
		string(appointment.Status),
	).Scan(&appointment.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not insert appointment: %w", err)
		log.Error(err)
		return Appointment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Appointment{}, fmt.Errorf("commit transaction: %w", err)
	}
	return appointment, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, businessId int, id uuid.UUID) (Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
              FROM appointment WHERE business_id = $1 AND id = $2`

	row := r.db.QueryRow(ctx, query, businessId, id)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appointment{}, ErrAppointmentNotFound
		}
		return Appointment{}, err
	}
	return a, nil
}

func (r *RepositoryImpl) UpdateStatus(ctx context.Context, businessId int, id uuid.UUID, from, to Status) (bool, error) {
	query := `UPDATE appointment SET status = $1 WHERE business_id = $2 AND id = $3 AND status = $4`
	tag, err := r.db.Exec(ctx, query, string(to), businessId, id, string(from))
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) CountFutureForService(ctx context.Context, businessId int, serviceId int, from time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM appointment
              WHERE business_id = $1 AND service_id = $2 AND date >= $3 AND status <> 'cancelled'`

	var count int
	err := r.db.QueryRow(ctx, query, businessId, serviceId, from).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count appointments: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func scanAppointment(row pgx.Row) (Appointment, error) {
	var a Appointment
	var status string
	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.ServiceID,
		&a.ClientID,
		&a.Date,
		&a.StartMinute,
		&a.DurationMinutes,
		&status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appointment{}, err
		}
		err := fmt.Errorf("could not scan appointment: %w", err)
		log.Error(err)
		return Appointment{}, err
	}
	a.Status = Status(status)
	a.Date = a.Date.UTC()
	return a, nil
}
