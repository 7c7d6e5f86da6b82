package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type TimelineRepository interface {
	// Append stores a timeline entry. Delivery from the bus is at-least-once,
	// so appends are idempotent per (appointment, status): replays are
	// silently dropped.
	Append(ctx context.Context, entry TimelineEntry) error
	ListForClient(ctx context.Context, businessId int, clientId uuid.UUID) ([]TimelineEntry, error)
}

type TimelineRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewTimelineRepository(db *pgxpool.Pool) *TimelineRepositoryImpl {
	return &TimelineRepositoryImpl{db: db}
}

func (r *TimelineRepositoryImpl) Append(ctx context.Context, entry TimelineEntry) error {
	query := `INSERT INTO crm_timeline (business_id, client_id, appointment_id, service_name, date, start_minute, status)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (appointment_id, status) DO NOTHING`

	_, err := r.db.Exec(ctx, query,
		entry.BusinessID,
		entry.ClientID,
		entry.AppointmentID,
		entry.ServiceName,
		entry.Date,
		entry.StartMinute,
		entry.Status,
	)
	if err != nil {
		err := fmt.Errorf("could not append timeline entry: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *TimelineRepositoryImpl) ListForClient(ctx context.Context, businessId int, clientId uuid.UUID) ([]TimelineEntry, error) {
	query := `SELECT id, business_id, client_id, appointment_id, service_name, date, start_minute, status, created_at
              FROM crm_timeline
              WHERE business_id = $1 AND client_id = $2
              ORDER BY date, start_minute, created_at`

	rows, err := r.db.Query(ctx, query, businessId, clientId)
	if err != nil {
		err := fmt.Errorf("could not query timeline: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []TimelineEntry
	for rows.Next() {
		var e TimelineEntry
		if err := rows.Scan(&e.ID, &e.BusinessID, &e.ClientID, &e.AppointmentID, &e.ServiceName, &e.Date, &e.StartMinute, &e.Status, &e.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan timeline entry: %w", err)
			log.Error(err)
			return nil, err
		}
		e.Date = e.Date.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}
