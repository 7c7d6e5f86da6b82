package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, businessId int, service Service) (int, error)
	Get(ctx context.Context, businessId int, serviceId int) (Service, error)
	List(ctx context.Context, businessId int, includeArchived bool) ([]Service, error)
	Update(ctx context.Context, businessId int, service Service) (bool, error)
	Archive(ctx context.Context, businessId int, serviceId int) (bool, error)
	Delete(ctx context.Context, businessId int, serviceId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, businessId int, service Service) (int, error) {
	query := `INSERT INTO service (business_id, name, duration_minutes, price_cents, mode)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		businessId,
		service.Name,
		service.DurationMinutes,
		service.PriceCents,
		string(service.Mode),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, businessId int, serviceId int) (Service, error) {
	query := `SELECT id, business_id, name, duration_minutes, price_cents, mode, archived
              FROM service WHERE business_id = $1 AND id = $2`

	var s Service
	var mode string
	err := r.db.QueryRow(ctx, query, businessId, serviceId).Scan(
		&s.ID, &s.BusinessID, &s.Name, &s.DurationMinutes, &s.PriceCents, &mode, &s.Archived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Service{}, ErrServiceNotFound
		}
		err := fmt.Errorf("could not query service: %w", err)
		log.Error(err)
		return Service{}, err
	}
	s.Mode = Mode(mode)
	return s, nil
}

func (r *RepositoryImpl) List(ctx context.Context, businessId int, includeArchived bool) ([]Service, error) {
	archivedWhereQuery := "AND archived = FALSE"
	if includeArchived {
		archivedWhereQuery = ""
	}
	query := fmt.Sprintf(
		`SELECT id, business_id, name, duration_minutes, price_cents, mode, archived
         FROM service WHERE business_id = $1 %s ORDER BY name`,
		archivedWhereQuery,
	)

	rows, err := r.db.Query(ctx, query, businessId)
	if err != nil {
		err := fmt.Errorf("could not query services: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		var mode string
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.DurationMinutes, &s.PriceCents, &mode, &s.Archived); err != nil {
			err := fmt.Errorf("could not scan service: %w", err)
			log.Error(err)
			return nil, err
		}
		s.Mode = Mode(mode)
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return services, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, businessId int, service Service) (bool, error) {
	query := `UPDATE service SET name = $1, duration_minutes = $2, price_cents = $3, mode = $4
              WHERE id = $5 AND business_id = $6 AND archived = FALSE`

	tag, err := r.db.Exec(ctx, query,
		service.Name,
		service.DurationMinutes,
		service.PriceCents,
		string(service.Mode),
		service.ID,
		businessId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Archive(ctx context.Context, businessId int, serviceId int) (bool, error) {
	query := `UPDATE service SET archived = TRUE WHERE id = $1 AND business_id = $2`
	tag, err := r.db.Exec(ctx, query, serviceId, businessId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, businessId int, serviceId int) (bool, error) {
	query := `DELETE FROM service WHERE id = $1 AND business_id = $2`
	tag, err := r.db.Exec(ctx, query, serviceId, businessId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
