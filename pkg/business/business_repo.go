package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Create(ctx context.Context, b Business) (int, error)
	Get(ctx context.Context, id int) (Business, error)
	GetByUid(ctx context.Context, uid string) (Business, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Create(ctx context.Context, b Business) (int, error) {
	query := `INSERT INTO business (uid, name, timezone) VALUES ($1, $2, $3) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, b.Uid, b.Name, b.Timezone).Scan(&id)
	if err != nil {
		log.Errorf("failed to create business: %v", err)
		return 0, fmt.Errorf("could not execute query: %w", err)
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, id int) (Business, error) {
	query := `SELECT id, uid, name, timezone FROM business WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *RepoImpl) GetByUid(ctx context.Context, uid string) (Business, error) {
	query := `SELECT id, uid, name, timezone FROM business WHERE uid = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, uid))
}

func (r *RepoImpl) scanOne(row pgx.Row) (Business, error) {
	var b Business
	err := row.Scan(&b.ID, &b.Uid, &b.Name, &b.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Business{}, ErrNoBusiness
		}
		log.Errorf("failed to scan business: %v", err)
		return Business{}, fmt.Errorf("could not scan business: %w", err)
	}
	return b, nil
}
