package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type ClientRepository interface {
	Store(ctx context.Context, client Client) (uuid.UUID, error)
	Get(ctx context.Context, businessId int, clientId uuid.UUID) (Client, error)
	List(ctx context.Context, businessId int) ([]Client, error)
	Exists(ctx context.Context, businessId int, clientId uuid.UUID) (bool, error)
}

type ClientRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepositoryImpl {
	return &ClientRepositoryImpl{db: db}
}

func (r *ClientRepositoryImpl) Store(ctx context.Context, client Client) (uuid.UUID, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	query := `INSERT INTO client (id, business_id, display_name, phone, email)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, client.ID, client.BusinessID, client.DisplayName, client.Phone, client.Email)
	if err != nil {
		err := fmt.Errorf("could not insert client: %w", err)
		log.Error(err)
		return uuid.Nil, err
	}
	return client.ID, nil
}

func (r *ClientRepositoryImpl) Get(ctx context.Context, businessId int, clientId uuid.UUID) (Client, error) {
	query := `SELECT id, business_id, display_name, phone, email
              FROM client WHERE business_id = $1 AND id = $2`

	var c Client
	err := r.db.QueryRow(ctx, query, businessId, clientId).Scan(&c.ID, &c.BusinessID, &c.DisplayName, &c.Phone, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, ErrClientNotFound
		}
		err := fmt.Errorf("could not query client: %w", err)
		log.Error(err)
		return Client{}, err
	}
	return c, nil
}

func (r *ClientRepositoryImpl) List(ctx context.Context, businessId int) ([]Client, error) {
	query := `SELECT id, business_id, display_name, phone, email
              FROM client WHERE business_id = $1 ORDER BY display_name`

	rows, err := r.db.Query(ctx, query, businessId)
	if err != nil {
		err := fmt.Errorf("could not query clients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.DisplayName, &c.Phone, &c.Email); err != nil {
			err := fmt.Errorf("could not scan client: %w", err)
			log.Error(err)
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepositoryImpl) Exists(ctx context.Context, businessId int, clientId uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM client WHERE business_id = $1 AND id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, businessId, clientId).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check client existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}
