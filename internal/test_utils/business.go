package test_utils

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orario/orario/pkg/business"
)

// BusinessContext returns a context carrying a fixed in-memory business, for
// service tests that never touch the database.
func BusinessContext(businessId int) context.Context {
	return business.WithBusiness(context.Background(), business.Business{
		ID:       businessId,
		Uid:      "test-business",
		Name:     "Test Business",
		Timezone: "UTC",
	})
}

// CreateTestBusiness inserts a business row and returns it together with a
// context carrying it, for repository tests that need real foreign keys.
func CreateTestBusiness(ctx context.Context, db *pgxpool.Pool) (business.Business, context.Context, error) {
	b := business.Business{
		Uid:      uuid.NewString(),
		Name:     "Test Business",
		Timezone: "UTC",
	}
	err := db.QueryRow(ctx,
		`INSERT INTO business (uid, name, timezone) VALUES ($1, $2, $3) RETURNING id`,
		b.Uid, b.Name, b.Timezone,
	).Scan(&b.ID)
	if err != nil {
		return business.Business{}, ctx, err
	}
	return b, business.WithBusiness(ctx, b), nil
}
