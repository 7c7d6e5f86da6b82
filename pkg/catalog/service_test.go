package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/orario/orario/internal/utils"
	"github.com/orario/orario/pkg/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterStub struct {
	futureCount int
}

func (c counterStub) CountFutureForService(ctx context.Context, businessId int, serviceId int, from time.Time) (int, error) {
	return c.futureCount, nil
}

func newCatalogFixture(t *testing.T, futureCount int) (context.Context, *CatalogServiceImpl) {
	t.Helper()
	ctx := business.WithBusiness(context.Background(), business.Business{ID: 1, Uid: "test-business"})
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	return ctx, NewCatalogService(NewRepositoryStub(), counterStub{futureCount: futureCount}, clock)
}

func TestAdd(t *testing.T) {
	t.Run("assigns an id and the default mode", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 0)

		created, err := service.Add(ctx, Service{Name: "Haircut", DurationMinutes: 30})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, ModeAtBusiness, created.Mode)
	})

	t.Run("rejects a non-positive duration", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 0)

		_, err := service.Add(ctx, Service{Name: "Haircut", DurationMinutes: 0})

		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	t.Run("hard-deletes when nothing references the service", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 0)
		created, err := service.Add(ctx, Service{Name: "Haircut", DurationMinutes: 30})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, created.ID, false))

		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("refuses when future appointments reference it", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 3)
		created, err := service.Add(ctx, Service{Name: "Haircut", DurationMinutes: 30})
		require.NoError(t, err)

		err = service.Delete(ctx, created.ID, false)

		assert.ErrorIs(t, err, ErrServiceInUse)
		_, err = service.Get(ctx, created.ID)
		assert.NoError(t, err, "service must survive a refused delete")
	})

	t.Run("archives instead when detaching", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 3)
		created, err := service.Add(ctx, Service{Name: "Haircut", DurationMinutes: 30})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, created.ID, true))

		stored, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, stored.Archived)

		active, err := service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("unknown service fails", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 0)

		assert.ErrorIs(t, service.Delete(ctx, 999, false), ErrServiceNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("archived service cannot change", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 1)
		created, err := service.Add(ctx, Service{Name: "Haircut", DurationMinutes: 30})
		require.NoError(t, err)
		require.NoError(t, service.Delete(ctx, created.ID, true))

		created.Name = "New Name"
		_, err = service.Update(ctx, created)

		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestShortestActiveDuration(t *testing.T) {
	t.Run("empty catalog reports not ok", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 0)

		_, ok, err := service.ShortestActiveDuration(ctx)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("archived services do not count", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 1)
		short, err := service.Add(ctx, Service{Name: "Trim", DurationMinutes: 15})
		require.NoError(t, err)
		_, err = service.Add(ctx, Service{Name: "Colouring", DurationMinutes: 90})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, short.ID, true))

		min, ok, err := service.ShortestActiveDuration(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 90, min)
	})
}

func TestServiceName(t *testing.T) {
	t.Run("resolves archived services too", func(t *testing.T) {
		ctx, service := newCatalogFixture(t, 1)
		created, err := service.Add(ctx, Service{Name: "Haircut", DurationMinutes: 30})
		require.NoError(t, err)
		require.NoError(t, service.Delete(ctx, created.ID, true))

		name, err := service.ServiceName(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, "Haircut", name)
	})
}
