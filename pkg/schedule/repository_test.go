package schedule

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orario/orario/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	container, connect := test_utils.TestWithDB()
	db = connect()
	code := m.Run()
	db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	t.Helper()
	ctx := context.Background()
	b, ctx, err := test_utils.CreateTestBusiness(ctx, db)
	require.NoError(t, err)
	return ctx, NewRepository(db), b.ID
}

func TestRepositoryImpl_ReplaceAndGet(t *testing.T) {
	// given
	ctx, repo, businessId := setupTestRepository(t)

	var week WeeklySchedule
	week[time.Monday] = DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	week[time.Saturday] = DayWindow{Open: true, OpenMinute: 10 * 60, CloseMinute: 14 * 60}

	// when
	require.NoError(t, repo.Replace(ctx, businessId, week))

	// then
	stored, err := repo.Get(ctx, businessId)
	require.NoError(t, err)
	assert.Equal(t, week, stored)
}

func TestRepositoryImpl_Get_NoRowsMeansClosedWeek(t *testing.T) {
	// given
	ctx, repo, businessId := setupTestRepository(t)

	// when
	stored, err := repo.Get(ctx, businessId)

	// then
	require.NoError(t, err)
	assert.Equal(t, WeeklySchedule{}, stored)
}

func TestRepositoryImpl_Replace_RemovesDaysNoLongerOpen(t *testing.T) {
	// given
	ctx, repo, businessId := setupTestRepository(t)

	var week WeeklySchedule
	week[time.Monday] = DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	week[time.Tuesday] = DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	require.NoError(t, repo.Replace(ctx, businessId, week))

	// when
	var mondayOnly WeeklySchedule
	mondayOnly[time.Monday] = DayWindow{Open: true, OpenMinute: 8 * 60, CloseMinute: 12 * 60}
	require.NoError(t, repo.Replace(ctx, businessId, mondayOnly))

	// then
	stored, err := repo.Get(ctx, businessId)
	require.NoError(t, err)
	assert.Equal(t, mondayOnly, stored)
	assert.False(t, stored[time.Tuesday].Open)
}

func TestRepositoryImpl_Get_IsScopedToBusiness(t *testing.T) {
	// given
	ctx, repo, businessId := setupTestRepository(t)
	otherCtx, _, otherBusinessId := setupTestRepository(t)

	var week WeeklySchedule
	week[time.Monday] = DayWindow{Open: true, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	require.NoError(t, repo.Replace(otherCtx, otherBusinessId, week))

	// when
	stored, err := repo.Get(ctx, businessId)

	// then
	require.NoError(t, err)
	assert.Equal(t, WeeklySchedule{}, stored)
}
