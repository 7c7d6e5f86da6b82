package crm

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
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

func setupClientRepository(t *testing.T) (context.Context, *ClientRepositoryImpl, int) {
	t.Helper()
	ctx := context.Background()
	b, ctx, err := test_utils.CreateTestBusiness(ctx, db)
	require.NoError(t, err)
	return ctx, NewClientRepository(db), b.ID
}

func TestClientRepositoryImpl_StoreAndGet(t *testing.T) {
	// given
	ctx, repo, businessId := setupClientRepository(t)

	// when
	id, err := repo.Store(ctx, Client{BusinessID: businessId, DisplayName: "Ada", Phone: "+48123456789", Email: "ada@example.com"})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, businessId, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.DisplayName)
	assert.Equal(t, "+48123456789", stored.Phone)

	exists, err := repo.Exists(ctx, businessId, id)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClientRepositoryImpl_Get_UnknownClient(t *testing.T) {
	// given
	ctx, repo, businessId := setupClientRepository(t)

	// when
	_, err := repo.Get(ctx, businessId, uuid.New())

	// then
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientRepositoryImpl_List_IsScopedToBusiness(t *testing.T) {
	// given
	ctx, repo, businessId := setupClientRepository(t)
	otherCtx, _, otherBusinessId := setupClientRepository(t)

	_, err := repo.Store(ctx, Client{BusinessID: businessId, DisplayName: "Ada"})
	require.NoError(t, err)
	_, err = repo.Store(otherCtx, Client{BusinessID: otherBusinessId, DisplayName: "Grace"})
	require.NoError(t, err)

	// when
	clients, err := repo.List(ctx, businessId)

	// then
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ada", clients[0].DisplayName)
}

func TestTimelineRepositoryImpl_Append_IsIdempotentPerStatus(t *testing.T) {
	// given
	ctx, _, businessId := setupClientRepository(t)
	repo := NewTimelineRepository(db)

	entry := TimelineEntry{
		BusinessID:    businessId,
		ClientID:      uuid.New(),
		AppointmentID: uuid.New(),
		ServiceName:   "Haircut",
		Date:          time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartMinute:   10 * 60,
		Status:        "pending",
	}

	// when: the bus may deliver the same event more than once
	require.NoError(t, repo.Append(ctx, entry))
	require.NoError(t, repo.Append(ctx, entry))

	entry.Status = "confirmed"
	require.NoError(t, repo.Append(ctx, entry))

	// then
	entries, err := repo.ListForClient(ctx, businessId, entry.ClientID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "pending", entries[0].Status)
	assert.Equal(t, "confirmed", entries[1].Status)
}

func TestTimelineRepositoryImpl_ListForClient_OrdersChronologically(t *testing.T) {
	// given
	ctx, _, businessId := setupClientRepository(t)
	repo := NewTimelineRepository(db)
	clientId := uuid.New()

	newEntry := func(date time.Time, startMinute int) TimelineEntry {
		return TimelineEntry{
			BusinessID:    businessId,
			ClientID:      clientId,
			AppointmentID: uuid.New(),
			ServiceName:   "Haircut",
			Date:          date,
			StartMinute:   startMinute,
			Status:        "pending",
		}
	}

	later := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, newEntry(later, 9*60)))
	require.NoError(t, repo.Append(ctx, newEntry(earlier, 15*60)))
	require.NoError(t, repo.Append(ctx, newEntry(earlier, 9*60)))

	// when
	entries, err := repo.ListForClient(ctx, businessId, clientId)

	// then
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, earlier, entries[0].Date)
	assert.Equal(t, 9*60, entries[0].StartMinute)
	assert.Equal(t, 15*60, entries[1].StartMinute)
	assert.Equal(t, later, entries[2].Date)
}
