package cart

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/surfshop-backend/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

func newTestService() (*Service, *MemoryStorage) {
	storage := NewMemoryStorage()
	return NewService(storage, "storefrontCart", logger.Discard()), storage
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService()

	_, snapA := svc.AddItem("a", tee(2))
	_, snapB := svc.AddItem("b", tee(1))

	assert.Equal(t, 2, snapA.TotalItemCount)
	assert.Equal(t, 1, snapB.TotalItemCount)
	assert.Equal(t, 2, svc.Snapshot("a").TotalItemCount)
}

func TestService_PersistsUnderNamespacedKey(t *testing.T) {
	svc, storage := newTestService()
	svc.AddItem("abc", tee(1))

	payload, err := storage.Load(context.Background(), "storefrontCart:abc")
	require.NoError(t, err)
	assert.Contains(t, string(payload), "product-tee-M")
}

func TestService_MutationsAndDiscard(t *testing.T) {
	svc, storage := newTestService()
	res, _ := svc.AddItem("s", tee(2))

	snap := svc.SetQuantityDelta("s", res.LineItemID, -1)
	assert.Equal(t, 1, snap.TotalItemCount)

	snap = svc.RemoveItem("s", res.LineItemID)
	assert.Empty(t, snap.Items)

	svc.AddItem("s", tee(1))
	snap = svc.Clear("s")
	assert.Empty(t, snap.Items)

	svc.AddItem("s", tee(1))
	require.NoError(t, svc.Discard(context.Background(), "s"))
	_, err := storage.Load(context.Background(), svc.Key("s"))
	assert.ErrorIs(t, err, ErrNoCart)
	assert.Empty(t, svc.Snapshot("s").Items)
}

func TestService_ConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	svc, _ := newTestService()

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			svc.AddItem("busy", tee(1))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 50, svc.Snapshot("busy").TotalItemCount)
}

func TestService_ConcurrentAddsRespectCeiling(t *testing.T) {
	svc, _ := newTestService()
	ceiling := 30

	var accepted, rejected atomic.Int32
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			item := tee(1)
			item.StockCeiling = &ceiling
			res, _ := svc.AddItem("drop", item)
			if res.OK() {
				accepted.Add(1)
			} else {
				rejected.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(30), accepted.Load())
	assert.Equal(t, int32(20), rejected.Load())
	assert.Equal(t, 30, svc.Snapshot("drop").TotalItemCount)
}
