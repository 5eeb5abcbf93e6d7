package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/payflow/internal/models"
	"github.com/example/payflow/internal/store"
)

func TestStatsEmpty(t *testing.T) {
	env := newTestEnv(t, VolumeAll)

	stats := env.analytics.Stats()
	assert.EqualValues(t, 0, stats.TotalTransactions)
	assert.Equal(t, 0.0, stats.SuccessRate, "rate is defined as 0 with no transactions")
	assert.True(t, stats.TotalVolume.IsZero())
}

func TestStatsCountersSum(t *testing.T) {
	env := newTestEnv(t, VolumeAll)
	a := env.analytics

	amount := decimal.NewFromInt(10)
	a.Record("", models.StatusPending, amount)
	a.Record("", models.StatusPending, amount)
	a.Record("", models.StatusPending, amount)
	a.Record(models.StatusPending, models.StatusSuccess, amount)
	a.Record(models.StatusPending, models.StatusFailed, amount)

	stats := a.Stats()
	assert.EqualValues(t, 3, stats.TotalTransactions)
	assert.EqualValues(t, 1, stats.SuccessfulTransactions)
	assert.EqualValues(t, 1, stats.FailedTransactions)
	assert.EqualValues(t, 1, stats.PendingTransactions)
	assert.Equal(t, stats.TotalTransactions,
		stats.SuccessfulTransactions+stats.FailedTransactions+stats.PendingTransactions)
	assert.True(t, stats.TotalVolume.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 33.33, stats.SuccessRate)
}

func TestStatsConcurrentRecordings(t *testing.T) {
	env := newTestEnv(t, VolumeAll)
	a := env.analytics

	const workers = 20
	const perWorker = 50
	amount := decimal.NewFromFloat(2.5)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		final := models.StatusSuccess
		if i%2 == 1 {
			final = models.StatusFailed
		}
		wg.Add(1)
		go func(final models.Status) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				a.Record("", models.StatusPending, amount)
				a.Record(models.StatusPending, final, amount)
			}
		}(final)
	}
	wg.Wait()

	stats := a.Stats()
	assert.EqualValues(t, workers*perWorker, stats.TotalTransactions)
	assert.Equal(t, stats.TotalTransactions,
		stats.SuccessfulTransactions+stats.FailedTransactions+stats.PendingTransactions)
	assert.EqualValues(t, 0, stats.PendingTransactions)
	want := amount.Mul(decimal.NewFromInt(workers * perWorker))
	assert.True(t, stats.TotalVolume.Equal(want), "got %s want %s", stats.TotalVolume, want)
	assert.Equal(t, 50.0, stats.SuccessRate)
}

func TestRecomputeMatchesLiveSnapshot(t *testing.T) {
	// Mixed outcomes: razorpay approves, stripe declines.
	env := newTestEnv(t, VolumeAll,
		approvingStub(models.GatewayRazorpay), decliningStub(models.GatewayStripe))
	m := env.createMerchant(t, "a@acme.com", models.GatewayRazorpay)

	for i := 0; i < 30; i++ {
		gw := models.GatewayRazorpay
		if i%3 == 0 {
			gw = models.GatewayStripe
		}
		_, err := env.transactions.Create(context.Background(), CreateTransactionInput{
			MerchantID:    m.MerchantID,
			Amount:        decimal.NewFromFloat(float64(i) + 0.25),
			Gateway:       gw,
			CustomerEmail: fmt.Sprintf("c%d@x.com", i),
		})
		require.NoError(t, err)
	}

	live := env.analytics.Stats()
	replayed, err := env.analytics.Recompute(store.TransactionFilter{})
	require.NoError(t, err)

	assert.Equal(t, live.TotalTransactions, replayed.TotalTransactions)
	assert.Equal(t, live.SuccessfulTransactions, replayed.SuccessfulTransactions)
	assert.Equal(t, live.FailedTransactions, replayed.FailedTransactions)
	assert.Equal(t, live.PendingTransactions, replayed.PendingTransactions)
	assert.True(t, live.TotalVolume.Equal(replayed.TotalVolume),
		"live %s vs replayed %s", live.TotalVolume, replayed.TotalVolume)
	assert.Equal(t, live.SuccessRate, replayed.SuccessRate)
}

func TestVolumeScopeSuccessOnly(t *testing.T) {
	env := newTestEnv(t, VolumeSuccess,
		approvingStub(models.GatewayRazorpay), decliningStub(models.GatewayStripe))
	m := env.createMerchant(t, "a@acme.com", models.GatewayRazorpay)

	_, err := env.transactions.Create(context.Background(), CreateTransactionInput{
		MerchantID:    m.MerchantID,
		Amount:        decimal.NewFromInt(100),
		Gateway:       models.GatewayRazorpay,
		CustomerEmail: "c@x.com",
	})
	require.NoError(t, err)
	_, err = env.transactions.Create(context.Background(), CreateTransactionInput{
		MerchantID:    m.MerchantID,
		Amount:        decimal.NewFromInt(40),
		Gateway:       models.GatewayStripe,
		CustomerEmail: "c@x.com",
	})
	require.NoError(t, err)

	stats := env.analytics.Stats()
	assert.EqualValues(t, 2, stats.TotalTransactions)
	assert.True(t, stats.TotalVolume.Equal(decimal.NewFromInt(100)),
		"declined amounts are excluded under the success scope, got %s", stats.TotalVolume)

	replayed, err := env.analytics.Recompute(store.TransactionFilter{})
	require.NoError(t, err)
	assert.True(t, replayed.TotalVolume.Equal(stats.TotalVolume))
}

func TestSeedRebuildsFromStore(t *testing.T) {
	env := newTestEnv(t, VolumeAll, approvingStub(models.GatewayRazorpay))
	m := env.createMerchant(t, "a@acme.com", models.GatewayRazorpay)

	for i := 0; i < 5; i++ {
		_, err := env.transactions.Create(context.Background(), CreateTransactionInput{
			MerchantID:    m.MerchantID,
			Amount:        decimal.NewFromInt(int64(i + 1)),
			CustomerEmail: "c@x.com",
		})
		require.NoError(t, err)
	}
	before := env.analytics.Stats()

	// A fresh aggregator over the same store converges to the same snapshot.
	fresh := NewAnalyticsService(env.txnStore, VolumeAll, zap.NewNop())
	require.NoError(t, fresh.Seed())
	after := fresh.Stats()

	assert.Equal(t, before, after)
}

func TestGatewayPerformance(t *testing.T) {
	env := newTestEnv(t, VolumeAll,
		approvingStub(models.GatewayRazorpay), decliningStub(models.GatewayStripe))
	m := env.createMerchant(t, "a@acme.com", models.GatewayRazorpay)

	for i := 0; i < 4; i++ {
		_, err := env.transactions.Create(context.Background(), CreateTransactionInput{
			MerchantID:    m.MerchantID,
			Amount:        decimal.NewFromInt(25),
			Gateway:       models.GatewayRazorpay,
			CustomerEmail: "c@x.com",
		})
		require.NoError(t, err)
	}
	_, err := env.transactions.Create(context.Background(), CreateTransactionInput{
		MerchantID:    m.MerchantID,
		Amount:        decimal.NewFromInt(10),
		Gateway:       models.GatewayStripe,
		CustomerEmail: "c@x.com",
	})
	require.NoError(t, err)

	perf, err := env.analytics.GatewayPerformance()
	require.NoError(t, err)

	razorpay := perf[models.GatewayRazorpay]
	assert.EqualValues(t, 4, razorpay.Total)
	assert.EqualValues(t, 4, razorpay.Successful)
	assert.Equal(t, 100.0, razorpay.SuccessRate)
	assert.True(t, razorpay.Volume.Equal(decimal.NewFromInt(100)))

	stripe := perf[models.GatewayStripe]
	assert.EqualValues(t, 1, stripe.Total)
	assert.EqualValues(t, 1, stripe.Failed)
	assert.Equal(t, 0.0, stripe.SuccessRate)
	assert.True(t, stripe.Volume.IsZero())
}
