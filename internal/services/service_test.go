package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/payflow/internal/apperr"
	"github.com/example/payflow/internal/gateway"
	"github.com/example/payflow/internal/models"
	"github.com/example/payflow/internal/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Merchant{}, &models.Transaction{}))
	return db
}

// stubGateway counts invocations and returns a canned result, optionally
// after a delay so timeout behavior can be exercised.
type stubGateway struct {
	name   string
	result gateway.ChargeResult
	delay  time.Duration
	calls  atomic.Int32
}

func (s *stubGateway) Name() string { return s.name }

func (s *stubGateway) Charge(ctx context.Context, _ gateway.ChargeRequest) gateway.ChargeResult {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return gateway.ChargeResult{Message: "gateway timed out", Err: apperr.ErrGatewayTimeout}
		}
	}
	return s.result
}

func approvingStub(name string) *stubGateway {
	return &stubGateway{name: name, result: gateway.ChargeResult{
		Approved:  true,
		Reference: name + "_ref",
		Message:   "Payment processed successfully",
	}}
}

func decliningStub(name string) *stubGateway {
	return &stubGateway{name: name, result: gateway.ChargeResult{
		Reference: name + "_ref",
		Message:   "Insufficient funds",
	}}
}

type testEnv struct {
	merchants    *MerchantService
	transactions *TransactionService
	analytics    *AnalyticsService
	txnStore     *store.TransactionStore
}

func newTestEnv(t *testing.T, scope VolumeScope, gateways ...gateway.Gateway) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zap.NewNop()

	merchantStore := store.NewMerchantStore(db)
	txnStore := store.NewTransactionStore(db)

	merchants := NewMerchantService(merchantStore, log)
	analytics := NewAnalyticsService(txnStore, scope, log)
	transactions := NewTransactionService(
		merchants, txnStore, gateway.NewRegistry(gateways...), analytics, time.Second, log,
	)

	return &testEnv{
		merchants:    merchants,
		transactions: transactions,
		analytics:    analytics,
		txnStore:     txnStore,
	}
}

func (e *testEnv) createMerchant(t *testing.T, email, preferred string) *models.Merchant {
	t.Helper()
	m, err := e.merchants.Create(CreateMerchantInput{
		Name:             "Acme",
		Email:            email,
		PreferredGateway: preferred,
	})
	require.NoError(t, err)
	return m
}
