package services

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/payflow/internal/models"
	"github.com/example/payflow/internal/store"
)

// VolumeScope selects which transactions contribute to total_volume.
type VolumeScope string

const (
	// VolumeAll counts every attempted amount regardless of outcome.
	VolumeAll VolumeScope = "all"
	// VolumeSuccess counts only successfully charged amounts.
	VolumeSuccess VolumeScope = "success"
)

// Snapshot is the aggregate view returned by the stats endpoint. The counters
// always satisfy total == successful + failed + pending.
type Snapshot struct {
	TotalTransactions      int64           `json:"total_transactions"`
	SuccessfulTransactions int64           `json:"successful_transactions"`
	FailedTransactions     int64           `json:"failed_transactions"`
	PendingTransactions    int64           `json:"pending_transactions"`
	TotalVolume            decimal.Decimal `json:"total_volume"`
	SuccessRate            float64         `json:"success_rate"`
}

// AnalyticsService maintains running transaction counters so stats queries
// never rescan history. The transaction store stays authoritative: the live
// snapshot must always equal a full replay from empty, and Recompute provides
// that reconciliation path.
type AnalyticsService struct {
	store *store.TransactionStore
	scope VolumeScope
	log   *zap.Logger

	mu      sync.RWMutex
	total   int64
	success int64
	failed  int64
	pending int64
	volume  decimal.Decimal
}

// NewAnalyticsService constructs an aggregator with empty counters.
func NewAnalyticsService(st *store.TransactionStore, scope VolumeScope, log *zap.Logger) *AnalyticsService {
	if scope != VolumeSuccess {
		scope = VolumeAll
	}
	return &AnalyticsService{store: st, scope: scope, volume: decimal.Zero, log: log}
}

// Record applies one status change to the counters. prev is empty for a newly
// created transaction. The whole update happens under one lock so readers
// never observe a count without its matching volume.
func (a *AnalyticsService) Record(prev, next models.Status, amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.apply(prev, next, amount)
}

func (a *AnalyticsService) apply(prev, next models.Status, amount decimal.Decimal) {
	if prev == "" {
		a.total++
		if a.scope == VolumeAll {
			a.volume = a.volume.Add(amount)
		}
	} else {
		a.decrement(prev)
	}

	switch next {
	case models.StatusPending:
		a.pending++
	case models.StatusSuccess:
		a.success++
		if a.scope == VolumeSuccess {
			a.volume = a.volume.Add(amount)
		}
	case models.StatusFailed:
		a.failed++
	}
}

func (a *AnalyticsService) decrement(s models.Status) {
	switch s {
	case models.StatusPending:
		a.pending--
	case models.StatusSuccess:
		a.success--
	case models.StatusFailed:
		a.failed--
	}
}

// Stats returns the current snapshot. Readers only take the read lock, so
// the polling endpoints never block writes for long.
func (a *AnalyticsService) Stats() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return snapshotFrom(a.total, a.success, a.failed, a.pending, a.volume)
}

// Recompute replays the transaction store from empty and returns the
// resulting snapshot. It is the reconciliation/audit path and also serves
// filtered stats queries.
func (a *AnalyticsService) Recompute(f store.TransactionFilter) (Snapshot, error) {
	var total, success, failed, pending int64
	volume := decimal.Zero

	err := a.store.Replay(f, func(t models.Transaction) error {
		total++
		switch t.Status {
		case models.StatusSuccess:
			success++
		case models.StatusFailed:
			failed++
		case models.StatusPending:
			pending++
		}
		if a.scope == VolumeAll || (a.scope == VolumeSuccess && t.Status == models.StatusSuccess) {
			volume = volume.Add(t.Amount)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotFrom(total, success, failed, pending, volume), nil
}

// Seed replaces the live counters with a full replay. Called once at startup
// so the aggregator agrees with whatever the store already holds.
func (a *AnalyticsService) Seed() error {
	snap, err := a.Recompute(store.TransactionFilter{})
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.total = snap.TotalTransactions
	a.success = snap.SuccessfulTransactions
	a.failed = snap.FailedTransactions
	a.pending = snap.PendingTransactions
	a.volume = snap.TotalVolume
	a.mu.Unlock()

	a.log.Info("analytics seeded from store",
		zap.Int64("total_transactions", snap.TotalTransactions),
		zap.String("total_volume", snap.TotalVolume.String()),
	)
	return nil
}

// GatewayStats summarizes one gateway's share of the transaction stream.
type GatewayStats struct {
	Total       int64           `json:"total"`
	Successful  int64           `json:"successful"`
	Failed      int64           `json:"failed"`
	Volume      decimal.Decimal `json:"volume"`
	SuccessRate float64         `json:"success_rate"`
}

// GatewayPerformance computes per-gateway totals by replaying the store.
func (a *AnalyticsService) GatewayPerformance() (map[string]GatewayStats, error) {
	stats := make(map[string]GatewayStats)
	err := a.store.Replay(store.TransactionFilter{}, func(t models.Transaction) error {
		gs, ok := stats[t.Gateway]
		if !ok {
			gs = GatewayStats{Volume: decimal.Zero}
		}
		gs.Total++
		switch t.Status {
		case models.StatusSuccess:
			gs.Successful++
			gs.Volume = gs.Volume.Add(t.Amount)
		case models.StatusFailed:
			gs.Failed++
		}
		stats[t.Gateway] = gs
		return nil
	})
	if err != nil {
		return nil, err
	}

	for name, gs := range stats {
		if gs.Total > 0 {
			gs.SuccessRate = round2(float64(gs.Successful) / float64(gs.Total) * 100)
		}
		stats[name] = gs
	}
	return stats, nil
}

func snapshotFrom(total, success, failed, pending int64, volume decimal.Decimal) Snapshot {
	snap := Snapshot{
		TotalTransactions:      total,
		SuccessfulTransactions: success,
		FailedTransactions:     failed,
		PendingTransactions:    pending,
		TotalVolume:            volume,
	}
	if total > 0 {
		snap.SuccessRate = round2(float64(success) / float64(total) * 100)
	}
	return snap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
