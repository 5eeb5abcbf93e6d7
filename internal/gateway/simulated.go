package gateway

import (
	"context"
	"math/rand"
	"time"

	"github.com/example/payflow/internal/apperr"
	"github.com/example/payflow/internal/identifier"
	"github.com/example/payflow/internal/models"
)

// Profile describes the simulated behavior of one provider variant. Real
// gateways differ in round-trip latency and decline rates; the profiles keep
// those differences without touching the orchestrator.
type Profile struct {
	Name           string
	Latency        time.Duration
	DeclineRate    float64
	ApproveMessage string
	DeclineMessage string
}

var profiles = []Profile{
	{models.GatewayRazorpay, 120 * time.Millisecond, 0.10, "Payment processed successfully", "Insufficient funds"},
	{models.GatewayStripe, 80 * time.Millisecond, 0.08, "Payment completed", "Card declined"},
	{models.GatewayPaytm, 150 * time.Millisecond, 0.12, "Transaction successful", "Payment failed"},
	{models.GatewayPhonePe, 200 * time.Millisecond, 0.15, "UPI payment successful", "UPI transaction failed"},
}

// Options tune the simulated set as a whole. LatencyScale zero keeps each
// profile's own latency, but DeclineRate zero is a real override (never
// decline): callers that want the per-profile decline rates must pass a
// negative sentinel, which is the config default.
type Options struct {
	// LatencyScale multiplies every profile's latency. Negative disables
	// artificial latency entirely (used by tests).
	LatencyScale float64
	// DeclineRate, when in [0, 1], replaces every profile's decline rate.
	// Outside that range each profile keeps its own.
	DeclineRate float64
	// Roll returns a value in [0, 1) compared against the decline rate.
	// Defaults to rand.Float64; tests inject a fixed roll for determinism.
	Roll func() float64
}

// Simulated is a provider connector that fabricates outcomes instead of
// calling an external API.
type Simulated struct {
	profile Profile
	roll    func() float64
}

// NewSimulated builds a connector for one profile with the given options.
func NewSimulated(p Profile, opts Options) *Simulated {
	if opts.LatencyScale < 0 {
		p.Latency = 0
	} else if opts.LatencyScale > 0 {
		p.Latency = time.Duration(float64(p.Latency) * opts.LatencyScale)
	}
	if opts.DeclineRate >= 0 && opts.DeclineRate <= 1 {
		p.DeclineRate = opts.DeclineRate
	}
	roll := opts.Roll
	if roll == nil {
		roll = rand.Float64
	}
	return &Simulated{profile: p, roll: roll}
}

// DefaultSet returns the four supported provider variants.
func DefaultSet(opts Options) []Gateway {
	out := make([]Gateway, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewSimulated(p, opts))
	}
	return out
}

// Name implements Gateway.
func (s *Simulated) Name() string {
	return s.profile.Name
}

// Charge implements Gateway. It waits the profile's latency, honoring ctx
// cancellation, then rolls the decline probability.
func (s *Simulated) Charge(ctx context.Context, req ChargeRequest) ChargeResult {
	if s.profile.Latency > 0 {
		timer := time.NewTimer(s.profile.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ChargeResult{
				Message: "gateway timed out",
				Err:     apperr.ErrGatewayTimeout,
			}
		}
	} else if err := ctx.Err(); err != nil {
		return ChargeResult{
			Message: "gateway timed out",
			Err:     apperr.ErrGatewayTimeout,
		}
	}

	reference := s.profile.Name + "_" + identifier.NewGatewayReference()
	if s.roll() < s.profile.DeclineRate {
		return ChargeResult{
			Reference: reference,
			Message:   s.profile.DeclineMessage,
		}
	}
	return ChargeResult{
		Approved:  true,
		Reference: reference,
		Message:   s.profile.ApproveMessage,
	}
}
