// Package gateway abstracts the external payment providers behind a single
// charge capability so the orchestrator treats all variants uniformly.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeRequest carries the fields a provider needs to authorize a payment.
type ChargeRequest struct {
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
	CustomerPhone string
}

// ChargeResult is the outcome of a charge attempt. A decline is an ordinary
// business outcome, not an error; Err is set only for infrastructural
// failures such as a timeout, in which case Approved is always false.
type ChargeResult struct {
	Approved  bool
	Reference string
	Message   string
	Err       error
}

// Gateway is a single payment provider connector.
type Gateway interface {
	Name() string
	Charge(ctx context.Context, req ChargeRequest) ChargeResult
}

// Registry maps gateway names to adapters. Adding a provider means
// registering one more adapter here, not branching in the orchestrator.
type Registry struct {
	adapters map[string]Gateway
	names    []string
}

// NewRegistry builds a registry from the given adapters.
func NewRegistry(adapters ...Gateway) *Registry {
	r := &Registry{adapters: make(map[string]Gateway, len(adapters))}
	for _, g := range adapters {
		if _, ok := r.adapters[g.Name()]; ok {
			continue
		}
		r.adapters[g.Name()] = g
		r.names = append(r.names, g.Name())
	}
	return r
}

// Resolve returns the adapter registered under name.
func (r *Registry) Resolve(name string) (Gateway, bool) {
	g, ok := r.adapters[name]
	return g, ok
}

// Names returns the registered gateway names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
