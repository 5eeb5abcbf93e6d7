package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/payflow/internal/apperr"
	"github.com/example/payflow/internal/models"
)

func TestCreateMerchant(t *testing.T) {
	env := newTestEnv(t, VolumeAll)

	m := env.createMerchant(t, "a@acme.com", models.GatewayStripe)

	assert.True(t, strings.HasPrefix(m.MerchantID, "MERCH_"))
	assert.True(t, strings.HasPrefix(m.APIKey, "sk_live_"))
	assert.Equal(t, "Acme", m.MerchantName)
	assert.Equal(t, models.GatewayStripe, m.PreferredGateway)
	assert.True(t, m.IsActive)
	assert.False(t, m.CreatedAt.IsZero())

	// Identity is stable across subsequent reads.
	again, err := env.merchants.Get(m.MerchantID)
	require.NoError(t, err)
	assert.Equal(t, m.MerchantID, again.MerchantID)
	assert.Equal(t, m.APIKey, again.APIKey)
	assert.Equal(t, m.CreatedAt, again.CreatedAt)
}

func TestCreateMerchantDefaultsGateway(t *testing.T) {
	env := newTestEnv(t, VolumeAll)

	m, err := env.merchants.Create(CreateMerchantInput{Name: "Acme", Email: "a@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultGateway, m.PreferredGateway)
}

func TestCreateMerchantValidation(t *testing.T) {
	env := newTestEnv(t, VolumeAll)

	_, err := env.merchants.Create(CreateMerchantInput{Name: "", Email: "a@acme.com"})
	assert.True(t, apperr.IsValidation(err))

	_, err = env.merchants.Create(CreateMerchantInput{Name: "Acme", Email: "not-an-email"})
	assert.True(t, apperr.IsValidation(err))

	_, err = env.merchants.Create(CreateMerchantInput{
		Name: "Acme", Email: "a@acme.com", PreferredGateway: "cashfree",
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateMerchantDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, VolumeAll)
	env.createMerchant(t, "a@acme.com", models.GatewayStripe)

	_, err := env.merchants.Create(CreateMerchantInput{Name: "Other", Email: "a@acme.com"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)

	// An inactive merchant still holds its email.
	m2 := env.createMerchant(t, "b@acme.com", "")
	_, err = env.merchants.Deactivate(m2.MerchantID)
	require.NoError(t, err)
	_, err = env.merchants.Create(CreateMerchantInput{Name: "Other", Email: "b@acme.com"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
}

func TestCreateMerchantConcurrentDuplicate(t *testing.T) {
	env := newTestEnv(t, VolumeAll)

	const racers = 10
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.merchants.Create(CreateMerchantInput{Name: "Acme", Email: "race@acme.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, apperr.ErrDuplicateEmail)
			duplicates++
		}
	}
	assert.Equal(t, 1, successes, "exactly one create may win the race")
	assert.Equal(t, racers-1, duplicates)
}

func TestMerchantIDsUnique(t *testing.T) {
	env := newTestEnv(t, VolumeAll)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		m := env.createMerchant(t, fmt.Sprintf("m%d@acme.com", i), "")
		assert.False(t, seen[m.MerchantID])
		assert.False(t, seen[m.APIKey])
		seen[m.MerchantID] = true
		seen[m.APIKey] = true
	}
}

func TestDeactivateMerchantIdempotent(t *testing.T) {
	env := newTestEnv(t, VolumeAll)
	m := env.createMerchant(t, "a@acme.com", "")

	deactivated, err := env.merchants.Deactivate(m.MerchantID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	deactivated, err = env.merchants.Deactivate(m.MerchantID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	_, err = env.merchants.Deactivate("MERCH_NOPE")
	assert.ErrorIs(t, err, apperr.ErrMerchantNotFound)
}

func TestListMerchantsInsertionOrder(t *testing.T) {
	env := newTestEnv(t, VolumeAll)

	first := env.createMerchant(t, "a@acme.com", "")
	second := env.createMerchant(t, "b@acme.com", "")
	third := env.createMerchant(t, "c@acme.com", "")

	merchants, err := env.merchants.List(100, 0)
	require.NoError(t, err)
	require.Len(t, merchants, 3)
	assert.Equal(t, first.MerchantID, merchants[0].MerchantID)
	assert.Equal(t, second.MerchantID, merchants[1].MerchantID)
	assert.Equal(t, third.MerchantID, merchants[2].MerchantID)
}
