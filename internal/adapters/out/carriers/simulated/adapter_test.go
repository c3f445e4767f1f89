package simulated_test

import (
	"context"
	"strings"
	"testing"

	"dispatch/internal/adapters/out/carriers/simulated"
	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAdapter() *simulated.Adapter {
	return simulated.NewAdapter(
		carrier.SimulatedCredentials{Label: "demo"},
		geo.NewDirectory(),
		simulated.NewThreeStepProgression(),
	)
}

func buildOrderTo(t *testing.T, destination string) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		"Amine Ben Salah", "+21620123456", "12 rue de Carthage",
		"Tunis", destination, 2.5, 1, 89.900, "")
	require.NoError(t, err)
	return o
}

func TestAdapter_CreateShipment(t *testing.T) {
	ctx := context.Background()

	t.Run("returns_synthetic_tracking_id_and_label", func(t *testing.T) {
		result := buildAdapter().CreateShipment(ctx, buildOrderTo(t, "Tunis"))

		require.NoError(t, result.Err)
		assert.True(t, result.Success)
		assert.True(t, strings.HasPrefix(result.ExternalTrackingID, "SIM-"))
		assert.Contains(t, result.LabelRef, result.ExternalTrackingID)
		require.NotNil(t, result.CostEstimate)
	})

	t.Run("remote_destination_costs_more", func(t *testing.T) {
		adapter := buildAdapter()

		north := adapter.CreateShipment(ctx, buildOrderTo(t, "Tunis"))
		south := adapter.CreateShipment(ctx, buildOrderTo(t, "Tataouine"))

		require.NoError(t, north.Err)
		require.NoError(t, south.Err)
		assert.Greater(t, *south.CostEstimate, *north.CostEstimate)
	})

	t.Run("distinct_shipments_get_distinct_ids", func(t *testing.T) {
		adapter := buildAdapter()

		first := adapter.CreateShipment(ctx, buildOrderTo(t, "Tunis"))
		second := adapter.CreateShipment(ctx, buildOrderTo(t, "Tunis"))

		assert.NotEqual(t, first.ExternalTrackingID, second.ExternalTrackingID)
	})
}

func TestAdapter_GetTrackingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("advances_three_step_progression", func(t *testing.T) {
		adapter := buildAdapter()

		first, err := adapter.GetTrackingStatus(ctx, "SIM-1")
		require.NoError(t, err)
		second, err := adapter.GetTrackingStatus(ctx, "SIM-1")
		require.NoError(t, err)
		third, err := adapter.GetTrackingStatus(ctx, "SIM-1")
		require.NoError(t, err)

		assert.Equal(t, "in_transit", first.RawStatus)
		assert.Equal(t, "delivered", second.RawStatus)
		assert.Equal(t, "delivered", third.RawStatus)
	})

	t.Run("tracks_each_shipment_independently", func(t *testing.T) {
		adapter := buildAdapter()

		_, err := adapter.GetTrackingStatus(ctx, "SIM-1")
		require.NoError(t, err)
		other, err := adapter.GetTrackingStatus(ctx, "SIM-2")
		require.NoError(t, err)

		assert.Equal(t, "in_transit", other.RawStatus)
	})
}

func TestAdapter_CancelShipment(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled_shipment_reports_cancelled", func(t *testing.T) {
		adapter := buildAdapter()

		require.NoError(t, adapter.CancelShipment(ctx, "SIM-1"))

		update, err := adapter.GetTrackingStatus(ctx, "SIM-1")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", update.RawStatus)
	})

	t.Run("refuses_cancel_after_delivery", func(t *testing.T) {
		adapter := buildAdapter()
		_, err := adapter.GetTrackingStatus(ctx, "SIM-1")
		require.NoError(t, err)
		_, err = adapter.GetTrackingStatus(ctx, "SIM-1")
		require.NoError(t, err)

		err = adapter.CancelShipment(ctx, "SIM-1")

		require.ErrorIs(t, err, errs.ErrVendorRejection)
	})
}

func TestAdapter_QuoteRate(t *testing.T) {
	adapter := buildAdapter()

	rate, err := adapter.QuoteRate(context.Background(), buildOrderTo(t, "Kébili"))

	require.NoError(t, err)
	assert.InDelta(t, 7.0+0.8*2.5+3.5, rate, 0.001)
}

func TestAdapter_FetchLabel(t *testing.T) {
	label, err := buildAdapter().FetchLabel(context.Background(), "SIM-1")

	require.NoError(t, err)
	assert.Contains(t, string(label), "SIM-1")
	assert.Contains(t, string(label), "demo")
}

func TestAdapter_CheckCredentials(t *testing.T) {
	require.NoError(t, buildAdapter().CheckCredentials(context.Background()))
}
