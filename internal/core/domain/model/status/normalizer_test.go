package status_test

import (
	"testing"

	"dispatch/internal/core/domain/model/carrier"
	"dispatch/internal/core/domain/model/status"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := status.NewNormalizer()

	t.Run("exact_match_against_navex_vocabulary", func(t *testing.T) {
		got, matched := normalizer.Normalize("Livré", carrier.Navex)

		assert.True(t, matched)
		assert.Equal(t, status.Delivered, got)
	})

	t.Run("case_insensitive_match", func(t *testing.T) {
		got, matched := normalizer.Normalize("livré", carrier.Navex)

		assert.True(t, matched)
		assert.Equal(t, status.Delivered, got)

		got, matched = normalizer.Normalize("EN TRANSIT", carrier.Navex)

		assert.True(t, matched)
		assert.Equal(t, status.InTransit, got)
	})

	t.Run("substring_match_either_direction", func(t *testing.T) {
		// Vendor appends detail to a known status.
		got, matched := normalizer.Normalize("Livraison échouée - client absent", carrier.Navex)

		assert.True(t, matched)
		assert.Equal(t, status.Failed, got)

		// Vendor abbreviates a known status.
		got, matched = normalizer.Normalize("attente de ramassage", carrier.Navex)

		assert.True(t, matched)
		assert.Equal(t, status.ReadyToShip, got)
	})

	t.Run("longest_vocabulary_entry_wins_on_substring", func(t *testing.T) {
		got, matched := normalizer.Normalize("En cours de livraison (2e tentative)", carrier.Navex)

		assert.True(t, matched)
		assert.Equal(t, status.OutForDelivery, got)
	})

	t.Run("keyword_heuristic_across_languages", func(t *testing.T) {
		got, matched := normalizer.Normalize("Colis livré au voisin", carrier.Navex)
		assert.True(t, matched)
		assert.Equal(t, status.Delivered, got)

		got, matched = normalizer.Normalize("shipment delivered at door", carrier.Simulated)
		assert.True(t, matched)
		assert.Equal(t, status.Delivered, got)

		got, matched = normalizer.Normalize("retour entrepôt programmé", carrier.Navex)
		assert.True(t, matched)
		assert.Equal(t, status.Returned, got)
	})

	t.Run("unrecognized_status_defaults_to_pending_with_miss_flag", func(t *testing.T) {
		got, matched := normalizer.Normalize("XYZ-UNKNOWN", carrier.Navex)

		assert.False(t, matched)
		assert.Equal(t, status.Pending, got)
	})

	t.Run("empty_status_is_a_miss", func(t *testing.T) {
		got, matched := normalizer.Normalize("  ", carrier.Navex)

		assert.False(t, matched)
		assert.Equal(t, status.Pending, got)
	})

	t.Run("simulated_vocabulary", func(t *testing.T) {
		got, matched := normalizer.Normalize("out_for_delivery", carrier.Simulated)

		assert.True(t, matched)
		assert.Equal(t, status.OutForDelivery, got)
	})

	t.Run("is_pure_over_repeated_calls", func(t *testing.T) {
		inputs := []string{"Livré", "livré", "XYZ-UNKNOWN", "En cours de livraison (2e tentative)", "retour"}
		for _, input := range inputs {
			first, firstMatched := normalizer.Normalize(input, carrier.Navex)
			for range 50 {
				again, againMatched := normalizer.Normalize(input, carrier.Navex)
				assert.Equal(t, first, again, input)
				assert.Equal(t, firstMatched, againMatched, input)
			}
		}
	})
}
