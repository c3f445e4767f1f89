package status

import (
	"sort"
	"strings"

	"dispatch/internal/core/domain/model/carrier"
)

// Normalizer maps each vendor's raw status vocabulary onto the MasterStatus
// taxonomy. Navex reports in French with inconsistent casing; the simulated
// carrier reports snake_case English.
//
// Normalize is a pure function over immutable tables: identical inputs always
// produce identical output. A Normalizer is safe for concurrent use.
type Normalizer struct {
	vocabularies map[carrier.Type]map[string]MasterStatus

	// entries holds each vocabulary's keys sorted longest-first so
	// substring resolution is deterministic: the most specific entry wins.
	entries map[carrier.Type][]string
}

// NewNormalizer builds the normalizer with the built-in vendor vocabularies.
func NewNormalizer() *Normalizer {
	n := &Normalizer{
		vocabularies: map[carrier.Type]map[string]MasterStatus{
			carrier.Navex: {
				"En attente":              Pending,
				"En attente de dépôt":     Pending,
				"En préparation":          Preparing,
				"Prêt à expédier":         ReadyToShip,
				"En attente de ramassage": ReadyToShip,
				"Ramassé":                 PickedUp,
				"Enlevé":                  PickedUp,
				"Au dépôt":                InTransit,
				"En transit":              InTransit,
				"En cours":                InTransit,
				"En cours de livraison":   OutForDelivery,
				"Sorti pour livraison":    OutForDelivery,
				"Livré":                   Delivered,
				"Livraison échouée":       Failed,
				"Échec de livraison":      Failed,
				"Tentative échouée":       Failed,
				"Retour":                  Returned,
				"Retourné":                Returned,
				"Retour à l'expéditeur":   Returned,
				"Annulé":                  Cancelled,
				"Annulé par le client":    Cancelled,
			},
			carrier.Simulated: {
				"pending":          Pending,
				"processing":       Preparing,
				"ready":            ReadyToShip,
				"picked_up":        PickedUp,
				"in_transit":       InTransit,
				"out_for_delivery": OutForDelivery,
				"delivered":        Delivered,
				"failed":           Failed,
				"returned":         Returned,
				"cancelled":        Cancelled,
			},
		},
	}

	n.entries = make(map[carrier.Type][]string, len(n.vocabularies))
	for carrierType, vocabulary := range n.vocabularies {
		entries := make([]string, 0, len(vocabulary))
		for entry := range vocabulary {
			entries = append(entries, entry)
		}
		sort.Slice(entries, func(i, j int) bool {
			if len(entries[i]) != len(entries[j]) {
				return len(entries[i]) > len(entries[j])
			}
			return entries[i] < entries[j]
		})
		n.entries[carrierType] = entries
	}

	return n
}

// keyword groups for the heuristic fallback, checked in order. Terminal
// outcomes come first so "retour après échec" lands on Returned, not Failed.
var keywordGroups = []struct {
	status   MasterStatus
	keywords []string
}{
	{Delivered, []string{"livré", "livre", "delivered", "remis au client"}},
	{Returned, []string{"retour", "return", "renvoyé", "renvoye"}},
	{Cancelled, []string{"annul", "cancel"}},
	{Failed, []string{"échec", "echec", "échou", "echou", "fail", "injoignable"}},
	{OutForDelivery, []string{"cours de livraison", "out for delivery"}},
	{InTransit, []string{"transit", "en cours", "dépôt", "depot"}},
	{PickedUp, []string{"ramass", "enlev", "picked", "pickup"}},
}

// Normalize maps a raw vendor status string onto the taxonomy.
//
// The algorithm, in order: exact match against the carrier's vocabulary,
// case-insensitive match, substring match in either direction, keyword
// heuristic across supported languages, and finally a default of Pending.
//
// The second return value reports whether the raw status was recognized.
// A false value is a normalization miss: the caller keeps the Pending default
// and should log the raw string for vocabulary-table maintenance. A miss never
// fails the calling operation.
func (n *Normalizer) Normalize(rawStatus string, carrierType carrier.Type) (MasterStatus, bool) {
	raw := strings.TrimSpace(rawStatus)
	if raw == "" {
		return Pending, false
	}

	vocabulary := n.vocabularies[carrierType]

	if status, ok := vocabulary[raw]; ok {
		return status, true
	}

	for _, entry := range n.entries[carrierType] {
		if strings.EqualFold(entry, raw) {
			return vocabulary[entry], true
		}
	}

	lowerRaw := strings.ToLower(raw)
	for _, entry := range n.entries[carrierType] {
		lowerEntry := strings.ToLower(entry)
		if strings.Contains(lowerRaw, lowerEntry) || strings.Contains(lowerEntry, lowerRaw) {
			return vocabulary[entry], true
		}
	}

	for _, group := range keywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lowerRaw, keyword) {
				return group.status, true
			}
		}
	}

	return Pending, false
}
