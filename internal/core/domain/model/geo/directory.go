// Package geo provides the administrative-area directory used by carrier
// adapters and the smart router. It resolves free-text governorate names to
// canonical identifiers, tolerating accents, punctuation, casing, and common
// alternate spellings. Resolution is a pure lookup over a static table; there
// is no network access.
package geo

import (
	"strings"
	"unicode"

	"dispatch/internal/pkg/errs"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AreaID is the canonical identifier of an administrative area (governorate).
type AreaID int

// Tier classifies an area for routing purposes.
type Tier int

const (
	// TierStandard covers areas served by any carrier without preference.
	TierStandard Tier = iota

	// TierDense covers the dense northern coastal areas where generalist
	// carriers operate at their best rates.
	TierDense

	// TierRemote covers the remote southern areas that only specialist
	// carriers cover reliably.
	TierRemote
)

// String returns the tier's wire name.
func (t Tier) String() string {
	switch t {
	case TierDense:
		return "dense"
	case TierRemote:
		return "remote"
	}
	return "standard"
}

// DefaultAreaID is the fallback area returned when a name cannot be resolved.
// Callers must not hard-fail on unrecognized geography, so ResolveID degrades
// to the capital instead of returning an error.
const DefaultAreaID AreaID = 1

type area struct {
	id      AreaID
	name    string
	tier    Tier
	aliases []string
}

// The full governorate list. Names carry their French spelling; aliases cover
// the transliterations seen in merchant imports and vendor payloads.
var areas = []area{
	{id: 1, name: "Tunis", tier: TierDense, aliases: []string{"Grand Tunis"}},
	{id: 2, name: "Ariana", tier: TierDense, aliases: []string{"L'Ariana"}},
	{id: 3, name: "Ben Arous", tier: TierDense, aliases: []string{"Ben Arrous"}},
	{id: 4, name: "Manouba", tier: TierDense, aliases: []string{"La Manouba"}},
	{id: 5, name: "Nabeul", tier: TierDense, aliases: []string{"Nabul"}},
	{id: 6, name: "Zaghouan", tier: TierStandard, aliases: []string{"Zaghwan"}},
	{id: 7, name: "Bizerte", tier: TierDense, aliases: []string{"Banzart", "Bizerta"}},
	{id: 8, name: "Béja", tier: TierStandard, aliases: []string{"Beja"}},
	{id: 9, name: "Jendouba", tier: TierStandard, aliases: []string{"Jundubah"}},
	{id: 10, name: "Le Kef", tier: TierStandard, aliases: []string{"Kef", "El Kef"}},
	{id: 11, name: "Siliana", tier: TierStandard, aliases: []string{"Silyanah"}},
	{id: 12, name: "Sousse", tier: TierStandard, aliases: []string{"Soussa", "Susah"}},
	{id: 13, name: "Monastir", tier: TierStandard, aliases: []string{"Mestir"}},
	{id: 14, name: "Mahdia", tier: TierStandard, aliases: []string{"El Mahdia", "Mahdiya"}},
	{id: 15, name: "Sfax", tier: TierStandard, aliases: []string{"Safaqis"}},
	{id: 16, name: "Kairouan", tier: TierStandard, aliases: []string{"Kairwan", "Al Qayrawan"}},
	{id: 17, name: "Kasserine", tier: TierStandard, aliases: []string{"Kasrine", "Al Qasrayn"}},
	{id: 18, name: "Sidi Bouzid", tier: TierStandard, aliases: []string{"Sidi Bou Zid"}},
	{id: 19, name: "Gabès", tier: TierRemote, aliases: []string{"Gabes", "Qabis"}},
	{id: 20, name: "Médenine", tier: TierRemote, aliases: []string{"Medenine", "Mednine"}},
	{id: 21, name: "Tataouine", tier: TierRemote, aliases: []string{"Tatouine", "Tatawin"}},
	{id: 22, name: "Gafsa", tier: TierRemote, aliases: []string{"Qafsah"}},
	{id: 23, name: "Tozeur", tier: TierRemote, aliases: []string{"Tozer", "Tawzar"}},
	{id: 24, name: "Kébili", tier: TierRemote, aliases: []string{"Kebili", "Kebilli", "Qibili"}},
}

// Directory resolves administrative-area names to canonical identifiers and
// back. It is immutable after construction and safe for concurrent use.
type Directory struct {
	byID  map[AreaID]area
	byKey map[string]AreaID
}

// NewDirectory builds the directory from the static governorate table.
func NewDirectory() *Directory {
	d := &Directory{
		byID:  make(map[AreaID]area, len(areas)),
		byKey: make(map[string]AreaID, len(areas)*2),
	}

	for _, a := range areas {
		d.byID[a.id] = a
		d.byKey[d.normalizeKey(a.name)] = a.id
		for _, alias := range a.aliases {
			d.byKey[d.normalizeKey(alias)] = a.id
		}
	}

	return d
}

// ResolveID resolves a free-text area name to its canonical identifier.
// Resolution order: exact canonical name, diacritic/punctuation-normalized
// match, substring match in either direction. Unrecognized names resolve to
// DefaultAreaID rather than failing.
func (d *Directory) ResolveID(name string) AreaID {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultAreaID
	}

	for _, a := range d.byID {
		if a.name == trimmed {
			return a.id
		}
	}

	key := d.normalizeKey(trimmed)
	if id, ok := d.byKey[key]; ok {
		return id
	}

	for candidate, id := range d.byKey {
		if strings.Contains(candidate, key) || strings.Contains(key, candidate) {
			return id
		}
	}

	return DefaultAreaID
}

// ResolveName returns the canonical name for an area identifier.
func (d *Directory) ResolveName(id AreaID) (string, error) {
	a, ok := d.byID[id]
	if !ok {
		return "", errs.NewObjectNotFoundError("areaId", int(id))
	}
	return a.name, nil
}

// IsValid reports whether a name resolves to a known area without relying on
// the default fallback.
func (d *Directory) IsValid(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}

	key := d.normalizeKey(trimmed)
	if _, ok := d.byKey[key]; ok {
		return true
	}

	for candidate := range d.byKey {
		if strings.Contains(candidate, key) || strings.Contains(key, candidate) {
			return true
		}
	}

	return false
}

// TierOf returns the routing tier of an area. Unknown identifiers are treated
// as standard coverage.
func (d *Directory) TierOf(id AreaID) Tier {
	a, ok := d.byID[id]
	if !ok {
		return TierStandard
	}
	return a.tier
}

// TierOfName resolves a name and returns its tier in one step.
func (d *Directory) TierOfName(name string) Tier {
	return d.TierOf(d.ResolveID(name))
}

// normalizeKey lowers the case, strips diacritics and punctuation, and
// collapses whitespace so "Gabès", "gabes" and "GABES " compare equal.
// The transform chain is built per call because transformers carry state and
// are not safe for concurrent reuse.
func (d *Directory) normalizeKey(s string) string {
	folding := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folding, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
