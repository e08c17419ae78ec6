package lookup

import (
	"strings"
	"unicode"

	"fjacquet/fattura-csv/internal/models"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultAliases is the built-in customer alias table, in match order.
func DefaultAliases() []models.CustomerAlias {
	return []models.CustomerAlias{
		{Canonical: "VA", Patterns: []string{"VALORIZZAZIONE"}},
		{Canonical: "DO", Patterns: []string{"DOIOLA"}},
		{Canonical: "Coste", Patterns: []string{"COSTE"}},
		{Canonical: "SV", Patterns: []string{"SAN VITTORE"}},
		{Canonical: "METANIA", Patterns: []string{"METANIA", "CERADA"}},
	}
}

type foldedAlias struct {
	canonical string
	patterns  []string
}

// Normalizer shortens customer names through an ordered alias table.
type Normalizer struct {
	aliases []foldedAlias
}

// NewNormalizer builds a Normalizer. A nil or empty table selects
// DefaultAliases.
func NewNormalizer(aliases []models.CustomerAlias) *Normalizer {
	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}

	n := &Normalizer{aliases: make([]foldedAlias, 0, len(aliases))}
	for _, a := range aliases {
		fa := foldedAlias{canonical: strings.TrimSpace(a.Canonical)}
		for _, p := range a.Patterns {
			if folded := fold(p); folded != "" {
				fa.patterns = append(fa.patterns, folded)
			}
		}
		n.aliases = append(n.aliases, fa)
	}
	return n
}

// Normalize returns the canonical name of the first alias with a pattern
// contained in name. Unmatched names are returned trimmed with their case
// preserved; an empty name is "N/A".
func (n *Normalizer) Normalize(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.NotAvailable
	}

	folded := fold(trimmed)
	for _, a := range n.aliases {
		for _, p := range a.patterns {
			if strings.Contains(folded, p) {
				return a.canonical
			}
		}
	}
	return trimmed
}

// fold upper-cases s and strips combining marks, so "Società Cerâda" and
// "SOCIETA CERADA" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}
