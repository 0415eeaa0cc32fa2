// Package client holds the counterparty registry: the catalog of
// counterparties the desk can face, their connected economic groups and
// their credit limits. The registry is collaborator state; the exposure
// engine only ever reads it.
package client

import (
	"sort"

	"github.com/rustyeddy/forward415/trade"
)

// Counterparty is one registry entry. CreditLine is the approved credit
// line (LCA) and LLL the legal lending limit; both are consumed by the
// engine as plain scalars.
type Counterparty struct {
	TaxID      string // normalized
	Name       string
	Group      string // connected economic group, may be empty
	CreditLine float64
	CushionPct float64 // internal buffer, fraction of the line
	LLL        float64
}

// Registry is a read-only counterparty catalog after construction.
type Registry struct {
	byID   map[string]Counterparty
	groups map[string][]string // group -> member tax ids
}

// NewRegistry builds a registry from entries. Tax ids are normalized;
// a duplicate id keeps the last entry.
func NewRegistry(entries []Counterparty) *Registry {
	r := &Registry{
		byID:   make(map[string]Counterparty, len(entries)),
		groups: make(map[string][]string),
	}
	for _, e := range entries {
		e.TaxID = trade.NormalizeTaxID(e.TaxID)
		r.byID[e.TaxID] = e
	}
	for id, e := range r.byID {
		if e.Group != "" {
			r.groups[e.Group] = append(r.groups[e.Group], id)
		}
	}
	for g := range r.groups {
		sort.Strings(r.groups[g])
	}
	return r
}

// Lookup returns the entry for a (possibly unnormalized) tax id.
func (r *Registry) Lookup(taxID string) (Counterparty, bool) {
	c, ok := r.byID[trade.NormalizeTaxID(taxID)]
	return c, ok
}

// GroupOf reports the counterparty's connected group. Only groups with
// more than one member count: a single-member "group" adds nothing over
// the counterparty's own aggregation.
func (r *Registry) GroupOf(taxID string) (string, bool) {
	c, ok := r.Lookup(taxID)
	if !ok || c.Group == "" {
		return "", false
	}
	if len(r.groups[c.Group]) < 2 {
		return "", false
	}
	return c.Group, true
}

// Members lists the tax ids in a group, sorted.
func (r *Registry) Members(group string) []string {
	return append([]string(nil), r.groups[group]...)
}

// All lists every counterparty sorted by tax id, for catalog display.
func (r *Registry) All() []Counterparty {
	out := make([]Counterparty, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaxID < out[j].TaxID })
	return out
}

// Len is the number of registered counterparties.
func (r *Registry) Len() int { return len(r.byID) }
