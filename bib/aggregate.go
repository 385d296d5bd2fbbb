package bib

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/scinet/mailris/doi"
	"github.com/scinet/mailris/ris"
)

var (
	// ErrNoMessages signals a contract violation: a publication that was
	// never folded from any message reached serialization.
	ErrNoMessages = errors.New("publication has no messages")
	// ErrUnnormalizedDOI signals a publication keyed by an identifier that
	// did not pass normalization.
	ErrUnnormalizedDOI = errors.New("publication identifier not normalized")
)

// Result is the completed mapping of one aggregation run; an immutable
// snapshot once the fold is done. Publications iterate in first-seen
// order, so repeated runs over the same message sequence are order-stable.
type Result struct {
	order []string
	byDOI map[string]*Publication
}

// Aggregate folds a batch of source messages into publications grouped by
// normalized DOI. Messages without an extractable identifier are skipped,
// the fold is a synchronous single pass with no I/O.
func Aggregate(msgs []SourceMessage) *Result {
	res := &Result{byDOI: make(map[string]*Publication)}
	for _, msg := range msgs {
		key := doi.Normalize(msg.DOI)
		if key == "" {
			continue
		}
		pub, ok := res.byDOI[key]
		if !ok {
			pub = NewPublication(key)
			res.byDOI[key] = pub
			res.order = append(res.order, key)
		}
		pub.Fold(msg)
	}
	return res
}

// Len returns the number of aggregated publications.
func (r *Result) Len() int { return len(r.order) }

// DOIs returns the identifiers in first-seen order.
func (r *Result) DOIs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the publication for a normalized identifier.
func (r *Result) Get(id string) (*Publication, bool) {
	p, ok := r.byDOI[id]
	return p, ok
}

// Publications returns all publications in first-seen order.
func (r *Result) Publications() []*Publication {
	out := make([]*Publication, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byDOI[id])
	}
	return out
}

// Filter returns the publications whose merged values contain every given
// substring, case-insensitively, keyed by canonical tag.
func (r *Result) Filter(filters map[ris.Tag]string) []*Publication {
	var out []*Publication
	for _, pub := range r.Publications() {
		if Matches(pub, filters) {
			out = append(out, pub)
		}
	}
	return out
}

// Matches reports whether the publication's merged values contain every
// given substring, case-insensitively.
func Matches(pub *Publication, filters map[ris.Tag]string) bool {
	for tag, want := range filters {
		if want == "" {
			continue
		}
		var hit bool
		for _, v := range pub.Values(tag) {
			if strings.Contains(strings.ToLower(v), strings.ToLower(want)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// UniqueValues collects the distinct merged values for a tag across all
// publications, sorted lexicographically.
func (r *Result) UniqueValues(tag ris.Tag) []string {
	seen := make(map[string]struct{})
	for _, pub := range r.Publications() {
		for _, v := range pub.Values(tag) {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Validate checks the serialization contract for a publication: it must
// have provenance and a normalized identifier. Violations are logic
// errors, not data-quality conditions.
func Validate(p *Publication) error {
	if len(p.Messages) == 0 {
		return fmt.Errorf("%w: %s", ErrNoMessages, p.DOI)
	}
	if p.DOI == "" || doi.Normalize(p.DOI) != p.DOI {
		return fmt.Errorf("%w: %q", ErrUnnormalizedDOI, p.DOI)
	}
	return nil
}
