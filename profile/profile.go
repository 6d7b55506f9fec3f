// Package profile collects best-effort signals from a reviewer's external
// profile links (LinkedIn, Google Scholar, GitHub). Pages are fetched with
// strict limits, reduced to their readable content, and converted to short
// markdown snippets. The classifier applies its own keyword rules on top;
// nothing in this package ever fails a classification.
package profile

// Signals is what external profiles contribute to classification: page
// titles and short markdown snippets of readable content, in link order.
type Signals struct {
	Titles   []string `json:"titles,omitempty"`
	Snippets []string `json:"snippets,omitempty"`
}

// Empty reports whether no usable signal was collected.
func (s *Signals) Empty() bool {
	return s == nil || (len(s.Titles) == 0 && len(s.Snippets) == 0)
}

// merge appends the other signals onto s.
func (s *Signals) merge(other *Signals) {
	if other == nil {
		return
	}
	s.Titles = append(s.Titles, other.Titles...)
	s.Snippets = append(s.Snippets, other.Snippets...)
}
