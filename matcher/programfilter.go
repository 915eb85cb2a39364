package matcher

import "github.com/teleguide/teleguide/models"

// ProgramFilter hides entries whose channel or movie matches one of
// the collected predicates.
type ProgramFilter struct {
	channels Filters[models.Channel]
	movies   Filters[models.Movie]
}

// NewProgramFilter returns a filter matching nothing.
func NewProgramFilter() *ProgramFilter {
	return &ProgramFilter{}
}

// Add records the attribute in the collection of its kind.
func (pf *ProgramFilter) Add(a Attribute) {
	switch a := a.(type) {
	case ChannelAttribute:
		pf.channels.Add(a)
	case MovieAttribute:
		pf.movies.Add(a)
	}
}

// AddChannelFilter appends an arbitrary channel predicate. Predicates
// added this way take part in matching but cannot be persisted.
func (pf *ProgramFilter) AddChannelFilter(f Filter[models.Channel]) {
	pf.channels.Add(f)
}

// AddMovieFilter appends an arbitrary movie predicate.
func (pf *ProgramFilter) AddMovieFilter(f Filter[models.Movie]) {
	pf.movies.Add(f)
}

// Matches reports whether the entry is hidden, that is its channel or
// its movie matches at least one predicate.
func (pf *ProgramFilter) Matches(e models.Entry) bool {
	return pf.channels.Matches(e.Channel) || pf.movies.Matches(e.Movie)
}

// Filter returns a new program keeping the entries the filter does
// not match, in their original order.
func (pf *ProgramFilter) Filter(p *models.Program) *models.Program {
	out := models.NewProgram()
	for _, e := range p.Entries() {
		if !pf.Matches(e) {
			out.Add(e.Channel, e.Movie)
		}
	}
	return out
}

// ChannelFilters returns the channel predicates in insertion order.
func (pf *ProgramFilter) ChannelFilters() []Filter[models.Channel] {
	return pf.channels.All()
}

// MovieFilters returns the movie predicates in insertion order.
func (pf *ProgramFilter) MovieFilters() []Filter[models.Movie] {
	return pf.movies.All()
}
