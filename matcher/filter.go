// The matcher package holds the predicates used to hide entries of a
// TV program: what the user never wants to see again.
package matcher

// Filter matches items against one criterion.
type Filter[T any] interface {
	Matches(item T) bool
}

// Filters is an ordered collection of filters combined with OR.
type Filters[T any] struct {
	filters []Filter[T]
}

// Add appends f to the collection. Duplicates are kept as they are.
func (fs *Filters[T]) Add(f Filter[T]) {
	fs.filters = append(fs.filters, f)
}

// Len returns the number of collected filters.
func (fs *Filters[T]) Len() int { return len(fs.filters) }

// Matches reports whether at least one filter matches item. An empty
// collection matches nothing.
func (fs *Filters[T]) Matches(item T) bool {
	for _, f := range fs.filters {
		if f.Matches(item) {
			return true
		}
	}
	return false
}

// All returns the filters in insertion order.
func (fs *Filters[T]) All() []Filter[T] { return fs.filters }
