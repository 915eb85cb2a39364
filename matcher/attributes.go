package matcher

import "github.com/teleguide/teleguide/models"

// Attribute is a filter criterion that can be written to the filter
// file, either a ChannelAttribute or a MovieAttribute. The set is
// closed, other Filter implementations cannot be persisted.
type Attribute interface {
	isAttribute()
}

// ChannelAttributeKind selects the channel field an attribute compares.
type ChannelAttributeKind int

const (
	ChannelName ChannelAttributeKind = iota
)

// MovieAttributeKind selects the movie field an attribute compares.
type MovieAttributeKind int

const (
	MovieTitle MovieAttributeKind = iota
	MovieGenre
	MovieDivision
)

// ChannelAttribute matches a channel by exact comparison of one of
// its fields. No trimming, no case folding.
type ChannelAttribute struct {
	Kind  ChannelAttributeKind
	Value string
}

// ByChannelName returns an attribute matching channels named v.
func ByChannelName(v string) ChannelAttribute {
	return ChannelAttribute{Kind: ChannelName, Value: v}
}

func (a ChannelAttribute) Matches(c models.Channel) bool {
	switch a.Kind {
	case ChannelName:
		return c.Name == a.Value
	}
	return false
}

func (ChannelAttribute) isAttribute() {}

// MovieAttribute matches a movie by exact comparison of one of its
// fields. Optional fields only match when they are set: a movie
// without genre is not matched by any genre attribute, not even an
// empty valued one.
type MovieAttribute struct {
	Kind  MovieAttributeKind
	Value string
}

// ByTitle returns an attribute matching movies titled v.
func ByTitle(v string) MovieAttribute {
	return MovieAttribute{Kind: MovieTitle, Value: v}
}

// ByGenre returns an attribute matching movies of genre v.
func ByGenre(v string) MovieAttribute {
	return MovieAttribute{Kind: MovieGenre, Value: v}
}

// ByDivision returns an attribute matching movies in division v.
func ByDivision(v string) MovieAttribute {
	return MovieAttribute{Kind: MovieDivision, Value: v}
}

func (a MovieAttribute) Matches(m models.Movie) bool {
	switch a.Kind {
	case MovieTitle:
		return m.Title == a.Value
	case MovieGenre:
		if g, ok := m.Genre.Get(); ok {
			return g == a.Value
		}
	case MovieDivision:
		if d, ok := m.Division.Get(); ok {
			return d == a.Value
		}
	}
	return false
}

func (MovieAttribute) isAttribute() {}
