package store

import (
	"fmt"

	"github.com/teleguide/teleguide/matcher"
)

// Tags identifying the attribute kind in a record. Channel and movie
// tags share one namespace and must not collide.
const (
	tagChannelName   = "name"
	tagMovieTitle    = "title"
	tagMovieGenre    = "genre"
	tagMovieDivision = "division"
)

// Record is one serialized filter attribute: the kind tag and the
// value to compare with.
type Record [2]string

// FilterRecords serializes the filter into records, every channel
// attribute before every movie attribute. Predicates that are not
// attributes cannot be written to a file and fail the conversion.
func FilterRecords(pf *matcher.ProgramFilter) ([]Record, error) {
	var records []Record
	for _, f := range pf.ChannelFilters() {
		a, ok := f.(matcher.ChannelAttribute)
		if !ok {
			return nil, fmt.Errorf("%w: channel filter %T is not serializable", ErrParsingFile, f)
		}
		r, err := channelRecord(a)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	for _, f := range pf.MovieFilters() {
		a, ok := f.(matcher.MovieAttribute)
		if !ok {
			return nil, fmt.Errorf("%w: movie filter %T is not serializable", ErrParsingFile, f)
		}
		r, err := movieRecord(a)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func channelRecord(a matcher.ChannelAttribute) (Record, error) {
	switch a.Kind {
	case matcher.ChannelName:
		return Record{tagChannelName, a.Value}, nil
	}
	return Record{}, fmt.Errorf("%w: unknown channel attribute kind %d", ErrParsingFile, a.Kind)
}

func movieRecord(a matcher.MovieAttribute) (Record, error) {
	switch a.Kind {
	case matcher.MovieTitle:
		return Record{tagMovieTitle, a.Value}, nil
	case matcher.MovieGenre:
		return Record{tagMovieGenre, a.Value}, nil
	case matcher.MovieDivision:
		return Record{tagMovieDivision, a.Value}, nil
	}
	return Record{}, fmt.Errorf("%w: unknown movie attribute kind %d", ErrParsingFile, a.Kind)
}

// The decoders are variables so the ambiguity check below stays
// testable, the shipped tag sets never overlap.
var (
	decodeChannelAttribute = func(r Record) (matcher.ChannelAttribute, bool) {
		switch r[0] {
		case tagChannelName:
			return matcher.ByChannelName(r[1]), true
		}
		return matcher.ChannelAttribute{}, false
	}
	decodeMovieAttribute = func(r Record) (matcher.MovieAttribute, bool) {
		switch r[0] {
		case tagMovieTitle:
			return matcher.ByTitle(r[1]), true
		case tagMovieGenre:
			return matcher.ByGenre(r[1]), true
		case tagMovieDivision:
			return matcher.ByDivision(r[1]), true
		}
		return matcher.MovieAttribute{}, false
	}
)

// FilterFromRecords rebuilds a filter from its records. A record must
// decode as exactly one attribute: a tag claimed by neither family or
// by both aborts the whole conversion, nothing of a bad file is kept.
func FilterFromRecords(records []Record) (*matcher.ProgramFilter, error) {
	pf := matcher.NewProgramFilter()
	for _, r := range records {
		ca, okChannel := decodeChannelAttribute(r)
		ma, okMovie := decodeMovieAttribute(r)
		switch {
		case okChannel && okMovie:
			return nil, fmt.Errorf("%w: tag %q is ambiguous", ErrParsingFile, r[0])
		case okChannel:
			pf.Add(ca)
		case okMovie:
			pf.Add(ma)
		default:
			return nil, fmt.Errorf("%w: unknown tag %q", ErrParsingFile, r[0])
		}
	}
	return pf, nil
}
