// The models package holds the domain values shared by providers,
// filters and the command line front end.
package models

import (
	"bytes"
	"image"
)

// Channel is a TV station of the listing. The icon, when present, is
// owned by the channel: always a private copy, never a view into a
// shared sprite sheet.
type Channel struct {
	Name string
	Icon *image.NRGBA
}

// NewChannel returns a channel without icon.
func NewChannel(name string) Channel {
	return Channel{Name: name}
}

// NewChannelWithIcon returns a channel carrying its own icon.
func NewChannelWithIcon(name string, icon *image.NRGBA) Channel {
	return Channel{Name: name, Icon: icon}
}

// Equal reports whether both channels have the same name and the same
// icon pixels. Two channels without icon are equal.
func (c Channel) Equal(o Channel) bool {
	if c.Name != o.Name {
		return false
	}
	if (c.Icon == nil) != (o.Icon == nil) {
		return false
	}
	if c.Icon == nil {
		return true
	}
	return c.Icon.Rect.Eq(o.Icon.Rect) && bytes.Equal(c.Icon.Pix, o.Icon.Pix)
}

// Movie is one broadcast of the evening listing. Only the title is
// guaranteed, everything else depends on what the listing carries.
// Movie is a plain value: comparable with == and usable as a map key,
// with all fields taking part in the comparison.
type Movie struct {
	Title       string
	Year        Option[int]
	Genre       Option[string]
	Division    Option[string]
	Description Option[string]
}

// MovieBuilder assembles a movie field by field. Fields keep absent
// until their setter is called. There is no description setter, the
// description comes from the detail page, not from the listing.
type MovieBuilder struct {
	m Movie
}

// NewMovieBuilder starts a movie with its title.
func NewMovieBuilder(title string) *MovieBuilder {
	return &MovieBuilder{m: Movie{Title: title}}
}

func (b *MovieBuilder) Year(y int) *MovieBuilder        { b.m.Year = Some(y); return b }
func (b *MovieBuilder) Genre(g string) *MovieBuilder    { b.m.Genre = Some(g); return b }
func (b *MovieBuilder) Division(d string) *MovieBuilder { b.m.Division = Some(d); return b }

// Movie returns the movie built so far.
func (b *MovieBuilder) Movie() Movie { return b.m }

// Entry ties a movie to the channel broadcasting it.
type Entry struct {
	Channel Channel
	Movie   Movie
}

// Program is the ordered list of entries of one listing fetch.
type Program struct {
	entries []Entry
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{}
}

// Add appends an entry at the end of the program.
func (p *Program) Add(c Channel, m Movie) {
	p.entries = append(p.entries, Entry{Channel: c, Movie: m})
}

// Len returns the number of entries.
func (p *Program) Len() int { return len(p.entries) }

// At returns the entry at position i.
func (p *Program) At(i int) Entry { return p.entries[i] }

// SetMovieAt replaces the movie of entry i. The channel stays.
func (p *Program) SetMovieAt(i int, m Movie) { p.entries[i].Movie = m }

// Entries returns the entries in insertion order. The slice is shared
// with the program, callers must not modify it.
func (p *Program) Entries() []Entry { return p.entries }
