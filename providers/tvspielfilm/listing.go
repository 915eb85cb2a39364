package tvspielfilm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocolly/colly"
	"github.com/sirupsen/logrus"

	"github.com/teleguide/teleguide/models"
	tvhttp "github.com/teleguide/teleguide/net/http"
	"github.com/teleguide/teleguide/parsers/sprite"
	"github.com/teleguide/teleguide/providers"
)

var listingURL = "https://www.tvspielfilm.de/tv-programm/sendungen/abends.html"

// Selectors into the listing page. One row of the info table is one
// broadcast.
const (
	rowSelector      = "body #wrapper #main .content-area #content .tvlistings .content-holder .tab-content .info-table tbody .hover"
	channelSelector  = ".programm-col1 a"
	titleSelector    = ".col-3 span a strong"
	infoSelector     = ".col-3 span a"
	genreSelector    = ".col-4 span"
	divisionSelector = ".col-5 span"
)

// GetProgram downloads tonight's listing and the channel icon sprite
// and turns them into a program. A row that cannot be parsed fails
// the whole fetch, a page without rows is an empty program.
func (p *TVSpielfilm) GetProgram(ctx context.Context) (*models.Program, error) {
	icons, err := p.fetchIcons(ctx)
	if err != nil {
		return nil, err
	}

	program := models.NewProgram()
	var rowErr error

	parser := p.htmlParserFactory.NewWithContext(ctx)
	parser.OnHTML(rowSelector, func(e *colly.HTMLElement) {
		if rowErr != nil {
			return
		}
		entry, err := p.parseRow(e, icons)
		if err != nil {
			rowErr = err
			return
		}
		program.Add(entry.Channel, entry.Movie)
	})

	log := logrus.WithField("provider", p.Name())
	log.WithField("url", listingURL).Debug("Fetching the evening listing")
	if err := parser.Visit(listingURL); err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrNetworking, err)
	}
	if rowErr != nil {
		return nil, rowErr
	}
	log.WithField("entries", program.Len()).Info("Listing fetched")
	return program, nil
}

// parseRow reads one broadcast row. Channel and title must be there,
// year, genre and division are taken when present. The movie's detail
// page goes into the url cache, keyed by the movie as built here.
func (p *TVSpielfilm) parseRow(e *colly.HTMLElement, icons *sprite.Sheet) (models.Entry, error) {
	channelLink := e.DOM.Find(channelSelector)
	if channelLink.Length() == 0 {
		return models.Entry{}, fmt.Errorf("%w: channel link not found", providers.ErrParsingWebsite)
	}
	label, ok := channelLink.Attr("title")
	if !ok {
		return models.Entry{}, fmt.Errorf("%w: channel name not found", providers.ErrParsingWebsite)
	}
	name := strings.TrimSuffix(label, " Programm")

	titleElement := e.DOM.Find(titleSelector)
	if titleElement.Length() == 0 {
		return models.Entry{}, fmt.Errorf("%w: movie title not found", providers.ErrParsingWebsite)
	}
	title, err := titleElement.Html()
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %v", providers.ErrParsingWebsite, err)
	}

	builder := models.NewMovieBuilder(title)

	info := e.DOM.Find(infoSelector)
	if tooltip, ok := info.Attr("title"); ok {
		if y, ok := yearOf(tooltip); ok {
			builder.Year(y)
		}
	}
	if genre := e.DOM.Find(genreSelector); genre.Length() > 0 {
		if html, err := genre.Html(); err == nil {
			builder.Genre(strings.TrimSpace(html))
		}
	}
	if division := e.DOM.Find(divisionSelector); division.Length() > 0 {
		if html, err := division.Html(); err == nil {
			builder.Division(firstField(html))
		}
	}

	movie := builder.Movie()
	if href, ok := info.Attr("href"); ok {
		p.urls[movie] = tvhttp.Rel(listingURL, href)
	}

	channel := models.NewChannel(name)
	if i := iconIndex(name); i >= 0 {
		if icon := icons.Tile(i); icon != nil {
			channel = models.NewChannelWithIcon(name, icon)
		}
	}

	return models.Entry{Channel: channel, Movie: movie}, nil
}

// yearOf extracts the production year from a link tooltip like
// "Heat, USA 1995": the token after the last space.
func yearOf(s string) (int, bool) {
	last := s
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		last = s[i+1:]
	}
	y, err := strconv.ParseUint(last, 10, 16)
	if err != nil {
		return 0, false
	}
	return int(y), true
}

// firstField returns the first whitespace separated field, an empty
// string when there is none.
func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
