package tvspielfilm

import (
	"context"

	"github.com/gocolly/colly"
	"github.com/sirupsen/logrus"

	"github.com/teleguide/teleguide/models"
)

const descriptionSelector = "#content div div article section.broadcast-detail__description p"

// GetMoreInformation completes the movie with the description written
// on its detail page. A movie this provider has never listed, or any
// fetch trouble, returns the movie as it came in. The url cache is
// keyed by the whole movie value, an already enriched movie won't hit
// it again.
func (p *TVSpielfilm) GetMoreInformation(ctx context.Context, m models.Movie) models.Movie {
	u, ok := p.urls[m]
	if !ok {
		return m
	}

	log := logrus.WithFields(logrus.Fields{
		"provider": p.Name(),
		"movie":    m.Title,
		"url":      u,
	})

	description := ""
	parser := p.htmlParserFactory.NewWithContext(ctx)
	parser.OnHTML(descriptionSelector, func(e *colly.HTMLElement) {
		html, err := e.DOM.Html()
		if err != nil {
			return
		}
		description += html + "\n\n"
	})

	log.Debug("Fetching the detail page")
	if err := parser.Visit(u); err != nil {
		log.WithError(err).Warn("Couldn't fetch the detail page")
		return m
	}

	enriched := m
	enriched.Description = models.Some(description)
	return enriched
}
