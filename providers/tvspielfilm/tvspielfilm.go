// The tvspielfilm package scrapes the evening TV listing published on
// www.tvspielfilm.de: which movie runs on which channel tonight.
package tvspielfilm

import (
	"context"
	"io"
	"net/http"

	"github.com/teleguide/teleguide/models"
	tvhttp "github.com/teleguide/teleguide/net/http"
	"github.com/teleguide/teleguide/parsers/htmlparser"
	"github.com/teleguide/teleguide/providers"
)

type getter interface {
	Get(ctx context.Context, uri string) (io.ReadCloser, error)
}

// TVSpielfilm is the www.tvspielfilm.de provider. It remembers the
// detail page of every movie seen in the listing so that descriptions
// can be fetched afterwards.
type TVSpielfilm struct {
	getter            getter
	htmlParserFactory *htmlparser.Factory
	urls              map[models.Movie]string
}

// init registers the TVSpielfilm provider
func init() {
	providers.Register(New())
}

// New creates a TVSpielfilm provider with a set of config functions
func New(conf ...func(p *TVSpielfilm)) *TVSpielfilm {
	p := &TVSpielfilm{
		getter: tvhttp.DefaultClient,
		urls:   map[models.Movie]string{},
	}
	for _, f := range conf {
		f(p)
	}
	if p.htmlParserFactory == nil {
		if rt, ok := p.getter.(http.RoundTripper); ok {
			p.htmlParserFactory = htmlparser.NewFactory(htmlparser.SetTransport(rt))
		} else {
			p.htmlParserFactory = htmlparser.NewFactory()
		}
	}
	return p
}

// withGetter set a getter for TVSpielfilm
func withGetter(g getter) func(p *TVSpielfilm) {
	return func(p *TVSpielfilm) {
		p.getter = g
	}
}

// Name return the name of the provider
func (p TVSpielfilm) Name() string { return "tvspielfilm" }

// Clone return a provider of its own, starting with a copy of the
// detail page cache. Using one never alters the other.
func (p *TVSpielfilm) Clone() providers.Provider {
	c := &TVSpielfilm{
		getter:            p.getter,
		htmlParserFactory: p.htmlParserFactory,
		urls:              make(map[models.Movie]string, len(p.urls)),
	}
	for m, u := range p.urls {
		c.urls[m] = u
	}
	return c
}
