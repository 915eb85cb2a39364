// htmlparser package wraps the colly dependency and lets colly use the
// shared client defaults, its cookie jar and its user agent string

package htmlparser

import (
	"context"

	httplocal "github.com/teleguide/teleguide/net/http"

	"net/http"
	"net/http/cookiejar"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/debug"
)

type Factory struct {
	jar          *cookiejar.Jar
	roundTripper http.RoundTripper
	userAgent    string
	debugger     debug.Debugger
}

func SetCookieJar(jar *cookiejar.Jar) func(f *Factory) {
	return func(f *Factory) {
		f.jar = jar
	}
}

func SetUserAgent(userAgent string) func(f *Factory) {
	return func(f *Factory) {
		f.userAgent = userAgent
	}
}

func SetTransport(rt http.RoundTripper) func(f *Factory) {
	return func(f *Factory) {
		f.roundTripper = rt
	}
}

func SetDebugger(d debug.Debugger) func(f *Factory) {
	return func(f *Factory) {
		f.debugger = d
	}
}

func NewFactory(conf ...func(f *Factory)) *Factory {
	f := &Factory{
		jar:       httplocal.DefaultClient.Jar,
		userAgent: httplocal.UserAgent,
	}
	for _, fn := range conf {
		fn(f)
	}
	return f
}

func (f *Factory) New() *colly.Collector {
	c := colly.NewCollector()
	if f.debugger != nil {
		c.SetDebugger(f.debugger)
	}
	if len(f.userAgent) > 0 {
		c.UserAgent = f.userAgent
	}
	if f.jar != nil {
		c.SetCookieJar(f.jar)
	}
	if f.roundTripper != nil {
		c.WithTransport(f.roundTripper)
	}
	return c
}

// NewWithContext returns a collector whose requests all carry ctx, so
// a cancelled caller also cancels the visits in flight.
func (f *Factory) NewWithContext(ctx context.Context) *colly.Collector {
	c := f.New()
	c.WithTransport(ctxTransport{ctx: ctx, rt: f.roundTripper})
	return c
}

// ctxTransport attaches one context to every request it forwards.
type ctxTransport struct {
	ctx context.Context
	rt  http.RoundTripper
}

func (t ctxTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rt := t.rt
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(r.WithContext(t.ctx))
}
