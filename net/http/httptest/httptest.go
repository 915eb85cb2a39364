// The httptest package implements a transport serving local files in
// place of the websites, so provider tests run without any network.
package httptest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

type HttpTest struct {
	UrlToFilefn func(u string) string
}

func New(conf ...func(ht *HttpTest)) *HttpTest {
	ht := &HttpTest{}
	fileDirect()(ht)
	for _, fn := range conf {
		fn(ht)
	}
	return ht
}

// WithURLToFile sets the function mapping the requested url to the
// file served back
func WithURLToFile(fn func(u string) string) func(ht *HttpTest) {
	return func(ht *HttpTest) {
		ht.UrlToFilefn = fn
	}
}

func fileDirect() func(ht *HttpTest) {
	return func(ht *HttpTest) {
		ht.UrlToFilefn = func(u string) string {
			return u
		}
	}
}

func (ht *HttpTest) RoundTrip(r *http.Request) (*http.Response, error) {
	url := ""
	if r != nil && r.URL != nil {
		url = r.URL.String()
	}
	f, err := os.Open(ht.UrlToFilefn(url))
	if err != nil {
		return nil, fmt.Errorf("FileTransport.RoundTrip: %v", err)
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("FileTransport.RoundTrip: %v", err)
	}

	header := make(http.Header)
	header.Add("Content-Type", "html")
	resp := &http.Response{
		Status:        "200 OK",
		StatusCode:    200,
		Proto:         "HTTP/1.0",
		ProtoMajor:    1,
		ProtoMinor:    0,
		Body:          f,
		ContentLength: fi.Size(),
		Close:         true,
		Request:       r,
		Header:        header,
	}

	return resp, nil
}

func (ht *HttpTest) Get(ctx context.Context, u string) (io.ReadCloser, error) {
	url, err := url.Parse(u)
	if err != nil {
		return nil, err
	}
	req := &http.Request{
		Method: "GET",
		URL:    url,
	}
	req = req.WithContext(ctx)
	resp, err := ht.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("can't get url: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("can't get response: %s", resp.Status)
	}
	return resp.Body, nil
}
