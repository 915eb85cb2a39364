package providers

import "errors"

// Error kinds shared by all providers. Implementations wrap them with
// the failing URL or operation, callers test with errors.Is.
var (
	ErrNetworking     = errors.New("a networking error occurred: are you connected to the internet?")
	ErrParsingWebsite = errors.New("could not parse the website: maybe it has changed?")
)
