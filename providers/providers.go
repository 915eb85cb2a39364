// The providers package defines the interface shared by all TV
// listing providers and the registry where they announce themselves.
package providers

import (
	"context"

	"github.com/teleguide/teleguide/models"
)

// Provider is the interface for a provider
type Provider interface {
	Name() string    // Provider's registry name
	Clone() Provider // Independent copy of the provider, caches included

	// GetProgram fetches and parses the complete evening listing.
	// On error no program is returned, there is no partial result.
	GetProgram(ctx context.Context) (*models.Program, error)

	// GetMoreInformation returns the movie completed with the
	// description of its detail page. It never fails: when anything
	// goes wrong the movie is returned unchanged.
	GetMoreInformation(ctx context.Context, m models.Movie) models.Movie
}

var providers = map[string]Provider{}

// Register is called by provider's init to register the provider
func Register(p Provider) {
	providers[p.Name()] = p
}

// List of registered providers
func List() map[string]Provider {
	return providers
}

// Get returns the provider registered under name.
func Get(name string) (Provider, bool) {
	p, ok := providers[name]
	return p, ok
}
