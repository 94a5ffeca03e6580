package infra

import (
	"github.com/m-mizutani/octopages/pkg/domain/interfaces"
)

type Clients struct {
	github   interfaces.GitHub
	cache    interfaces.HTTPCache
	renderer interfaces.Renderer
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) HTTPCache() interfaces.HTTPCache {
	return x.cache
}
func (x *Clients) Renderer() interfaces.Renderer {
	return x.renderer
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

// WithHTTPCache sets the store behind the API response cache. It is used
// for pruning; the caching itself happens in the GitHub client transport.
func WithHTTPCache(cache interfaces.HTTPCache) Option {
	return func(x *Clients) {
		x.cache = cache
	}
}

func WithRenderer(renderer interfaces.Renderer) Option {
	return func(x *Clients) {
		x.renderer = renderer
	}
}
