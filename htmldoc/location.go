package htmldoc

import (
	"strings"

	"github.com/tsawler/docmark/model"
)

// LocationResolver maps a location to an href
type LocationResolver interface {
	Href(loc model.Location) string
}

// LocationResolverFunc adapts a function to LocationResolver
type LocationResolverFunc func(loc model.Location) string

// Href calls f(loc)
func (f LocationResolverFunc) Href(loc model.Location) string {
	return f(loc)
}

// DefaultResolver maps ids to fragment links, joins internal paths onto
// Base and passes URLs through unchanged.
type DefaultResolver struct {
	// Base is prefixed to internal paths, e.g. "/docs"
	Base string
}

// Href implements LocationResolver
func (d DefaultResolver) Href(loc model.Location) string {
	switch loc.Kind {
	case model.LocationID:
		return "#" + loc.Target
	case model.LocationInternal:
		if d.Base == "" {
			return loc.Target
		}
		return strings.TrimRight(d.Base, "/") + "/" + strings.TrimLeft(loc.Target, "/")
	default:
		return loc.Target
	}
}
