package geo

import (
	"context"
	"log/slog"
	"strings"
)

// Tier identifies which resolution strategy produced a location.
type Tier string

const (
	// TierDirect means the input was a literal "lat,lon" pair.
	TierDirect Tier = "direct"
	// TierGazetteer means the name matched the compiled-in place table.
	TierGazetteer Tier = "gazetteer"
	// TierRemote means the name was resolved by the remote geocoder.
	TierRemote Tier = "remote"
)

// ResolvedLocation is the resolver's output: the coordinate, the tier that
// produced it, and the matched display name when one is known.
type ResolvedLocation struct {
	Coord       Coordinate
	Tier        Tier
	DisplayName string
}

// Resolver turns free-form location input into coordinates using three
// tiers in strict order: direct coordinate parsing, gazetteer lookup,
// remote geocoding. Stateless apart from its immutable collaborators, so
// concurrent calls need no synchronization.
type Resolver struct {
	gazetteer *Gazetteer
	geocoder  Geocoder
	logger    *slog.Logger
}

// NewResolver wires a resolver from its collaborators. A nil logger
// disables logging.
func NewResolver(gazetteer *Gazetteer, geocoder Geocoder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{gazetteer: gazetteer, geocoder: geocoder, logger: logger}
}

// Resolve maps location text to a ResolvedLocation, short-circuiting on
// the first tier that yields an answer. Direct coordinate input is never
// reinterpreted as a place name: when the coordinate pattern matches,
// resolution ends there, successfully or with MalformedCoordinates. The
// gazetteer is preferred over the remote service; the remote fallback only
// widens coverage. Remote outages surface as UpstreamUnavailable, distinct
// from a confirmed NotFound.
func (r *Resolver) Resolve(ctx context.Context, location string) (ResolvedLocation, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return ResolvedLocation{}, newError(MalformedCoordinates, "location must not be empty")
	}

	coord, matched, err := ParseCoordinates(location)
	if matched {
		if err != nil {
			return ResolvedLocation{}, err
		}
		r.logger.Debug("resolved location", "tier", TierDirect, "coord", coord)
		return ResolvedLocation{Coord: coord, Tier: TierDirect}, nil
	}

	if entry, ok := r.gazetteer.Lookup(location); ok {
		r.logger.Debug("resolved location", "tier", TierGazetteer, "name", entry.Name)
		return ResolvedLocation{Coord: entry.Coord, Tier: TierGazetteer, DisplayName: entry.Name}, nil
	}

	result, found, err := r.geocoder.Geocode(ctx, location)
	if err != nil {
		return ResolvedLocation{}, err
	}
	if !found {
		return ResolvedLocation{}, newError(NotFound, "no match for "+location)
	}
	r.logger.Debug("resolved location", "tier", TierRemote, "name", result.DisplayName)
	return ResolvedLocation{Coord: result.Coord, Tier: TierRemote, DisplayName: result.DisplayName}, nil
}
