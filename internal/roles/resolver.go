package roles

import (
	"context"
	"io"
	"log"

	"github.com/helpdesk-io/helpdesk-cli/internal/models"
)

// ProfileFetcher fetches the authenticated user's profile from the
// backend. Satisfied by the API client's auth service.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*models.Profile, error)
}

// Resolver determines the current session's identity and role. The
// profile endpoint is authoritative; the unverified token payload is a
// fallback for when that endpoint is unreachable, and the last
// persisted values are the fallback behind that.
type Resolver struct {
	fetcher ProfileFetcher
	logger  *log.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver backed by the given profile fetcher.
func NewResolver(fetcher ProfileFetcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolution is the outcome of a role resolution pass.
type Resolution struct {
	Identity string
	Role     Role

	// Verified is true when the values came from the profile endpoint
	// rather than the unverified token payload or persisted state.
	Verified bool
}

// Resolve determines identity and role for the given bearer token.
// lastIdentity and lastRole are the previously persisted values; they
// fill any gap the profile call and the token payload leave behind.
// Role defaults to student when nothing else is known.
func (r *Resolver) Resolve(ctx context.Context, token, lastIdentity string, lastRole Role) Resolution {
	profile, err := r.fetcher.Profile(ctx)
	if err == nil && profile.Role.Name != "" {
		return Resolution{
			Identity: profile.Email,
			Role:     Role(profile.Role.Name),
			Verified: true,
		}
	}
	if err != nil {
		r.logger.Printf("profile fetch failed, falling back to token payload: %v", err)
	}

	res := Resolution{Identity: lastIdentity, Role: lastRole}
	if claims, ok := DecodeToken(token); ok {
		if claims.Subject != "" {
			res.Identity = claims.Subject
		}
		if claims.Role != "" {
			res.Role = claims.Role
		}
	}
	if res.Role == "" {
		res.Role = RoleStudent
	}
	return res
}
