// Package router decides whether a screen may be shown for the current
// session.
package router

import (
	"context"
	"strings"
)

// Paths of the screens known to the client.
const (
	Root       = "/"
	Home       = "/home"
	Login      = "/login"
	Register   = "/register"
	Profile    = "/profile"
	Diary      = "/diary"
	Bullet     = "/bullet"
	Motivation = "/motivation"
)

type Action int

const (
	Render Action = iota
	Redirect
	NotFound
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

type Decision struct {
	Action Action
	Target string
}

type Route struct {
	Path      string
	Protected bool
}

// Session answers the two questions a guard can ask.
type Session interface {
	IsLoggedIn(ctx context.Context) bool
	HasFreshSession(ctx context.Context) bool
}

// Policy is a named session check.
type Policy func(ctx context.Context, s Session) bool

var (
	// PolicyLoggedIn only requires a stored session; an expired access
	// token is left to the refresh-on-401 path.
	PolicyLoggedIn Policy = func(ctx context.Context, s Session) bool { return s.IsLoggedIn(ctx) }

	// PolicyFreshSession also requires an unexpired access token.
	PolicyFreshSession Policy = func(ctx context.Context, s Session) bool { return s.HasFreshSession(ctx) }
)

func DefaultRoutes() []Route {
	return []Route{
		{Path: Home},
		{Path: Login},
		{Path: Register},
		{Path: Profile, Protected: true},
		{Path: Diary, Protected: true},
		{Path: Bullet, Protected: true},
		{Path: Motivation, Protected: true},
	}
}

type Guard struct {
	session Session
	routes  map[string]Route

	// protected routes and the root redirect are checked with these
	protectedPolicy Policy
	rootPolicy      Policy
}

func NewGuard(s Session, routes []Route) *Guard {
	g := &Guard{
		session:         s,
		routes:          make(map[string]Route, len(routes)),
		protectedPolicy: PolicyLoggedIn,
		rootPolicy:      PolicyFreshSession,
	}
	for _, r := range routes {
		g.routes[normalize(r.Path)] = r
	}
	return g
}

// Resolve maps path to a decision. Denied access always redirects to the
// login screen.
func (g *Guard) Resolve(ctx context.Context, path string) Decision {
	path = normalize(path)

	if path == Root {
		if g.rootPolicy(ctx, g.session) {
			return Decision{Action: Redirect, Target: Home}
		}
		return Decision{Action: Redirect, Target: Login}
	}

	r, ok := g.routes[path]
	if !ok {
		return Decision{Action: NotFound}
	}
	if r.Protected && !g.protectedPolicy(ctx, g.session) {
		return Decision{Action: Redirect, Target: Login}
	}
	return Decision{Action: Render, Target: r.Path}
}

// Allowed reports whether policy admits the current session.
func (g *Guard) Allowed(ctx context.Context, p Policy) bool {
	return p(ctx, g.session)
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return Root
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = Root
		}
	}
	return strings.ToLower(p)
}
