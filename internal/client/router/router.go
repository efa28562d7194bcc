package router

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// View identifiers of the default routes.
const (
	ViewHome      = "home"
	ViewLogin     = "login"
	ViewRegister  = "register"
	ViewDashboard = "dashboard"
)

// CatchAll matches any path not otherwise configured.
const CatchAll = "*"

const maxHops = 8

var (
	ErrNoRoute       = errors.New("router: no route")
	ErrRedirectLoop  = errors.New("router: too many redirects")
	ErrDuplicateName = errors.New("router: duplicate route name")
)

// Route is one entry of the route table. A route with RedirectTo set has no
// view and forwards to the named path.
type Route struct {
	Path       string
	Name       string
	View       string
	RedirectTo string
	Annotation
}

// DefaultRoutes is the route table of the catalog client.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: "home", View: ViewHome},
		{Path: "/login", Name: LoginRoute, View: ViewLogin, Annotation: Annotation{RequiresGuest: true}},
		{Path: "/register", Name: "register", View: ViewRegister, Annotation: Annotation{RequiresGuest: true}},
		{Path: "/dashboard", Name: LandingRoute, View: ViewDashboard, Annotation: Annotation{RequiresAuth: true}},
		{Path: CatchAll, RedirectTo: "/"},
	}
}

// AuthState is the part of the session the router consults.
type AuthState interface {
	IsAuthenticated() bool
}

// Router resolves paths against a route table and guards navigation with
// the current session.
type Router struct {
	routes   []Route
	byPath   map[string]Route
	byName   map[string]Route
	catchAll *Route
	auth     AuthState
	current  Route
}

func New(routes []Route, auth AuthState) (*Router, error) {
	r := &Router{
		routes: routes,
		byPath: make(map[string]Route, len(routes)),
		byName: make(map[string]Route, len(routes)),
		auth:   auth,
	}
	for i := range routes {
		rt := routes[i]
		if rt.Path == CatchAll {
			r.catchAll = &routes[i]
			continue
		}
		r.byPath[clean(rt.Path)] = rt
		if rt.Name == "" {
			continue
		}
		if _, dup := r.byName[rt.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, rt.Name)
		}
		r.byName[rt.Name] = rt
	}
	return r, nil
}

// Routes returns the configured table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Current returns the route of the last successful navigation.
func (r *Router) Current() Route { return r.current }

// Lookup finds a route by path, falling back to the catch-all.
func (r *Router) Lookup(p string) (Route, bool) {
	if rt, ok := r.byPath[clean(p)]; ok {
		return rt, true
	}
	if r.catchAll != nil {
		return *r.catchAll, true
	}
	return Route{}, false
}

// ByName finds a route by name.
func (r *Router) ByName(name string) (Route, bool) {
	rt, ok := r.byName[name]
	return rt, ok
}

// Navigate resolves target, following static and guard redirects, and makes
// the final route current.
func (r *Router) Navigate(target string) (Route, error) {
	p := target
	for hop := 0; hop < maxHops; hop++ {
		rt, ok := r.Lookup(p)
		if !ok {
			return Route{}, fmt.Errorf("%w for %q", ErrNoRoute, p)
		}
		if rt.RedirectTo != "" {
			p = rt.RedirectTo
			continue
		}

		d := Decide(rt.Annotation, r.auth != nil && r.auth.IsAuthenticated())
		if d.Proceed() {
			r.current = rt
			return rt, nil
		}

		next, ok := r.byName[d.Redirect]
		if !ok {
			return Route{}, fmt.Errorf("%w named %q", ErrNoRoute, d.Redirect)
		}
		p = next.Path
	}
	return Route{}, fmt.Errorf("%w navigating to %q", ErrRedirectLoop, target)
}

func clean(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
