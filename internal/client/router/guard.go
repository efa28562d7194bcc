// Package router maps navigable paths to views and applies the auth guard
// to every navigation.
package router

// Annotation is the guard metadata of a route.
type Annotation struct {
	RequiresAuth  bool
	RequiresGuest bool
}

// Route names of the guard's redirect targets.
const (
	LoginRoute   = "login"
	LandingRoute = "dashboard"
)

// Decision is the outcome of a guard check. Redirect is empty when the
// navigation may proceed.
type Decision struct {
	Redirect string
}

// Proceed reports whether navigation continues to the target.
func (d Decision) Proceed() bool { return d.Redirect == "" }

// Decide applies the guard to a target route.
func Decide(target Annotation, authenticated bool) Decision {
	switch {
	case target.RequiresAuth && !authenticated:
		return Decision{Redirect: LoginRoute}
	case target.RequiresGuest && authenticated:
		return Decision{Redirect: LandingRoute}
	default:
		return Decision{}
	}
}
