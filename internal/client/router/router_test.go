package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFlag bool

func (a *authFlag) IsAuthenticated() bool { return bool(*a) }

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		ann    Annotation
		authed bool
		want   Decision
	}{
		{"auth route anonymous", Annotation{RequiresAuth: true}, false, Decision{Redirect: LoginRoute}},
		{"auth route signed in", Annotation{RequiresAuth: true}, true, Decision{}},
		{"guest route signed in", Annotation{RequiresGuest: true}, true, Decision{Redirect: LandingRoute}},
		{"guest route anonymous", Annotation{RequiresGuest: true}, false, Decision{}},
		{"open route anonymous", Annotation{}, false, Decision{}},
		{"open route signed in", Annotation{}, true, Decision{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.ann, tt.authed)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Redirect == "", got.Proceed())
		})
	}
}

func newRouter(t *testing.T, authed bool) (*Router, *authFlag) {
	t.Helper()
	a := authFlag(authed)
	r, err := New(DefaultRoutes(), &a)
	require.NoError(t, err)
	return r, &a
}

func TestNavigate_Anonymous(t *testing.T) {
	r, _ := newRouter(t, false)

	tests := map[string]string{
		"/":          ViewHome,
		"/login":     ViewLogin,
		"/register/": ViewRegister,
		"/dashboard": ViewLogin,
		"/nowhere":   ViewHome,
		"dashboard":  ViewLogin,
	}
	for target, view := range tests {
		t.Run(target, func(t *testing.T) {
			rt, err := r.Navigate(target)
			require.NoError(t, err)
			assert.Equal(t, view, rt.View)
			assert.Equal(t, rt, r.Current())
		})
	}
}

func TestNavigate_Authenticated(t *testing.T) {
	r, _ := newRouter(t, true)

	for target, view := range map[string]string{
		"/login":     ViewDashboard,
		"/register":  ViewDashboard,
		"/dashboard": ViewDashboard,
		"/":          ViewHome,
	} {
		rt, err := r.Navigate(target)
		require.NoError(t, err, target)
		assert.Equal(t, view, rt.View, target)
	}
}

func TestNavigate_FollowsSessionChanges(t *testing.T) {
	r, a := newRouter(t, false)

	rt, err := r.Navigate("/dashboard")
	require.NoError(t, err)
	assert.Equal(t, ViewLogin, rt.View)

	*a = true
	rt, err = r.Navigate("/dashboard")
	require.NoError(t, err)
	assert.Equal(t, ViewDashboard, rt.View)
}

func TestNavigate_NilAuthIsAnonymous(t *testing.T) {
	r, err := New(DefaultRoutes(), nil)
	require.NoError(t, err)

	rt, err := r.Navigate("/dashboard")
	require.NoError(t, err)
	assert.Equal(t, LoginRoute, rt.Name)
}

func TestNavigate_RedirectLoop(t *testing.T) {
	r, err := New([]Route{
		{Path: "/a", RedirectTo: "/b"},
		{Path: "/b", RedirectTo: "/a"},
	}, nil)
	require.NoError(t, err)

	_, err = r.Navigate("/a")
	require.ErrorIs(t, err, ErrRedirectLoop)
}

func TestNavigate_NoRoute(t *testing.T) {
	r, err := New([]Route{{Path: "/", Name: "home", View: ViewHome}}, nil)
	require.NoError(t, err)

	_, err = r.Navigate("/missing")
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestNavigate_MissingGuardTarget(t *testing.T) {
	r, err := New([]Route{{Path: "/secret", Annotation: Annotation{RequiresAuth: true}}}, nil)
	require.NoError(t, err)

	_, err = r.Navigate("/secret")
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestNew_DuplicateName(t *testing.T) {
	_, err := New([]Route{{Path: "/a", Name: "x"}, {Path: "/b", Name: "x"}}, nil)
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestLookupAndByName(t *testing.T) {
	r, _ := newRouter(t, false)

	rt, ok := r.ByName(LandingRoute)
	require.True(t, ok)
	assert.Equal(t, "/dashboard", rt.Path)

	rt, ok = r.Lookup("/anything/else")
	require.True(t, ok)
	assert.Equal(t, "/", rt.RedirectTo)

	assert.Len(t, r.Routes(), 5)
}
