// Package api binds the catalog backend's REST contract to the HTTP client.
package api

import (
	"fmt"
	"strings"
)

// Endpoints holds one path per backend operation. Backend revisions differ
// in casing (/api/auth vs /api/Auth), so every path is configurable.
type Endpoints struct {
	Login      string `json:"login" yaml:"login" validate:"required,startswith=/"`
	Register   string `json:"register" yaml:"register" validate:"required,startswith=/"`
	Validate   string `json:"validate" yaml:"validate" validate:"required,startswith=/"`
	Products   string `json:"products" yaml:"products" validate:"required,startswith=/"`
	Categories string `json:"categories" yaml:"categories" validate:"required,startswith=/"`
}

// DefaultEndpoints returns the paths of the current backend revision.
//
// Validate defaults to the category listing, which the current backend
// serves only with a valid bearer token. If a deployment serves it
// anonymously, every validation succeeds and a revoked credential is never
// detected; configure Validate to a GET that requires authentication.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:      "/api/Auth/login",
		Register:   "/api/Auth/register",
		Validate:   "/api/categories",
		Products:   "/api/products",
		Categories: "/api/categories",
	}
}

func itemPath(collection string, id int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimRight(collection, "/"), id)
}
