// Package apierror turns transport failures into the single display message
// stored in a store's error field.
package apierror

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/catalogclient/internal/client/client"
)

// Messages produced when the payload carries nothing more specific.
const (
	MsgConflict           = "a resource with this identity already exists"
	MsgInvalidCredentials = "invalid credentials"
	MsgNotPermitted       = "operation not permitted on this resource"
	MsgUnreachable        = "unable to reach the server"
	MsgUnexpected         = "unexpected error"
)

// Normalize returns a non-empty human-readable message for err. The first
// matching rule wins:
//
//  1. 400 with a field-keyed map of messages: "field: message" pairs
//  2. 400 with a flat list of messages (or a single errors string)
//  3. 409: the payload message or MsgConflict
//  4. 401: MsgInvalidCredentials
//  5. 405: MsgNotPermitted
//  6. payload message or title
//  7. no response: MsgUnreachable
//  8. MsgUnexpected
//
// Errors that are not a *client.TransportError (nil included) yield
// MsgUnexpected.
func Normalize(err error) string {
	te, ok := client.AsTransportError(err)
	if !ok {
		return MsgUnexpected
	}
	return NormalizeTransport(te)
}

// NormalizeTransport applies the rules of Normalize to te.
func NormalizeTransport(te *client.TransportError) string {
	if te == nil {
		return MsgUnexpected
	}
	p := te.Payload

	if te.StatusCode == http.StatusBadRequest {
		switch p.Kind {
		case client.PayloadFieldMap:
			if msg := joinFields(p.Fields); msg != "" {
				return msg
			}
		case client.PayloadFlat:
			if msg := joinList(p.List); msg != "" {
				return msg
			}
		case client.PayloadSingle:
			if msg := strings.TrimSpace(p.Single); msg != "" {
				return msg
			}
		}
	}

	switch te.StatusCode {
	case http.StatusConflict:
		if msg := strings.TrimSpace(p.Message); msg != "" {
			return msg
		}
		return MsgConflict
	case http.StatusUnauthorized:
		return MsgInvalidCredentials
	case http.StatusMethodNotAllowed:
		return MsgNotPermitted
	}

	// Raw bodies (proxy pages, truncated JSON) are never shown.
	for _, candidate := range []string{p.Message, p.Title} {
		if msg := strings.TrimSpace(candidate); msg != "" {
			return msg
		}
	}

	if te.StatusCode == 0 {
		return MsgUnreachable
	}
	return MsgUnexpected
}

func joinFields(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, m := range fields[k] {
			if m = strings.TrimSpace(m); m != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", k, m))
			}
		}
	}
	return strings.Join(parts, ", ")
}

func joinList(list []string) string {
	parts := make([]string, 0, len(list))
	for _, m := range list {
		if m = strings.TrimSpace(m); m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, ", ")
}
