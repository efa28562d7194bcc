package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

/*************
 * helpers
 *************/

type staticCredential string

func (s staticCredential) Credential() string { return string(s) }

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type recordingObserver struct {
	mu  sync.Mutex
	got []Exchange
}

func (r *recordingObserver) Observe(_ context.Context, ex Exchange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ex)
}

func newTestServer(t *testing.T, mount func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	mount(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

/*************
 * Send: success path
 *************/

func TestSend_AttachesHeadersAndDecodes(t *testing.T) {
	var gotHeaders http.Header
	var gotBody item

	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/api/items", func(w http.ResponseWriter, r *http.Request) {
			gotHeaders = r.Header.Clone()
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			writeJSON(w, http.StatusCreated, item{ID: 7, Name: gotBody.Name})
		})
	})

	c := New(Config{BaseURL: srv.URL + "/"},
		WithCredentials(staticCredential("tok")),
		WithRequestIDGenerator(func() string { return "req-1" }),
	)

	var out item
	err := c.Send(context.Background(), http.MethodPost, "api/items", item{Name: "lamp"}, &out)
	require.NoError(t, err)

	require.Equal(t, item{ID: 7, Name: "lamp"}, out)
	require.Equal(t, "lamp", gotBody.Name)
	require.Equal(t, "Bearer tok", gotHeaders.Get("Authorization"))
	require.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	require.Equal(t, "application/json", gotHeaders.Get("Accept"))
	require.Equal(t, "req-1", gotHeaders.Get("X-Request-ID"))
}

func TestSend_NoCredential_NoAuthorizationHeader(t *testing.T) {
	var auth string
	var seen bool
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			auth, seen = r.Header.Get("Authorization"), true
			w.WriteHeader(http.StatusNoContent)
		})
	})

	c := New(Config{BaseURL: srv.URL}, WithCredentials(staticCredential("")))
	require.NoError(t, c.Send(context.Background(), http.MethodGet, "/ping", nil, nil))
	require.True(t, seen)
	require.Empty(t, auth)
}

func TestSend_EmptySuccessBody_LeavesOutUntouched(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Delete("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	c := New(Config{BaseURL: srv.URL})
	out := item{ID: 1}
	require.NoError(t, c.Send(context.Background(), http.MethodDelete, "/api/items/1", nil, &out))
	require.Equal(t, item{ID: 1}, out)
}

func TestNew_DefaultTimeout(t *testing.T) {
	c := New(Config{BaseURL: "http://example.invalid"})
	require.Equal(t, DefaultTimeout, c.http.Timeout)
	require.Equal(t, "http://example.invalid", c.BaseURL())
}

func TestNew_WithHTTPClient_LeavesCallerClientUntouched(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}
	c := New(Config{BaseURL: "http://example.invalid", Timeout: 3 * time.Second}, WithHTTPClient(hc))

	require.Equal(t, time.Minute, hc.Timeout)
	require.Equal(t, 3*time.Second, c.http.Timeout)
	require.NotSame(t, hc, c.http)
}

/*************
 * Send: failures
 *************/

func TestSend_Non2xx_ReturnsTransportErrorWithPayload(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post("/api/Auth/register", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"title":  "One or more validation errors occurred.",
				"errors": map[string][]string{"Email": {"is required"}},
			})
		})
	})

	c := New(Config{BaseURL: srv.URL})
	err := c.Send(context.Background(), http.MethodPost, "/api/Auth/register", map[string]string{}, nil)

	te, ok := AsTransportError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, te.StatusCode)
	require.True(t, te.IsValidation())
	require.True(t, te.IsClientError())
	require.Equal(t, PayloadFieldMap, te.Payload.Kind)
	require.Equal(t, []string{"is required"}, te.Payload.Fields["Email"])
	require.Equal(t, "One or more validation errors occurred.", te.Payload.Title)
}

func TestSend_Unauthorized_MatchesSentinel(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/products", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})

	c := New(Config{BaseURL: srv.URL})
	err := c.Send(context.Background(), http.MethodGet, "/api/products", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	te, ok := AsTransportError(err)
	require.True(t, ok)
	require.True(t, te.IsUnauthorized())
	require.True(t, te.Payload.IsEmpty())
}

func TestSend_NetworkFailure_HasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	err := c.Send(context.Background(), http.MethodGet, "/api/products", nil, nil)

	te, ok := AsTransportError(err)
	require.True(t, ok)
	require.Zero(t, te.StatusCode)
	require.True(t, te.IsNetwork())
	require.False(t, te.HasResponse())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSend_Timeout_HasNoStatus(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
	})
	t.Cleanup(func() { close(release) })

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	err := c.Send(context.Background(), http.MethodGet, "/slow", nil, nil)

	te, ok := AsTransportError(err)
	require.True(t, ok)
	require.Zero(t, te.StatusCode)
}

func TestSend_UndecodableSuccessBody(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/items/1", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		})
	})

	c := New(Config{BaseURL: srv.URL})
	var out item
	err := c.Send(context.Background(), http.MethodGet, "/api/items/1", nil, &out)

	te, ok := AsTransportError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, te.StatusCode)
	require.Error(t, te.Err)
}

func TestSend_UnencodableBody_ReturnsPlainError(t *testing.T) {
	c := New(Config{BaseURL: "http://example.invalid"})
	err := c.Send(context.Background(), http.MethodPost, "/x", map[string]any{"bad": make(chan int)}, nil)
	require.Error(t, err)
	_, ok := AsTransportError(err)
	require.False(t, ok)
}

/*************
 * observers
 *************/

func TestSend_NotifiesObservers(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/ok", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		r.Get("/missing", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) })
	})

	rec := &recordingObserver{}
	var calls int32
	c := New(Config{BaseURL: srv.URL},
		WithObserver(rec),
		WithObserver(ObserverFunc(func(context.Context, Exchange) { atomic.AddInt32(&calls, 1) })),
		WithObserver(nil),
	)

	require.NoError(t, c.Send(context.Background(), http.MethodGet, "/ok", nil, nil))
	require.Error(t, c.Send(context.Background(), http.MethodGet, "/missing", nil, nil))

	require.Len(t, rec.got, 2)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))

	require.Equal(t, http.MethodGet, rec.got[0].Method)
	require.Equal(t, "/ok", rec.got[0].Path)
	require.Equal(t, http.StatusOK, rec.got[0].StatusCode)
	require.NoError(t, rec.got[0].Err)
	require.NotEmpty(t, rec.got[0].RequestID)

	require.Equal(t, http.StatusNotFound, rec.got[1].StatusCode)
	te, ok := AsTransportError(rec.got[1].Err)
	require.True(t, ok)
	require.True(t, te.IsNotFound())
}

/*************
 * breaker
 *************/

func TestSend_BreakerOpensAfterServerErrors(t *testing.T) {
	var hits int32
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/products", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		})
	})

	settings := DefaultBreakerSettings("catalog")
	settings.MinRequests = 2
	settings.FailureThreshold = 0.5

	c := New(Config{BaseURL: srv.URL}, WithBreaker(settings, nil))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := c.Send(ctx, http.MethodGet, "/api/products", nil, nil)
		te, ok := AsTransportError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusInternalServerError, te.StatusCode)
		require.True(t, te.IsServerError())
	}

	err := c.Send(ctx, http.MethodGet, "/api/products", nil, nil)
	require.ErrorIs(t, err, ErrCircuitOpen)
	te, ok := AsTransportError(err)
	require.True(t, ok)
	require.Zero(t, te.StatusCode)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestSend_BreakerIgnoresClientErrors(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	})

	settings := DefaultBreakerSettings("catalog")
	settings.MinRequests = 1
	settings.FailureThreshold = 0.1

	c := New(Config{BaseURL: srv.URL}, WithBreaker(settings, nil))
	for i := 0; i < 5; i++ {
		err := c.Send(context.Background(), http.MethodGet, "/api/products/9", nil, nil)
		require.False(t, errors.Is(err, ErrCircuitOpen))
		te, ok := AsTransportError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusNotFound, te.StatusCode)
	}
}
