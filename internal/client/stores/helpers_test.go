package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/client/api"
	"github.com/dmitrijs2005/catalogclient/internal/client/client"
	"github.com/dmitrijs2005/catalogclient/internal/client/models"
	"github.com/dmitrijs2005/catalogclient/internal/client/session"
	"github.com/dmitrijs2005/catalogclient/internal/client/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const validToken = "header.payload.signature"

// backend is a fake catalog server: one account, products and categories.
type backend struct {
	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	nextID     int64
	// rejectAll answers every catalog call with 401.
	rejectAll bool
	down      bool
}

func newBackend() *backend {
	return &backend{
		products: []models.Product{
			{ID: 1, Name: "Tea", Price: 3.5, CategoryID: 10},
			{ID: 2, Name: "Mug", Price: 8, CategoryID: 20},
			{ID: 3, Name: "Pot", Price: 20, CategoryID: 20},
		},
		categories: []models.Category{{ID: 10, Name: "Drinks"}, {ID: 20, Name: "Kitchen"}},
		nextID:     100,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/Auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body models.LoginRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Username != "ann@example.com" || body.Password != "s3cret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
			return
		}
		writeJSON(w, http.StatusOK, models.AuthResponse{
			Token: validToken,
			User:  &models.User{ID: "1", Email: "ann@example.com", FirstName: "Ann"},
		})
	})
	r.Post("/api/Auth/register", func(w http.ResponseWriter, req *http.Request) {
		var body models.RegisterRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Email == "ann@example.com" {
			writeJSON(w, http.StatusConflict, map[string]string{})
			return
		}
		if body.FirstName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": map[string][]string{"FirstName": {"The FirstName field is required."}},
			})
			return
		}
		writeJSON(w, http.StatusOK, models.AuthResponse{
			Token: validToken,
			User:  &models.User{ID: "2", Email: body.Email, Username: body.Username, FirstName: body.FirstName},
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(b.guard)
		r.Get("/api/categories", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			writeJSON(w, http.StatusOK, b.categories)
		})
		r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			writeJSON(w, http.StatusOK, b.products)
		})
		r.Get("/api/products/category/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
			b.mu.Lock()
			defer b.mu.Unlock()
			out := []models.Product{}
			for _, p := range b.products {
				if p.CategoryID == id {
					out = append(out, p)
				}
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Delete("/api/products/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, p := range b.products {
				if p.ID == id {
					b.products = append(b.products[:i], b.products[i+1:]...)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		})
	})
	return r
}

func (b *backend) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		reject, down := b.rejectAll, b.down
		b.mu.Unlock()

		switch {
		case down:
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"title": "Service Unavailable"})
		case reject || req.Header.Get("Authorization") != "Bearer "+validToken:
			w.WriteHeader(http.StatusUnauthorized)
		default:
			next.ServeHTTP(w, req)
		}
	})
}

func (b *backend) set(fn func(b *backend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

// harness wires the real HTTP client, API bindings and SQLite storage
// against a fake backend.
type harness struct {
	backend  *backend
	sess     *session.Context
	storage  *session.MetadataStorage
	db       *sql.DB
	session  *Session
	products *Products
	cats     *Categories
}

func newHarness(t *testing.T, opts ...SessionOption) *harness {
	t.Helper()

	b := newBackend()
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)

	db, err := storage.InitDatabase(context.Background(), storage.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sess := session.NewContext()
	c := client.New(client.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, client.WithCredentials(sess))
	endpoints := api.DefaultEndpoints()
	st := session.NewMetadataStorage(db)

	s := NewSession(sess, api.NewAuth(c, endpoints), st, opts...)
	return &harness{
		backend:  b,
		sess:     sess,
		storage:  st,
		db:       db,
		session:  s,
		products: NewProducts(api.NewProducts(c, endpoints), OnUnauthorized(s.Expire)),
		cats:     NewCategories(api.NewCategories(c, endpoints), OnUnauthorized(s.Expire)),
	}
}

// memStorage is a session.Storage held in memory with injectable failures.
type memStorage struct {
	snap     session.Snapshot
	loadErr  error
	saveErr  error
	clearErr error
	cleared  int
}

func (m *memStorage) Load(context.Context) (session.Snapshot, error) { return m.snap, m.loadErr }

func (m *memStorage) Save(_ context.Context, s session.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = s
	return nil
}

func (m *memStorage) Clear(context.Context) error {
	m.cleared++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.snap = session.Snapshot{}
	return nil
}

// fakeAuth is an Authenticator with canned results.
type fakeAuth struct {
	resp        *models.AuthResponse
	err         error
	validateErr error
	calls       int
}

func (f *fakeAuth) Login(context.Context, string, string) (*models.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAuth) Register(context.Context, models.Profile, string) (*models.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAuth) Validate(context.Context) error {
	f.calls++
	return f.validateErr
}

var errBoom = errors.New("boom")
