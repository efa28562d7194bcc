package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/client/api"
	"github.com/dmitrijs2005/catalogclient/internal/client/client"
	"github.com/dmitrijs2005/catalogclient/internal/client/config"
	"github.com/dmitrijs2005/catalogclient/internal/client/metrics"
	"github.com/dmitrijs2005/catalogclient/internal/client/router"
	"github.com/dmitrijs2005/catalogclient/internal/client/session"
	"github.com/dmitrijs2005/catalogclient/internal/client/storage"
	"github.com/dmitrijs2005/catalogclient/internal/client/stores"
	"github.com/dmitrijs2005/catalogclient/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App wires the stores, router and terminal I/O.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	session    *stores.Session
	products   *stores.Products
	categories *stores.Categories
	router     *router.Router
	collector  *metrics.Collector

	reader     *bufio.Reader
	out        io.Writer
	readSecret func(w io.Writer) ([]byte, error)
}

type AppOption func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) AppOption {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

// WithSecretReader replaces the no-echo password prompt.
func WithSecretReader(fn func(w io.Writer) ([]byte, error)) AppOption {
	return func(a *App) { a.readSecret = fn }
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, opts ...AppOption) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := storage.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init session database: %w", err)
	}

	sess := session.NewContext()

	clientOpts := []client.Option{
		client.WithCredentials(sess),
		client.WithObserver(client.NewLogObserver(log)),
	}

	var collector *metrics.Collector
	if cfg.MetricsAddr != "" {
		collector = metrics.NewCollector("catalog")
		clientOpts = append(clientOpts, client.WithObserver(collector))
	}
	if cfg.Breaker {
		clientOpts = append(clientOpts, client.WithBreaker(client.DefaultBreakerSettings("catalog-api"), log))
	}

	hc := client.New(client.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, clientOpts...)

	s := stores.NewSession(sess, api.NewAuth(hc, cfg.Endpoints), session.NewMetadataStorage(db),
		stores.WithSessionLogger(log))

	storeOpts := []stores.Option{stores.WithLogger(log), stores.OnUnauthorized(s.Expire)}

	rt, err := router.New(router.DefaultRoutes(), s)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:     cfg,
		log:        log,
		db:         db,
		session:    s,
		products:   stores.NewProducts(api.NewProducts(hc, cfg.Endpoints), storeOpts...),
		categories: stores.NewCategories(api.NewCategories(hc, cfg.Endpoints), storeOpts...),
		router:     rt,
		collector:  collector,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		readSecret: GetPassword,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run restores the session, opens the start view and serves the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if a.collector != nil {
		stop := a.serveMetrics(ctx)
		defer stop()
	}

	a.printBanner()
	a.restore(ctx)

	start := "/"
	if a.session.IsAuthenticated() {
		start = "/dashboard"
	}
	if err := a.Go(ctx, start); err != nil {
		return err
	}

	runREPL(ctx, a.commands(), a.isLoggedIn, a.statusLine, a.reader, a.out)
	return nil
}

// Close releases the session database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// restore loads the persisted session and confirms it with the server.
func (a *App) restore(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "persisted session not restored", "error", err)
		return
	}
	if a.session.State() != session.Restored {
		return
	}

	if a.session.Validate(ctx) {
		a.printf("Welcome back, %s.\n", a.who())
		return
	}
	if a.session.IsAuthenticated() {
		a.printf("Could not confirm your session (%s); continuing offline.\n", a.session.Error())
		return
	}
	a.printf("Your session has expired, please log in again.\n")
}

func (a *App) serveMetrics(ctx context.Context) func() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", a.collector.Handler())

	srv := &http.Server{Addr: a.config.MetricsAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "metrics server stopped", "addr", srv.Addr, "error", err)
		}
	}()
	a.log.Info(ctx, "serving metrics", "addr", srv.Addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func (a *App) statusLine() string {
	view := a.router.Current().View
	if view == "" {
		view = "-"
	}
	return fmt.Sprintf("%s@%s", a.who(), view)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}
