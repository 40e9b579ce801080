package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/cooksocial/internal/client/config"
	"github.com/dmitrijs2005/cooksocial/internal/client/feed"
	"github.com/dmitrijs2005/cooksocial/internal/client/gateway"
	"github.com/dmitrijs2005/cooksocial/internal/client/localdb"
	"github.com/dmitrijs2005/cooksocial/internal/client/services"
	"github.com/dmitrijs2005/cooksocial/internal/client/session"
	"github.com/dmitrijs2005/cooksocial/internal/client/tokens"
	"github.com/dmitrijs2005/cooksocial/internal/common"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
)

// openLocalDB and newCognito are seams for tests.
var (
	openLocalDB = localdb.Open
	newCognito  = func(ctx context.Context, opts gateway.CognitoOptions, store tokens.Store, log logging.Logger) (gateway.Gateway, error) {
		return gateway.NewCognito(ctx, opts, store, log)
	}
)

type App struct {
	config *config.Config
	auth   *services.AuthController
	feed   *feed.Store
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB
}

// NewApp builds the client from c. Logs go to stderr so that they do not mix
// with the REPL output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel).With("app", "cli")

	gw, db, err := buildGateway(ctx, c, log)
	if err != nil {
		return nil, err
	}

	a := newApp(c, gw, log, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, gw gateway.Gateway, log logging.Logger, in io.Reader, out io.Writer) *App {
	posts := feed.NewStore()
	return &App{
		config: c,
		auth:   services.NewAuthController(gw, session.NewStore(), posts, log),
		feed:   posts,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func buildGateway(ctx context.Context, c *config.Config, log logging.Logger) (gateway.Gateway, *sql.DB, error) {
	switch c.Gateway {
	case config.GatewayDemo:
		return gateway.NewDemo(log), nil, nil

	case config.GatewayCognito:
		var (
			store tokens.Store = tokens.NewMemoryStore()
			db    *sql.DB
		)
		if c.TokenCacheDSN != "" {
			var err error
			db, err = openLocalDB(ctx, c.TokenCacheDSN)
			if err != nil {
				return nil, nil, fmt.Errorf("token cache error: %w", err)
			}
			store = tokens.NewSQLiteStore(db)
		}

		gw, err := newCognito(ctx, gateway.CognitoOptions{
			Region:       c.Region,
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     c.CognitoEndpoint,
		}, store, log)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, nil, err
		}
		return gw, db, nil

	default:
		return nil, nil, fmt.Errorf("%w: gateway %q", common.ErrorUnknownBackend, c.Gateway)
	}
}

// Run probes for a previous session and then serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to cooksocial (type 'help' for commands)")

	cctx, cancel := a.callCtx(ctx)
	restored := a.auth.Restore(cctx)
	cancel()
	if restored {
		if s, ok := a.auth.Session(); ok {
			fmt.Fprintf(a.out, "Welcome back, %s!\n", s.Username)
		}
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.Session()
	return ok
}

func (a *App) status() string {
	if s, ok := a.auth.Session(); ok {
		return fmt.Sprintf("(%s)", s.Username)
	}
	return ""
}

func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// call runs fn with a per-request deadline, showing a marker while it runs.
func (a *App) call(ctx context.Context, fn func(ctx context.Context) error) error {
	fmt.Fprintln(a.out, "Loading...")
	cctx, cancel := a.callCtx(ctx)
	defer cancel()
	return fn(cctx)
}

// report prints the user-facing text of err.
func (a *App) report(err error) {
	fmt.Fprintln(a.out, services.UserMessage(err))
}
