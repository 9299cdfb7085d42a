package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bujo/internal/client/client"
	"github.com/dmitrijs2005/bujo/internal/client/config"
	"github.com/dmitrijs2005/bujo/internal/client/models"
	"github.com/dmitrijs2005/bujo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bujo/internal/client/resources"
	"github.com/dmitrijs2005/bujo/internal/client/router"
	"github.com/dmitrijs2005/bujo/internal/client/services"
	"github.com/dmitrijs2005/bujo/internal/client/state"
	"github.com/dmitrijs2005/bujo/internal/client/tokens"
	"github.com/dmitrijs2005/bujo/internal/client/tokenstore"
	"github.com/dmitrijs2005/bujo/internal/logging"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	authService services.AuthService
	res         *resources.Set
	guard       *router.Guard
	state       *state.LoginState
	reader      *bufio.Reader
	out         io.Writer
	closer      io.Closer
}

// NewApp opens the configured session store and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repo, closer, err := client.OpenRepository(ctx, client.StorageOptions{
		Kind:         c.Store,
		DatabasePath: c.DatabasePath,
		RedisURL:     c.RedisURL,
	})
	if err != nil {
		log.Error(ctx, "error initializing session store", "store", c.Store, "error", err)
		return nil, err
	}

	app, err := newApp(c, repo, log, os.Stdin, os.Stdout)
	if err != nil {
		closer.Close()
		return nil, err
	}
	app.closer = closer
	return app, nil
}

func newApp(c *config.Config, repo metadata.Repository, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	store := tokenstore.New(repo, log)

	apiClient, err := client.New(c.BaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	st := state.New(store.User(context.Background()))
	as := services.NewAuthService(apiClient, store, tokens.NewValidator(), st, log)

	a := &App{
		config:      c,
		log:         log,
		authService: as,
		res:         resources.NewSet(apiClient, as),
		guard:       router.NewGuard(as, router.DefaultRoutes()),
		state:       st,
		reader:      bufio.NewReader(in),
		out:         out,
	}
	st.Subscribe(a.onSessionChange)
	return a, nil
}

// Run lands on the root screen and then serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to the bullet journal CLI (type 'help' for commands)")
	if err := a.navigate(ctx, router.Root); err != nil {
		printlnFn("error:", describe(err))
	}
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.guard.Allowed(ctx, router.PolicyLoggedIn)
}

// status is the prompt suffix. It also notices sessions dropped by the
// HTTP client after a failed token refresh.
func (a *App) status(ctx context.Context) string {
	u := a.authService.CurrentUser(ctx)
	if u == nil {
		if a.state.LoggedIn() {
			a.state.SetUser(nil)
		}
		return ""
	}
	return "(" + u.DisplayName() + ")"
}

func (a *App) onSessionChange(u *models.User) {
	if u == nil {
		fmt.Fprintln(a.out, "You are logged out.")
	}
}
