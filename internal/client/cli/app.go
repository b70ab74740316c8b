package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/worklog/internal/api"
	"github.com/dmitrijs2005/worklog/internal/client/client"
	"github.com/dmitrijs2005/worklog/internal/client/config"
	"github.com/dmitrijs2005/worklog/internal/client/session"
	"github.com/spf13/cobra"
)

// Client is the server API the commands need.
type Client interface {
	Register(ctx context.Context, email, password, name, phone string) (string, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*api.User, error)
	CreateTask(ctx context.Context, title, description string) (*api.Task, error)
	ListTasks(ctx context.Context) ([]api.Task, error)
	ToggleTask(ctx context.Context, taskID string) (*api.Task, error)
	CountTasks(ctx context.Context) (*api.CountTasksResponse, error)
	AppendLog(ctx context.Context, date, comment string) (*api.LogRecord, error)
	ListLogs(ctx context.Context) ([]api.MonthGroup, error)
	ExportLogs(ctx context.Context) (*api.ExportLogsResponse, error)
	ListActivities(ctx context.Context, limit int) ([]api.Activity, error)
}

// Deps are the per-invocation collaborators created after flag parsing.
type Deps struct {
	Session *session.Session
	Client  Client
	Close   func() error
}

// Connector builds Deps for a resolved config.
type Connector func(ctx context.Context, cfg *config.Config) (*Deps, error)

// Connect opens the session database, restores the session and dials the
// server.
func Connect(ctx context.Context, cfg *config.Config) (*Deps, error) {
	db, err := session.OpenDB(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	sess := session.New(session.NewSQLiteStore(db))
	if err := sess.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	c, err := client.New(cfg.ServerEndpointAddr, sess, cfg.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Deps{
		Session: sess,
		Client:  c,
		Close: func() error {
			sess.Close()
			return errors.Join(c.Close(), db.Close())
		},
	}, nil
}

type App struct {
	cfg         *config.Config
	connect     Connector
	deps        *Deps
	stdin       io.Reader
	reader      *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	unsubscribe func()
}

func NewApp(cfg *config.Config, connect Connector, stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{
		cfg:     cfg,
		connect: connect,
		stdin:   stdin,
		reader:  bufio.NewReader(stdin),
		out:     stdout,
		errOut:  stderr,
	}
}

// Run executes the command line in args and releases everything the
// command opened.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	defer a.shutdown()
	return root.ExecuteContext(ctx)
}

func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Track tasks and daily work logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	a.cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.taskCommand(),
		a.logCommand(),
		a.activityCommand(),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	if err := a.cfg.Resolve(cmd.Flags()); err != nil {
		return err
	}
	deps, err := a.connect(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	a.deps = deps

	signedIn := deps.Session.Current().SignedIn()
	a.unsubscribe = deps.Session.Subscribe(func(st session.State) {
		switch {
		case st.SignedIn() && !signedIn:
			fmt.Fprintf(a.errOut, "Signed in as %s\n", st.Email)
		case !st.SignedIn() && signedIn:
			fmt.Fprintln(a.errOut, "Signed out")
		}
		signedIn = st.SignedIn()
	})
	return nil
}

func (a *App) shutdown() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.deps != nil && a.deps.Close != nil {
		if err := a.deps.Close(); err != nil {
			fmt.Fprintf(a.errOut, "close: %v\n", err)
		}
	}
	a.deps = nil
}

func (a *App) client() Client {
	return a.deps.Client
}
