// Package cmd implements the paisa CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/config"
	"github.com/theirongolddev/paisa/internal/controller"
	"github.com/theirongolddev/paisa/internal/logging"
	"github.com/theirongolddev/paisa/internal/session"
	"github.com/theirongolddev/paisa/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagAPI     string
	flagConfig  string
	flagVerbose bool
	flagQuiet   bool
)

var errNotSignedIn = errors.New("not signed in, run `paisa login` or `paisa register` first")

var errSignInAgain = errors.New("saved login does not include your role, run `paisa login` again")

var rootCmd = &cobra.Command{
	Use:   "paisa",
	Short: "Personal finance from the terminal",
	Long:  "Track accounts, transactions and your monthly budget against a Paisa backend.",
	RunE:  runRoot,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Backend base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.sess.Authenticated() {
		fmt.Println()
		fmt.Println("  Not signed in.")
		fmt.Println("  Run `paisa login`, `paisa register` or `paisa tui` to get started.")
		fmt.Println()
		return nil
	}
	return showDashboard(cmd.Context(), a)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		return cfg, err
	}
	if flagAPI != "" {
		cfg.API.BaseURL = flagAPI
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, component string) (*logging.Logger, func() error, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Component = component
	if cfg.Log.File != "" {
		lc.File = cfg.Log.File
	}
	if flagVerbose {
		lc.Verbose = true
		lc.Level = min(level, slog.LevelDebug)
	}
	return logging.New(lc)
}

// app is the wiring shared by every command that talks to the backend.
type app struct {
	cfg    config.Config
	log    *logging.Logger
	tokens store.TokenStore
	sess   *session.Store
	client *api.Client

	accounts        *controller.Accounts
	transactions    *controller.Transactions
	budget          *controller.Budget
	dashboard       *controller.Dashboard
	recommendations *controller.Recommendations
	admin           *controller.Admin

	closeLog func() error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(cfg, logging.ComponentApp)
	if err != nil {
		return nil, err
	}

	tokens, err := openTokenStore(ctx, cfg)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	sess, client := session.Connect(cfg.API.BaseURL, tokens,
		logger.WithComponent(logging.ComponentSession).Logger,
		api.WithTimeout(timeout),
		api.WithLogger(logger.WithComponent(logging.ComponentAPI).Logger),
	)
	if _, err := sess.Restore(ctx); err != nil {
		logger.Warn("restoring session", logging.FieldError, err)
	}

	copts := controller.Options{
		LenientAmounts: cfg.Client.LenientAmounts,
		Logger:         logger.WithComponent(logging.ComponentController).Logger,
	}
	return &app{
		cfg:             cfg,
		log:             logger,
		tokens:          tokens,
		sess:            sess,
		client:          client,
		accounts:        controller.NewAccounts(client, copts),
		transactions:    controller.NewTransactions(client, copts),
		budget:          controller.NewBudget(client, copts),
		dashboard:       controller.NewDashboard(client, copts),
		recommendations: controller.NewRecommendations(client, copts),
		admin:           controller.NewAdmin(client, sess, copts),
		closeLog:        closeLog,
	}, nil
}

func openTokenStore(ctx context.Context, cfg config.Config) (store.TokenStore, error) {
	if cfg.Session.Store == config.StoreRedis {
		rs, err := store.OpenRedis(ctx, cfg.Session.RedisURL)
		if err != nil {
			return nil, err
		}
		return rs, nil
	}
	ss, err := store.OpenSQLite(cfg.SessionDBPath())
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func (a *app) Close() {
	if err := a.tokens.Close(); err != nil {
		a.log.Warn("closing token store", logging.FieldError, err)
	}
	_ = a.closeLog()
}

func (a *app) timeout() time.Duration {
	return time.Duration(a.cfg.API.TimeoutSec) * time.Second
}

func (a *app) requireLogin() error {
	if !a.sess.Authenticated() {
		return errNotSignedIn
	}
	return nil
}

// info prints a status line unless --quiet is set.
func info(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf("  "+format+"\n", args...)
}

// userError turns gateway and validation failures into the message the
// backend or the validator produced.
func userError(err error) error {
	if err == nil {
		return nil
	}
	var verr *controller.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr
	case errors.Is(err, session.ErrForbidden):
		return errors.New("admin access required")
	case errors.Is(err, session.ErrRoleUnknown):
		return errSignInAgain
	case errors.Is(err, session.ErrNotAuthenticated):
		return errNotSignedIn
	case errors.Is(err, context.DeadlineExceeded):
		return errors.New("request timed out")
	}
	return errors.New(api.MessageOf(err, ""))
}
