package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/cli"
	"github.com/theirongolddev/paisa/internal/logging"
	"github.com/theirongolddev/paisa/internal/sandbox"

	"github.com/spf13/cobra"
)

var (
	flagSandboxAddr    string
	flagSandboxLogFile string
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run an in-memory Paisa backend for offline use",
	Long: "Serve the Paisa REST API from memory until interrupted. Data is lost when the server stops.\n" +
		"An administrator is seeded as " + sandbox.AdminEmail + " / " + sandbox.AdminPassword + ".",
	Args: cobra.NoArgs,
	RunE: runSandbox,
}

var sandboxStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what a running sandbox holds",
	Args:  cobra.NoArgs,
	RunE:  runSandboxStatus,
}

func init() {
	sandboxCmd.PersistentFlags().StringVar(&flagSandboxAddr, "addr", "127.0.0.1:8080", "HTTP listen address")
	sandboxCmd.Flags().StringVar(&flagSandboxLogFile, "log-file", "", "Also write JSON request logs to this file")

	sandboxCmd.AddCommand(sandboxStatusCmd)
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(cmd *cobra.Command, _ []string) error {
	lc := logging.DefaultConfig()
	lc.Component = logging.ComponentSandbox
	lc.File = flagSandboxLogFile
	lc.Verbose = true
	if flagVerbose {
		lc.Level = slog.LevelDebug
	}
	logger, closeLog, err := logging.New(lc)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	srv := sandbox.New(sandbox.WithLogger(logger.Logger))

	info("paisa sandbox listening on %s", sandboxURL(flagSandboxAddr))
	info("Point the client at it with: paisa --api %s/api login", sandboxURL(flagSandboxAddr))
	info("Admin login: %s / %s", sandbox.AdminEmail, sandbox.AdminPassword)
	info("Stop with Ctrl+C")

	if err := srv.Run(cmd.Context(), flagSandboxAddr); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runSandboxStatus(cmd *cobra.Command, _ []string) error {
	st, err := fetchSandboxStatus(cmd.Context(), flagSandboxAddr)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(renderSandboxStatus(flagSandboxAddr, st))
	fmt.Println()
	return nil
}

// fetchSandboxStatus reads /health from the sandbox at addr.
func fetchSandboxStatus(ctx context.Context, addr string) (sandbox.Status, error) {
	var st sandbox.Status
	client := api.New(sandboxURL(addr), nil, api.WithTimeout(2*time.Second))
	if err := client.Get(ctx, "/health", &st); err != nil {
		return st, fmt.Errorf("no sandbox answering at %s: %s", sandboxURL(addr), api.MessageOf(err, "unreachable"))
	}
	if st.Service != sandbox.ServiceName {
		return st, fmt.Errorf("%s is not a paisa sandbox", sandboxURL(addr))
	}
	return st, nil
}

func renderSandboxStatus(addr string, st sandbox.Status) string {
	uptime := time.Since(st.StartedAt).Truncate(time.Second)
	return cli.RenderTable(cli.Table{
		Title: "Sandbox",
		Rows: [][]string{
			{"Address", sandboxURL(addr)},
			{"Status", st.Status},
			{"Up since", st.StartedAt.Local().Format(time.RFC3339) + " (" + uptime.String() + ")"},
			{"Users", strconv.Itoa(st.Users) + " (" + strconv.Itoa(st.Sessions) + " signed in)"},
			{"Accounts", strconv.Itoa(st.Accounts)},
			{"Transactions", strconv.Itoa(st.Transactions)},
			{"Budgets", strconv.Itoa(st.Budgets)},
		},
		LeftCols: 2,
	})
}

// sandboxURL accepts a bare host:port as well as a full URL.
func sandboxURL(addr string) string {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	return "http://" + addr
}
