package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/paisa/internal/cli"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagAuthEmail string
	flagAuthName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVarP(&flagAuthEmail, "email", "e", "", "Email address (prompted when empty)")
	}
	registerCmd.Flags().StringVar(&flagAuthName, "name", "", "Display name (prompted when empty)")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	in := bufio.NewReader(os.Stdin)
	email, err := promptLine(in, "Email", flagAuthEmail)
	if err != nil {
		return err
	}
	password, err := promptPassword(in, "Password")
	if err != nil {
		return err
	}

	if _, err := a.sess.Login(cmd.Context(), email, password); err != nil {
		return userError(err)
	}
	info("Signed in as %s", identity(a))
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	in := bufio.NewReader(os.Stdin)
	name, err := promptLine(in, "Name", flagAuthName)
	if err != nil {
		return err
	}
	email, err := promptLine(in, "Email", flagAuthEmail)
	if err != nil {
		return err
	}
	password, err := promptPassword(in, "Password")
	if err != nil {
		return err
	}

	if err := a.sess.Register(cmd.Context(), email, password, name); err != nil {
		return userError(err)
	}
	info("Account created. Signed in as %s", identity(a))
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.sess.Authenticated() {
		info("Not signed in")
		return nil
	}
	a.sess.Logout()
	info("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	snap := a.sess.Snapshot()
	if snap.User == nil {
		return errNotSignedIn
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Rows: [][]string{
			{"Name", snap.User.Name},
			{"Email", snap.User.Email},
			{"Role", snap.User.Role.String()},
			{"Backend", a.client.BaseURL()},
			{"Session store", a.cfg.Session.Store},
		},
		LeftCols: 2,
	}))
	fmt.Println()
	return nil
}

func identity(a *app) string {
	snap := a.sess.Snapshot()
	if snap.User == nil {
		return ""
	}
	if snap.User.Name == "" {
		return snap.User.Email
	}
	return fmt.Sprintf("%s <%s>", snap.User.Name, snap.User.Email)
}

// promptLine returns preset when set, otherwise reads a line from in.
func promptLine(in *bufio.Reader, label, preset string) (string, error) {
	if preset != "" {
		return strings.TrimSpace(preset), nil
	}
	fmt.Printf("  %s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line so it can be piped.
func promptPassword(in *bufio.Reader, label string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // fd fits in int
	if !term.IsTerminal(fd) {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Printf("  %s: ", label)
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}
