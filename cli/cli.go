// Package cli is the command-line front end: every ledger action as a kong
// subcommand plus serve for the HTTP API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"go-bank-ledger/app"
	"go-bank-ledger/config"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	accountStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#D7AF00"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

// PrintError renders err the way every command failure is shown.
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(err.Error()),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var errPasswordRequired = errors.New("password is required (use --password or BANK_PASSWORD)")

// promptPassword asks for a password without echo. Outside a terminal it
// fails instead of blocking.
func promptPassword(title string) (string, error) {
	if !isTerminal() {
		return "", errPasswordRequired
	}

	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errPasswordRequired
	}
	return password, nil
}

// Amount is a positional money argument.
type Amount struct {
	decimal.Decimal
}

// Decode implements kong.MapperValue.
func (a *Amount) Decode(ctx *kong.DecodeContext) error {
	var raw string
	if err := ctx.Scan.PopValueInto("amount", &raw); err != nil {
		return err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid amount %q", raw)
	}
	a.Decimal = d
	return nil
}

// Credentials are the login flags shared by every command that acts on
// an account.
type Credentials struct {
	Username string `help:"Login username." short:"u" required:""`
	Password string `help:"Login password (prompted when omitted on a terminal)." env:"BANK_PASSWORD"`
}

// authenticate resolves the logged-in customer.
func (c *Credentials) authenticate(a *app.App) (*model.Customer, error) {
	password := c.Password
	if password == "" {
		var err error
		if password, err = promptPassword("Password for " + c.Username); err != nil {
			return nil, err
		}
	}
	return a.Sessions.Authenticate(c.Username, password)
}

// openApp loads configuration and the persisted state. Log lines go to
// stderr so command output stays clean.
func openApp(ctx context.Context, globals *Globals) (*app.App, error) {
	cfg, err := config.LoadConfig(globals.Config)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if globals.LogLevel != "" {
		level = globals.LogLevel
	}
	logger.Configure(level, cfg.Log.Format)
	logger.Log.SetOutput(globals.logOutput())

	return app.New(ctx, cfg)
}
