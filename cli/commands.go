package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"go-bank-ledger/app"
	"go-bank-ledger/model"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config   string `help:"Directory containing config.yml." default:"." type:"path"`
	LogLevel string `help:"Override the configured log level."`

	// LogOutput receives log lines; stderr when nil.
	LogOutput io.Writer `kong:"-"`
}

func (g *Globals) logOutput() io.Writer {
	if g.LogOutput == nil {
		return os.Stderr
	}
	return g.LogOutput
}

type Commands struct {
	Globals

	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API."`
	Register RegisterCmd `cmd:"" help:"Register a customer with a default account and a login."`
	Accounts AccountsCmd `cmd:"" help:"List your accounts and balances."`
	Open     OpenCmd     `cmd:"" name:"open-account" help:"Open another account with a zero balance."`
	Deposit  DepositCmd  `cmd:"" help:"Deposit money into one of your accounts."`
	Withdraw WithdrawCmd `cmd:"" help:"Withdraw money from one of your accounts."`
	Transfer TransferCmd `cmd:"" help:"Transfer money from one of your accounts to any other account."`
	History  HistoryCmd  `cmd:"" help:"Show the transaction history of one of your accounts."`
}

type ServeCmd struct{}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(runCtx, globals)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(runCtx)
}

type RegisterCmd struct {
	Username   string `help:"Login username." short:"u" required:""`
	Password   string `help:"Login password (prompted when omitted on a terminal)." env:"BANK_PASSWORD"`
	CustomerID string `help:"Customer ID." name:"customer-id" required:""`
	Name       string `help:"Full name." required:""`
	Email      string `help:"Email address." required:""`
	Phone      string `help:"Phone number." required:""`
}

func (cmd *RegisterCmd) Run(ctx *kong.Context, globals *Globals) error {
	password := cmd.Password
	if password == "" {
		var err error
		if password, err = promptPassword("Choose a password"); err != nil {
			return err
		}
	}

	runCtx := context.Background()
	a, err := openApp(runCtx, globals)
	if err != nil {
		return err
	}
	defer a.Close()

	customer, err := a.Registration.Register(runCtx, model.RegisterRequest{
		Username:   cmd.Username,
		Password:   password,
		CustomerID: cmd.CustomerID,
		Name:       cmd.Name,
		Email:      cmd.Email,
		Phone:      cmd.Phone,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Registered %s (customer %s)", cmd.Username, customer.ID))
	for _, acc := range customer.GetAllAccounts() {
		printInfof(ctx.Stdout, "Opened %s", accountStyle.Render(acc.Number))
	}
	return nil
}

type AccountsCmd struct {
	Credentials `embed:""`
}

func (cmd *AccountsCmd) Run(ctx *kong.Context, globals *Globals) error {
	a, err := openApp(context.Background(), globals)
	if err != nil {
		return err
	}
	defer a.Close()

	customer, err := cmd.authenticate(a)
	if err != nil {
		return err
	}
	accounts, err := a.Bank.AccountsForCustomer(customer.ID)
	if err != nil {
		return err
	}

	printInfof(ctx.Stdout, "Welcome, %s", customer.Name)
	for _, acc := range accounts {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s\n", acc)
	}
	return nil
}

type OpenCmd struct {
	Credentials `embed:""`

	Account string `help:"Number of the new account." arg:""`
	Type    string `help:"Account type." default:"Savings"`
}

func (cmd *OpenCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()
	a, err := openApp(runCtx, globals)
	if err != nil {
		return err
	}
	defer a.Close()

	customer, err := cmd.authenticate(a)
	if err != nil {
		return err
	}

	account := model.NewAccount(cmd.Account, customer.ID, decimal.Zero, cmd.Type)
	if err := a.Bank.OpenAccount(runCtx, customer.ID, account); err != nil {
		return fmt.Errorf("%s: %w", cmd.Account, err)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Opened %s account %s", account.Type, accountStyle.Render(account.Number)))
	return nil
}

type DepositCmd struct {
	Credentials `embed:""`

	Account string `help:"Account number." arg:""`
	Amount  Amount `help:"Amount to deposit." arg:""`
}

func (cmd *DepositCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runOwned(globals, &cmd.Credentials, cmd.Account, func(runCtx context.Context, a *app.App) error {
		t, err := a.Bank.Deposit(runCtx, cmd.Account, cmd.Amount.Decimal)
		if err != nil {
			return err
		}
		printSuccess(ctx.Stdout, t.String())
		return printBalance(ctx.Stdout, a, cmd.Account)
	})
}

type WithdrawCmd struct {
	Credentials `embed:""`

	Account string `help:"Account number." arg:""`
	Amount  Amount `help:"Amount to withdraw." arg:""`
}

func (cmd *WithdrawCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runOwned(globals, &cmd.Credentials, cmd.Account, func(runCtx context.Context, a *app.App) error {
		t, err := a.Bank.Withdraw(runCtx, cmd.Account, cmd.Amount.Decimal)
		if err != nil {
			return err
		}
		printSuccess(ctx.Stdout, t.String())
		return printBalance(ctx.Stdout, a, cmd.Account)
	})
}

type TransferCmd struct {
	Credentials `embed:""`

	From   string `help:"Your account number." arg:""`
	To     string `help:"Recipient account number." arg:""`
	Amount Amount `help:"Amount to transfer." arg:""`
}

func (cmd *TransferCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runOwned(globals, &cmd.Credentials, cmd.From, func(runCtx context.Context, a *app.App) error {
		res, err := a.Bank.Transfer(runCtx, cmd.From, cmd.To, cmd.Amount.Decimal)
		if err != nil {
			return err
		}
		printSuccess(ctx.Stdout, res.Out.String())
		return printBalance(ctx.Stdout, a, cmd.From)
	})
}

type HistoryCmd struct {
	Credentials `embed:""`

	Account string `help:"Account number." arg:""`
}

func (cmd *HistoryCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runOwned(globals, &cmd.Credentials, cmd.Account, func(_ context.Context, a *app.App) error {
		history, err := a.Bank.TransactionHistory(cmd.Account)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			printInfof(ctx.Stdout, "No transactions for %s", accountStyle.Render(cmd.Account))
			return nil
		}
		for _, t := range history {
			_, _ = fmt.Fprintln(ctx.Stdout, t.String())
		}
		return nil
	})
}
