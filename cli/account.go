package cli

import (
	"context"
	"fmt"
	"io"

	"go-bank-ledger/app"
)

// runOwned logs in, checks that accountNumber belongs to the logged-in
// customer and then runs fn.
func runOwned(globals *Globals, creds *Credentials, accountNumber string, fn func(context.Context, *app.App) error) error {
	runCtx := context.Background()
	a, err := openApp(runCtx, globals)
	if err != nil {
		return err
	}
	defer a.Close()

	customer, err := creds.authenticate(a)
	if err != nil {
		return err
	}
	if err := a.Bank.CheckOwnership(customer.ID, accountNumber); err != nil {
		return fmt.Errorf("%s: %w", accountNumber, err)
	}
	return fn(runCtx, a)
}

func printBalance(w io.Writer, a *app.App, accountNumber string) error {
	acc, ok := a.Bank.FindAccount(accountNumber)
	if !ok {
		return fmt.Errorf("account %s disappeared", accountNumber)
	}
	printInfof(w, "%s balance: $%s", accountStyle.Render(acc.Number), acc.GetBalance().StringFixed(2))
	return nil
}
