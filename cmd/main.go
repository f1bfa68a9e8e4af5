// cmd/main.go
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"go-bank-ledger/cli"
	"go-bank-ledger/logger"
)

var root struct {
	Version kong.VersionFlag `help:"Show version information"`
	cli.Commands
}

// @title           Go-Bank Ledger API
// @version         1.0
// @description     A small banking ledger with JSON document storage.

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	ctx := kong.Parse(&root,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("bank"),
		kong.Description("A small banking ledger with JSON document storage."),
		kong.UsageOnError(),
		kong.Bind(&root.Globals),
	)

	if err := ctx.Run(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func buildVersion() string {
	version := cli.Version
	if version == "" {
		version = "dev"
	}
	if cli.CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, cli.CommitSHA)
}
