package main

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rebaselabs/go-rebase/cmd/utils"
)

var (
	runCommand = cli.Command{
		Action:   utils.MigrateFlags(runAction),
		Name:     "run",
		Usage:    "Run the ledger node",
		Flags:    utils.MergeFlags(configFlags, generalFlags, genesisFlags, httpFlags, logFlags, auditFlags),
		Category: "NODE COMMANDS",
		Description: `
Open the ledger store under the data directory, apply genesis on first run
and serve the JSON-RPC API until interrupted. Running grebase with no
subcommand does the same thing.
`,
	}
)

func runAction(ctx *cli.Context) error {
	return action(ctx)
}
