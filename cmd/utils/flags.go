package utils

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	// Config settings
	ConfigFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "JSON config file, overridden by command line flags",
	}

	// General settings
	DataDirFlag = DirectoryFlag{
		Name:  "datadir",
		Usage: "directory for the ledger store and run logs",
	}

	// Genesis settings
	OwnerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "address that holds the administrative capability at genesis",
	}
	InitialRateFlag = cli.StringFlag{
		Name:  "rate",
		Usage: "initial per-second global rate, scaled by 1e18",
	}

	//Log Lvl
	LogLvlFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "log level (trace|debug|info|warn|error|crit)",
	}

	//HTTP RPC Settings
	RPCEnabledFlag = cli.BoolFlag{
		Name:  "rpc",
		Usage: "serve the JSON-RPC API over HTTP",
	}
	RPCListenAddrFlag = cli.StringFlag{
		Name:  "rpcaddr",
		Usage: "interface the RPC server binds",
	}
	RPCPortFlag = cli.IntFlag{
		Name:  "rpcport",
		Usage: "port the RPC server listens on",
	}

	// Audit settings
	AuditScheduleFlag = cli.StringFlag{
		Name:  "audit",
		Usage: "cron schedule for the supply auditor, e.g. @every 1h",
	}
)

// MigrateFlags copies any flag set on a subcommand into the global flag
// set, so config assembly only ever reads the global values.
func MigrateFlags(action func(ctx *cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		for _, name := range ctx.FlagNames() {
			if !ctx.IsSet(name) {
				continue
			}
			if err := ctx.GlobalSet(name, ctx.String(name)); err != nil {
				return err
			}
		}
		return action(ctx)
	}
}

// MergeFlags flattens several flag groups into one slice for cli.Command.
func MergeFlags(groups ...[]cli.Flag) []cli.Flag {
	var merged []cli.Flag
	for _, group := range groups {
		merged = append(merged, group...)
	}
	return merged
}
