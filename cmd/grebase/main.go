package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/inconshreveable/log15"
	"gopkg.in/urfave/cli.v1"

	gorebase "github.com/rebaselabs/go-rebase"
	"github.com/rebaselabs/go-rebase/cmd/nodemanager"
	"github.com/rebaselabs/go-rebase/cmd/utils"
)

// grebase is the official command-line client for the rebase ledger

var (
	log = log15.New("module", "grebase/main")

	app = cli.NewApp()

	//config
	configFlags = []cli.Flag{
		utils.ConfigFileFlag,
	}
	//general
	generalFlags = []cli.Flag{
		utils.DataDirFlag,
	}
	//genesis
	genesisFlags = []cli.Flag{
		utils.OwnerFlag,
		utils.InitialRateFlag,
	}
	//HTTP RPC
	httpFlags = []cli.Flag{
		utils.RPCEnabledFlag,
		utils.RPCListenAddrFlag,
		utils.RPCPortFlag,
	}
	//Log
	logFlags = []cli.Flag{
		utils.LogLvlFlag,
	}
	//Audit
	auditFlags = []cli.Flag{
		utils.AuditScheduleFlag,
	}
)

func init() {

	app.Name = filepath.Base(os.Args[0])
	app.HideVersion = false
	app.Version = gorebase.REBASE_VERSION
	app.Compiled = time.Now()
	app.Authors = []cli.Author{
		cli.Author{
			Name:  "rebaseLabs",
			Email: "dev@rebaselabs.org",
		},
	}
	app.Copyright = "Copyright 2024-2026 The go-rebase Authors"
	app.Usage = "the go-rebase cli application"

	app.Commands = []cli.Command{
		runCommand,
		versionCommand,
		licenseCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = utils.MergeFlags(configFlags, generalFlags, genesisFlags,
		httpFlags, logFlags, auditFlags)

	app.Before = beforeAction
	app.Action = action
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func beforeAction(ctx *cli.Context) error {
	runtime.GOMAXPROCS(runtime.NumCPU() + 1)
	return nil
}

func action(ctx *cli.Context) error {

	//Make sure No subCommands were entered, Only the flags
	if args := ctx.Args(); len(args) > 0 {
		return fmt.Errorf("invalid command: %q", args[0])
	}

	log.Info("grebase starting", "version", gorebase.REBASE_VERSION)

	nodeManager, err := nodemanager.New(ctx)
	if err != nil {
		return fmt.Errorf("new node error, %+v", err)
	}

	return nodeManager.Start()
}
