package nodemanager

import (
	"time"

	"github.com/inconshreveable/log15"
	"gopkg.in/urfave/cli.v1"

	"github.com/rebaselabs/go-rebase/cmd/utils"
	"github.com/rebaselabs/go-rebase/common"
	"github.com/rebaselabs/go-rebase/config"
	"github.com/rebaselabs/go-rebase/node"
)

var (
	log = log15.New("module", "grebase/nodemanager")
)

type NodeManager struct {
	ctx    *cli.Context
	node   *node.Node
	logger log15.Logger
}

func New(ctx *cli.Context) (NodeManager, error) {
	n, err := MakeFullNode(ctx)
	if err != nil {
		return NodeManager{}, err
	}
	return NodeManager{
		ctx:    ctx,
		node:   n,
		logger: log,
	}, nil
}

func (nodeManager *NodeManager) Start() error {

	// Start up the node
	if err := utils.StartNode(nodeManager.node); err != nil {
		return err
	}

	nodeManager.node.Wait()

	return nil
}

func MakeFullNode(ctx *cli.Context) (*node.Node, error) {

	nodeConfig := MakeNodeConfig(ctx)

	return node.New(nodeConfig)
}

func MakeNodeConfig(ctx *cli.Context) *config.Config {

	cfg := config.DefaultConfig

	// 1: Load config file.
	if file := ctx.GlobalString(utils.ConfigFileFlag.Name); file != "" {
		if loaded, err := config.ReadConfigFile(file); err == nil {
			cfg = *loaded
		} else {
			log.Info("cannot read the config file, will use the default config", "error", err)
		}
	}

	// 2: Apply flags, overwrite the configuration file configuration
	mappingNodeConfig(ctx, &cfg)

	// 3: Config log to file
	filename := time.Now().Format("2006-01-02") + ".log"
	log15.Root().SetHandler(
		common.LogHandler(cfg.DataDir, "runlog", filename, cfg.LogLevel),
	)

	return &cfg
}

// mappingNodeConfig applies node-related command line flags to the config.
func mappingNodeConfig(ctx *cli.Context, cfg *config.Config) {

	//Global Config
	if dataDir := ctx.GlobalString(utils.DataDirFlag.Name); len(dataDir) > 0 {
		cfg.DataDir = dataDir
	}

	//Genesis Config
	if owner := ctx.GlobalString(utils.OwnerFlag.Name); len(owner) > 0 {
		cfg.Owner = owner
	}

	if ctx.GlobalIsSet(utils.InitialRateFlag.Name) {
		cfg.InitialRate = ctx.GlobalString(utils.InitialRateFlag.Name)
	}

	//Log Config
	if lvl := ctx.GlobalString(utils.LogLvlFlag.Name); len(lvl) > 0 {
		cfg.LogLevel = lvl
	}

	//Http Config
	if ctx.GlobalIsSet(utils.RPCEnabledFlag.Name) {
		cfg.RPCEnabled = ctx.GlobalBool(utils.RPCEnabledFlag.Name)
	}

	if ctx.GlobalIsSet(utils.RPCListenAddrFlag.Name) {
		cfg.HttpHost = ctx.GlobalString(utils.RPCListenAddrFlag.Name)
	}

	if ctx.GlobalIsSet(utils.RPCPortFlag.Name) {
		cfg.HttpPort = ctx.GlobalInt(utils.RPCPortFlag.Name)
	}

	//Audit Config
	if ctx.GlobalIsSet(utils.AuditScheduleFlag.Name) {
		cfg.AuditSchedule = ctx.GlobalString(utils.AuditScheduleFlag.Name)
	}
}
