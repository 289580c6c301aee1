package node

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"

	"github.com/rebaselabs/go-rebase/authority"
	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/config"
	"github.com/rebaselabs/go-rebase/ledger"
	"github.com/rebaselabs/go-rebase/rpc"
	"github.com/rebaselabs/go-rebase/store"
	"github.com/rebaselabs/go-rebase/vault"
)

var log = log15.New("module", "grebase/node")

// Node is a container that wires store, authority, ledger and vault
// together and hosts the RPC endpoint plus the supply auditor.
type Node struct {
	config *config.Config

	store  *store.Store
	auth   *authority.Manager
	ledger *ledger.Ledger
	book   *vault.Book
	vault  *vault.Vault

	rpcAPIs    []rpc.API
	httpServer *rpc.Server

	auditor *cron.Cron
	running *atomic.Bool

	// Channel to wait for termination notifications
	stop chan struct{}
	lock sync.RWMutex
}

func New(conf *config.Config) (*Node, error) {
	if conf == nil {
		return nil, ErrConfigNil
	}
	return &Node{
		config:  conf,
		running: atomic.NewBool(false),
		stop:    make(chan struct{}),
	}, nil
}

func (node *Node) Start() error {
	node.lock.Lock()
	defer node.lock.Unlock()

	if node.store != nil {
		return ErrNodeRunning
	}

	log.Info(fmt.Sprintf("Check dataDir is OK ? "))
	if err := node.openDataDir(); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("DataDir is OK. "))

	log.Info(fmt.Sprintf("Begin Open Store... "))
	s, err := store.NewStore(node.ledgerDir())
	if err != nil {
		return convertFileLockError(err)
	}
	node.store = s

	log.Info(fmt.Sprintf("Begin Wire Ledger And Vault... "))
	if err := node.assemble(); err != nil {
		log.Error(fmt.Sprintf("Node assemble error: %v", err))
		node.closeStore()
		return err
	}

	log.Info(fmt.Sprintf("Begin Apply Genesis... "))
	if err := node.applyGenesis(); err != nil {
		log.Error(fmt.Sprintf("Node applyGenesis error: %v", err))
		node.closeStore()
		return err
	}

	if node.config.RPCEnabled {
		log.Info(fmt.Sprintf("Begin Start RPC... "))
		if err := node.startRPC(); err != nil {
			log.Error(fmt.Sprintf("Node startRPC error: %v", err))
			node.closeStore()
			return err
		}
	}

	log.Info(fmt.Sprintf("Begin Start Auditor... "))
	if err := node.startAuditor(); err != nil {
		log.Error(fmt.Sprintf("Node startAuditor error: %v", err))
		node.stopRPC()
		node.closeStore()
		return err
	}

	node.running.Store(true)
	return nil
}

func (node *Node) Stop() error {
	node.lock.Lock()
	defer node.lock.Unlock()

	if node.store == nil {
		return ErrNodeStopped
	}

	// unblock n.Wait
	defer close(node.stop)

	node.running.Store(false)

	log.Info(fmt.Sprintf("Begin Stop Auditor... "))
	if node.auditor != nil {
		node.auditor.Stop()
		node.auditor = nil
	}

	log.Info(fmt.Sprintf("Begin Stop RPC... "))
	node.stopRPC()

	log.Info(fmt.Sprintf("Begin Close Store... "))
	err := node.closeStore()

	node.vault = nil
	node.book = nil
	node.ledger = nil
	node.auth = nil

	return err
}

func (node *Node) Wait() {
	node.lock.RLock()
	if node.store == nil {
		node.lock.RUnlock()
		return
	}
	node.lock.RUnlock()

	<-node.stop
}

func (node *Node) Config() *config.Config {
	return node.config
}

func (node *Node) Ledger() *ledger.Ledger {
	return node.ledger
}

func (node *Node) Vault() *vault.Vault {
	return node.vault
}

func (node *Node) Book() *vault.Book {
	return node.book
}

func (node *Node) Authority() *authority.Manager {
	return node.auth
}

// assemble wires the core modules over the open store.
func (node *Node) assemble() error {
	auth, err := authority.NewManager(node.store)
	if err != nil {
		return err
	}
	node.auth = auth
	node.ledger = ledger.New(node.store, auth)
	node.book = vault.NewBook(node.store)
	return nil
}

// applyGenesis runs the one-shot genesis on a fresh store and is a no-op
// afterwards. The persisted vault address doubles as the genesis marker:
// once it exists, the stored state wins over whatever the config says.
func (node *Node) applyGenesis() error {
	now := uint64(time.Now().Unix())

	owner, err := node.config.ParseOwner()
	if err != nil {
		return err
	}
	if err := node.auth.InitOwner(owner); err != nil {
		return err
	}

	rate, err := node.config.ParseInitialRate()
	if err != nil {
		return err
	}
	if err := node.ledger.InitGlobalRate(rate, now); err != nil {
		return err
	}

	stored, err := node.store.Get(store.CreateVaultAddressKey())
	if err != nil {
		return err
	}
	if len(stored) > 0 {
		vaultAddr, err := types.BytesToAddress(stored)
		if err != nil {
			return err
		}
		node.vault = vault.New(vaultAddr, node.ledger, node.book)
		log.Info("genesis already applied", "vault", vaultAddr)
		return nil
	}

	vaultAddr, err := node.config.ParseVaultAddress()
	if err != nil {
		return err
	}

	if err := node.auth.Grant(node.auth.Owner(), vaultAddr, authority.CapMintBurn); err != nil {
		return err
	}

	alloc, err := node.config.ParseBaseAlloc()
	if err != nil {
		return err
	}
	for addr, amount := range alloc {
		if err := node.book.Credit(addr, amount); err != nil {
			return err
		}
	}

	batch := node.store.NewBatch()
	batch.Put(store.CreateVaultAddressKey(), vaultAddr.Bytes())
	if err := node.store.Write(batch); err != nil {
		return err
	}

	node.vault = vault.New(vaultAddr, node.ledger, node.book)
	log.Info("genesis applied", "owner", owner, "vault", vaultAddr, "allocations", len(alloc))
	return nil
}

func (node *Node) openDataDir() error {
	if node.config.DataDir == "" {
		return nil
	}

	if err := os.MkdirAll(node.config.DataDir, 0700); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Open NodeServer.DataDir:%v", node.config.DataDir))
	return nil
}

func (node *Node) ledgerDir() string {
	return filepath.Join(node.config.DataDir, "ledger")
}

func (node *Node) closeStore() error {
	if node.store == nil {
		return nil
	}
	err := node.store.Close()
	node.store = nil
	return err
}

func (node *Node) startAuditor() error {
	if node.config.AuditSchedule == "" {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(node.config.AuditSchedule, node.runAudit); err != nil {
		return err
	}
	c.Start()
	node.auditor = c

	log.Info("supply auditor scheduled", "spec", node.config.AuditSchedule)
	return nil
}
