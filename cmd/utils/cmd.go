package utils

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/inconshreveable/log15"

	"github.com/rebaselabs/go-rebase/node"
)

// StartNode starts the node and installs the interrupt handler that turns
// SIGINT/SIGTERM into a graceful stop. Ten further interrupts while the
// shutdown runs force an exit.
func StartNode(node *node.Node) error {
	if err := node.Start(); err != nil {
		log15.Error("Error starting ledger node", "err", err)
		return err
	}

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(c)
		<-c
		log15.Info("Got interrupt, shutting down...")
		go node.Stop()
		for i := 10; i > 0; i-- {
			<-c
			if i > 1 {
				log15.Warn("Already shutting down, interrupt more to force exit.", "times", i-1)
			}
		}
		log15.Crit("Forced exit, shutdown abandoned")
		os.Exit(1)
	}()
	return nil
}
