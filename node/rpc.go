package node

import (
	"github.com/rebaselabs/go-rebase/rpc"
	"github.com/rebaselabs/go-rebase/rpcapi"
)

func (node *Node) startRPC() error {
	node.rpcAPIs = rpcapi.GetAll(node.ledger, node.vault, node.book)

	srv, err := rpc.NewServer(node.rpcAPIs)
	if err != nil {
		return err
	}
	if err := srv.Start(node.config.HTTPEndpoint()); err != nil {
		return err
	}

	node.httpServer = srv
	return nil
}

func (node *Node) stopRPC() {
	if node.httpServer == nil {
		return
	}
	if err := node.httpServer.Stop(); err != nil {
		log.Error("stop rpc failed", "err", err)
	}
	node.httpServer = nil
}
