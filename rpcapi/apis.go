package rpcapi

import (
	"github.com/rebaselabs/go-rebase/ledger"
	"github.com/rebaselabs/go-rebase/rpc"
	"github.com/rebaselabs/go-rebase/rpcapi/api"
	"github.com/rebaselabs/go-rebase/vault"
)

// GetAll assembles every API the daemon exposes.
func GetAll(ld *ledger.Ledger, v *vault.Vault, book *vault.Book) []rpc.API {
	return []rpc.API{
		{
			Namespace: "ledger",
			Version:   "1.0",
			Service:   api.NewLedgerApi(ld),
			Public:    true,
		},
		{
			Namespace: "vault",
			Version:   "1.0",
			Service:   api.NewVaultApi(v, book),
			Public:    true,
		},
		{
			Namespace: "dashboard",
			Version:   "1.0",
			Service:   api.NewDashboardApi(ld),
			Public:    true,
		},
		{
			Namespace: "health",
			Version:   "1.0",
			Service:   api.NewHealthApi(ld),
			Public:    true,
		},
	}
}
