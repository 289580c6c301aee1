package api

import (
	"github.com/inconshreveable/log15"

	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/vault"
)

type VaultApi struct {
	vault *vault.Vault
	book  *vault.Book
	log   log15.Logger
}

func NewVaultApi(v *vault.Vault, book *vault.Book) *VaultApi {
	return &VaultApi{
		vault: v,
		book:  book,
		log:   log15.New("module", "rpc/vault"),
	}
}

func (api *VaultApi) GetVaultAddress(noop interface{}, reply *string) error {
	*reply = api.vault.Address().String()
	return nil
}

// GetReserve answers the vault's current base-asset holding.
func (api *VaultApi) GetReserve(noop interface{}, reply *string) error {
	reserve, err := api.vault.Reserve()
	if err != nil {
		return err
	}
	*reply = reserve.String()
	return nil
}

func (api *VaultApi) GetBaseBalance(addrStr string, reply *string) error {
	addr, err := types.HexToAddress(addrStr)
	if err != nil {
		return err
	}

	balance, err := api.book.BalanceOf(addr)
	if err != nil {
		return err
	}
	*reply = balance.String()
	return nil
}
