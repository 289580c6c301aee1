package api

import (
	"github.com/rebaselabs/go-rebase/ledger"
)

type HealthApi struct {
	ledger *ledger.Ledger
}

func NewHealthApi(ld *ledger.Ledger) *HealthApi {
	return &HealthApi{ledger: ld}
}

// Health fails when the ledger has no global rate, which means genesis
// never ran or the store is unreadable.
func (api *HealthApi) Health(noop interface{}, reply *bool) error {
	if _, err := api.ledger.GlobalRate(); err != nil {
		return err
	}
	*reply = true
	return nil
}
