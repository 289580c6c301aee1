package api

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	gorebase "github.com/rebaselabs/go-rebase"
	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/ledger"
)

type DashboardApi struct {
	ledger *ledger.Ledger
}

func NewDashboardApi(ld *ledger.Ledger) *DashboardApi {
	return &DashboardApi{
		ledger: ld,
	}
}

func (api *DashboardApi) OsInfo(noop interface{}, reply *map[string]interface{}) error {
	result := make(map[string]interface{})

	stat, e := host.Info()
	if e == nil {
		result["os"] = stat.OS
		result["platform"] = stat.Platform
		result["platformFamily"] = stat.PlatformFamily
		result["platformVersion"] = stat.PlatformVersion
		result["kernelVersion"] = stat.KernelVersion
	} else {
		result["err"] = e.Error()
	}

	memS, e := mem.VirtualMemory()
	if e == nil {
		result["memTotal"] = memS.Total
		result["memFree"] = memS.Free
	}

	result["cpuNum"] = runtime.NumCPU()
	result["goroutine"] = runtime.NumGoroutine()

	*reply = result
	return nil
}

func (api *DashboardApi) ProcessInfo(noop interface{}, reply *map[string]interface{}) error {
	result := make(map[string]interface{})
	result["build_version"] = gorebase.REBASE_BUILD_VERSION
	result["commit_version"] = gorebase.REBASE_VERSION

	*reply = result
	return nil
}

// RuntimeInfo is a one-shot snapshot of the ledger for dashboards.
func (api *DashboardApi) RuntimeInfo(noop interface{}, reply *map[string]interface{}) error {
	result := make(map[string]interface{})

	if supply, err := api.ledger.TotalSupply(); err == nil {
		result["totalSupply"] = supply.String()
	} else {
		result["err"] = err.Error()
	}
	if rate, err := api.ledger.GlobalRate(); err == nil {
		result["globalRate"] = rate.String()
	}

	accounts := 0
	if err := api.ledger.IterateAccounts(func(types.Address, *ledger.Account) bool {
		accounts++
		return true
	}); err == nil {
		result["accountCount"] = accounts
	}
	result["updateTime"] = time.Now().UnixNano() / 1e6

	*reply = result
	return nil
}
