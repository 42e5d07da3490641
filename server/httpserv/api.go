package httpserv

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/server/service"
)

// DappsAPI is served under the dapps namespace
type DappsAPI struct {
	svc *service.Service
}

// dapps_listDapps
func (a *DappsAPI) ListDapps() []dapps.LocalDapp {
	return a.svc.ListDapps()
}

// RegistrarAPI is served under the registrar namespace
type RegistrarAPI struct {
	svc *service.Service
}

// registrar_address
func (a *RegistrarAPI) Address() (common.Address, error) {
	return a.svc.RegistrarAddress()
}

// registrar_call
func (a *RegistrarAPI) Call(to common.Address, data hexutil.Bytes) (hexutil.Bytes, error) {
	return a.svc.ContractCall(to, data)
}
