package service

import (
	"github.com/ethereum/go-ethereum/common"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/kernel/dapps"
)

// Service is the control plane api shared by the grpc and json-rpc transports
type Service struct {
	dapps  *dapps.Service
	client dapps.ContractClient
}

func NewService(ds *dapps.Service, client dapps.ContractClient) *Service {
	if ds == nil {
		ds = dapps.NewService(nil)
	}
	return &Service{
		dapps:  ds,
		client: client,
	}
}

func (t *Service) ListDapps() []dapps.LocalDapp {
	return t.dapps.ListDapps()
}

func (t *Service) RegistrarAddress() (common.Address, error) {
	if t.client == nil {
		return common.Address{}, xcom.ErrNotConfigured
	}
	return t.client.Registrar()
}

func (t *Service) ContractCall(to common.Address, data []byte) ([]byte, error) {
	if t.client == nil {
		return nil, xcom.ErrInternal.More("contract client not set")
	}
	return t.client.Call(to, data)
}
