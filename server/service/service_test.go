package service

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	xcom "github.com/xuperchain/xdapps/kernel/common"
)

type mockClient struct{}

func (mockClient) Registrar() (common.Address, error) {
	return common.HexToAddress("0x01"), nil
}

func (mockClient) Call(to common.Address, data []byte) ([]byte, error) {
	return append([]byte{}, data...), nil
}

func TestService(t *testing.T) {
	s := NewService(nil, nil)
	if list := s.ListDapps(); list == nil || len(list) != 0 {
		t.Errorf("expect empty dapps list.got:%v", list)
	}
	if _, err := s.RegistrarAddress(); !errors.Is(err, xcom.ErrNotConfigured) {
		t.Errorf("expect not configured.got:%v", err)
	}
	if _, err := s.ContractCall(common.Address{}, nil); err == nil {
		t.Errorf("expect error without contract client")
	}

	s = NewService(nil, mockClient{})
	addr, err := s.RegistrarAddress()
	if err != nil || addr != common.HexToAddress("0x01") {
		t.Errorf("unexpected registrar.got:%s,err:%v", addr.Hex(), err)
	}
	out, err := s.ContractCall(addr, []byte{1, 2})
	if err != nil || len(out) != 2 {
		t.Errorf("unexpected call output.got:%x,err:%v", out, err)
	}
}
