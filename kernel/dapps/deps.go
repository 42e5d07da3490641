package dapps

import (
	"fmt"
	"net"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xdapps/kernel/fetch"
	"github.com/xuperchain/xdapps/kernel/signer"
	"github.com/xuperchain/xdapps/lib/remote"
)

// SyncStatus reports whether the node is still syncing
type SyncStatus interface {
	IsSyncing() bool
}

// ContractClient is read-only access to the registrar and the contracts behind it
type ContractClient interface {
	Registrar() (common.Address, error)
	Call(address common.Address, data []byte) ([]byte, error)
}

type HostPort struct {
	Host string
	Port int
}

func (h HostPort) String() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// ParseHostPort parses "host:port"
func ParseHostPort(s string) (*HostPort, error) {
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return nil, err
	}
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		return nil, fmt.Errorf("invalid port: %s", port)
	}

	return &HostPort{Host: host, Port: p}, nil
}

// Dependencies is shared by pointer between the node and every middleware built from it.
// Nothing mutates it after construction.
type Dependencies struct {
	SyncStatus     SyncStatus
	ContractClient ContractClient
	Remote         *remote.Remote
	Fetch          fetch.Fetcher
	Signer         signer.Service
	// 可选
	UIAddress *HostPort
}
