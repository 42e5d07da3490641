package registrar

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xuperchain/xdapps/kernel/chain"
	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/metrics"
)

const (
	SubModName = "registrar"

	// 链参数中登记registrar合约地址的key
	ParamRegistrar = "registrar"
	// 只读调用的gas上限，保证不会因gas不足失败
	CallGasLimit = 50000000
)

// ChainView is the part of the chain the registrar reads from
type ChainView interface {
	AdditionalParams() map[string]string
	LatestNonce(addr common.Address) uint64
	Call(tx *chain.SignedTransaction, block chain.BlockSelector) (*chain.Executed, error)
}

// FullRegistrar gives read-only access to the registrar contract and to any contract
// reachable from it. Every call re-reads chain params, nothing is cached.
type FullRegistrar struct {
	chain ChainView
	log   logs.Logger
}

func NewFullRegistrar(cv ChainView) *FullRegistrar {
	log, _ := logs.NewLogger("", SubModName)
	return &FullRegistrar{
		chain: cv,
		log:   log,
	}
}

// Registrar returns the registrar address from the chain params
func (t *FullRegistrar) Registrar() (common.Address, error) {
	params := t.chain.AdditionalParams()
	value, ok := params[ParamRegistrar]
	if !ok {
		return common.Address{}, xcom.ErrNotConfigured
	}

	addr, err := ParseAddress(value)
	if err != nil {
		return common.Address{}, xcom.ErrInvalidAddress.More("%v", err)
	}

	return addr, nil
}

// Call runs data against address on the latest block and returns the raw output.
// The sender is the zero address with zero gas price and value.
func (t *FullRegistrar) Call(address common.Address, data []byte) ([]byte, error) {
	start := time.Now()
	from := common.Address{}

	tx := &chain.Transaction{
		Nonce:    t.chain.LatestNonce(from),
		Action:   chain.Call(address),
		Gas:      CallGasLimit,
		GasPrice: new(big.Int),
		Value:    new(big.Int),
		Data:     data,
	}
	res, err := t.chain.Call(tx.FakeSign(from), chain.BlockLatest)

	target := address.Hex()
	bucket, result := t.callBucket(address), metrics.Result(err)
	metrics.ContractCallCounter.WithLabelValues(bucket, result).Inc()
	metrics.ContractCallHistogram.WithLabelValues(bucket, result).Observe(time.Since(start).Seconds())
	if err != nil {
		t.log.Debug("contract call failed", "to", target, "nonce", tx.Nonce, "err", err)
		return nil, xcom.ErrExecutionFailed.More("%v", err)
	}

	t.log.Debug("contract call", "to", target, "input", len(data), "output", len(res.Output),
		"gas_used", res.GasUsed)
	return res.Output, nil
}

func (t *FullRegistrar) callBucket(address common.Address) string {
	if reg, err := t.Registrar(); err == nil && reg == address {
		return metrics.TargetRegistrar
	}
	return metrics.TargetOther
}
