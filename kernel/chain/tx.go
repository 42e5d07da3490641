package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type ActionType int

const (
	ActionCreate ActionType = iota
	ActionCall
)

// Action is the target of a transaction
type Action struct {
	Type    ActionType
	Address common.Address
}

func Create() Action {
	return Action{Type: ActionCreate}
}

func Call(to common.Address) Action {
	return Action{Type: ActionCall, Address: to}
}

// Transaction is an unsigned transaction body
type Transaction struct {
	Nonce    uint64
	Action   Action
	Gas      uint64
	GasPrice *big.Int
	Value    *big.Int
	Data     []byte
}

// FakeSign attaches a sender without a signature. The result is only valid for local
// execution and must never be relayed.
func (t *Transaction) FakeSign(from common.Address) *SignedTransaction {
	cpy := *t
	if cpy.GasPrice == nil {
		cpy.GasPrice = new(big.Int)
	}
	if cpy.Value == nil {
		cpy.Value = new(big.Int)
	}
	cpy.Data = common.CopyBytes(t.Data)

	return &SignedTransaction{
		Transaction: cpy,
		from:        from,
	}
}

// SignedTransaction is a transaction with a known sender
type SignedTransaction struct {
	Transaction
	from common.Address
}

func (s *SignedTransaction) Sender() common.Address {
	return s.from
}

// To returns nil for contract creation
func (s *SignedTransaction) To() *common.Address {
	if s.Action.Type != ActionCall {
		return nil
	}
	to := s.Action.Address
	return &to
}

// Hash of the legacy encoding with zero signature values
func (s *SignedTransaction) Hash() common.Hash {
	return types.NewTx(&types.LegacyTx{
		Nonce:    s.Nonce,
		GasPrice: s.GasPrice,
		Gas:      s.Gas,
		To:       s.To(),
		Value:    s.Value,
		Data:     s.Data,
		V:        new(big.Int),
		R:        new(big.Int),
		S:        new(big.Int),
	}).Hash()
}

// BlockSelector picks the block whose state a call runs against
type BlockSelector struct {
	latest bool
	number uint64
}

// BlockLatest selects the current head
var BlockLatest = BlockSelector{latest: true}

func BlockNumber(n uint64) BlockSelector {
	return BlockSelector{number: n}
}

func (b BlockSelector) IsLatest() bool {
	return b.latest
}

func (b BlockSelector) String() string {
	if b.latest {
		return "latest"
	}
	return fmt.Sprintf("%d", b.number)
}

// Executed is the outcome of a local call
type Executed struct {
	Output  []byte
	GasUsed uint64
}

// ExecutionError is a contract level failure: revert, out of gas, bad opcode or a
// message the state transition refused
type ExecutionError struct {
	Reason string
}

func (e *ExecutionError) Error() string {
	return "execution error: " + e.Reason
}
