package chain

import (
	"fmt"
	"math"
	"math/big"
	"path/filepath"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/lib/logs"
)

const (
	SubModName = "chain"

	chainDataDir = "chaindata"
	dbCache      = 16
	dbHandles    = 16
	dbNamespace  = "xdapps/chaindata/"
)

// LocalChain keeps the world state of the node and executes calls against it without
// committing. Reads open a fresh state at the selected root so they never observe or
// produce partial writes.
type LocalChain struct {
	db       ethdb.Database
	stateDB  state.Database
	chainCfg *params.ChainConfig
	params   map[string]string
	gasLimit uint64
	log      logs.Logger

	mu   sync.RWMutex
	head *types.Header
}

// NewLocalChain opens the chain described by conf. With Persist set the state lives in
// leveldb under dataDir and an existing head is reused.
func NewLocalChain(conf *ChainConf, dataDir string) (*LocalChain, error) {
	if conf == nil {
		return nil, xcom.ErrParameter.More("chain conf is nil")
	}

	log, _ := logs.NewLogger("", SubModName)
	db, err := openDatabase(conf, dataDir)
	if err != nil {
		return nil, xcom.ErrLoadChainFailed.More("open database failed.err:%v", err)
	}

	chainCfg := *params.AllEthashProtocolChanges
	chainCfg.ChainID = big.NewInt(conf.ChainId)

	lc := &LocalChain{
		db:       db,
		stateDB:  state.NewDatabase(db),
		chainCfg: &chainCfg,
		params:   make(map[string]string, len(conf.Params)),
		gasLimit: conf.GasLimit,
		log:      log,
	}
	for k, v := range conf.Params {
		lc.params[k] = v
	}

	if head := lc.loadHead(); head != nil {
		lc.head = head
		log.Info("reuse local chain head", "number", head.Number, "root", head.Root.Hex())
		return lc, nil
	}

	alloc, err := DecodeAlloc(conf.Alloc)
	if err != nil {
		db.Close()
		return nil, xcom.ErrLoadChainFailed.More("%v", err)
	}
	if err := lc.initGenesis(alloc); err != nil {
		db.Close()
		return nil, xcom.ErrLoadChainFailed.More("init genesis failed.err:%v", err)
	}
	log.Info("init local chain genesis", "chain_id", conf.ChainId, "accounts", len(alloc),
		"root", lc.head.Root.Hex())

	return lc, nil
}

func openDatabase(conf *ChainConf, dataDir string) (ethdb.Database, error) {
	if !conf.Persist {
		return rawdb.NewMemoryDatabase(), nil
	}
	if dataDir == "" {
		return nil, errors.New("data dir not set for persistent chain")
	}

	dir := filepath.Join(dataDir, chainDataDir)
	db, err := rawdb.NewLevelDBDatabase(dir, dbCache, dbHandles, dbNamespace, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open chain database failed.dir:%s", dir)
	}

	return db, nil
}

func (t *LocalChain) loadHead() *types.Header {
	hash := rawdb.ReadHeadHeaderHash(t.db)
	if hash == (common.Hash{}) {
		return nil
	}
	number := rawdb.ReadHeaderNumber(t.db, hash)
	if number == nil {
		return nil
	}
	header := rawdb.ReadHeader(t.db, hash, *number)
	if header == nil {
		return nil
	}
	if _, err := t.stateDB.OpenTrie(header.Root); err != nil {
		t.log.Warn("head state missing, rebuild genesis", "number", *number, "err", err)
		return nil
	}

	return header
}

func (t *LocalChain) initGenesis(alloc Alloc) error {
	statedb, err := state.New(common.Hash{}, t.stateDB, nil)
	if err != nil {
		return errors.Wrap(err, "open empty state failed")
	}

	root, err := t.commitAlloc(statedb, alloc)
	if err != nil {
		return errors.Wrap(err, "commit genesis alloc failed")
	}

	t.writeHead(&types.Header{
		ParentHash: common.Hash{},
		Number:     new(big.Int),
		Root:       root,
		GasLimit:   t.gasLimit,
		Difficulty: new(big.Int),
		BaseFee:    new(big.Int),
	})
	return nil
}

// ApplyAlloc imports a block whose only effect is the given state changes. It is how
// state advances on a node without consensus, and how tests move the head.
func (t *LocalChain) ApplyAlloc(alloc Alloc) (*types.Header, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	parent := t.head
	statedb, err := state.New(parent.Root, t.stateDB, nil)
	if err != nil {
		return nil, xcom.ErrLoadChainFailed.More("open head state failed.err:%v", err)
	}

	root, err := t.commitAlloc(statedb, alloc)
	if err != nil {
		return nil, xcom.ErrInternal.More("commit state failed.err:%v", err)
	}

	header := &types.Header{
		ParentHash: parent.Hash(),
		Number:     new(big.Int).Add(parent.Number, big.NewInt(1)),
		Root:       root,
		GasLimit:   t.gasLimit,
		Time:       uint64(time.Now().Unix()),
		Difficulty: new(big.Int),
		BaseFee:    new(big.Int),
	}
	t.writeHead(header)
	t.log.Debug("apply alloc", "number", header.Number, "accounts", len(alloc), "root", root.Hex())

	return types.CopyHeader(header), nil
}

func (t *LocalChain) commitAlloc(statedb *state.StateDB, alloc Alloc) (common.Hash, error) {
	for addr, acc := range alloc {
		if acc.Balance != nil {
			statedb.SetBalance(addr, acc.Balance)
		}
		if acc.Nonce > 0 {
			statedb.SetNonce(addr, acc.Nonce)
		}
		if len(acc.Code) > 0 {
			statedb.SetCode(addr, acc.Code)
		}
		for k, v := range acc.Storage {
			statedb.SetState(addr, k, v)
		}
	}

	// 保留仅有storage的账户
	root, err := statedb.Commit(false)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "commit state failed")
	}
	if err := t.stateDB.TrieDB().Commit(root, false, nil); err != nil {
		return common.Hash{}, errors.Wrapf(err, "flush trie failed.root:%s", root.Hex())
	}

	return root, nil
}

func (t *LocalChain) writeHead(header *types.Header) {
	hash := header.Hash()
	rawdb.WriteHeader(t.db, header)
	rawdb.WriteCanonicalHash(t.db, hash, header.Number.Uint64())
	rawdb.WriteHeadHeaderHash(t.db, hash)
	t.head = header
}

// Head returns a copy of the latest header
func (t *LocalChain) Head() *types.Header {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return types.CopyHeader(t.head)
}

// AdditionalParams returns a copy of the named genesis parameters
func (t *LocalChain) AdditionalParams() map[string]string {
	out := make(map[string]string, len(t.params))
	for k, v := range t.params {
		out[k] = v
	}
	return out
}

// LatestNonce returns the nonce of addr at the head; unknown accounts have nonce 0
func (t *LocalChain) LatestNonce(addr common.Address) uint64 {
	statedb, err := t.stateAt(BlockLatest)
	if err != nil {
		t.log.Warn("open latest state failed", "err", err)
		return 0
	}

	return statedb.GetNonce(addr)
}

// StorageAt reads one storage slot at the head
func (t *LocalChain) StorageAt(addr common.Address, key common.Hash) (common.Hash, error) {
	statedb, err := t.stateAt(BlockLatest)
	if err != nil {
		return common.Hash{}, err
	}

	return statedb.GetState(addr, key), nil
}

// BalanceAt reads the balance of addr at the head
func (t *LocalChain) BalanceAt(addr common.Address) (*big.Int, error) {
	statedb, err := t.stateAt(BlockLatest)
	if err != nil {
		return nil, err
	}

	return statedb.GetBalance(addr), nil
}

// Call executes tx against the state of block and discards every change it makes.
func (t *LocalChain) Call(tx *SignedTransaction, block BlockSelector) (*Executed, error) {
	if tx == nil {
		return nil, xcom.ErrParameter.More("transaction is nil")
	}

	header, err := t.headerOf(block)
	if err != nil {
		return nil, err
	}
	statedb, err := state.New(header.Root, t.stateDB, nil)
	if err != nil {
		return nil, xcom.ErrLoadChainFailed.More("open state failed.block:%s,err:%v", block, err)
	}

	msg := types.NewMessage(tx.Sender(), tx.To(), tx.Nonce, tx.Value, tx.Gas,
		tx.GasPrice, tx.GasPrice, tx.GasPrice, tx.Data, nil, true)
	blockCtx := vm.BlockContext{
		CanTransfer: core.CanTransfer,
		Transfer:    core.Transfer,
		GetHash:     t.getHash,
		Coinbase:    header.Coinbase,
		GasLimit:    header.GasLimit,
		BlockNumber: new(big.Int).Set(header.Number),
		Time:        new(big.Int).SetUint64(header.Time),
		Difficulty:  new(big.Int).Set(header.Difficulty),
		// 本地调用不收取base fee
		BaseFee: new(big.Int),
	}
	evm := vm.NewEVM(blockCtx, core.NewEVMTxContext(msg), statedb, t.chainCfg,
		vm.Config{NoBaseFee: true})

	gp := new(core.GasPool).AddGas(math.MaxUint64)
	res, err := core.ApplyMessage(evm, msg, gp)
	if err != nil {
		return nil, &ExecutionError{Reason: err.Error()}
	}
	if res.Err != nil {
		reason := res.Err.Error()
		if revert := res.Revert(); len(revert) > 0 {
			reason = fmt.Sprintf("%s: %s", reason, hexutil.Encode(revert))
		}
		return nil, &ExecutionError{Reason: reason}
	}

	return &Executed{
		Output:  common.CopyBytes(res.ReturnData),
		GasUsed: res.UsedGas,
	}, nil
}

// Close releases the underlying database
func (t *LocalChain) Close() error {
	return t.db.Close()
}

func (t *LocalChain) stateAt(block BlockSelector) (*state.StateDB, error) {
	header, err := t.headerOf(block)
	if err != nil {
		return nil, err
	}

	return state.New(header.Root, t.stateDB, nil)
}

func (t *LocalChain) headerOf(block BlockSelector) (*types.Header, error) {
	if block.IsLatest() {
		return t.Head(), nil
	}

	hash := rawdb.ReadCanonicalHash(t.db, block.number)
	if hash == (common.Hash{}) {
		return nil, xcom.ErrUnknownBlock.More("number:%d", block.number)
	}
	header := rawdb.ReadHeader(t.db, hash, block.number)
	if header == nil {
		return nil, xcom.ErrUnknownBlock.More("number:%d", block.number)
	}

	return header, nil
}

func (t *LocalChain) getHash(n uint64) common.Hash {
	return rawdb.ReadCanonicalHash(t.db, n)
}
