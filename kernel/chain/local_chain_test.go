package chain

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	xcom "github.com/xuperchain/xdapps/kernel/common"
)

var (
	contractAddr = common.HexToAddress("0x00000000000000000000000000000000000000c0")

	// return mem[0:32]
	codeReturnZero = "0x60206000f3"
	// calldatacopy then return all calldata
	codeEcho = "0x366000600037366000f3"
	// revert(0, 0)
	codeRevert = "0x60006000fd"
	// sstore(0, 1) then return mem[0:32]
	codeStore = "0x600160005560206000f3"
)

func newTestChain(t *testing.T, code string) *LocalChain {
	conf := GetDefChainConf()
	conf.Params["registrar"] = contractAddr.Hex()
	conf.Alloc[contractAddr.Hex()] = AccountConf{Code: code}

	lc, err := NewLocalChain(conf, "")
	if err != nil {
		t.Fatalf("new local chain failed.err:%v", err)
	}
	t.Cleanup(func() { lc.Close() })
	return lc
}

func callTx(data []byte) *SignedTransaction {
	tx := &Transaction{
		Action: Call(contractAddr),
		Gas:    50000000,
		Data:   data,
	}
	return tx.FakeSign(common.Address{})
}

func TestCallReturnsOutput(t *testing.T) {
	lc := newTestChain(t, codeReturnZero)

	res, err := lc.Call(callTx(nil), BlockLatest)
	if err != nil {
		t.Fatalf("call failed.err:%v", err)
	}
	if !bytes.Equal(res.Output, make([]byte, 32)) {
		t.Errorf("unexpected output.got:%x", res.Output)
	}
	if res.GasUsed == 0 {
		t.Errorf("gas used not reported")
	}
}

func TestCallEchoesLargeOutput(t *testing.T) {
	lc := newTestChain(t, codeEcho)

	data := bytes.Repeat([]byte{0xab, 0xcd}, 1000)
	res, err := lc.Call(callTx(data), BlockLatest)
	if err != nil {
		t.Fatalf("call failed.err:%v", err)
	}
	if !bytes.Equal(res.Output, data) {
		t.Errorf("output truncated or altered.got:%d bytes", len(res.Output))
	}
}

func TestCallRevert(t *testing.T) {
	lc := newTestChain(t, codeRevert)

	_, err := lc.Call(callTx(nil), BlockLatest)
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expect execution error.got:%v", err)
	}
}

func TestCallDiscardsState(t *testing.T) {
	lc := newTestChain(t, codeStore)

	for i := 0; i < 2; i++ {
		if _, err := lc.Call(callTx(nil), BlockLatest); err != nil {
			t.Fatalf("call failed.err:%v", err)
		}
	}
	val, err := lc.StorageAt(contractAddr, common.Hash{})
	if err != nil {
		t.Fatalf("read storage failed.err:%v", err)
	}
	if val != (common.Hash{}) {
		t.Errorf("call leaked a storage write.got:%s", val.Hex())
	}
	if nonce := lc.LatestNonce(common.Address{}); nonce != 0 {
		t.Errorf("call changed sender nonce.got:%d", nonce)
	}
}

func TestApplyAllocAdvancesHead(t *testing.T) {
	lc := newTestChain(t, codeReturnZero)

	acct := common.HexToAddress("0x1000000000000000000000000000000000000001")
	head, err := lc.ApplyAlloc(Alloc{acct: {Balance: big.NewInt(7), Nonce: 3}})
	if err != nil {
		t.Fatalf("apply alloc failed.err:%v", err)
	}
	if head.Number.Uint64() != 1 {
		t.Errorf("unexpected head number.got:%d", head.Number.Uint64())
	}
	if nonce := lc.LatestNonce(acct); nonce != 3 {
		t.Errorf("unexpected nonce.got:%d", nonce)
	}
	bal, err := lc.BalanceAt(acct)
	if err != nil || bal.Int64() != 7 {
		t.Errorf("unexpected balance.got:%v,err:%v", bal, err)
	}

	// 历史状态仍可调用
	if _, err := lc.Call(callTx(nil), BlockNumber(0)); err != nil {
		t.Errorf("call at genesis failed.err:%v", err)
	}
}

func TestCallUnknownBlock(t *testing.T) {
	lc := newTestChain(t, codeReturnZero)

	_, err := lc.Call(callTx(nil), BlockNumber(42))
	if !xcom.ErrUnknownBlock.Is(err) {
		t.Errorf("expect unknown block.got:%v", err)
	}
}

func TestAdditionalParamsCopy(t *testing.T) {
	lc := newTestChain(t, codeReturnZero)

	p := lc.AdditionalParams()
	p["registrar"] = "changed"
	if lc.AdditionalParams()["registrar"] != contractAddr.Hex() {
		t.Errorf("params leaked a mutation")
	}
}

func TestPersistentChainReopen(t *testing.T) {
	dir := t.TempDir()
	conf := GetDefChainConf()
	conf.Persist = true

	lc, err := NewLocalChain(conf, dir)
	if err != nil {
		t.Fatalf("open chain failed.err:%v", err)
	}
	acct := common.HexToAddress("0x2000000000000000000000000000000000000002")
	if _, err := lc.ApplyAlloc(Alloc{acct: {Nonce: 9}}); err != nil {
		t.Fatalf("apply alloc failed.err:%v", err)
	}
	lc.Close()

	lc, err = NewLocalChain(conf, dir)
	if err != nil {
		t.Fatalf("reopen chain failed.err:%v", err)
	}
	defer lc.Close()
	if lc.Head().Number.Uint64() != 1 {
		t.Errorf("head not restored.got:%d", lc.Head().Number.Uint64())
	}
	if nonce := lc.LatestNonce(acct); nonce != 9 {
		t.Errorf("state not restored.got:%d", nonce)
	}
}

func TestPersistentChainNeedsDataDir(t *testing.T) {
	conf := GetDefChainConf()
	conf.Persist = true

	_, err := NewLocalChain(conf, "")
	if !errors.Is(err, xcom.ErrLoadChainFailed) {
		t.Errorf("expect load chain failed.err:%v", err)
	}
}

func TestDecodeAlloc(t *testing.T) {
	_, err := DecodeAlloc(map[string]AccountConf{"nothex": {}})
	if err == nil {
		t.Errorf("expect invalid address error")
	}
	_, err = DecodeAlloc(map[string]AccountConf{contractAddr.Hex(): {Balance: "-1"}})
	if err == nil {
		t.Errorf("expect invalid balance error")
	}
	alloc, err := DecodeAlloc(map[string]AccountConf{contractAddr.Hex(): {Balance: "0x10", Code: "0x00"}})
	if err != nil {
		t.Fatalf("decode alloc failed.err:%v", err)
	}
	if alloc[contractAddr].Balance.Int64() != 16 || len(alloc[contractAddr].Code) != 1 {
		t.Errorf("unexpected account.got:%+v", alloc[contractAddr])
	}
}

func TestSyncState(t *testing.T) {
	s := NewSyncState(true)
	if !s.IsSyncing() {
		t.Errorf("expect syncing")
	}
	s.SetSyncing(false)
	if s.IsSyncing() {
		t.Errorf("expect not syncing")
	}
}
