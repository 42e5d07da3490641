package urlhint

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/lib/logs"
)

const (
	SubModName = "urlhint"

	// registrar中登记githubhint合约使用的名字和key
	HintName = "githubhint"
	HintKey  = "A"

	githubCodeloadURL = "https://codeload.github.com/%s/zip/%s"
)

// ContractClient is the read-only contract access the resolver needs
type ContractClient interface {
	Registrar() (common.Address, error)
	Call(address common.Address, data []byte) ([]byte, error)
}

type ContentKind int

const (
	// 普通url内容
	KindContent ContentKind = iota
	// github仓库打包的dapp
	KindGithubDapp
)

func (k ContentKind) String() string {
	switch k {
	case KindGithubDapp:
		return "dapp"
	default:
		return "content"
	}
}

func (k ContentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Content is a resolved hint entry
type Content struct {
	Kind   ContentKind    `json:"kind"`
	URL    string         `json:"url"`
	Commit common.Hash    `json:"-"`
	Owner  common.Address `json:"owner"`
}

// URLHint resolves content hashes to download locations through the hint contract
// registered in the registrar.
type URLHint struct {
	client ContractClient
	log    logs.Logger
}

func NewURLHint(client ContractClient) *URLHint {
	log, _ := logs.NewLogger("", SubModName)
	return &URLHint{
		client: client,
		log:    log,
	}
}

// HintAddress looks up the hint contract in the registrar
func (t *URLHint) HintAddress() (common.Address, error) {
	reg, err := t.client.Registrar()
	if err != nil {
		return common.Address{}, err
	}

	input, err := registrarContract.Pack("getAddress", crypto.Keccak256Hash([]byte(HintName)), HintKey)
	if err != nil {
		return common.Address{}, xcom.ErrInternal.More("pack getAddress failed.err:%v", err)
	}
	out, err := t.client.Call(reg, input)
	if err != nil {
		return common.Address{}, err
	}

	values, err := registrarContract.Unpack("getAddress", out)
	if err != nil || len(values) != 1 {
		return common.Address{}, xcom.ErrExecutionFailed.More("unpack getAddress failed.err:%v", err)
	}
	addr, ok := values[0].(common.Address)
	if !ok || addr == (common.Address{}) {
		return common.Address{}, xcom.ErrHintNotFound.More("hint contract not registered")
	}

	return addr, nil
}

// Resolve returns where the content identified by hash can be fetched from
func (t *URLHint) Resolve(hash common.Hash) (*Content, error) {
	hint, err := t.HintAddress()
	if err != nil {
		return nil, err
	}

	input, err := githubHintContract.Pack("entries", hash)
	if err != nil {
		return nil, xcom.ErrInternal.More("pack entries failed.err:%v", err)
	}
	out, err := t.client.Call(hint, input)
	if err != nil {
		return nil, err
	}

	values, err := githubHintContract.Unpack("entries", out)
	if err != nil || len(values) != 3 {
		return nil, xcom.ErrExecutionFailed.More("unpack entries failed.err:%v", err)
	}
	repo, _ := values[0].(string)
	commit, _ := values[1].([20]byte)
	owner, _ := values[2].(common.Address)
	if owner == (common.Address{}) {
		return nil, xcom.ErrHintNotFound.More("hash:%s", hash.Hex())
	}

	content := &Content{
		Kind:  KindContent,
		URL:   repo,
		Owner: owner,
	}
	if commit != ([20]byte{}) {
		content.Kind = KindGithubDapp
		content.Commit = common.BytesToHash(commit[:])
		content.URL = fmt.Sprintf(githubCodeloadURL, repo, common.Bytes2Hex(commit[:]))
	}
	t.log.Debug("resolve url hint", "hash", hash.Hex(), "kind", content.Kind, "url", content.URL)

	return content, nil
}
