package chain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/xuperchain/xdapps/kernel/common/xconfig"
)

type AccountConf struct {
	// 十进制或0x前缀的十六进制
	Balance string            `yaml:"balance,omitempty"`
	Nonce   uint64            `yaml:"nonce,omitempty"`
	Code    string            `yaml:"code,omitempty"`
	Storage map[string]string `yaml:"storage,omitempty"`
}

// ChainConf is the genesis of the local chain. Keys of Params are lower-cased by the loader.
type ChainConf struct {
	ChainId  int64                  `yaml:"chainId,omitempty"`
	GasLimit uint64                 `yaml:"gasLimit,omitempty"`
	Persist  bool                   `yaml:"persist,omitempty"`
	Params   map[string]string      `yaml:"params,omitempty"`
	Alloc    map[string]AccountConf `yaml:"alloc,omitempty"`
}

func LoadChainConf(cfgFile string) (*ChainConf, error) {
	cfg := GetDefChainConf()
	err := xconfig.LoadYamlConf(cfgFile, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "load chain config failed")
	}

	return cfg, nil
}

func GetDefChainConf() *ChainConf {
	return &ChainConf{
		ChainId:  1337,
		GasLimit: 60000000,
		Persist:  false,
		Params:   map[string]string{},
		Alloc:    map[string]AccountConf{},
	}
}

// Account is a decoded alloc entry
type Account struct {
	Balance *big.Int
	Nonce   uint64
	Code    []byte
	Storage map[common.Hash]common.Hash
}

type Alloc map[common.Address]Account

// DecodeAlloc converts the textual alloc of the genesis config
func DecodeAlloc(raw map[string]AccountConf) (Alloc, error) {
	alloc := make(Alloc, len(raw))
	for addrStr, ac := range raw {
		if !common.IsHexAddress(addrStr) {
			return nil, errors.Errorf("invalid alloc address.addr:%s", addrStr)
		}

		acc := Account{
			Balance: new(big.Int),
			Nonce:   ac.Nonce,
			Storage: make(map[common.Hash]common.Hash, len(ac.Storage)),
		}
		if ac.Balance != "" {
			b, ok := new(big.Int).SetString(strings.TrimSpace(ac.Balance), 0)
			if !ok || b.Sign() < 0 {
				return nil, errors.Errorf("invalid alloc balance.addr:%s,balance:%s", addrStr, ac.Balance)
			}
			acc.Balance = b
		}
		if ac.Code != "" {
			code, err := hexutil.Decode(ac.Code)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid alloc code.addr:%s", addrStr)
			}
			acc.Code = code
		}
		for k, v := range ac.Storage {
			acc.Storage[common.HexToHash(k)] = common.HexToHash(v)
		}

		alloc[common.HexToAddress(addrStr)] = acc
	}

	return alloc, nil
}
