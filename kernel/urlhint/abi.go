package urlhint

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const registrarABI = `[
{"constant":true,"inputs":[{"name":"_name","type":"bytes32"},{"name":"_key","type":"string"}],
 "name":"getAddress","outputs":[{"name":"","type":"address"}],"type":"function"},
{"constant":true,"inputs":[{"name":"_name","type":"bytes32"}],
 "name":"getOwner","outputs":[{"name":"","type":"address"}],"type":"function"}
]`

const githubHintABI = `[
{"constant":true,"inputs":[{"name":"","type":"bytes32"}],
 "name":"entries","outputs":[{"name":"accountSlashRepo","type":"string"},{"name":"commit","type":"bytes20"},{"name":"owner","type":"address"}],"type":"function"}
]`

var (
	registrarContract  = mustParseABI(registrarABI)
	githubHintContract  = mustParseABI(githubHintABI)
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
