package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/xuperchain/xdapps/kernel/common/xconfig"
)

type ServConf struct {
	// http server listen host and port, serves dapps middleware and json-rpc
	HttpHost string `yaml:"httpHost,omitempty"`
	HttpPort int    `yaml:"httpPort,omitempty"`
	// cors allowed origins of the http server, empty means no cors
	CorsOrigins []string `yaml:"corsOrigins,omitempty"`
	// ui server listen address, ui middleware is served here when uiPort > 0
	UIHost string `yaml:"uiHost,omitempty"`
	UIPort int    `yaml:"uiPort,omitempty"`
	// rpc server listen port
	RpcPort            int   `yaml:"rpcPort,omitempty"`
	MaxRecvMsgSize     int   `yaml:"maxRecvMsgSize,omitempty"`
	ReadBufSize        int   `yaml:"readBufSize,omitempty"`
	WriteBufSize       int   `yaml:"writeBufSize,omitempty"`
	InitWindowSize     int32 `yaml:"initWindowSize,omitempty"`
	InitConnWindowSize int32 `yaml:"initConnWindowSize,omitempty"`
	// graceful shutdown timeout
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`
}

func LoadServConf(cfgFile string) (*ServConf, error) {
	cfg := GetDefServConf()
	err := xconfig.LoadYamlConf(cfgFile, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "load server config failed")
	}

	return cfg, nil
}

func GetDefServConf() *ServConf {
	return &ServConf{
		HttpHost:           "127.0.0.1",
		HttpPort:           8545,
		CorsOrigins:        []string{},
		UIHost:             "127.0.0.1",
		UIPort:             0,
		RpcPort:            38101,
		MaxRecvMsgSize:     128 << 20,
		ReadBufSize:        32 << 10,
		WriteBufSize:       32 << 10,
		InitWindowSize:     128 << 10,
		InitConnWindowSize: 64 << 10,
		ShutdownTimeout:    5 * time.Second,
	}
}

func (t *ServConf) HttpAddr() string {
	return fmt.Sprintf("%s:%d", t.HttpHost, t.HttpPort)
}

func (t *ServConf) UIAddr() string {
	return fmt.Sprintf("%s:%d", t.UIHost, t.UIPort)
}

func (t *ServConf) RpcAddr() string {
	return fmt.Sprintf(":%d", t.RpcPort)
}
