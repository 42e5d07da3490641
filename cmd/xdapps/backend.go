//go:build !nodapps

package main

// import要使用的dapps后端，使用nodapps标签编译时不提供dapps服务
import _ "github.com/xuperchain/xdapps/kernel/dapps/server"
