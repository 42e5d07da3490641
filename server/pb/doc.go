// Package pb holds the control plane messages and service of xdapps.proto.
package pb

//go:generate protoc --go_out=plugins=grpc,paths=source_relative:. xdapps.proto
