package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xdapps/cmd/xdapps/cmd"
)

func main() {
	rootCmd, err := NewServiceCommand()
	if err != nil {
		log.Fatalf("new command failed.err:%v", err)
	}

	if err = rootCmd.Execute(); err != nil {
		log.Fatalf("command exec failed.err:%v", err)
	}
}

func NewServiceCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           cmd.CmdLineName + " <command> [arguments]",
		Short:         "xdapps serves web applications and read-only contract calls of a node.",
		Long:          "xdapps serves web applications and read-only contract calls of a node.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       cmd.CmdLineName + " startup --conf /home/rd/xdapps/conf/env.yaml",
	}

	// cmd version
	rootCmd.AddCommand(cmd.GetVersionCmd().GetCmd())
	// cmd service
	rootCmd.AddCommand(cmd.GetStartupCmd().GetCmd())
	// control plane client
	rootCmd.AddCommand(cmd.GetDappsCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetRegistrarCmd().GetCmd())
	rootCmd.AddCommand(cmd.GetCallCmd().GetCmd())

	return rootCmd, nil
}
