package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xdapps/kernel/node"
	"github.com/xuperchain/xdapps/lib/logs"
)

type StartupCmd struct {
	BaseCmd
}

func GetStartupCmd() *StartupCmd {
	startupCmdIns := new(StartupCmd)

	// 定义命令行参数变量
	var envCfgPath string

	startupCmdIns.cmd = &cobra.Command{
		Use:           "startup",
		Short:         "Start up the dapps node.",
		Example:       CmdLineName + " startup --conf /home/rd/xdapps/conf/env.yaml",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return StartupXdapps(envCfgPath)
		},
	}

	// 设置命令行参数并绑定变量
	startupCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "./conf/env.yaml",
		"environment config file path")

	return startupCmdIns
}

// 启动节点
func StartupXdapps(envCfgPath string) error {
	// 加载配置
	cfg, err := node.LoadConfig(envCfgPath)
	if err != nil {
		return err
	}

	// 初始化日志
	logs.InitLog(cfg.Env.GenConfFilePath(cfg.Env.LogConf), cfg.Env.GenDirAbsPath(cfg.Env.LogDir))

	// 实例化节点
	n, err := node.NewNode(cfg)
	if err != nil {
		return err
	}

	// 阻塞等待进程退出指令
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		// 退出调用幂等
		n.Exit()
	}()

	return n.Run()
}
