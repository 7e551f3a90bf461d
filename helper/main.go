package main

import (
	"os"
	"strings"

	"yakuchecker/common/log"
	"yakuchecker/framework/game/engines/mahjong"
	"yakuchecker/helper/repl"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "helper",
	Short: "终端役种与牌效助手",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.InitLog("helper", logLevel)
	},
}

var yakuCmd = &cobra.Command{
	Use:   "yaku",
	Short: "循环输入 13 张手牌和摸牌，输出役种",
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.RunYaku(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var shantenCmd = &cobra.Command{
	Use:   "shanten",
	Short: "输入手牌后循环摸打，输出向听与有效进张",
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.RunShanten(cmd.InOrStdin(), cmd.OutOrStdout(), mahjong.NewSearcher())
	},
}

var checkCmd = &cobra.Command{
	Use:     "check <hand...>",
	Short:   "一次性分析 13 或 14 张手牌",
	Example: "helper check 123m 456m 789m 1p 4p 7s ton",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.Check(cmd.OutOrStdout(), nil, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "warn", "日志级别")
	rootCmd.AddCommand(yakuCmd, shantenCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
