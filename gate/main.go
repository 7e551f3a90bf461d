package main

import (
	"context"
	"fmt"
	"os"

	"yakuchecker/common/config"
	"yakuchecker/common/log"
	"yakuchecker/common/metrics"
	"yakuchecker/gate/app"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "gate",
	Short: "gate 役种与牌效计算服务",
	Long:  `gate 役种与牌效计算服务，提供和牌判定、拆解、向听分析的 HTTP 接口`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Load(configFile); err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		conf := config.Get()
		log.InitLog(conf.AppName, conf.Log.Level)
		log.Info("配置文件: %+v", *conf)

		go func() {
			log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
			if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
				log.Error("监控服务启动失败: %v", err)
			}
		}()

		if err := app.Run(context.Background()); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "", "配置文件路径，为空时使用默认配置和环境变量")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
