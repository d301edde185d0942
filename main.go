package main

import (
	"TodoGo/config"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "todogo",
		Short:        "Day-grid task tracker API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing the .env file")

	root.AddCommand(newServeCommand(), newMigrateCommand(), newTokenCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig 加载配置并初始化日志
func loadConfig() (config.Config, error) {
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return conf, err
	}
	if err := config.InitLogger(conf); err != nil {
		return conf, err
	}
	return conf, nil
}
