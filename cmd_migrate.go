package main

import (
	"TodoGo/config"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tasks and substeps tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			defer config.Logger.Sync()

			database := config.NewDatabase(conf)
			defer database.Close()
			if err := database.Migrate(); err != nil {
				return err
			}
			config.Logger.Infow("数据库迁移完成", "driver", conf.DBDriver)
			return nil
		},
	}
}
