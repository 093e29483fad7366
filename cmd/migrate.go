package cmd

import (
	"fmt"

	"github.com/prezlink/prezlink/internal/config"
	"github.com/prezlink/prezlink/internal/database"
	"github.com/prezlink/prezlink/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

func NewMigrate() *cobra.Command {
	var cfg config.ServerCmdConfig
	loader := config.NewConfigLoader()
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zapcore.ParseLevel(cfg.Log.Level)
			if err != nil {
				lvl = zapcore.InfoLevel
			}
			logging.SetConfig(&logging.Config{
				Level:    lvl,
				FilePath: cfg.Log.File,
			})
			lg := logging.DefaultLogger().Sugar()
			defer lg.Sync()

			db, err := database.NewDatabase(&cfg.DB, lg)
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
			if err := database.MigrateDB(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			lg.Info("Migrations applied")
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loader.InitializeConfig(cmd); err != nil {
				return err
			}
			return loader.Load(&cfg)
		},
	}
	config.AddCommonFlags(cmd.Flags(), &cfg)
	return cmd
}
