package cli

import (
	"fmt"

	"fwPull/internal/cli/commands"
	"fwPull/internal/config"
	"fwPull/internal/database"
	"fwPull/internal/logger"

	"github.com/spf13/cobra"
)

func NewHistoryCommand() *cobra.Command {
	var limit int

	h := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Показать сохраненные запуски или детали одного запуска",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return fmt.Errorf("история недоступна: не задан DB_HOST")
			}

			log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openDB(cfg, log)
			if err != nil {
				return err
			}
			defer db.Close(log)

			handler := commands.NewHistoryHandler(database.NewRunRepository(db.DB), cmd.OutOrStdout())
			if len(args) == 1 {
				return handler.Show(cmd.Context(), args[0])
			}
			return handler.List(cmd.Context(), limit)
		},
	}
	h.Flags().IntVar(&limit, "limit", 20, "сколько последних запусков показать")
	return h
}
