// Package cli собирает команду fwpull: пакетное извлечение версий прошивок
// и просмотр истории запусков.
package cli

import (
	"context"
	"fmt"
	"net/http"

	"fwPull/internal/batch"
	"fwPull/internal/browser"
	"fwPull/internal/cli/commands"
	"fwPull/internal/config"
	"fwPull/internal/database"
	"fwPull/internal/logger"
	"fwPull/internal/metrics"
	"fwPull/internal/migrations"
	"fwPull/internal/selectors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const Name = "fwpull"

type options struct {
	input       string
	output      string
	debug       bool
	selectors   string
	metricsFile string
}

func NewCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           Name,
		Short:         "Собирает текущие и утвержденные версии BIOS с сайтов Dell, HPE и Oracle",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(cmd, opts)
		},
	}
	root.Flags().StringVarP(&opts.input, "input", "i", "", "JSON-файл со списком [{\"Vendor\", \"Model\"}]")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "файл отчета (по умолчанию stdout)")
	root.Flags().BoolVar(&opts.debug, "debug", false, "видимый браузер и подробный лог")
	root.Flags().StringVar(&opts.selectors, "selectors", "", "YAML-файл селекторов вместо встроенного")
	root.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "файл метрик в формате Prometheus textfile")
	_ = root.MarkFlagRequired("input")

	root.AddCommand(NewHistoryCommand())
	return root
}

// loadConfig применяет флаги поверх переменных окружения.
func loadConfig(opts *options) (*config.Cfg, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.selectors != "" {
		cfg.Selectors.Path = opts.selectors
	}
	if opts.metricsFile != "" {
		cfg.Metrics.File = opts.metricsFile
	}
	if opts.debug {
		cfg.Browser.Headless = false
		cfg.Logger.Level = "debug"
	}
	return cfg, nil
}

func runPull(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	reqs, err := batch.ReadRequests(opts.input)
	if err != nil {
		return err
	}

	sel, err := selectors.Load(cfg.Selectors.Path)
	if err != nil {
		return err
	}

	observers := []batch.Observer{metrics.New(cfg.Metrics.File, log.Logger)}
	if store, closeStore := openRunStore(cfg, log); store != nil {
		defer closeStore()
		observers = append(observers, store)
	}

	dispatcher := batch.NewDispatcher(sel, &http.Client{Timeout: cfg.Oracle.HTTPTimeout}, cfg.Browser.Timeout, log.Logger)
	orch := batch.NewOrchestrator(dispatcher, sessionOpener(cfg.Browser, log.Logger), log.Logger, observers...)

	res, runErr := orch.Run(ctx, reqs)

	if err := batch.WriteRecords(opts.output, cmd.OutOrStdout(), res.Records); err != nil {
		return err
	}
	commands.PrintSummary(cmd.ErrOrStderr(), res)

	return runErr
}

// sessionOpener откладывает запуск браузера до первого Dell/HP элемента.
func sessionOpener(c config.Browser, log *zap.Logger) batch.SessionOpener {
	return func(ctx context.Context) (browser.Session, error) {
		bcfg := browser.Config{
			Endpoint:        c.Endpoint,
			Engine:          c.Engine,
			Display:         c.Display,
			Timeout:         c.Timeout,
			PollInterval:    c.PollInterval,
			NavigateTimeout: c.NavigateTimeout,
		}
		s, err := browser.OpenWithFallback(ctx, bcfg, c.SpawnLocal, browser.DefaultCapabilities(c.Headless), log)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// openRunStore подключает историю запусков, если задан DB_HOST.
// Недоступная БД не мешает запуску: история просто не пишется.
func openRunStore(cfg *config.Cfg, log *logger.Zap) (*database.RunStore, func()) {
	if !cfg.Database.Enabled() {
		return nil, nil
	}

	db, err := openDB(cfg, log)
	if err != nil {
		log.Warn("История запусков отключена", zap.Error(err))
		return nil, nil
	}

	store := database.NewRunStore(database.NewRunRepository(db.DB), log.Logger)
	return store, func() { db.Close(log) }
}

func openDB(cfg *config.Cfg, log *logger.Zap) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db, log); err != nil {
		db.Close(log)
		return nil, fmt.Errorf("миграции: %w", err)
	}
	return db, nil
}
