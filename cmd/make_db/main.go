package main

import (
	"context"
	"fmt" // For errors printed before the logger is up
	"os"

	"test-extractor/internal/config"
	"test-extractor/internal/database"
	"test-extractor/internal/extractor"
	"test-extractor/internal/logger"
	"test-extractor/internal/parser"
	"test-extractor/internal/script"
	"test-extractor/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "make_db",
		Short:         "Build the tests SQLite database from spreadsheets and Android packages",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: ./config.yaml or ./configs/config.yaml)")
	return cmd
}

func run(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		// Logger is not initialized yet
		fmt.Printf("Failed to load configuration: %v\n", err)
		return err
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return err
	}
	defer logger.Sync()
	log := logger.Get()

	svc := service.NewConvertService(
		cfg,
		extractor.NewApktool(cfg.Extractor, nil, log),
		parser.NewRegistry(cfg.XML, cfg.Spreadsheet),
		script.NewBuilder(),
		database.NewMaterializer(log),
		service.NewVerifier(log),
		log,
	)

	if err := svc.Run(ctx); err != nil {
		log.Error("Conversion failed", zap.Error(err))
		return err
	}
	return nil
}
