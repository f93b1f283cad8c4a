package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
	"github.com/Lixing-Zhang/course-catalog/internal/repository"
	"github.com/Lixing-Zhang/course-catalog/internal/tui"
	"github.com/Lixing-Zhang/course-catalog/pkg/logger"
)

const defaultLogFile = ".catalog/logs/catalog-tui.log"

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug       bool
		catalogFile string
		logFile     string
	)

	cmd := &cobra.Command{
		Use:          "catalog-tui",
		Short:        "Browse the course catalog and build a cart in the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := loadItems(cmd.Context(), catalogFile)
			if err != nil {
				return err
			}

			log, closeLog := openLog(cmd.ErrOrStderr(), logFile, debug)
			defer func() { _ = closeLog() }()

			deps := tui.Deps{
				Items:  items,
				Logger: log,
				Debug:  debug,
			}

			deps.Logger.Info("catalog loaded", "items", len(items), "source", catalogSource(catalogFile))
			return tui.Run(deps)
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (defaults to the built-in courses)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile, "log file path, empty disables logging")
	return cmd
}

// openLog opens the file logger. The terminal belongs to the TUI, so logs only
// go to a file; when it cannot be opened the warning is written to stderr and
// logging is disabled.
func openLog(stderr io.Writer, path string, debug bool) (*slog.Logger, func() error) {
	noop := func() error { return nil }
	if path == "" {
		return logger.Discard(), noop
	}

	log, closeLog, err := logger.NewFile(path, debug)
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
		return logger.Discard(), noop
	}
	return log, closeLog
}

// loadItems returns the built-in courses, or the validated contents of a catalog file
func loadItems(ctx context.Context, path string) ([]models.Item, error) {
	if path == "" {
		return repository.DefaultCourses(), nil
	}
	repo, err := repository.NewCatalogRepositoryFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return repo.GetAll(ctx)
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
