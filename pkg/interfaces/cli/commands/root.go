// Package commands wires the cobra command tree for the relief CLI.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/relieflogix/relief/pkg/domain/repositories"
	"github.com/relieflogix/relief/pkg/infrastructure/audit"
	"github.com/relieflogix/relief/pkg/infrastructure/config"
)

var (
	configPath string
	jsonOutput bool
)

// NewRootCommand builds the `relief` command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "relief",
		Short: "Disaster-relief logistics coordinator",
		Long: `relief matches scarce supplies to outstanding needs under evolving
urgency, and reports system-wide health including a panic signal for
starved critical requests.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "relief.yaml", "path to relief.yaml (defaults applied if absent)")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of a text report")

	root.AddCommand(newDemoCommand())
	root.AddCommand(newMatchCommand())
	root.AddCommand(newDashboardCommand())

	return root
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// newAuditSink builds the configured AuditSink: a bounded in-memory ring,
// wrapped with best-effort file persistence when cfg.AuditLogPath is set.
func newAuditSink(cfg *config.Config) repositories.AuditSink {
	mem := audit.NewMemorySink(cfg.MaxInMemoryLogs)
	if cfg.AuditLogPath == "" {
		return mem
	}
	return audit.NewFileBackedSink(mem, cfg.AuditLogPath).WithLogger(newLogger())
}
