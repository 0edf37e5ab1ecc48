package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/relieflogix/relief/pkg/application/services"
	"github.com/relieflogix/relief/pkg/domain/entities"
	"github.com/relieflogix/relief/pkg/domain/services/dashboard"
	"github.com/relieflogix/relief/pkg/domain/services/matching"
	"github.com/relieflogix/relief/pkg/domain/services/priority"
	"github.com/relieflogix/relief/pkg/infrastructure/repositories/memory"
	"github.com/relieflogix/relief/pkg/interfaces/cli/output"
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed an illustrative scenario, run a matching cycle, and print the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			now := time.Now()

			sink := newAuditSink(cfg)
			pm := priority.NewManager(cfg.AgingConfig())
			engine := matching.NewEngine(cfg.MatchingConfig()).WithLogger(newLogger())
			dash := dashboard.NewDashboard(cfg.DashboardConfig(), pm).WithLogger(newLogger())

			c := services.New(
				memory.NewStore[*entities.Need](),
				memory.NewStore[*entities.Supply](),
				memory.NewStore[*entities.Shipment](),
				sink, pm, engine, dash,
			).WithLogger(newLogger())

			if err := seedDemoData(ctx, c, now); err != nil {
				return err
			}

			result, err := c.RunMatchingCycle(ctx, now)
			if err != nil {
				return err
			}
			snap, err := c.Snapshot(ctx, now)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := output.WriteJSON(cmd.OutOrStdout(), map[string]any{
					"matching":  result,
					"dashboard": snap,
				}); err != nil {
					return err
				}
				return nil
			}

			output.WriteMatchingResultText(cmd.OutOrStdout(), result)
			cmd.Println()
			output.WriteSnapshotText(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}
