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

func newDashboardCommand() *cobra.Command {
	var useSeedData bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print a point-in-time system health snapshot, including panic status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			now := time.Now()

			pm := priority.NewManager(cfg.AgingConfig())
			c := services.New(
				memory.NewStore[*entities.Need](),
				memory.NewStore[*entities.Supply](),
				memory.NewStore[*entities.Shipment](),
				newAuditSink(cfg),
				pm,
				matching.NewEngine(cfg.MatchingConfig()).WithLogger(newLogger()),
				dashboard.NewDashboard(cfg.DashboardConfig(), pm).WithLogger(newLogger()),
			).WithLogger(newLogger())

			if useSeedData {
				if err := seedDemoData(ctx, c, now); err != nil {
					return err
				}
			}

			snap, err := c.Snapshot(ctx, now)
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.WriteJSON(cmd.OutOrStdout(), snap)
			}
			output.WriteSnapshotText(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useSeedData, "seed", true, "seed the illustrative demo dataset before snapshotting")
	return cmd
}
