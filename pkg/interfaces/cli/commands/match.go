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

func newMatchCommand() *cobra.Command {
	var useSeedData bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run a single matching cycle and print the resulting allocations",
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

			result, err := c.RunMatchingCycle(ctx, now)
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.WriteJSON(cmd.OutOrStdout(), result)
			}
			output.WriteMatchingResultText(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useSeedData, "seed", true, "seed the illustrative demo dataset before matching")
	return cmd
}
