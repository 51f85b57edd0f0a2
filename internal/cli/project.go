package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirepath/showcase/internal/carousel"
	"github.com/hirepath/showcase/internal/config"
	"github.com/hirepath/showcase/internal/demos"
)

var (
	projectItems  int
	projectRadius float64
	projectActive int
)

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().IntVar(&projectItems, "items", 0, "number of ring items (default: timeline steps)")
	projectCmd.Flags().Float64Var(&projectRadius, "radius", 0, "ring radius (default from config)")
	projectCmd.Flags().IntVar(&projectActive, "active", 0, "active index")
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print carousel projections",
	Long:  "Compute the carousel projection of every item for one active index.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			cfg = config.DefaultConfig()
		}

		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		steps, err := catalog.Timeline()
		if err != nil {
			return err
		}

		ring := carousel.DefaultRingConfig(len(steps))
		ring.Radius = cfg.Carousel.Radius
		ring.Interval = cfg.Carousel.Interval
		if cmd.Flags().Changed("items") {
			ring.ItemCount = projectItems
		}
		if cmd.Flags().Changed("radius") {
			ring.Radius = projectRadius
		}
		if err := ring.Validate(); err != nil {
			return &PreflightError{
				Message:  err.Error(),
				Hint:     "Use --items >= 1 and --radius > 0",
				NextStep: "showcase project --items 5 --radius 260",
			}
		}

		projections, err := carousel.ProjectAll(projectActive, ring)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, projections)
		}
		return writeTable(cmd.OutOrStdout(), projectionColumns, projectionRows(projections, steps))
	},
}

var projectionColumns = []column{
	{Header: "INDEX", Align: alignRight},
	{Header: "TITLE"},
	{Header: "ANGLE", Align: alignRight},
	{Header: "X", Align: alignRight},
	{Header: "Z", Align: alignRight},
	{Header: "SCALE", Align: alignRight},
	{Header: "OPACITY", Align: alignRight},
	{Header: "ORDER", Align: alignRight},
	{Header: "FOCUSED"},
}

func projectionRows(projections []carousel.Projection, steps []demos.TimelineStep) [][]string {
	rows := make([][]string, 0, len(projections))
	for _, p := range projections {
		title := "-"
		if p.Index < len(steps) {
			title = steps[p.Index].Title
		}
		order := formatStackOrder(p)
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Index),
			title,
			fmt.Sprintf("%.1f", p.AngleDeg),
			fmt.Sprintf("%.1f", p.X),
			fmt.Sprintf("%.1f", p.Z),
			fmt.Sprintf("%.3f", p.Scale),
			fmt.Sprintf("%.3f", p.Opacity),
			order,
			formatYesNo(p.Focused),
		})
	}
	return rows
}

// formatStackOrder shows focused orders relative to the front card.
func formatStackOrder(p carousel.Projection) string {
	if !p.Focused {
		return fmt.Sprintf("%d", p.StackOrder)
	}
	if below := carousel.FrontStackOrder - p.StackOrder; below > 0 {
		return fmt.Sprintf("front-%d", below)
	}
	return "front"
}
