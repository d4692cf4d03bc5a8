package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/productionplan/api/productionplan"
	"github.com/kilianp07/productionplan/config"
	"github.com/kilianp07/productionplan/core/dispatch"
	"github.com/kilianp07/productionplan/infra/logger"
	"github.com/kilianp07/productionplan/pkg/export"
)

type planOptions struct {
	input   string
	output  string
	planner string
	csv     string
	chart   string
}

var planOpts planOptions

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a production plan from a payload file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd.Context(), planOpts, cmd.OutOrStdout())
	},
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planOpts.input, "input", "i", "", "payload file")
	f.StringVarP(&planOpts.output, "output", "o", "", "response file (stdout when empty)")
	f.StringVar(&planOpts.planner, "planner", "", "planner override ("+dispatch.PlannerMeritOrder+" or "+dispatch.PlannerLP+")")
	f.StringVar(&planOpts.csv, "csv", "", "write the merit order table to this CSV file")
	f.StringVar(&planOpts.chart, "chart", "", "write the merit order chart to this HTML file")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

// runPlan computes a plan locally. Nothing is logged to the plan store and
// no setpoint is published.
func runPlan(ctx context.Context, o planOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.planner != "" {
		cfg.Planner.Planner = o.planner
		if err := cfg.Planner.Validate(); err != nil {
			return err
		}
	}
	logger.Configure(cfg.Log)
	planner, err := dispatch.NewPlanner(cfg.Planner)
	if err != nil {
		return err
	}
	manager, err := dispatch.NewPlanManager(planner, nil, nil, nil, logger.New("plan_command"))
	if err != nil {
		return err
	}

	in, err := os.Open(o.input)
	if err != nil {
		return err
	}
	defer in.Close()
	req, err := productionplan.DecodePayload(in)
	if err != nil {
		return err
	}
	res, err := manager.Plan(ctx, req)
	if err != nil {
		return err
	}

	if err := writeTo(o.output, stdout, func(w io.Writer) error { return export.WriteJSON(w, res.Allocation) }); err != nil {
		return err
	}
	if o.csv != "" {
		if err := writeTo(o.csv, nil, func(w io.Writer) error { return export.WriteCSV(w, res.Allocation) }); err != nil {
			return err
		}
	}
	if o.chart != "" {
		if err := writeTo(o.chart, nil, func(w io.Writer) error { return export.WriteMeritOrderChart(w, res.Allocation, req.Load) }); err != nil {
			return err
		}
	}
	return nil
}

// writeTo runs write against path, or against fallback when path is empty.
func writeTo(path string, fallback io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(fallback)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
