package cmd

import (
	"fmt"

	"mesh-doctor/core/logger"
	"mesh-doctor/core/mesh"
	"mesh-doctor/feature/repair"
	"mesh-doctor/feature/stl"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	repairOutput     string
	repairASCII      bool
	repairVerbose    bool
	repairFixAll     bool
	repairExact      bool
	repairNearby     bool
	repairTolerance  float64
	repairIncrement  float64
	repairIterations int
	repairPrune      bool
	repairFillHoles  bool
	repairReverseAll bool
	repairNormalDir  bool
	repairNormalVal  bool
)

// repairCmd represents the repair command
var repairCmd = &cobra.Command{
	Use:   "repair <file.stl>",
	Short: "Repair an STL mesh",
	Long: `Reads an STL file (binary or ASCII), runs the requested repair
passes, and writes the repaired mesh back out.

Without pass flags every corrective pass runs. Selecting individual
passes (--exact, --nearby, --fill-holes, ...) runs only those; passes
that depend on a valid neighbor table pull in the exact check
automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if repairVerbose {
			level = "debug"
		}
		logg, err := logger.New(&logger.Config{Level: level, Format: "console"})
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		input := args[0]
		output := repairOutput
		if output == "" {
			output = input
		}

		facets, declared, err := stl.ReadFile(input)
		if err != nil {
			return err
		}
		store, err := mesh.Load(facets, declared)
		if err != nil {
			return err
		}

		opts := repair.Options{
			ExactCheck:        repairExact,
			Nearby:            repairNearby,
			Tolerance:         repairTolerance,
			ToleranceSet:      cmd.Flags().Changed("tolerance"),
			Increment:         repairIncrement,
			IncrementSet:      cmd.Flags().Changed("increment"),
			Iterations:        repairIterations,
			RemoveUnconnected: repairPrune,
			FillHoles:         repairFillHoles,
			ReverseAll:        repairReverseAll,
			NormalDirections:  repairNormalDir,
			NormalValues:      repairNormalVal,
		}
		// With no pass selection at all, repair everything.
		opts.FixAll = repairFixAll || !(repairExact || repairNearby || repairPrune ||
			repairFillHoles || repairReverseAll || repairNormalDir || repairNormalVal)

		svc := repair.NewService(store, logg, repair.NewZapReporter(logg))
		if err := svc.Repair(opts); err != nil {
			return fmt.Errorf("repair of %s failed: %w", input, err)
		}

		st := store.Stats
		logg.Info("Repair completed",
			zap.Int("facets", st.FacetCount),
			zap.Float64("volume", st.Volume),
			zap.Int("edges_fixed", st.EdgesFixed),
			zap.Int("facets_removed", st.FacetsRemoved),
			zap.Int("facets_added", st.FacetsAdded),
			zap.Int("facets_reversed", st.FacetsReversed),
			zap.Int("normals_fixed", st.NormalsFixed),
			zap.Int("backwards_edges", st.BackwardsEdges),
		)

		if err := stl.WriteFile(output, store.Export(), "repaired", repairASCII); err != nil {
			return err
		}
		logg.Info("Wrote repaired mesh", zap.String("file", output))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(repairCmd)

	repairCmd.Flags().StringVarP(&repairOutput, "output", "o", "", "Output file (default: overwrite input)")
	repairCmd.Flags().BoolVar(&repairASCII, "ascii", false, "Write ASCII STL instead of binary")
	repairCmd.Flags().BoolVarP(&repairVerbose, "verbose", "v", false, "Verbose progress output")

	repairCmd.Flags().BoolVar(&repairFixAll, "fix-all", false, "Run every corrective pass")
	repairCmd.Flags().BoolVar(&repairExact, "exact", false, "Connect edges with bit-identical endpoints")
	repairCmd.Flags().BoolVar(&repairNearby, "nearby", false, "Connect remaining edges within a tolerance")
	repairCmd.Flags().Float64Var(&repairTolerance, "tolerance", 0, "Starting nearby tolerance (default: shortest edge)")
	repairCmd.Flags().Float64Var(&repairIncrement, "increment", 0, "Tolerance increment per iteration (default: bounding diameter / 10000)")
	repairCmd.Flags().IntVar(&repairIterations, "iterations", 0, "Nearby iteration cap (default: 2)")
	repairCmd.Flags().BoolVar(&repairPrune, "remove-unconnected", false, "Remove facets with no connected edge")
	repairCmd.Flags().BoolVar(&repairFillHoles, "fill-holes", false, "Triangulate closed boundary loops")
	repairCmd.Flags().BoolVar(&repairReverseAll, "reverse-all", false, "Reverse the winding of every facet")
	repairCmd.Flags().BoolVar(&repairNormalDir, "normal-directions", false, "Propagate consistent facet orientation")
	repairCmd.Flags().BoolVar(&repairNormalVal, "normal-values", false, "Rewrite stored normals from vertex order")
}
