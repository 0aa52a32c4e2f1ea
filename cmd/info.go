package cmd

import (
	"encoding/json"
	"fmt"

	"mesh-doctor/core/mesh"
	"mesh-doctor/feature/repair"
	"mesh-doctor/feature/stl"

	"github.com/spf13/cobra"
)

var infoJSON bool

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file.stl>",
	Short: "Print statistics about an STL mesh",
	Long: `Reads an STL file, builds the exact adjacency table, and prints
size, connectivity, and volume statistics without modifying the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		facets, declared, err := stl.ReadFile(args[0])
		if err != nil {
			return err
		}
		store, err := mesh.Load(facets, declared)
		if err != nil {
			return err
		}

		svc := repair.NewService(store, nil, nil)
		if err := svc.CheckExact(); err != nil {
			return err
		}
		if err := svc.CalculateVolume(); err != nil {
			return err
		}

		st := store.Stats
		if infoJSON {
			data, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("File:               %s\n", args[0])
		fmt.Printf("Facets:             %d\n", st.FacetCount)
		fmt.Printf("Min:                (%g, %g, %g)\n", st.Min.X, st.Min.Y, st.Min.Z)
		fmt.Printf("Max:                (%g, %g, %g)\n", st.Max.X, st.Max.Y, st.Max.Z)
		fmt.Printf("Size:               (%g, %g, %g)\n", st.Size.X, st.Size.Y, st.Size.Z)
		fmt.Printf("Bounding diameter:  %g\n", st.BoundingDiameter)
		fmt.Printf("Shortest edge:      %g\n", st.ShortestEdge)
		fmt.Printf("Volume:             %g\n", st.Volume)
		fmt.Printf("Facets by degree:   0:%d 1:%d 2:%d 3:%d\n",
			st.FacetsByDegree[0], st.FacetsByDegree[1], st.FacetsByDegree[2], st.FacetsByDegree[3])
		fmt.Printf("Backwards edges:    %d\n", st.BackwardsEdges)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output statistics as JSON")
}
