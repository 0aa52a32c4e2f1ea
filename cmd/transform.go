package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"mesh-doctor/core/geom"
	"mesh-doctor/core/mesh"
	"mesh-doctor/feature/stl"
	"mesh-doctor/feature/transform"

	"github.com/spf13/cobra"
)

var (
	transformOutput    string
	transformASCII     bool
	translateTo        string
	translateRel       string
	scaleFactor        float64
	scaleVersor        string
	rotateXDeg         float64
	rotateYDeg         float64
	rotateZDeg         float64
	mirrorXY, mirrorYZ bool
	mirrorXZ           bool
)

// transformCmd represents the transform command
var transformCmd = &cobra.Command{
	Use:   "transform <file.stl>",
	Short: "Apply geometric transforms to an STL mesh",
	Long: `Reads an STL file, applies the requested transforms, and writes the
result. Transforms apply in a fixed order: translate, scale, rotate
(X, Y, Z), mirror.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output := transformOutput
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
		store.ComputeStats()

		if translateTo != "" {
			v, err := parseTriple(translateTo)
			if err != nil {
				return fmt.Errorf("invalid --translate: %w", err)
			}
			if err := transform.Translate(store, v); err != nil {
				return err
			}
		}
		if translateRel != "" {
			v, err := parseTriple(translateRel)
			if err != nil {
				return fmt.Errorf("invalid --translate-rel: %w", err)
			}
			if err := transform.TranslateRelative(store, v); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("scale") {
			if err := transform.Scale(store, float32(scaleFactor)); err != nil {
				return err
			}
		}
		if scaleVersor != "" {
			v, err := parseTriple(scaleVersor)
			if err != nil {
				return fmt.Errorf("invalid --scale-versor: %w", err)
			}
			if err := transform.ScaleVersor(store, v); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("rotate-x") {
			if err := transform.RotateX(store, rotateXDeg); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("rotate-y") {
			if err := transform.RotateY(store, rotateYDeg); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("rotate-z") {
			if err := transform.RotateZ(store, rotateZDeg); err != nil {
				return err
			}
		}
		if mirrorXY {
			if err := transform.MirrorXY(store); err != nil {
				return err
			}
		}
		if mirrorYZ {
			if err := transform.MirrorYZ(store); err != nil {
				return err
			}
		}
		if mirrorXZ {
			if err := transform.MirrorXZ(store); err != nil {
				return err
			}
		}

		return stl.WriteFile(output, store.Export(), "transformed", transformASCII)
	},
}

// parseTriple parses "x,y,z" into a vector.
func parseTriple(s string) (geom.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var out [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return geom.Vector3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		out[i] = float32(f)
	}
	return geom.Vector3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func init() {
	RootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "Output file (default: overwrite input)")
	transformCmd.Flags().BoolVar(&transformASCII, "ascii", false, "Write ASCII STL instead of binary")
	transformCmd.Flags().StringVar(&translateTo, "translate", "", "Move the bounding-box minimum to x,y,z")
	transformCmd.Flags().StringVar(&translateRel, "translate-rel", "", "Shift every vertex by x,y,z")
	transformCmd.Flags().Float64Var(&scaleFactor, "scale", 1, "Scale uniformly about the origin")
	transformCmd.Flags().StringVar(&scaleVersor, "scale-versor", "", "Scale each axis by x,y,z")
	transformCmd.Flags().Float64Var(&rotateXDeg, "rotate-x", 0, "Rotate about the X axis (degrees)")
	transformCmd.Flags().Float64Var(&rotateYDeg, "rotate-y", 0, "Rotate about the Y axis (degrees)")
	transformCmd.Flags().Float64Var(&rotateZDeg, "rotate-z", 0, "Rotate about the Z axis (degrees)")
	transformCmd.Flags().BoolVar(&mirrorXY, "mirror-xy", false, "Mirror across the XY plane")
	transformCmd.Flags().BoolVar(&mirrorYZ, "mirror-yz", false, "Mirror across the YZ plane")
	transformCmd.Flags().BoolVar(&mirrorXZ, "mirror-xz", false, "Mirror across the XZ plane")
}
