package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bldgsim/thermogen/internal/aggregate"
	"github.com/bldgsim/thermogen/internal/building"
	"github.com/bldgsim/thermogen/internal/export"
	"github.com/bldgsim/thermogen/internal/modelspec"
)

// newParamsCmd creates the params command: run the derivation pipeline
// and print the resulting RC parameters without writing model files.
func newParamsCmd() *cobra.Command {
	var (
		projectPath    string
		buildingFilter string
		zoneFilter     string
	)

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print derived RC parameters for the project's zones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := building.LoadProject(projectPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printed := 0
			for _, b := range project.Buildings {
				if buildingFilter != "" && buildingFilter != b.Name && buildingFilter != b.InternalID {
					continue
				}
				for _, z := range b.Zones {
					if zoneFilter != "" && zoneFilter != z.Name && zoneFilter != z.InternalID {
						continue
					}
					if err := printZoneParams(out, project, b, z); err != nil {
						return err
					}
					printed++
				}
			}
			if printed == 0 {
				return fmt.Errorf("no zone matches the given filters")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project description file (required)")
	cmd.Flags().StringVar(&buildingFilter, "building", "", "only show the named building")
	cmd.Flags().StringVar(&zoneFilter, "zone", "", "only show the named zone")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func printZoneParams(out io.Writer, project *building.Project, b *building.Building, z *building.Zone) error {
	spec, err := modelspec.Resolve(project, b, z)
	if err != nil {
		return err
	}
	za, err := aggregate.ForZone(z, spec.Order, spec.ChainOrder, spec.MergeWindows)
	if err != nil {
		return err
	}

	params := export.ParameterSet(za)
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(out, "%s / %s (%s, order %d)\n", b.Name, z.Name, spec.Library, spec.Order)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%g\n", k, params[k])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}
