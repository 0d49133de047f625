package commands

import (
	"github.com/spf13/cobra"

	"github.com/voxelsplace/sierpinski/utils"
)

func glbCmd() *cobra.Command {
	var level int
	cmd := &cobra.Command{
		Use:   "glb <output.glb>",
		Short: "Generate a Sierpinski tetrahedron as .glb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(level)
			if err != nil {
				return err
			}
			logger.Printf("glb: level %d corners %s workers %d weld %t", opts.Level, describe(opts.Corners), opts.Workers, opts.Weld)
			return utils.RunGLB(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&level, "level", "l", cfg.Level, "recursion level")
	return cmd
}
