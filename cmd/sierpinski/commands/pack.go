package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxelsplace/sierpinski/meshpack"
	"github.com/voxelsplace/sierpinski/utils"
)

func packCmd() *cobra.Command {
	var (
		levels      []int
		compression string
	)
	cmd := &cobra.Command{
		Use:   "pack <output.sierpack>",
		Short: "Generate several levels into one .sierpack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := meshpack.ParseCompression(compression)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("levels") {
				levels = defaultLevels(cfg.MaxLevel)
			}
			if len(levels) == 0 {
				return fmt.Errorf("--levels is required")
			}
			opts, err := options(levels[0])
			if err != nil {
				return err
			}
			for _, l := range levels[1:] {
				if err := cfg.CheckLevel(l); err != nil {
					return err
				}
			}
			logger.Printf("pack: levels %v compression %s", levels, comp)
			return utils.RunPack(cmd.Context(), opts, levels, comp, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntSliceVar(&levels, "levels", defaultLevels(cfg.MaxLevel), "levels to generate, in entry order (default 0 up to min(3, max level))")
	cmd.Flags().StringVarP(&compression, "compression", "c", cfg.Compression, "none, zlib or zstd")
	return cmd
}

// defaultLevels is 0..min(3, maxLevel).
func defaultLevels(maxLevel int) []int {
	var levels []int
	for l := 0; l <= min(3, maxLevel); l++ {
		levels = append(levels, l)
	}
	return levels
}

func pack2glbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack2glb <input.sierpack> <output.glb>",
		Short: "Convert a .sierpack into a .glb, one node per entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Printf("pack2glb: %s -> %s", args[0], args[1])
			return utils.RunPackToGLB(args[0], args[1])
		},
	}
}

func unpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <input.sierpack> <output_dir>",
		Short: "Write every entry of a .sierpack as its own .glb",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Printf("unpack: %s -> %s", args[0], args[1])
			return utils.RunUnpack(args[0], args[1])
		},
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input.sierpack>",
		Short: "Summarise the entries of a .sierpack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.RunInfo(args[0], cmd.OutOrStdout())
		},
	}
}
