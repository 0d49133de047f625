package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voxelsplace/sierpinski/internal/config"
	"github.com/voxelsplace/sierpinski/sierpinski"
	"github.com/voxelsplace/sierpinski/utils"
)

var (
	cfg     config.Config
	logger  = log.New(io.Discard, "", 0)
	corners string
	workers int
	weld    bool
	verbose bool
)

func Execute() error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return NewRootCmd(c).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree using c for flag defaults.
func NewRootCmd(c config.Config) *cobra.Command {
	cfg = c
	root := &cobra.Command{
		Use:           "sierpinski",
		Short:         "Sierpinski tetrahedron mesh generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger = log.New(os.Stderr, "sierpinski: ", log.LstdFlags|log.Lmicroseconds)
			} else {
				logger = log.New(io.Discard, "", 0)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if workers < 0 {
				return fmt.Errorf("--workers must not be negative")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&corners, "corners", "", "four corners as \"x,y,z;x,y,z;x,y,z;x,y,z\" (default unit tetrahedron)")
	root.PersistentFlags().IntVar(&workers, "workers", cfg.Workers, "build top-level branches on this many goroutines (0 or 1 = sequential)")
	root.PersistentFlags().BoolVar(&weld, "weld", cfg.Weld, "merge coincident vertices after generation")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", cfg.Verbose, "log progress to stderr")
	root.PersistentFlags().IntVar(&cfg.MaxLevel, "max-level", cfg.MaxLevel, "highest level accepted")

	root.AddCommand(glbCmd(), packCmd(), pack2glbCmd(), unpackCmd(), infoCmd())
	return root
}

// options turns the shared flags into generation options for level.
func options(level int) (utils.GenerateOptions, error) {
	opts := utils.DefaultOptions()
	if err := cfg.CheckLevel(level); err != nil {
		return opts, err
	}
	if corners != "" {
		c, err := ParseCorners(corners)
		if err != nil {
			return opts, err
		}
		opts.Corners = c
	}
	opts.Level = level
	opts.Workers = workers
	opts.Weld = weld
	return opts, nil
}

// describe is only used for verbose logging.
func describe(t sierpinski.Tetrahedron) string {
	return fmt.Sprintf("%v %v %v %v", t[0], t[1], t[2], t[3])
}
