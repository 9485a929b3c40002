package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/turkeybot/internal/dependencies/random"
	"github.com/mcoot/turkeybot/internal/services/placement"
)

func newBoardCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print a freshly generated fleet layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v, nil)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			gen := placement.New(random.New(), placement.DefaultConfig(), logger)
			board, err := gen.Generate()
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(BoardResult{
				Board: board.String(),
				Rows:  board.Rows(),
			})
			return nil
		},
	}
}
