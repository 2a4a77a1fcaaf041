package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vinicius-lino-figueiredo/mofind"
)

func (a *app) translateCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "translate [conditions]",
		Short: "Print the MongoDB query document of a JSON condition map",
		Long: `Print the MongoDB query document of a JSON condition map.

The conditions are read from the argument, or from stdin when it is
missing or "-". No database connection is made.`,
		Example: `  mofind translate '{"age >=": 18, "name LIKE": "jo%", "OR": {"a": 1, "b": 2}}'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conditions, err := a.readDocument(ctx, args)
			if err != nil {
				return err
			}
			cond, err := mofind.Parse(conditions)
			if err != nil {
				return err
			}
			where, err := a.translator().Translate(cond)
			if err != nil {
				return err
			}
			a.logger.Debug("translated conditions", zap.Any("conditions", conditions), zap.Any("where", where))
			return a.writeJSON(ctx, where, !compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "write the document on a single line")
	return cmd
}
