package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitops-playground/playctl/pkg/cli/lifecycle"
	"github.com/gitops-playground/playctl/pkg/svc/status"
	"github.com/spf13/cobra"
)

func newStatusCmd(p *playctl) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the cluster, add-ons and application",
		Long: `Report whether the cluster exists, its nodes, the Helm release of every add-on, the
albums and Redis deployments, the Argo CD Application and the image tags in the cluster
registry. Nothing is changed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				report, err := pg.Status(ctx)
				if err != nil {
					return err
				}

				return status.Render(cmd.OutOrStdout(), report, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", status.FormatTable,
		fmt.Sprintf("Output format (%s)", strings.Join(status.Formats(), ", ")))

	return cmd
}
