package cmd

import (
	"fmt"

	"github.com/gitops-playground/playctl/pkg/io/configmanager"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func newConfigCmd(p *playctl) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the playground configuration",
		RunE:  handleRootRunE,
	}

	cmd.AddCommand(newConfigViewCmd(p), newConfigSchemaCmd())

	return cmd
}

func newConfigViewCmd(p *playctl) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the resolved configuration",
		Long: `Print the Environment after defaults, playctl.yaml, environment variables and flags
have been applied, in that order of precedence from lowest to highest.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := p.config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(env)
			if err != nil {
				return fmt.Errorf("marshal configuration: %w", err)
			}

			source := p.config.Source()
			if source == "" {
				source = "defaults, environment and flags"
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, out)

			return err
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "schema",
		Short:        "Print the JSON schema of playctl.yaml",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := configmanager.Schema()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", schema)

			return err
		},
	}
}
