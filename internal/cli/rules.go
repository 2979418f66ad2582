package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagefit/pkg/estimate"
)

// rulesCommand creates the rules command.
func (c *CLI) rulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the built-in anchor rules as TOML",
		Long: `Print the built-in anchor rules as TOML.

The output is a valid rules file: edit it and pass it to 'pagefit convert
--rules'. Each top-level section present in a rules file replaces the
built-in section of the same name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return estimate.WriteRules(os.Stdout, estimate.DefaultRules())
		},
	}

	cmd.AddCommand(c.rulesValidateCommand())
	return cmd
}

// rulesValidateCommand creates the "rules validate" subcommand.
func (c *CLI) rulesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [rules.toml]",
		Short: "Check a rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := estimate.LoadRules(args[0])
			if err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("%d rules, %d group rules", len(rules.Rules), len(rules.Groups.Rules))
			return nil
		},
	}
}
