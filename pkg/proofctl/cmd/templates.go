/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scoir/canis-wallet/pkg/template"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect proof request templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the available proof request templates",
	Args:  cobra.NoArgs,
	RunE:  listTemplates,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Prints one proof request template as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  showTemplate,
}

func init() {
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd)
	rootCmd.AddCommand(templatesCmd)
}

func listTemplates(cmd *cobra.Command, _ []string) error {
	dev, err := devRestrictions()
	if err != nil {
		return err
	}

	templates, err := resolver.Resolve(cmd.Context(), dev)
	if err != nil {
		return err
	}

	tab := tabwriter.NewWriter(cmd.OutOrStdout(), 10, 4, 3, ' ', 0)

	_, _ = fmt.Fprintln(tab, "ID\tNAME\tTYPE\tVERSION\tPREDICATES\tPARAMETERIZABLE")

	for _, t := range templates {
		_, _ = fmt.Fprintf(tab, "%s\t%s\t%s\t%s\t%t\t%t\n", t.ID, t.Name, t.Payload.Type(), t.Version,
			template.HasPredicates(t), template.IsParameterizable(t))
	}

	return tab.Flush()
}

func showTemplate(cmd *cobra.Command, args []string) error {
	dev, err := devRestrictions()
	if err != nil {
		return err
	}

	t, err := resolver.ResolveByID(cmd.Context(), args[0], dev)
	if err != nil {
		return err
	}

	return printJSON(cmd, t)
}
