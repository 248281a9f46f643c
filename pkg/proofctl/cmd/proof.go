/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scoir/canis-wallet/pkg/presentproof"
	"github.com/scoir/canis-wallet/pkg/presentproof/engine"
	"github.com/scoir/canis-wallet/pkg/presentproof/engine/anoncreds"
)

var group bool

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Read presentations",
}

var proofParseCmd = &cobra.Command{
	Use:   "parse <format data file>",
	Short: "Parses a presentation against its proof request",
	Long: `Parses a presentation against its proof request.

 The file holds the request and presentation of an exchange keyed by proof format, as in
 {"request": {"anoncreds": {...}}, "presentation": {"anoncreds": {...}}}.`,
	Args: cobra.ExactArgs(1),
	RunE: parseProof,
}

func init() {
	proofParseCmd.Flags().BoolVar(&group, "group", false, "group the shared data by credential")

	proofCmd.AddCommand(proofParseCmd)
	rootCmd.AddCommand(proofCmd)
}

func parseProof(cmd *cobra.Command, args []string) error {
	fd := &engine.FormatData{}
	if err := readJSON(args[0], fd); err != nil {
		return err
	}

	reg := engine.New(engine.WithEngine(anoncreds.New()))

	parsed, err := reg.ProofData(fd)
	if err != nil {
		return err
	}

	if group {
		return printJSON(cmd, presentproof.GroupSharedProofDataByCredential(parsed))
	}

	return printJSON(cmd, parsed)
}
