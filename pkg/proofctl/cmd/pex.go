/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scoir/canis-wallet/pkg/pex"
	"github.com/scoir/canis-wallet/pkg/schema"
)

var matchesFile string
var requestFile string

var pexCmd = &cobra.Command{
	Use:   "pex",
	Short: "Work with credentials selected for a presentation definition",
}

var pexMetadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Prints the AnonCreds metadata of every selected credential by input descriptor",
	Args:  cobra.NoArgs,
	RunE:  descriptorMetadata,
}

var pexFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Drops AnonCreds matches not selected for the input descriptor they answer",
	Args:  cobra.NoArgs,
	RunE:  filterMatches,
}

func init() {
	pexCmd.PersistentFlags().StringVar(&credentialsFile, "credentials", "", "JSON file with the credentials selected for the definition")
	_ = pexCmd.MarkPersistentFlagRequired("credentials")

	pexFilterCmd.Flags().StringVar(&matchesFile, "matches", "", "JSON file with the AnonCreds credentials for the proof request")
	pexFilterCmd.Flags().StringVar(&requestFile, "request", "", "JSON file with the proof request the matches were found for")
	_ = pexFilterCmd.MarkFlagRequired("matches")

	pexCmd.AddCommand(pexMetadataCmd, pexFilterCmd)
	rootCmd.AddCommand(pexCmd)
}

func loadDescriptorMetadata() (pex.DescriptorMetadata, error) {
	cfr := &pex.CredentialsForRequest{}
	if err := readJSON(credentialsFile, cfr); err != nil {
		return nil, err
	}

	return pex.GetDescriptorMetadata(cfr)
}

func descriptorMetadata(cmd *cobra.Command, _ []string) error {
	md, err := loadDescriptorMetadata()
	if err != nil {
		return err
	}

	return printJSON(cmd, md)
}

func filterMatches(cmd *cobra.Command, _ []string) error {
	md, err := loadDescriptorMetadata()
	if err != nil {
		return err
	}

	matches := &pex.AnonCredsCredentialsForProofRequest{}
	if err = readJSON(matchesFile, matches); err != nil {
		return err
	}

	var opts []pex.FilterOption
	if requestFile != "" {
		req := &schema.ProofRequest{}
		if err = readJSON(requestFile, req); err != nil {
			return err
		}

		opts = append(opts, pex.WithProofRequest(req))
	}

	return printJSON(cmd, pex.FilterInvalidProofRequestMatches(matches, md, opts...))
}
