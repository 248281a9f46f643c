/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scoir/canis-wallet/pkg/pex"
	"github.com/scoir/canis-wallet/pkg/proofrequest"
)

var nonce string
var valuesFile string
var definitionFile string
var credentialsFile string

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Build AnonCreds proof requests",
}

var requestBuildCmd = &cobra.Command{
	Use:   "build <template id>",
	Short: "Builds a proof request from a template",
	Long: `Builds a proof request from a template.

 Thresholds of parameterizable predicates can be overridden with --values, a JSON object
 keyed by schema name and then attribute name.`,
	Args: cobra.ExactArgs(1),
	RunE: buildRequest,
}

var requestPexCmd = &cobra.Command{
	Use:   "pex",
	Short: "Builds a proof request from a presentation definition",
	Args:  cobra.NoArgs,
	RunE:  pexRequest,
}

func init() {
	requestCmd.PersistentFlags().StringVar(&nonce, "nonce", "", "use this nonce instead of a generated one")
	requestBuildCmd.Flags().StringVar(&valuesFile, "values", "", "JSON file with custom predicate values")
	requestPexCmd.Flags().StringVar(&definitionFile, "definition", "", "JSON file with the presentation definition")
	requestPexCmd.Flags().StringVar(&credentialsFile, "credentials", "", "JSON file with the credentials selected for the definition")
	_ = requestPexCmd.MarkFlagRequired("definition")
	_ = requestPexCmd.MarkFlagRequired("credentials")

	requestCmd.AddCommand(requestBuildCmd, requestPexCmd)
	rootCmd.AddCommand(requestCmd)
}

func buildRequest(cmd *cobra.Command, args []string) error {
	dev, err := devRestrictions()
	if err != nil {
		return err
	}

	t, err := resolver.ResolveByID(cmd.Context(), args[0], dev)
	if err != nil {
		return err
	}

	values := proofrequest.CustomValues{}
	if valuesFile != "" {
		if err = readJSON(valuesFile, &values); err != nil {
			return err
		}
	}

	result, err := proofrequest.BuildProofRequestDataForTemplate(t, values, requestOptions()...)
	if err != nil {
		return err
	}

	return printJSON(cmd, result)
}

func pexRequest(cmd *cobra.Command, _ []string) error {
	pd := &proofrequest.PresentationDefinition{}
	if err := readJSON(definitionFile, pd); err != nil {
		return err
	}

	cfr := &pex.CredentialsForRequest{}
	if err := readJSON(credentialsFile, cfr); err != nil {
		return err
	}

	md, err := pex.GetDescriptorMetadata(cfr)
	if err != nil {
		return err
	}

	req, err := proofrequest.CreateAnonCredsProofRequest(pd, md, requestOptions()...)
	if err != nil {
		return err
	}

	return printJSON(cmd, req)
}

func requestOptions() []proofrequest.Option {
	if nonce == "" {
		return nil
	}

	return []proofrequest.Option{proofrequest.WithNonce(nonce)}
}
