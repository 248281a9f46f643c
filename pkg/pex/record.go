/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package pex resolves presentation exchange query results against the wallet's W3C
// credential records and keeps AnonCreds style matches consistent with them.
package pex

import (
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/component/log"
)

var logger = log.New("canis-wallet/pex")

// ClaimFormat designates how a credential is encoded.
type ClaimFormat string

const (
	LdpVC ClaimFormat = "ldp_vc"
	JwtVC ClaimFormat = "jwt_vc"
)

// CredentialsForRequest is the result of querying the wallet with a presentation definition.
type CredentialsForRequest struct {
	Name                     string                   `json:"name,omitempty"`
	Purpose                  string                   `json:"purpose,omitempty"`
	AreRequirementsSatisfied bool                     `json:"areRequirementsSatisfied"`
	Requirements             []*SubmissionRequirement `json:"requirements"`
}

type SubmissionRequirement struct {
	Name                   string             `json:"name,omitempty"`
	Purpose                string             `json:"purpose,omitempty"`
	Rule                   string             `json:"rule,omitempty"`
	NeedsCount             int                `json:"needsCount"`
	IsRequirementSatisfied bool               `json:"isRequirementSatisfied"`
	SubmissionEntry        []*SubmissionEntry `json:"submissionEntry"`
}

// SubmissionEntry lists the candidate credentials for one input descriptor.
type SubmissionEntry struct {
	InputDescriptorID     string                       `json:"inputDescriptorId"`
	Name                  string                       `json:"name,omitempty"`
	Purpose               string                       `json:"purpose,omitempty"`
	VerifiableCredentials []*SubmissionEntryCredential `json:"verifiableCredentials"`
}

type SubmissionEntryCredential struct {
	Type             ClaimFormat          `json:"type"`
	CredentialRecord *W3cCredentialRecord `json:"credentialRecord"`
}

// W3cCredentialRecord is a stored W3C credential. Credential holds the JSON-LD document for
// ldp_vc records and the compact JWT string for jwt_vc records.
type W3cCredentialRecord struct {
	ID         string                 `json:"id"`
	Tags       map[string]interface{} `json:"tags,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Credential json.RawMessage        `json:"credential"`
}

// AnonCredsTags is the tag set AnonCreds matching works from.
type AnonCredsTags struct {
	LinkSecretID           string `json:"anonCredsLinkSecretId"`
	CredentialDefinitionID string `json:"anonCredsCredentialDefinitionId"`
	SchemaID               string `json:"anonCredsSchemaId"`
	SchemaName             string `json:"anonCredsSchemaName"`
	SchemaIssuerID         string `json:"anonCredsSchemaIssuerId"`
	SchemaVersion          string `json:"anonCredsSchemaVersion"`
	MethodName             string `json:"anonCredsMethodName"`
	RevocationRegistryID   string `json:"anonCredsRevocationRegistryId,omitempty"`
	CredentialRevocationID string `json:"anonCredsCredentialRevocationId,omitempty"`
}

// Synthetic reports whether the tags were derived from the credential type.
func (r *AnonCredsTags) Synthetic() bool {
	return r.MethodName == SyntheticMethodName
}

// RecordWithMetadata pairs a credential record with the tags it is matched by.
type RecordWithMetadata struct {
	Record        *W3cCredentialRecord   `json:"record"`
	AnonCredsTags *AnonCredsTags         `json:"anonCredsTags"`
	Attributes    map[string]interface{} `json:"attributes,omitempty"`
}
