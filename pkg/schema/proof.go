/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"
)

// Proof is the AnonCreds presentation returned for a ProofRequest. The cryptographic part is
// kept opaque, it is verified by the agent before it reaches this package.
type Proof struct {
	Proof          json.RawMessage `json:"proof,omitempty"`
	RequestedProof *RequestedProof `json:"requested_proof"`
	Identifiers    []*Identifier   `json:"identifiers"`
}

type RequestedProof struct {
	RevealedAttrs      map[string]*RevealedAttributeInfo      `json:"revealed_attrs"`
	RevealedAttrGroups map[string]*RevealedAttributeGroupInfo `json:"revealed_attr_groups,omitempty"`
	SelfAttestedAttrs  map[string]string                      `json:"self_attested_attrs,omitempty"`
	UnrevealedAttrs    map[string]*SubProofReferent           `json:"unrevealed_attrs,omitempty"`
	Predicates         map[string]*SubProofReferent           `json:"predicates"`
}

// Identifier names the credential behind one sub proof.
type Identifier struct {
	SchemaID  string `json:"schema_id"`
	CredDefID string `json:"cred_def_id"`
	RevRegID  string `json:"rev_reg_id,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type SubProofReferent struct {
	SubProofIndex int `json:"sub_proof_index"`
}

type RevealedAttributeInfo struct {
	SubProofIndex int    `json:"sub_proof_index"`
	Raw           string `json:"raw"`
	Encoded       string `json:"encoded"`
}

type RevealedAttributeGroupInfo struct {
	SubProofIndex int                         `json:"sub_proof_index"`
	Values        OrderedMap[*AttributeValue] `json:"values"`
}

type AttributeValue struct {
	Raw     string `json:"raw"`
	Encoded string `json:"encoded"`
}
