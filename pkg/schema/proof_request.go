/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"github.com/pkg/errors"
)

// PredicateType is the comparison operator of a requested predicate.
type PredicateType string

const (
	GreaterThan        PredicateType = ">"
	GreaterThanOrEqual PredicateType = ">="
	LessThan           PredicateType = "<"
	LessThanOrEqual    PredicateType = "<="
)

func (r PredicateType) Valid() bool {
	switch r {
	case GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		return true
	}

	return false
}

// ProofRequest is the AnonCreds (and legacy Indy) proof request sent over the wire.
// Ref: https://hyperledger.github.io/anoncreds-spec/#create-presentation-request
type ProofRequest struct {
	Name                string                             `json:"name"`
	Version             string                             `json:"version"`
	Nonce               string                             `json:"nonce"`
	RequestedAttributes OrderedMap[*ProofRequestAttr]      `json:"requested_attributes"`
	RequestedPredicates OrderedMap[*ProofRequestPredicate] `json:"requested_predicates"`
	NonRevoked          *NonRevokedInterval                `json:"non_revoked,omitempty"`
}

// NewProofRequest returns a request with empty attribute and predicate sets.
func NewProofRequest(name, version, nonce string) *ProofRequest {
	return &ProofRequest{
		Name:                name,
		Version:             version,
		Nonce:               nonce,
		RequestedAttributes: NewOrderedMap[*ProofRequestAttr](),
		RequestedPredicates: NewOrderedMap[*ProofRequestPredicate](),
	}
}

// ProofRequestAttr requests either a single attribute (Name) or a group of attributes that
// must come from the same credential (Names). DescriptorID is only set on requests derived
// from a presentation definition.
type ProofRequestAttr struct {
	Name         string              `json:"name,omitempty"`
	Names        []string            `json:"names,omitempty"`
	Restrictions []Restriction       `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`
	DescriptorID string              `json:"descriptorId,omitempty"`
}

// Validate enforces that exactly one of Name and Names is populated.
func (r *ProofRequestAttr) Validate() error {
	if r.Name != "" && len(r.Names) > 0 {
		return errors.Errorf("attribute %s sets both name and names", r.Name)
	}

	if r.Name == "" && len(r.Names) == 0 {
		return errors.New("attribute sets neither name nor names")
	}

	return nil
}

type ProofRequestPredicate struct {
	Name         string              `json:"name"`
	PType        PredicateType       `json:"p_type"`
	PValue       int64               `json:"p_value"`
	Restrictions []Restriction       `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`
	DescriptorID string              `json:"descriptorId,omitempty"`
}

type NonRevokedInterval struct {
	From int64 `json:"from,omitempty"`
	To   int64 `json:"to,omitempty"`
}

// Restriction is one alternative in the disjunctive restriction list of a request entry.
type Restriction struct {
	SchemaID        string `json:"schema_id,omitempty"`
	SchemaIssuerDID string `json:"schema_issuer_did,omitempty"`
	SchemaIssuerID  string `json:"schema_issuer_id,omitempty"`
	SchemaName      string `json:"schema_name,omitempty"`
	SchemaVersion   string `json:"schema_version,omitempty"`
	IssuerDID       string `json:"issuer_did,omitempty"`
	IssuerID        string `json:"issuer_id,omitempty"`
	CredDefID       string `json:"cred_def_id,omitempty"`
	RevRegID        string `json:"rev_reg_id,omitempty"`
}
