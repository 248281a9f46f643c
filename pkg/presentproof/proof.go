/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package presentproof reconciles a received AnonCreds proof with the request it answers.
package presentproof

import (
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/schema"
)

var logger = log.New("canis-wallet/presentproof")

// ErrInvalidProofData is returned when a revealed item points at a sub proof without identifiers.
var ErrInvalidProofData = errors.New("invalid proof data")

// Identifiers name the credential behind a sub proof.
type Identifiers struct {
	SchemaID               string `json:"schemaId"`
	CredentialDefinitionID string `json:"credentialDefinitionId"`
	RevocationRegistryID   string `json:"revocationRegistryId,omitempty"`
	Timestamp              int64  `json:"timestamp,omitempty"`
}

type SharedAttribute struct {
	Name        string       `json:"name"`
	Value       string       `json:"value"`
	Identifiers *Identifiers `json:"identifiers"`
}

type SharedGroupedAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SharedAttributesGroup struct {
	Attributes  []*SharedGroupedAttribute `json:"attributes"`
	Identifiers *Identifiers              `json:"identifiers"`
}

type MissingAttribute struct {
	Name string `json:"name"`
}

type ResolvedPredicate struct {
	Name           string               `json:"name"`
	PredicateType  schema.PredicateType `json:"predicateType"`
	PredicateValue int64                `json:"predicateValue"`
	Identifiers    *Identifiers         `json:"identifiers,omitempty"`
}

// ParsedProof sorts every requested item into a resolved or an unresolved bucket. Every bucket
// is non nil, empty when nothing falls into it.
type ParsedProof struct {
	SharedAttributes          []*SharedAttribute       `json:"sharedAttributes"`
	SharedAttributeGroups     []*SharedAttributesGroup `json:"sharedAttributeGroups"`
	ResolvedPredicates        []*ResolvedPredicate     `json:"resolvedPredicates"`
	UnresolvedAttributes      []*MissingAttribute      `json:"unresolvedAttributes"`
	UnresolvedAttributeGroups [][]*MissingAttribute    `json:"unresolvedAttributeGroups"`
	UnresolvedPredicates      []*ResolvedPredicate     `json:"unresolvedPredicates"`
}

func NewParsedProof() *ParsedProof {
	return &ParsedProof{
		SharedAttributes:          []*SharedAttribute{},
		SharedAttributeGroups:     []*SharedAttributesGroup{},
		ResolvedPredicates:        []*ResolvedPredicate{},
		UnresolvedAttributes:      []*MissingAttribute{},
		UnresolvedAttributeGroups: [][]*MissingAttribute{},
		UnresolvedPredicates:      []*ResolvedPredicate{},
	}
}

// CredentialSharedProofData is what a single credential answered.
type CredentialSharedProofData struct {
	SharedAttributes      []*SharedAttribute       `json:"sharedAttributes"`
	SharedAttributeGroups []*SharedAttributesGroup `json:"sharedAttributeGroups"`
	ResolvedPredicates    []*ResolvedPredicate     `json:"resolvedPredicates"`
}

type GroupedSharedProofDataItem struct {
	Identifiers *Identifiers               `json:"identifiers"`
	Data        *CredentialSharedProofData `json:"data"`
}

// GroupedSharedProofData maps credential definition ids to what each credential answered,
// in the order the credentials first appear.
type GroupedSharedProofData = schema.OrderedMap[*GroupedSharedProofDataItem]
