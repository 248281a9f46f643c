/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presentproof

import (
	"github.com/scoir/canis-wallet/pkg/schema"
)

// GroupSharedProofDataByCredential regroups the resolved buckets of parsed by credential
// definition id. Items from different sub proofs of the same credential definition share a
// group. Unresolved items are left out.
func GroupSharedProofDataByCredential(parsed *ParsedProof) GroupedSharedProofData {
	out := schema.NewOrderedMap[*GroupedSharedProofDataItem]()
	if parsed == nil {
		return out
	}

	group := func(id *Identifiers) *CredentialSharedProofData {
		item, ok := out.Get(id.CredentialDefinitionID)
		if !ok {
			item = &GroupedSharedProofDataItem{
				Identifiers: id,
				Data: &CredentialSharedProofData{
					SharedAttributes:      []*SharedAttribute{},
					SharedAttributeGroups: []*SharedAttributesGroup{},
					ResolvedPredicates:    []*ResolvedPredicate{},
				},
			}
			out.Set(id.CredentialDefinitionID, item)
		}

		return item.Data
	}

	for _, a := range parsed.SharedAttributes {
		d := group(a.Identifiers)
		d.SharedAttributes = append(d.SharedAttributes, a)
	}

	for _, g := range parsed.SharedAttributeGroups {
		d := group(g.Identifiers)
		d.SharedAttributeGroups = append(d.SharedAttributeGroups, g)
	}

	for _, p := range parsed.ResolvedPredicates {
		d := group(p.Identifiers)
		d.ResolvedPredicates = append(d.ResolvedPredicates, p)
	}

	return out
}
