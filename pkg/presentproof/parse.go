/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presentproof

import (
	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/schema"
)

// ParseAnonCredsProof classifies every attribute and predicate of request as shared or
// unresolved according to proof. Buckets follow the request order. Revealed values of a group
// follow the proof order. Predicates carry the request's type and threshold since a predicate
// proof only shows that it holds. A revealed item whose sub proof has no identifiers fails the
// whole parse with ErrInvalidProofData.
func ParseAnonCredsProof(request *schema.ProofRequest, proof *schema.Proof) (*ParsedProof, error) {
	if request == nil || proof == nil {
		return nil, errors.New("proof request and proof are required")
	}

	rp := proof.RequestedProof
	if rp == nil {
		rp = &schema.RequestedProof{}
	}

	out := NewParsedProof()

	var err error
	request.RequestedAttributes.Range(func(referent string, attr *schema.ProofRequestAttr) bool {
		if attr == nil {
			err = errors.Errorf("attribute %s is empty", referent)
			return false
		}

		if attr.Name != "" {
			if err = parseAttribute(out, proof, rp, referent, attr); err != nil {
				return false
			}
		}

		if len(attr.Names) > 0 {
			if err = parseAttributeGroup(out, proof, rp, referent, attr); err != nil {
				return false
			}
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	request.RequestedPredicates.Range(func(referent string, pred *schema.ProofRequestPredicate) bool {
		if pred == nil {
			err = errors.Errorf("predicate %s is empty", referent)
			return false
		}

		item := &ResolvedPredicate{Name: pred.Name, PredicateType: pred.PType, PredicateValue: pred.PValue}

		shared, ok := rp.Predicates[referent]
		if !ok || shared == nil {
			out.UnresolvedPredicates = append(out.UnresolvedPredicates, item)
			return true
		}

		item.Identifiers, err = proofIdentifiers(proof, shared.SubProofIndex)
		if err != nil {
			err = errors.Wrapf(err, "predicate %s", referent)
			return false
		}

		out.ResolvedPredicates = append(out.ResolvedPredicates, item)

		return true
	})
	if err != nil {
		return nil, err
	}

	logger.Debugf("parsed proof: %d shared attributes, %d shared groups, %d resolved predicates",
		len(out.SharedAttributes), len(out.SharedAttributeGroups), len(out.ResolvedPredicates))

	return out, nil
}

func parseAttribute(out *ParsedProof, proof *schema.Proof, rp *schema.RequestedProof, referent string,
	attr *schema.ProofRequestAttr) error {
	shared, ok := rp.RevealedAttrs[referent]
	if !ok || shared == nil {
		out.UnresolvedAttributes = append(out.UnresolvedAttributes, &MissingAttribute{Name: attr.Name})
		return nil
	}

	identifiers, err := proofIdentifiers(proof, shared.SubProofIndex)
	if err != nil {
		return errors.Wrapf(err, "attribute %s", referent)
	}

	out.SharedAttributes = append(out.SharedAttributes, &SharedAttribute{
		Name:        attr.Name,
		Value:       shared.Raw,
		Identifiers: identifiers,
	})

	return nil
}

func parseAttributeGroup(out *ParsedProof, proof *schema.Proof, rp *schema.RequestedProof, referent string,
	attr *schema.ProofRequestAttr) error {
	shared, ok := rp.RevealedAttrGroups[referent]
	if !ok || shared == nil {
		missing := make([]*MissingAttribute, len(attr.Names))
		for i, name := range attr.Names {
			missing[i] = &MissingAttribute{Name: name}
		}

		out.UnresolvedAttributeGroups = append(out.UnresolvedAttributeGroups, missing)

		return nil
	}

	identifiers, err := proofIdentifiers(proof, shared.SubProofIndex)
	if err != nil {
		return errors.Wrapf(err, "attribute group %s", referent)
	}

	attrs := make([]*SharedGroupedAttribute, 0, shared.Values.Len())
	shared.Values.Range(func(name string, v *schema.AttributeValue) bool {
		a := &SharedGroupedAttribute{Name: name}
		if v != nil {
			a.Value = v.Raw
		}

		attrs = append(attrs, a)

		return true
	})

	out.SharedAttributeGroups = append(out.SharedAttributeGroups, &SharedAttributesGroup{
		Attributes:  attrs,
		Identifiers: identifiers,
	})

	return nil
}

func proofIdentifiers(proof *schema.Proof, index int) (*Identifiers, error) {
	if index < 0 || index >= len(proof.Identifiers) || proof.Identifiers[index] == nil {
		return nil, errors.Wrapf(ErrInvalidProofData, "no identifiers for sub proof %d", index)
	}

	id := proof.Identifiers[index]

	return &Identifiers{
		SchemaID:               id.SchemaID,
		CredentialDefinitionID: id.CredDefID,
		RevocationRegistryID:   id.RevRegID,
		Timestamp:              id.Timestamp,
	}, nil
}
