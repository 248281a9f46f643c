/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proofrequest

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/pex"
	"github.com/scoir/canis-wallet/pkg/schema"
)

const (
	DefaultName    = "Proof request"
	DefaultVersion = "1.0"
)

var (
	ErrUnsupportedPredicateFilter = errors.New("unsupported predicate filter property")
	ErrMissingPredicateFilter     = errors.New("missing required predicate filter property")
	ErrMissingFields              = errors.New("unclear mapping of constraint with no fields")
)

// Claim paths are only understood below the credential subject.
var claimPrefixes = []string{"$.vc.credentialSubject.", "$.credentialSubject."}

var filterPredicates = map[string]schema.PredicateType{
	"exclusiveMinimum": schema.GreaterThan,
	"exclusiveMaximum": schema.LessThan,
	"minimum":          schema.GreaterThanOrEqual,
	"maximum":          schema.LessThanOrEqual,
}

// CreateAnonCredsProofRequest derives an AnonCreds proof request from a presentation
// definition. Each input descriptor becomes one attribute group referenced by the descriptor
// id plus one predicate per numeric range bound, referenced as <descriptorId>_<n> and numbered
// in filter order. Every entry is restricted to the credentials md lists for its descriptor.
func CreateAnonCredsProofRequest(pd *PresentationDefinition, md pex.DescriptorMetadata,
	opts ...Option) (*schema.ProofRequest, error) {
	if pd == nil || pd.PresentationDefinition == nil {
		return nil, errors.New("missing presentation definition")
	}

	o := newBuildOpts(opts)

	nonce := o.nonce
	if nonce == "" {
		nonce = uuid.New().String()
	}

	name := pd.Name
	if name == "" {
		name = DefaultName
	}

	req := schema.NewProofRequest(name, DefaultVersion, nonce)

	for i, d := range pd.InputDescriptors {
		if d == nil {
			return nil, errors.Errorf("input descriptor %d is empty", i)
		}

		if d.Constraints == nil || len(d.Constraints.Fields) == 0 {
			return nil, errors.Wrapf(ErrMissingFields, "input descriptor %s", d.ID)
		}

		restrictions := descriptorRestrictions(md, d.ID)
		predicateIndex := 0

		for j, field := range d.Constraints.Fields {
			if field == nil {
				return nil, errors.Errorf("input descriptor %s: field %d is empty", d.ID, j)
			}

			if len(field.Path) == 0 {
				return nil, errors.Errorf("input descriptor %s: field path is required", d.ID)
			}

			claim, ok := claimName(field.Path)
			if !ok {
				continue
			}

			if field.Predicate != nil {
				filter := pd.filter(i, j)
				if filter == nil {
					return nil, errors.Wrapf(ErrMissingPredicateFilter, "input descriptor %s, claim %s", d.ID, claim)
				}

				predicates, err := predicatesFromFilter(filter)
				if err != nil {
					return nil, errors.Wrapf(err, "input descriptor %s, claim %s", d.ID, claim)
				}

				for _, p := range predicates {
					req.RequestedPredicates.Set(fmt.Sprintf("%s_%d", d.ID, predicateIndex), &schema.ProofRequestPredicate{
						Name:         claim,
						PType:        p.PType,
						PValue:       p.PValue,
						Restrictions: restrictions,
						DescriptorID: d.ID,
					})
					predicateIndex++
				}

				continue
			}

			if attr, ok := req.RequestedAttributes.Get(d.ID); ok {
				attr.Names = append(attr.Names, claim)
				continue
			}

			req.RequestedAttributes.Set(d.ID, &schema.ProofRequestAttr{
				Names:        []string{claim},
				Restrictions: restrictions,
				DescriptorID: d.ID,
			})
		}
	}

	return req, nil
}

func descriptorRestrictions(md pex.DescriptorMetadata, descriptorID string) []schema.Restriction {
	records, ok := md[descriptorID]
	if !ok {
		logger.Debugf("no credential metadata for input descriptor %s", descriptorID)
	}

	out := make([]schema.Restriction, 0, len(records))
	for _, rec := range records {
		out = append(out, schema.Restriction{
			CredDefID: rec.AnonCredsTags.CredentialDefinitionID,
			SchemaID:  rec.AnonCredsTags.SchemaID,
		})
	}

	return out
}

// claimName returns the claim below the credential subject named by the first path that
// points there.
func claimName(paths []string) (string, bool) {
	for _, p := range paths {
		for _, prefix := range claimPrefixes {
			if strings.HasPrefix(p, prefix) {
				return strings.TrimPrefix(p, prefix), true
			}
		}
	}

	return "", false
}

type predicate struct {
	PType  schema.PredicateType
	PValue int64
}

// predicatesFromFilter turns every range bound of f into a predicate, in the order the bounds
// are written. Only "type" and the four range bounds are allowed.
func predicatesFromFilter(f *FieldFilter) ([]predicate, error) {
	var out []predicate

	for _, k := range f.Keys() {
		if k == "type" {
			continue
		}

		ptype, ok := filterPredicates[k]
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedPredicateFilter, "'%s'", k)
		}

		raw, _ := f.Get(k)

		var bound interface{}
		if err := json.Unmarshal(raw, &bound); err != nil {
			return nil, errors.Wrapf(err, "filter property %s", k)
		}

		v, err := integer(bound)
		if err != nil {
			return nil, errors.Wrapf(err, "filter property %s", k)
		}

		out = append(out, predicate{PType: ptype, PValue: v})
	}

	return out, nil
}

func integer(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, errors.Errorf("%v is not an integer", n)
		}

		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, errors.Errorf("%q is not an integer", n)
		}

		return i, nil
	}

	return 0, errors.Errorf("%v is not a number", v)
}
