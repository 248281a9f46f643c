/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proofrequest

import (
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/component/models/presexch"
	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/schema"
)

// FieldFilter is a field filter with every property in document order.
type FieldFilter = schema.OrderedMap[json.RawMessage]

// PresentationDefinition is a presentation exchange definition that also keeps the field
// filters as written. presexch.Filter only models a subset of JSON schema, so properties it
// does not know are lost when decoding into it.
type PresentationDefinition struct {
	*presexch.PresentationDefinition

	// filters[i][j] belongs to field j of input descriptor i, nil when the field has none.
	filters [][]*FieldFilter
}

type rawDefinition struct {
	InputDescriptors []*struct {
		Constraints *struct {
			Fields []*struct {
				Filter *FieldFilter `json:"filter"`
			} `json:"fields"`
		} `json:"constraints"`
	} `json:"input_descriptors"`
}

// NewPresentationDefinition wraps a definition built in code. Its filters hold the
// properties presexch.Filter models.
func NewPresentationDefinition(pd *presexch.PresentationDefinition) (*PresentationDefinition, error) {
	d, err := json.Marshal(pd)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal presentation definition")
	}

	out := &PresentationDefinition{}
	if err = json.Unmarshal(d, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PresentationDefinition) UnmarshalJSON(b []byte) error {
	pd := &presexch.PresentationDefinition{}
	if err := json.Unmarshal(b, pd); err != nil {
		return errors.Wrap(err, "invalid presentation definition")
	}

	raw := &rawDefinition{}
	if err := json.Unmarshal(b, raw); err != nil {
		return errors.Wrap(err, "invalid presentation definition filters")
	}

	filters := make([][]*FieldFilter, len(raw.InputDescriptors))
	for i, d := range raw.InputDescriptors {
		if d == nil || d.Constraints == nil {
			continue
		}

		filters[i] = make([]*FieldFilter, len(d.Constraints.Fields))
		for j, f := range d.Constraints.Fields {
			if f != nil {
				filters[i][j] = f.Filter
			}
		}
	}

	r.PresentationDefinition = pd
	r.filters = filters

	return nil
}

func (r *PresentationDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.PresentationDefinition)
}

// filter returns the filter of field j of input descriptor i.
func (r *PresentationDefinition) filter(i, j int) *FieldFilter {
	if i >= len(r.filters) || j >= len(r.filters[i]) {
		return nil
	}

	return r.filters[i][j]
}
