/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proofrequest

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/schema"
	"github.com/scoir/canis-wallet/pkg/template"
)

// BuildProofRequestDataForTemplate turns an AnonCreds template into a proof request. Every
// attribute and predicate gets a referent_<n> from a single counter, in declaration order.
// Parameterizable predicates take their threshold from customValues when it has one. The
// nonce is the current time in milliseconds unless WithNonce is given.
func BuildProofRequestDataForTemplate(t *template.ProofRequestTemplate, customValues CustomValues,
	opts ...Option) (Result, error) {
	if t == nil {
		return nil, errors.New("missing proof request template")
	}

	switch p := t.Payload.(type) {
	case *template.AnonCredsPayload:
		o := newBuildOpts(opts)
		return &AnonCredsResult{Request: buildAnonCreds(t, p, customValues, o)}, nil
	case *template.DIFPayload:
		logger.Debugf("template %s has a presentation exchange payload, no request built", t.ID)
		return &NotSupported{Type: template.DIF}, nil
	}

	return nil, errors.Wrapf(template.ErrUnknownPayloadType, "template %s", t.ID)
}

func buildAnonCreds(t *template.ProofRequestTemplate, p *template.AnonCredsPayload, customValues CustomValues,
	o *buildOpts) *schema.ProofRequest {
	nonce := o.nonce
	if nonce == "" {
		nonce = strconv.FormatInt(o.now().UnixMilli(), 10)
	}

	req := schema.NewProofRequest(t.Name, t.Version, nonce)

	index := 0
	next := func() string {
		r := fmt.Sprintf("referent_%d", index)
		index++

		return r
	}

	for _, d := range p.Data {
		for _, attr := range d.RequestedAttributes {
			req.RequestedAttributes.Set(next(), &schema.ProofRequestAttr{
				Name:         attr.Name,
				Names:        copyStrings(attr.Names),
				Restrictions: copyRestrictions(attr.Restrictions),
				NonRevoked:   copyInterval(attr.NonRevoked),
			})
		}

		for _, pred := range d.RequestedPredicates {
			value := pred.PredicateValue
			if pred.Parameterizable {
				if v, ok := customValues.lookup(d.Schema, pred.Name); ok {
					value = v
				}
			}

			req.RequestedPredicates.Set(next(), &schema.ProofRequestPredicate{
				Name:         pred.Name,
				PType:        pred.PredicateType,
				PValue:       value,
				Restrictions: copyRestrictions(pred.Restrictions),
				NonRevoked:   copyInterval(pred.NonRevoked),
			})
		}
	}

	return req
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	return append([]string(nil), in...)
}

func copyRestrictions(in []schema.Restriction) []schema.Restriction {
	if len(in) == 0 {
		return nil
	}

	return append([]schema.Restriction(nil), in...)
}

func copyInterval(in *schema.NonRevokedInterval) *schema.NonRevokedInterval {
	if in == nil {
		return nil
	}

	out := *in

	return &out
}
