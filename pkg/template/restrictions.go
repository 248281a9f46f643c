/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	"github.com/scoir/canis-wallet/pkg/schema"
)

// ApplyDevRestrictions returns copies of templates in which every attribute and predicate
// also accepts its development restrictions. The inputs are left untouched.
func ApplyDevRestrictions(templates []*ProofRequestTemplate) []*ProofRequestTemplate {
	out := make([]*ProofRequestTemplate, len(templates))
	for i, t := range templates {
		c := t.clone()

		if p, ok := c.Payload.(*AnonCredsPayload); ok {
			for _, d := range p.Data {
				for _, attr := range d.RequestedAttributes {
					attr.Restrictions = append(attr.Restrictions, attr.DevRestrictions...)
					attr.DevRestrictions = []schema.Restriction{}
				}

				for _, pred := range d.RequestedPredicates {
					pred.Restrictions = append(pred.Restrictions, pred.DevRestrictions...)
					pred.DevRestrictions = []schema.Restriction{}
				}
			}
		}

		out[i] = c
	}

	return out
}

func (r *ProofRequestTemplate) clone() *ProofRequestTemplate {
	c := *r

	if p, ok := r.Payload.(*AnonCredsPayload); ok {
		cp := &AnonCredsPayload{Data: make([]*AnonCredsTemplateData, len(p.Data))}
		for i, d := range p.Data {
			cd := &AnonCredsTemplateData{Schema: d.Schema}

			for _, attr := range d.RequestedAttributes {
				ca := *attr
				ca.Names = append([]string(nil), attr.Names...)
				ca.Restrictions = append([]schema.Restriction(nil), attr.Restrictions...)
				ca.DevRestrictions = append([]schema.Restriction(nil), attr.DevRestrictions...)
				cd.RequestedAttributes = append(cd.RequestedAttributes, &ca)
			}

			for _, pred := range d.RequestedPredicates {
				cpred := *pred
				cpred.Restrictions = append([]schema.Restriction(nil), pred.Restrictions...)
				cpred.DevRestrictions = append([]schema.Restriction(nil), pred.DevRestrictions...)
				cd.RequestedPredicates = append(cd.RequestedPredicates, &cpred)
			}

			cp.Data[i] = cd
		}

		c.Payload = cp
	}

	return &c
}
