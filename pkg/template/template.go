/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package template holds the declarative proof request templates a verifier can pick from.
package template

import (
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/component/models/presexch"
	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/schema"
)

// ProofRequestType discriminates template payloads.
type ProofRequestType string

const (
	AnonCreds ProofRequestType = "anoncreds"
	DIF       ProofRequestType = "dif"
)

var (
	ErrTemplateNotFound   = errors.New("proof request template not found")
	ErrUnknownPayloadType = errors.New("unknown proof request template payload type")
)

// ProofRequestTemplate is an immutable, versioned description of what a verifier asks for.
type ProofRequestTemplate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Version     string  `json:"version"`
	Payload     Payload `json:"payload"`
}

// Payload is implemented by *AnonCredsPayload and *DIFPayload only.
type Payload interface {
	Type() ProofRequestType
	payload()
}

type AnonCredsPayload struct {
	Data []*AnonCredsTemplateData `json:"data"`
}

func (r *AnonCredsPayload) Type() ProofRequestType { return AnonCreds }
func (r *AnonCredsPayload) payload()               {}

func (r *AnonCredsPayload) MarshalJSON() ([]byte, error) {
	type data AnonCredsPayload
	return json.Marshal(struct {
		Type ProofRequestType `json:"type"`
		*data
	}{AnonCreds, (*data)(r)})
}

// AnonCredsTemplateData groups the attributes and predicates requested from one schema.
type AnonCredsTemplateData struct {
	Schema              string                `json:"schema"`
	RequestedAttributes []*RequestedAttribute `json:"requestedAttributes,omitempty"`
	RequestedPredicates []*RequestedPredicate `json:"requestedPredicates,omitempty"`
}

type RequestedAttribute struct {
	Name            string                     `json:"name,omitempty"`
	Names           []string                   `json:"names,omitempty"`
	Restrictions    []schema.Restriction       `json:"restrictions,omitempty"`
	DevRestrictions []schema.Restriction       `json:"devRestrictions,omitempty"`
	NonRevoked      *schema.NonRevokedInterval `json:"nonRevoked,omitempty"`
}

// RequestedPredicate thresholds can be overridden at request build time when Parameterizable.
type RequestedPredicate struct {
	Name            string                     `json:"name"`
	PredicateType   schema.PredicateType       `json:"predicateType"`
	PredicateValue  int64                      `json:"predicateValue"`
	Restrictions    []schema.Restriction       `json:"restrictions,omitempty"`
	DevRestrictions []schema.Restriction       `json:"devRestrictions,omitempty"`
	NonRevoked      *schema.NonRevokedInterval `json:"nonRevoked,omitempty"`
	Parameterizable bool                       `json:"parameterizable,omitempty"`
}

// DIFPayload carries presentation exchange input descriptors. Request building for it is
// not supported yet.
type DIFPayload struct {
	Data []*presexch.InputDescriptor `json:"data"`
}

func (r *DIFPayload) Type() ProofRequestType { return DIF }
func (r *DIFPayload) payload()               {}

func (r *DIFPayload) MarshalJSON() ([]byte, error) {
	type data DIFPayload
	return json.Marshal(struct {
		Type ProofRequestType `json:"type"`
		*data
	}{DIF, (*data)(r)})
}

func (r *ProofRequestTemplate) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(err, "invalid proof request template")
	}

	t, err := decodeTemplate(raw)
	if err != nil {
		return err
	}

	*r = *t

	return nil
}

// Validate checks the structural rules every template must follow.
func (r *ProofRequestTemplate) Validate() error {
	if r.ID == "" {
		return errors.New("template id is required")
	}

	switch p := r.Payload.(type) {
	case *AnonCredsPayload:
		for _, d := range p.Data {
			for _, attr := range d.RequestedAttributes {
				ra := &schema.ProofRequestAttr{Name: attr.Name, Names: attr.Names}
				if err := ra.Validate(); err != nil {
					return errors.Wrapf(err, "template %s, schema %s", r.ID, d.Schema)
				}
			}

			for _, pred := range d.RequestedPredicates {
				if pred.Name == "" {
					return errors.Errorf("template %s, schema %s: predicate name is required", r.ID, d.Schema)
				}

				if !pred.PredicateType.Valid() {
					return errors.Errorf("template %s, schema %s: invalid predicate type %q", r.ID, d.Schema,
						pred.PredicateType)
				}
			}
		}
	case *DIFPayload:
	case nil:
		return errors.Errorf("template %s has no payload", r.ID)
	default:
		return errors.Wrapf(ErrUnknownPayloadType, "template %s", r.ID)
	}

	return nil
}

// HasPredicates reports whether the template requests at least one predicate.
func HasPredicates(t *ProofRequestTemplate) bool {
	p, ok := t.Payload.(*AnonCredsPayload)
	if !ok {
		return false
	}

	for _, d := range p.Data {
		if len(d.RequestedPredicates) > 0 {
			return true
		}
	}

	return false
}

// IsParameterizable reports whether any predicate threshold can be supplied by the caller.
func IsParameterizable(t *ProofRequestTemplate) bool {
	p, ok := t.Payload.(*AnonCredsPayload)
	if !ok {
		return false
	}

	for _, d := range p.Data {
		for _, pred := range d.RequestedPredicates {
			if pred.Parameterizable {
				return true
			}
		}
	}

	return false
}
