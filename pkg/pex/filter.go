/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pex

import (
	"encoding/json"
	"strings"

	"github.com/scoir/canis-wallet/pkg/schema"
)

// Match is one credential the agent found for a requested attribute or predicate.
type Match struct {
	CredentialID   string          `json:"credentialId"`
	Revealed       bool            `json:"revealed,omitempty"`
	Revoked        *bool           `json:"revoked,omitempty"`
	Timestamp      int64           `json:"timestamp,omitempty"`
	CredentialInfo json.RawMessage `json:"credentialInfo,omitempty"`
}

// AnonCredsCredentialsForProofRequest holds the matches per referent of a proof request
// derived from a presentation definition.
type AnonCredsCredentialsForProofRequest struct {
	Attributes map[string][]*Match `json:"attributes"`
	Predicates map[string][]*Match `json:"predicates"`
}

type filterOpts struct {
	request *schema.ProofRequest
}

// FilterOption configures FilterInvalidProofRequestMatches.
type FilterOption func(opts *filterOpts)

// WithProofRequest resolves descriptor ids from the descriptorId carried by each request
// entry instead of parsing the referent.
func WithProofRequest(req *schema.ProofRequest) FilterOption {
	return func(opts *filterOpts) {
		opts.request = req
	}
}

// FilterInvalidProofRequestMatches drops every match whose credential is not listed under
// the descriptor its referent came from. Surviving matches keep their order. A referent
// without descriptor metadata ends up with no matches. matches is updated in place and
// returned.
func FilterInvalidProofRequestMatches(matches *AnonCredsCredentialsForProofRequest, md DescriptorMetadata,
	opts ...FilterOption) *AnonCredsCredentialsForProofRequest {
	o := &filterOpts{}
	for _, opt := range opts {
		opt(o)
	}

	if matches == nil {
		return nil
	}

	for referent, list := range matches.Attributes {
		matches.Attributes[referent] = validMatches(list, md, o.attributeDescriptor(referent))
	}

	for referent, list := range matches.Predicates {
		matches.Predicates[referent] = validMatches(list, md, o.predicateDescriptor(referent))
	}

	return matches
}

func validMatches(list []*Match, md DescriptorMetadata, descriptorID string) []*Match {
	records, ok := md[descriptorID]
	if !ok {
		logger.Debugf("no metadata for descriptor %s, dropping %d matches", descriptorID, len(list))
	}

	out := make([]*Match, 0, len(list))
	for _, m := range list {
		if m != nil && contains(records, m.CredentialID) {
			out = append(out, m)
		}
	}

	return out
}

func (r *filterOpts) attributeDescriptor(referent string) string {
	if r.request != nil {
		if attr, ok := r.request.RequestedAttributes.Get(referent); ok && attr != nil && attr.DescriptorID != "" {
			return attr.DescriptorID
		}
	}

	return referent
}

func (r *filterOpts) predicateDescriptor(referent string) string {
	if r.request != nil {
		if pred, ok := r.request.RequestedPredicates.Get(referent); ok && pred != nil && pred.DescriptorID != "" {
			return pred.DescriptorID
		}
	}

	if i := strings.LastIndex(referent, "_"); i >= 0 {
		return referent[:i]
	}

	return ""
}
