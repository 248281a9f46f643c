/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presentproof

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// State of a proof exchange as reported by the agent.
type State string

const (
	StateProposalSent         State = "proposal-sent"
	StateProposalReceived     State = "proposal-received"
	StateRequestSent          State = "request-sent"
	StateRequestReceived      State = "request-received"
	StatePresentationSent     State = "presentation-sent"
	StatePresentationReceived State = "presentation-received"
	StateDeclined             State = "declined"
	StateAbandoned            State = "abandoned"
	StateDone                 State = "done"
)

func IsPresentationReceived(s State) bool {
	return s == StatePresentationReceived || s == StateDone
}

func IsPresentationFailed(s State) bool {
	return s == StateAbandoned
}

// CustomMetadataKey is the record metadata entry the wallet keeps its own proof data under.
const CustomMetadataKey = "customMetadata"

type CustomMetadata struct {
	DetailsSeen            bool   `json:"details_seen,omitempty"`
	ProofRequestTemplateID string `json:"proof_request_template_id,omitempty"`
}

// MetadataReader is read access to the metadata of a proof exchange record.
type MetadataReader interface {
	Get(key string) (interface{}, bool)
}

// MetadataMap is a MetadataReader over decoded record metadata.
type MetadataMap map[string]interface{}

func (r MetadataMap) Get(key string) (interface{}, bool) {
	v, ok := r[key]
	return v, ok
}

// ReadCustomMetadata returns the wallet's metadata of a proof exchange record, empty when the
// record has none.
func ReadCustomMetadata(md MetadataReader) (*CustomMetadata, error) {
	out := &CustomMetadata{}

	raw, ok := md.Get(CustomMetadataKey)
	if !ok || raw == nil {
		return out, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create metadata decoder")
	}

	if err = dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "invalid proof record metadata")
	}

	return out, nil
}
