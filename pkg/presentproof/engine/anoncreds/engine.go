/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package anoncreds

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/presentproof"
	"github.com/scoir/canis-wallet/pkg/presentproof/engine"
	"github.com/scoir/canis-wallet/pkg/schema"
)

// Engine reads AnonCreds proofs and the legacy Indy proofs that share their wire format.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

func (r *Engine) Accept(format string) bool {
	return format == engine.AnonCredsFormat || format == engine.IndyFormat
}

func (r *Engine) Parse(request, presentation json.RawMessage) (*presentproof.ParsedProof, error) {
	req := &schema.ProofRequest{}
	err := json.Unmarshal(request, req)
	if err != nil {
		return nil, errors.Wrap(err, "invalid proof request format")
	}

	proof := &schema.Proof{}
	err = json.Unmarshal(presentation, proof)
	if err != nil {
		return nil, errors.Wrap(err, "invalid presentation format, not anoncreds proof")
	}

	return presentproof.ParseAnonCredsProof(req, proof)
}
