/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proofrequest

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/scoir/canis-wallet/pkg/schema"
	"github.com/scoir/canis-wallet/pkg/template"
)

const t1 = `
- id: T1
  name: Scenario
  version: 0.0.1
  payload:
    type: anoncreds
    data:
      - schema: S
        requestedAttributes:
          - names: [name, dob]
        requestedPredicates:
          - name: age
            predicateType: ">="
            predicateValue: 18
            parameterizable: true
`

func decodeOne(t *testing.T, bundle string) *template.ProofRequestTemplate {
	templates, err := template.Decode([]byte(bundle))
	require.NoError(t, err)
	require.Len(t, templates, 1)

	return templates[0]
}

func anonCreds(t *testing.T, r Result) *schema.ProofRequest {
	ac, ok := r.(*AnonCredsResult)
	require.True(t, ok, "expected an AnonCreds result, got %T", r)

	return ac.Request
}

func TestBuildProofRequestDataForTemplate(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		r, err := BuildProofRequestDataForTemplate(decodeOne(t, t1), CustomValues{"S": {"age": 21}}, WithNonce("1"))
		require.NoError(t, err)

		d, err := json.Marshal(anonCreds(t, r))
		require.NoError(t, err)
		require.JSONEq(t, `{
			"name": "Scenario",
			"version": "0.0.1",
			"nonce": "1",
			"requested_attributes": {"referent_0": {"names": ["name", "dob"]}},
			"requested_predicates": {"referent_1": {"name": "age", "p_type": ">=", "p_value": 21}}
		}`, string(d))
	})

	t.Run("static value without custom values", func(t *testing.T) {
		r, err := BuildProofRequestDataForTemplate(decodeOne(t, t1), nil)
		require.NoError(t, err)

		pred, ok := anonCreds(t, r).RequestedPredicates.Get("referent_1")
		require.True(t, ok)
		require.EqualValues(t, 18, pred.PValue)
	})

	t.Run("custom value for another schema", func(t *testing.T) {
		r, err := BuildProofRequestDataForTemplate(decodeOne(t, t1), CustomValues{"Other": {"age": 21}})
		require.NoError(t, err)

		pred, _ := anonCreds(t, r).RequestedPredicates.Get("referent_1")
		require.EqualValues(t, 18, pred.PValue)
	})

	t.Run("custom values ignored when not parameterizable", func(t *testing.T) {
		c, err := template.DefaultCatalog()
		require.NoError(t, err)

		full, err := c.ByID("8a83675e-f864-4e5a-9c4d-9787f1034c04")
		require.NoError(t, err)

		r, err := BuildProofRequestDataForTemplate(full, CustomValues{"Verified Person Schema": {"age": 99}})
		require.NoError(t, err)

		req := anonCreds(t, r)
		require.Equal(t, []string{"referent_0", "referent_1", "referent_2"}, req.RequestedAttributes.Keys())
		require.Equal(t, []string{"referent_3"}, req.RequestedPredicates.Keys())

		pred, _ := req.RequestedPredicates.Get("referent_3")
		require.EqualValues(t, 17, pred.PValue)
	})

	t.Run("referents across schema groups", func(t *testing.T) {
		c, err := template.DefaultCatalog()
		require.NoError(t, err)

		for _, tmpl := range c.All() {
			r, err := BuildProofRequestDataForTemplate(tmpl, nil)
			require.NoError(t, err)
			req := anonCreds(t, r)

			var kinds []string
			for _, d := range tmpl.Payload.(*template.AnonCredsPayload).Data {
				for range d.RequestedAttributes {
					kinds = append(kinds, "attr")
				}
				for range d.RequestedPredicates {
					kinds = append(kinds, "pred")
				}
			}

			require.Equal(t, len(kinds), req.RequestedAttributes.Len()+req.RequestedPredicates.Len())
			for i, kind := range kinds {
				referent := fmt.Sprintf("referent_%d", i)
				_, isAttr := req.RequestedAttributes.Get(referent)
				_, isPred := req.RequestedPredicates.Get(referent)
				require.Equal(t, kind == "attr", isAttr, referent)
				require.Equal(t, kind == "pred", isPred, referent)
			}
		}
	})

	t.Run("copies restrictions and non revoked", func(t *testing.T) {
		tmpl := decodeOne(t, `
- id: T2
  name: Restricted
  version: "1.0"
  payload:
    type: anoncreds
    data:
      - schema: S
        requestedAttributes:
          - name: email
            restrictions:
              - schema_name: S
                issuer_did: did:sov:abc
            nonRevoked:
              from: 10
              to: 20
`)
		r, err := BuildProofRequestDataForTemplate(tmpl, nil)
		require.NoError(t, err)

		attr, ok := anonCreds(t, r).RequestedAttributes.Get("referent_0")
		require.True(t, ok)
		require.Equal(t, "email", attr.Name)
		require.Empty(t, attr.Names)
		require.Equal(t, []schema.Restriction{{SchemaName: "S", IssuerDID: "did:sov:abc"}}, attr.Restrictions)
		require.Equal(t, &schema.NonRevokedInterval{From: 10, To: 20}, attr.NonRevoked)

		attr.Restrictions[0].SchemaName = "changed"
		require.Equal(t, "S", tmpl.Payload.(*template.AnonCredsPayload).Data[0].RequestedAttributes[0].Restrictions[0].SchemaName)
	})

	t.Run("nonce from clock", func(t *testing.T) {
		now := time.UnixMilli(1700000000123)
		r, err := BuildProofRequestDataForTemplate(decodeOne(t, t1), nil, WithClock(func() time.Time { return now }))
		require.NoError(t, err)
		require.Equal(t, "1700000000123", anonCreds(t, r).Nonce)
	})

	t.Run("dif payload is not supported", func(t *testing.T) {
		r, err := BuildProofRequestDataForTemplate(&template.ProofRequestTemplate{ID: "d", Payload: &template.DIFPayload{}}, nil)
		require.NoError(t, err)
		require.Equal(t, &NotSupported{Type: template.DIF}, r)
	})

	t.Run("missing payload", func(t *testing.T) {
		_, err := BuildProofRequestDataForTemplate(&template.ProofRequestTemplate{ID: "x"}, nil)
		require.True(t, errors.Is(err, template.ErrUnknownPayloadType))
	})
}
