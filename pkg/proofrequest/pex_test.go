/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proofrequest

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/scoir/canis-wallet/pkg/pex"
	"github.com/scoir/canis-wallet/pkg/schema"
)

const (
	credDefID = "did:indy:bcovrin:test:TfuPA6whW681GfU6fj1e3k/anoncreds/v0/CLAIM_DEF/462230/latest"
	schemaID  = "did:indy:bcovrin:test:TfuPA6whW681GfU6fj1e3k/anoncreds/v0/SCHEMA/Identity Schema/1.0.0"
)

func loadDefinition(t *testing.T) *PresentationDefinition {
	d, err := os.ReadFile("./testdata/presentation_definition.json")
	require.NoError(t, err)

	pd := &PresentationDefinition{}
	require.NoError(t, json.Unmarshal(d, pd))

	return pd
}

func definition(t *testing.T, d string) *PresentationDefinition {
	pd := &PresentationDefinition{}
	require.NoError(t, json.Unmarshal([]byte(d), pd))

	return pd
}

func metadata(ids ...string) pex.DescriptorMetadata {
	tags := &pex.AnonCredsTags{
		LinkSecretID:           "278e4591-71cf-4158-9ea0-7aba860cf8c5",
		CredentialDefinitionID: credDefID,
		SchemaID:               schemaID,
		MethodName:             "indy",
	}

	md := pex.DescriptorMetadata{}
	for _, id := range ids {
		md[id] = []*pex.RecordWithMetadata{{Record: &pex.W3cCredentialRecord{ID: "8eba4449"}, AnonCredsTags: tags}}
	}

	return md
}

func TestCreateAnonCredsProofRequest(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		req, err := CreateAnonCredsProofRequest(loadDefinition(t), metadata("email", "time", "age"), WithNonce("nonce"))
		require.NoError(t, err)

		d, err := json.Marshal(req)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"version": "1.0",
			"name": "Age Verification",
			"nonce": "nonce",
			"requested_attributes": {
				"email": {
					"names": ["email"],
					"restrictions": [{"cred_def_id": "`+credDefID+`", "schema_id": "`+schemaID+`"}],
					"descriptorId": "email"
				},
				"time": {
					"names": ["time"],
					"restrictions": [{"cred_def_id": "`+credDefID+`", "schema_id": "`+schemaID+`"}],
					"descriptorId": "time"
				}
			},
			"requested_predicates": {
				"age_0": {
					"name": "age",
					"p_type": "<=",
					"p_value": 18,
					"restrictions": [{"cred_def_id": "`+credDefID+`", "schema_id": "`+schemaID+`"}],
					"descriptorId": "age"
				}
			}
		}`, string(d))

		require.Equal(t, []string{"email", "time"}, req.RequestedAttributes.Keys())
	})

	t.Run("random nonce and default name", func(t *testing.T) {
		pd := loadDefinition(t)
		pd.Name = ""

		req, err := CreateAnonCredsProofRequest(pd, metadata("email", "time", "age"))
		require.NoError(t, err)
		require.Equal(t, DefaultName, req.Name)

		_, err = uuid.Parse(req.Nonce)
		require.NoError(t, err)
	})

	t.Run("range bounds and grouped names", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [{
			"id": "person",
			"constraints": {"fields": [
				{"path": ["$.vc.credentialSubject.given_name", "$.credentialSubject.given_name"]},
				{"path": ["$.credentialSubject.family_name"]},
				{"path": ["$.vc.credentialSubject.age"], "predicate": "required",
				 "filter": {"type": "number", "minimum": 19, "exclusiveMaximum": "65"}},
				{"path": ["$.credentialSubject.score"], "predicate": "required",
				 "filter": {"exclusiveMinimum": 3}}
			]}
		}]}`)

		req, err := CreateAnonCredsProofRequest(pd, metadata("person"), WithNonce("n"))
		require.NoError(t, err)

		attr, ok := req.RequestedAttributes.Get("person")
		require.True(t, ok)
		require.Equal(t, []string{"given_name", "family_name"}, attr.Names)

		require.Equal(t, []string{"person_0", "person_1", "person_2"}, req.RequestedPredicates.Keys())

		p0, _ := req.RequestedPredicates.Get("person_0")
		require.Equal(t, ">=", string(p0.PType))
		require.EqualValues(t, 19, p0.PValue)

		p1, _ := req.RequestedPredicates.Get("person_1")
		require.Equal(t, "<", string(p1.PType))
		require.EqualValues(t, 65, p1.PValue)

		p2, _ := req.RequestedPredicates.Get("person_2")
		require.Equal(t, "score", p2.Name)
		require.Equal(t, ">", string(p2.PType))
		require.Equal(t, "person", p2.DescriptorID)
	})

	t.Run("unsupported filter property", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [{
			"id": "age",
			"constraints": {"fields": [{"path": ["$.credentialSubject.age"], "predicate": "required",
				"filter": {"type": "number", "pattern": "^1"}}]}
		}]}`)

		_, err := CreateAnonCredsProofRequest(pd, metadata("age"))
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnsupportedPredicateFilter))
		require.Contains(t, err.Error(), "'pattern'")
	})

	t.Run("properties presexch does not model", func(t *testing.T) {
		for _, filter := range []string{
			`{"type": "number", "minimum": 18, "multipleOf": 5}`,
			`{"type": "number", "minimum": 18, "foo": 1}`,
		} {
			pd := definition(t, `{"id": "pd", "input_descriptors": [{
				"id": "age",
				"constraints": {"fields": [{"path": ["$.credentialSubject.age"], "predicate": "required",
					"filter": `+filter+`}]}
			}]}`)

			req, err := CreateAnonCredsProofRequest(pd, metadata("age"))
			require.True(t, errors.Is(err, ErrUnsupportedPredicateFilter), filter)
			require.Nil(t, req)
		}
	})

	t.Run("bounds numbered in filter order", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [{
			"id": "age",
			"constraints": {"fields": [{"path": ["$.credentialSubject.age"], "predicate": "required",
				"filter": {"maximum": 65, "type": "number", "minimum": 18}}]}
		}]}`)

		req, err := CreateAnonCredsProofRequest(pd, metadata("age"), WithNonce("n"))
		require.NoError(t, err)
		require.Equal(t, []string{"age_0", "age_1"}, req.RequestedPredicates.Keys())

		p0, _ := req.RequestedPredicates.Get("age_0")
		require.Equal(t, schema.LessThanOrEqual, p0.PType)
		require.EqualValues(t, 65, p0.PValue)

		p1, _ := req.RequestedPredicates.Get("age_1")
		require.Equal(t, schema.GreaterThanOrEqual, p1.PType)
		require.EqualValues(t, 18, p1.PValue)
	})

	t.Run("definition built in code", func(t *testing.T) {
		pd, err := NewPresentationDefinition(loadDefinition(t).PresentationDefinition)
		require.NoError(t, err)

		req, err := CreateAnonCredsProofRequest(pd, metadata("email", "time", "age"), WithNonce("n"))
		require.NoError(t, err)
		require.Equal(t, []string{"age_0"}, req.RequestedPredicates.Keys())
	})

	t.Run("null input descriptor", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [null]}`)

		_, err := CreateAnonCredsProofRequest(pd, metadata("age"))
		require.Error(t, err)
	})

	t.Run("missing predicate filter", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [{
			"id": "age",
			"constraints": {"fields": [{"path": ["$.credentialSubject.age"], "predicate": "required"}]}
		}]}`)

		_, err := CreateAnonCredsProofRequest(pd, metadata("age"))
		require.True(t, errors.Is(err, ErrMissingPredicateFilter))
	})

	t.Run("non integer bound", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [{
			"id": "age",
			"constraints": {"fields": [{"path": ["$.credentialSubject.age"], "predicate": "required",
				"filter": {"minimum": "eighteen"}}]}
		}]}`)

		_, err := CreateAnonCredsProofRequest(pd, metadata("age"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "is not an integer")
	})

	t.Run("descriptor without fields", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [{"id": "age", "constraints": {}}]}`)

		_, err := CreateAnonCredsProofRequest(pd, metadata("age"))
		require.True(t, errors.Is(err, ErrMissingFields))
	})

	t.Run("field without path", func(t *testing.T) {
		pd := definition(t, `{"id": "pd", "input_descriptors": [{"id": "age", "constraints": {"fields": [{"id": "f"}]}}]}`)

		_, err := CreateAnonCredsProofRequest(pd, metadata("age"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "field path is required")
	})

	t.Run("descriptor without metadata", func(t *testing.T) {
		req, err := CreateAnonCredsProofRequest(loadDefinition(t), metadata("age"), WithNonce("n"))
		require.NoError(t, err)

		attr, ok := req.RequestedAttributes.Get("email")
		require.True(t, ok)
		require.Empty(t, attr.Restrictions)
	})
}
