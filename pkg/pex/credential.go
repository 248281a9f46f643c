/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pex

import (
	"encoding/json"

	"github.com/PaesslerAG/jsonpath"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for credentials that are neither ldp_vc nor jwt_vc.
var ErrUnsupportedFormat = errors.New("unsupported credential claim format")

// document returns the credential as a generic JSON tree together with the path prefix of
// its W3C data model. JWT credentials keep the model under the vc claim.
func document(format ClaimFormat, record *W3cCredentialRecord) (interface{}, string, error) {
	if record == nil {
		return nil, "", errors.New("missing credential record")
	}

	switch format {
	case LdpVC:
		var doc interface{}
		if err := json.Unmarshal(record.Credential, &doc); err != nil {
			return nil, "", errors.Wrapf(err, "credential %s is not a JSON document", record.ID)
		}

		return doc, "$", nil
	case JwtVC:
		var token string
		if err := json.Unmarshal(record.Credential, &token); err != nil {
			return nil, "", errors.Wrapf(err, "credential %s is not a compact JWT", record.ID)
		}

		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, "", errors.Wrapf(err, "credential %s is not a compact JWT", record.ID)
		}

		return map[string]interface{}(claims), "$.vc", nil
	}

	return nil, "", errors.Wrapf(ErrUnsupportedFormat, "%s", format)
}

// CredentialTypes returns the type list of a credential. A single string type is returned
// as a one element list.
func CredentialTypes(format ClaimFormat, record *W3cCredentialRecord) ([]string, error) {
	doc, prefix, err := document(format, record)
	if err != nil {
		return nil, err
	}

	v, err := jsonpath.Get(prefix+".type", doc)
	if err != nil {
		return nil, errors.Wrapf(err, "credential %s has no type", record.ID)
	}

	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Errorf("credential %s has a non string type", record.ID)
			}

			out = append(out, s)
		}

		if len(out) == 0 {
			return nil, errors.Errorf("credential %s has no type", record.ID)
		}

		return out, nil
	}

	return nil, errors.Errorf("credential %s has an invalid type", record.ID)
}

// CredentialClaims returns the credential subject claims.
func CredentialClaims(format ClaimFormat, record *W3cCredentialRecord) (map[string]interface{}, error) {
	doc, prefix, err := document(format, record)
	if err != nil {
		return nil, err
	}

	v, err := jsonpath.Get(prefix+".credentialSubject", doc)
	if err != nil {
		return nil, errors.Wrapf(err, "credential %s has no subject", record.ID)
	}

	switch s := v.(type) {
	case map[string]interface{}:
		return s, nil
	case []interface{}:
		if len(s) > 0 {
			if m, ok := s[0].(map[string]interface{}); ok {
				return m, nil
			}
		}
	}

	return nil, errors.Errorf("credential %s has an invalid subject", record.ID)
}

// specificType picks the type that identifies the credential. The first entry of a multi
// type list is the generic VerifiableCredential.
func specificType(types []string) string {
	if len(types) > 1 {
		return types[1]
	}

	return types[0]
}
