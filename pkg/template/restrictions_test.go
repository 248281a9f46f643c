/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scoir/canis-wallet/pkg/schema"
)

func TestApplyDevRestrictions(t *testing.T) {
	templates, err := Load("./testdata/bundle.yaml", WithClock(clock))
	require.NoError(t, err)

	out := ApplyDevRestrictions(templates)
	require.Len(t, out, 2)

	p := out[0].Payload.(*AnonCredsPayload)
	attr := p.Data[0].RequestedAttributes[0]
	require.Equal(t, []schema.Restriction{
		{CredDefID: "Th7MpTaRZVRYnPiabds81Y:3:CL:12:person"},
		{CredDefID: "Ui6HA36FvN83cEtmYYHxrn:3:CL:99:person"},
	}, attr.Restrictions)
	require.Empty(t, attr.DevRestrictions)

	pred := p.Data[0].RequestedPredicates[0]
	require.Equal(t, []schema.Restriction{{SchemaName: "Verified Person Schema"}}, pred.Restrictions)
	require.Empty(t, pred.DevRestrictions)

	orig := templates[0].Payload.(*AnonCredsPayload)
	require.Len(t, orig.Data[0].RequestedAttributes[0].Restrictions, 1)
	require.Len(t, orig.Data[0].RequestedAttributes[0].DevRestrictions, 1)
	require.Empty(t, orig.Data[0].RequestedPredicates[0].Restrictions)

	require.Equal(t, templates[1], out[1])
}
