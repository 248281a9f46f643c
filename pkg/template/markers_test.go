/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyMarkers(t *testing.T) {
	now := time.Date(2024, time.February, 29, 23, 30, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		tree := map[string]interface{}{
			"to":   "@{now}",
			"list": []interface{}{"@{currentDate(-19)}", "@{currentDate(0)}", "plain", 7},
		}

		out, err := ApplyMarkers(tree, now)
		require.NoError(t, err)

		m := out.(map[string]interface{})
		require.Equal(t, now.Unix(), m["to"])
		require.Equal(t, []interface{}{int64(20050301), int64(20240229), "plain", 7}, m["list"])
	})

	t.Run("marker must be the whole value", func(t *testing.T) {
		out, err := ApplyMarkers("since @{now}", now)
		require.NoError(t, err)
		require.Equal(t, "since @{now}", out)
	})

	t.Run("unknown marker", func(t *testing.T) {
		_, err := ApplyMarkers([]interface{}{"@{tomorrow}"}, now)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown template marker tomorrow")
	})

	t.Run("bad offset", func(t *testing.T) {
		_, err := ApplyMarkers("@{currentDate(x)}", now)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid currentDate offset")
	})
}
