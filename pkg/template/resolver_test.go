/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func zeroBackOff() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func TestCatalogResolver(t *testing.T) {
	templates, err := Load("./testdata/bundle.yaml", WithClock(clock))
	require.NoError(t, err)

	c, err := NewCatalog(templates...)
	require.NoError(t, err)

	r := NewCatalogResolver(c)

	t.Run("happy path", func(t *testing.T) {
		out, err := r.Resolve(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.Len(t, out[0].Payload.(*AnonCredsPayload).Data[0].RequestedAttributes[0].DevRestrictions, 1)
	})

	t.Run("accept dev restrictions", func(t *testing.T) {
		out, err := r.ResolveByID(context.Background(), "legacy-age", true)
		require.NoError(t, err)

		attr := out.Payload.(*AnonCredsPayload).Data[0].RequestedAttributes[0]
		require.Len(t, attr.Restrictions, 2)
		require.Empty(t, attr.DevRestrictions)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := r.ResolveByID(context.Background(), "nope", false)
		require.True(t, errors.Is(err, ErrTemplateNotFound))
	})
}

func TestRemoteResolver(t *testing.T) {
	bundle, err := os.ReadFile("./testdata/bundle.yaml")
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			atomic.AddInt32(&calls, 1)
			require.Equal(t, "/config/"+BundleFile, req.URL.Path)
			_, _ = w.Write(bundle)
		}))
		defer srv.Close()

		r := NewRemoteResolver(srv.URL+"/config/", WithHTTPClient(srv.Client()), WithDecodeOptions(WithClock(clock)))

		out, err := r.Resolve(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, out, 2)

		tmpl, err := r.ResolveByID(context.Background(), "pex-email", false)
		require.NoError(t, err)
		require.Equal(t, DIF, tmpl.Payload.Type())

		require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write(bundle)
		}))
		defer srv.Close()

		r := NewRemoteResolver(srv.URL, WithBackOff(zeroBackOff), WithRetries(5))

		out, err := r.Resolve(context.Background(), true)
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	})

	t.Run("gives up", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		r := NewRemoteResolver(srv.URL, WithBackOff(zeroBackOff), WithRetries(2))

		_, err := r.Resolve(context.Background(), false)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unable to fetch proof request templates")
		require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		r := NewRemoteResolver(srv.URL, WithBackOff(zeroBackOff))

		_, err := r.ResolveByID(context.Background(), "legacy-age", false)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unexpected status 404")
		require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("invalid bundle", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`{"not": "a list"}`))
		}))
		defer srv.Close()

		r := NewRemoteResolver(srv.URL, WithBackOff(zeroBackOff))

		_, err := r.Resolve(context.Background(), false)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid template bundle")
	})
}
