/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/util"
)

// BundleFile is the name of the template bundle served under a remote base url.
const BundleFile = "proof-templates.json"

//go:generate mockery -name=Resolver
type Resolver interface {
	Resolve(ctx context.Context, acceptDevRestrictions bool) ([]*ProofRequestTemplate, error)
	ResolveByID(ctx context.Context, id string, acceptDevRestrictions bool) (*ProofRequestTemplate, error)
}

// CatalogResolver serves templates from an in memory catalog.
type CatalogResolver struct {
	catalog *Catalog
}

func NewCatalogResolver(catalog *Catalog) *CatalogResolver {
	return &CatalogResolver{catalog: catalog}
}

func (r *CatalogResolver) Resolve(_ context.Context, acceptDevRestrictions bool) ([]*ProofRequestTemplate, error) {
	templates := r.catalog.All()
	if acceptDevRestrictions {
		templates = ApplyDevRestrictions(templates)
	}

	return templates, nil
}

func (r *CatalogResolver) ResolveByID(_ context.Context, id string, acceptDevRestrictions bool) (*ProofRequestTemplate, error) {
	t, err := r.catalog.ByID(id)
	if err != nil {
		return nil, err
	}

	if acceptDevRestrictions {
		return ApplyDevRestrictions([]*ProofRequestTemplate{t})[0], nil
	}

	return t, nil
}

// RemoteOption configures a RemoteResolver.
type RemoteOption func(opts *RemoteResolver)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(opts *RemoteResolver) {
		opts.client = client
	}
}

// WithRetries limits how many times a failed fetch is retried.
func WithRetries(n uint64) RemoteOption {
	return func(opts *RemoteResolver) {
		opts.retries = n
	}
}

// WithBackOff sets the retry schedule, an exponential back off by default.
func WithBackOff(b func() backoff.BackOff) RemoteOption {
	return func(opts *RemoteResolver) {
		opts.backOff = b
	}
}

// WithDecodeOptions passes options to the bundle decoder.
func WithDecodeOptions(o ...DecodeOption) RemoteOption {
	return func(opts *RemoteResolver) {
		opts.decodeOpts = append(opts.decodeOpts, o...)
	}
}

// RemoteResolver fetches the template bundle from <baseURL>/proof-templates.json the first
// time it is needed and serves every later call from that copy.
type RemoteResolver struct {
	url        string
	client     *http.Client
	retries    uint64
	backOff    func() backoff.BackOff
	decodeOpts []DecodeOption

	lock    sync.Mutex
	catalog *Catalog
}

func NewRemoteResolver(baseURL string, opts ...RemoteOption) *RemoteResolver {
	r := &RemoteResolver{
		url:     strings.TrimSuffix(baseURL, "/") + "/" + BundleFile,
		client:  http.DefaultClient,
		retries: 3,
		backOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *RemoteResolver) Resolve(ctx context.Context, acceptDevRestrictions bool) ([]*ProofRequestTemplate, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return NewCatalogResolver(c).Resolve(ctx, acceptDevRestrictions)
}

func (r *RemoteResolver) ResolveByID(ctx context.Context, id string, acceptDevRestrictions bool) (*ProofRequestTemplate, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return NewCatalogResolver(c).ResolveByID(ctx, id, acceptDevRestrictions)
}

func (r *RemoteResolver) load(ctx context.Context) (*Catalog, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.catalog != nil {
		return r.catalog, nil
	}

	var body []byte
	op := func() error {
		var err error
		body, err = r.fetch(ctx)
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(r.backOff(), r.retries), ctx)
	if err := backoff.RetryNotify(op, b, util.Logger); err != nil {
		return nil, errors.Wrapf(err, "unable to fetch proof request templates from %s", r.url)
	}

	templates, err := Decode(body, r.decodeOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid template bundle at %s", r.url)
	}

	c, err := NewCatalog(templates...)
	if err != nil {
		return nil, err
	}

	logger.Infof("loaded %d proof request templates from %s", c.Len(), r.url)
	r.catalog = c

	return c, nil
}

func (r *RemoteResolver) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(errors.Errorf("unexpected status %d", resp.StatusCode))
	}

	return io.ReadAll(resp.Body)
}
