/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// indy is the payload type older catalogs use for AnonCreds templates.
const indy = "indy"

type decodeOpts struct {
	now func() time.Time
}

// DecodeOption configures Decode and Load.
type DecodeOption func(opts *decodeOpts)

// WithClock sets the clock used to evaluate template markers.
func WithClock(now func() time.Time) DecodeOption {
	return func(opts *decodeOpts) {
		opts.now = now
	}
}

// Load reads a YAML or JSON template bundle from file.
func Load(file string, opts ...DecodeOption) ([]*ProofRequestTemplate, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read template bundle %s", file)
	}

	templates, err := Decode(d, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid template bundle %s", file)
	}

	logger.Debugf("loaded %d proof request templates from %s", len(templates), file)

	return templates, nil
}

// Decode parses a bundle holding a list of templates. Markers are evaluated before the
// templates are decoded, so a marker may stand in for any numeric value.
func Decode(d []byte, opts ...DecodeOption) ([]*ProofRequestTemplate, error) {
	o := &decodeOpts{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	var tree interface{}
	if err := yaml.Unmarshal(d, &tree); err != nil {
		return nil, errors.Wrap(err, "unable to parse template bundle")
	}

	tree, err := ApplyMarkers(tree, o.now())
	if err != nil {
		return nil, err
	}

	list, ok := tree.([]interface{})
	if !ok {
		return nil, errors.New("template bundle must be a list of templates")
	}

	out := make([]*ProofRequestTemplate, 0, len(list))
	for i, item := range list {
		raw, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("template %d is not an object", i)
		}

		t, err := decodeTemplate(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "template %d", i)
		}

		out = append(out, t)
	}

	return out, nil
}

type templateHeader struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Details     string                 `json:"details"`
	Version     string                 `json:"version"`
	Payload     map[string]interface{} `json:"payload"`
}

func decodeTemplate(raw map[string]interface{}) (*ProofRequestTemplate, error) {
	h := &templateHeader{}
	if err := decode(raw, h); err != nil {
		return nil, err
	}

	t := &ProofRequestTemplate{
		ID:          h.ID,
		Name:        first(h.Name, h.Title),
		Description: first(h.Description, h.Details),
		Version:     h.Version,
	}

	typ, _ := h.Payload["type"].(string)
	switch ProofRequestType(typ) {
	case AnonCreds, indy:
		p := &AnonCredsPayload{}
		if err := decode(h.Payload, p); err != nil {
			return nil, errors.Wrapf(err, "template %s", h.ID)
		}

		t.Payload = p
	case DIF:
		p := &DIFPayload{}
		d, err := json.Marshal(h.Payload)
		if err != nil {
			return nil, errors.Wrapf(err, "template %s", h.ID)
		}

		if err = json.Unmarshal(d, p); err != nil {
			return nil, errors.Wrapf(err, "template %s: invalid presentation exchange payload", h.ID)
		}

		t.Payload = p
	default:
		return nil, errors.Wrapf(ErrUnknownPayloadType, "template %s: %q", h.ID, typ)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func decode(in, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "unable to create template decoder")
	}

	return errors.Wrap(dec.Decode(in), "unable to decode template")
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
