/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// OrderedMap is a JSON object keyed by string that keeps the order in which keys were
// first set or decoded. The zero value is an empty map ready to use.
type OrderedMap[V any] struct {
	keys  []string
	items map[string]V
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() OrderedMap[V] {
	return OrderedMap[V]{items: map[string]V{}}
}

// Set stores v under key. A key that is already present keeps its position.
func (r *OrderedMap[V]) Set(key string, v V) {
	if r.items == nil {
		r.items = map[string]V{}
	}

	if _, ok := r.items[key]; !ok {
		r.keys = append(r.keys, key)
	}

	r.items[key] = v
}

func (r OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := r.items[key]
	return v, ok
}

// Keys returns a copy of the keys in order.
func (r OrderedMap[V]) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)

	return out
}

func (r OrderedMap[V]) Len() int {
	return len(r.keys)
}

// Range calls f for every entry in order until f returns false.
func (r OrderedMap[V]) Range(f func(key string, v V) bool) {
	for _, k := range r.keys {
		if !f(k, r.items[k]) {
			return
		}
	}
}

func (r OrderedMap[V]) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		vb, err := json.Marshal(r.items[k])
		if err != nil {
			return nil, errors.Wrapf(err, "unable to marshal value for key %s", k)
		}

		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (r *OrderedMap[V]) UnmarshalJSON(b []byte) error {
	r.keys = nil
	r.items = map[string]V{}

	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		return nil
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("expected object key, got %v", tok)
		}

		var v V
		if err := dec.Decode(&v); err != nil {
			return errors.Wrapf(err, "invalid value for key %s", key)
		}

		r.Set(key, v)
	}

	_, err = dec.Token()

	return err
}
