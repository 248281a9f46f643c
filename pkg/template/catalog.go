/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	_ "embed"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"
)

var logger = log.New("canis-wallet/template")

//go:embed default_templates.yaml
var defaultTemplates []byte

// Catalog is a read-only table of templates, loaded once and shared by reference.
type Catalog struct {
	order []string
	byID  map[string]*ProofRequestTemplate
}

// NewCatalog validates templates and indexes them by id. Duplicate ids are rejected.
func NewCatalog(templates ...*ProofRequestTemplate) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*ProofRequestTemplate, len(templates))}

	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}

		if _, ok := c.byID[t.ID]; ok {
			return nil, errors.Errorf("duplicate proof request template id %s", t.ID)
		}

		c.order = append(c.order, t.ID)
		c.byID[t.ID] = t.clone()
	}

	return c, nil
}

// DefaultCatalog returns the catalog of built in templates.
func DefaultCatalog() (*Catalog, error) {
	templates, err := DefaultTemplates()
	if err != nil {
		return nil, err
	}

	return NewCatalog(templates...)
}

// DefaultTemplates decodes the built in template bundle.
func DefaultTemplates() ([]*ProofRequestTemplate, error) {
	templates, err := Decode(defaultTemplates)
	if err != nil {
		return nil, errors.Wrap(err, "invalid built in template bundle")
	}

	return templates, nil
}

// All returns copies of every template in catalog order.
func (r *Catalog) All() []*ProofRequestTemplate {
	out := make([]*ProofRequestTemplate, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id].clone()
	}

	return out
}

// ByID returns a copy of the template with the given id.
func (r *Catalog) ByID(id string) (*ProofRequestTemplate, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrTemplateNotFound, "id %s", id)
	}

	return t.clone(), nil
}

func (r *Catalog) Len() int {
	return len(r.order)
}
