//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2025 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/weaviate/couchsync/entities/design"
)

// manifest is the YAML file declaring every definition to reconcile,
// e.g.:
//
//	definitions:
//	  - document: books
//	    kind: view
//	    name: by_author
//	    map: |
//	      function(doc) { emit(doc.author, null); }
//	    reduce: _count
//	  - document: books
//	    kind: validator
//	    code: |
//	      function(newDoc, oldDoc, userCtx, secObj) {}
type manifest struct {
	Definitions []manifestDefinition `yaml:"definitions"`
}

type manifestDefinition struct {
	Document string                 `yaml:"document"`
	Kind     string                 `yaml:"kind"`
	Name     string                 `yaml:"name"`
	Language string                 `yaml:"language"`
	Map      string                 `yaml:"map"`
	Reduce   string                 `yaml:"reduce"`
	Code     string                 `yaml:"code"`
	Options  map[string]interface{} `yaml:"options"`
}

func loadManifest(path string) ([]design.Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	defs := make([]design.Definition, 0, len(m.Definitions))
	for i, entry := range m.Definitions {
		def, err := entry.toDefinition()
		if err != nil {
			return nil, errors.Wrapf(err, "definition %d", i)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (m manifestDefinition) toDefinition() (design.Definition, error) {
	kind, err := design.ParseKind(m.Kind)
	if err != nil {
		return design.Definition{}, err
	}

	var opts []design.Option
	if m.Language != "" {
		opts = append(opts, design.WithLanguage(m.Language))
	}

	switch kind {
	case design.KindView:
		if m.Reduce != "" {
			opts = append(opts, design.WithReduce(m.Reduce))
		}
		if m.Options != nil {
			opts = append(opts, design.WithViewOptions(m.Options))
		}
		return design.NewView(m.Document, m.Name, m.Map, opts...)
	case design.KindUpdateHandler:
		return design.NewUpdateHandler(m.Document, m.Name, m.Code, opts...)
	case design.KindValidator:
		return design.NewValidator(m.Document, m.Code, opts...)
	default:
		return design.NewShowFunction(m.Document, m.Name, m.Code, opts...)
	}
}
