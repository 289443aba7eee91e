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

package sync

import "github.com/weaviate/couchsync/entities/design"

// mergeKind folds one kind's definitions into the document's field for
// that kind, mutating doc in place and accumulating every language
// observed. Merging one kind never touches another kind's field.
//
// A kind with no definitions is a no-op: its field is left exactly as
// stored, not even created if absent, and removeMissing does not reach
// into it.
func mergeKind(doc design.Document, kind design.Kind, defs []design.Definition,
	removeMissing bool, languages map[string]struct{},
) error {
	if len(defs) == 0 {
		return nil
	}

	if kind == design.KindValidator {
		return mergeValidator(doc, defs, languages)
	}

	field := doc.EnsureField(kind.FieldKey())

	missing := map[string]struct{}{}
	for name := range field {
		missing[name] = struct{}{}
	}

	for _, def := range defs {
		field[def.Name] = fieldValue(def)
		languages[def.Language] = struct{}{}
		delete(missing, def.Name)
	}

	if removeMissing {
		for name := range missing {
			delete(field, name)
		}
	} else if len(missing) > 0 {
		// Artifacts we keep but did not touch were written under the
		// document's stored language. Folding it in here keeps the
		// consistency check honest about them.
		if lang, ok := doc.Language(); ok {
			languages[lang] = struct{}{}
		}
	}

	return nil
}

// mergeValidator handles the one field that is a bare code string
// rather than a name-keyed mapping.
func mergeValidator(doc design.Document, defs []design.Definition,
	languages map[string]struct{},
) error {
	if len(defs) > 1 {
		return NewErrDuplicateValidator(doc.ID(), len(defs))
	}

	def := defs[0]
	doc[design.KindValidator.FieldKey()] = def.Source
	languages[def.Language] = struct{}{}
	return nil
}

// fieldValue serializes one definition into the value stored under its
// artifact name. Views carry a mapping, update handlers and show
// functions store their code directly.
func fieldValue(def design.Definition) interface{} {
	if def.Kind != design.KindView {
		return def.Source
	}

	value := map[string]interface{}{"map": def.Source}
	if def.Reduce != "" {
		value["reduce"] = def.Reduce
	}
	if def.Options != nil {
		value["options"] = def.Options
	}
	return value
}
