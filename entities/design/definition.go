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

package design

import "strings"

// Prefix is the reserved id prefix of design documents. It is stripped
// from document names at construction time, so "_design/foo" and "foo"
// address the same document.
const Prefix = "_design/"

// DefaultLanguage is assumed when a definition does not declare one.
const DefaultLanguage = "javascript"

// Definition describes one named artifact destined for a design
// document. A Definition is a value, it never touches the network and
// is not mutated after construction.
//
// Source code is normalized on the way in: leading blank lines are
// dropped and the longest whitespace prefix common to all non-blank
// lines is removed, so definitions written as indented multi-line
// literals in calling code do not leak their indentation into the
// stored artifact.
type Definition struct {
	DocumentName string
	Name         string
	Kind         Kind
	Source       string
	Reduce       string // views only
	Language     string
	Options      map[string]interface{} // views only
	Defaults     map[string]interface{} // default invocation params, not synced
}

// DocID returns the id of the design document this definition belongs
// to.
func (d Definition) DocID() string {
	return Prefix + d.DocumentName
}

// Option configures optional parts of a Definition during
// construction. Options that only apply to a single kind fail with
// ErrInvalidDefinition when used on any other kind.
type Option func(*Definition) error

// WithReduce sets the reduce function of a view definition.
func WithReduce(code string) Option {
	return func(d *Definition) error {
		if d.Kind != KindView {
			return NewErrInvalidDefinition(d.DocumentName,
				"reduce function supplied for %s definition %q, only views reduce", d.Kind, d.Name)
		}
		d.Reduce = dedent(code)
		return nil
	}
}

// WithLanguage overrides the default execution language tag.
func WithLanguage(language string) Option {
	return func(d *Definition) error {
		d.Language = language
		return nil
	}
}

// WithViewOptions sets the view's options member, e.g.
// {"collation": "raw"}. The mapping is stored verbatim.
func WithViewOptions(options map[string]interface{}) Option {
	return func(d *Definition) error {
		if d.Kind != KindView {
			return NewErrInvalidDefinition(d.DocumentName,
				"view options supplied for %s definition %q", d.Kind, d.Name)
		}
		d.Options = options
		return nil
	}
}

// WithDefaults attaches caller-defined default invocation parameters.
// They ride along on the value but are never written to the store.
func WithDefaults(defaults map[string]interface{}) Option {
	return func(d *Definition) error {
		d.Defaults = defaults
		return nil
	}
}

// NewView builds a view definition from a map function and optional
// reduce function / options.
func NewView(document, name, mapFun string, opts ...Option) (Definition, error) {
	return newDefinition(KindView, document, name, mapFun, opts)
}

// NewUpdateHandler builds an update handler definition.
func NewUpdateHandler(document, name, code string, opts ...Option) (Definition, error) {
	return newDefinition(KindUpdateHandler, document, name, code, opts)
}

// NewValidator builds a validate_doc_update definition. Validators
// carry no artifact name, a design document holds at most one.
func NewValidator(document, code string, opts ...Option) (Definition, error) {
	return newDefinition(KindValidator, document, "", code, opts)
}

// NewShowFunction builds a show function definition.
func NewShowFunction(document, name, code string, opts ...Option) (Definition, error) {
	return newDefinition(KindShowFunction, document, name, code, opts)
}

func newDefinition(kind Kind, document, name, source string, opts []Option) (Definition, error) {
	d := Definition{
		DocumentName: strings.TrimPrefix(document, Prefix),
		Name:         name,
		Kind:         kind,
		Source:       dedent(source),
		Language:     DefaultLanguage,
	}

	for _, opt := range opts {
		if err := opt(&d); err != nil {
			return Definition{}, err
		}
	}

	return d, nil
}
