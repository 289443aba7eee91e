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

import "reflect"

// Document is one design document as stored. It is deliberately
// map-shaped rather than a fixed struct: design documents may carry
// members this tool does not manage (filters, lists, attachment stubs)
// and those must survive a sync untouched.
type Document map[string]interface{}

// NewDocument returns an empty document carrying only its id, the
// shape a reconciliation starts from when the store has no document
// yet. The missing revision marks it as a create.
func NewDocument(id string) Document {
	return Document{"_id": id}
}

// ID returns the document id, e.g. "_design/foo".
func (d Document) ID() string {
	return d.stringMember("_id")
}

// Rev returns the opaque revision token, or "" for a document that
// does not exist in the store yet.
func (d Document) Rev() string {
	return d.stringMember("_rev")
}

// Language returns the document's top-level language member.
func (d Document) Language() (string, bool) {
	lang, ok := d["language"].(string)
	return lang, ok
}

// SetLanguage sets the document's top-level language member.
func (d Document) SetLanguage(language string) {
	d["language"] = language
}

// Field returns the inner mapping stored under key, or nil if the
// member is absent or not a mapping.
func (d Document) Field(key string) map[string]interface{} {
	field, _ := d[key].(map[string]interface{})
	return field
}

// EnsureField returns the inner mapping stored under key, creating an
// empty one if the member is absent.
func (d Document) EnsureField(key string) map[string]interface{} {
	if field, ok := d[key].(map[string]interface{}); ok {
		return field
	}
	field := map[string]interface{}{}
	d[key] = field
	return field
}

// DeepCopy returns a copy sharing no mutable state with d, so the
// original can later be compared against the mutated document.
func (d Document) DeepCopy() Document {
	if d == nil {
		return nil
	}
	return Document(copyMap(d))
}

// Equal reports deep equality of two documents.
func (d Document) Equal(other Document) bool {
	return reflect.DeepEqual(d, other)
}

func (d Document) stringMember(key string) string {
	s, _ := d[key].(string)
	return s
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch typed := v.(type) {
	case map[string]interface{}:
		return copyMap(typed)
	case Document:
		return copyMap(typed)
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, elem := range typed {
			out[i] = copyValue(elem)
		}
		return out
	default:
		return v
	}
}
