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

import "fmt"

// Kind distinguishes the four artifact types a design document can
// hold. The set is closed, the reconciler switches exhaustively over
// it.
type Kind string

const (
	KindView          Kind = "view"
	KindUpdateHandler Kind = "update"
	KindValidator     Kind = "validator"
	KindShowFunction  Kind = "show"
)

// Kinds lists every recognized kind in the order fields are merged.
var Kinds = []Kind{KindView, KindUpdateHandler, KindValidator, KindShowFunction}

// Name returns the lowercaps name, such as view, update
func (k Kind) Name() string {
	return string(k)
}

// FieldKey returns the design-document member this kind occupies.
// These keys are read by CouchDB itself, so they must match the wire
// contract exactly. Update handlers live under "updates", not under
// "update_handlers".
func (k Kind) FieldKey() string {
	switch k {
	case KindView:
		return "views"
	case KindUpdateHandler:
		return "updates"
	case KindValidator:
		return "validate_doc_update"
	case KindShowFunction:
		return "shows"
	default:
		return ""
	}
}

// Recognized reports whether k is part of the closed kind set.
func (k Kind) Recognized() bool {
	switch k {
	case KindView, KindUpdateHandler, KindValidator, KindShowFunction:
		return true
	default:
		return false
	}
}

// ParseKind parses a string into a typed Kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "view":
		return KindView, nil
	case "update":
		return KindUpdateHandler, nil
	case "validator":
		return KindValidator, nil
	case "show":
		return KindShowFunction, nil
	default:
		return "", fmt.Errorf("invalid kind: %s", name)
	}
}
