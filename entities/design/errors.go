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

// ErrInvalidDefinition indicates a malformed definition, e.g. a
// kind-specific option applied to a kind that does not support it. It
// is raised at construction time only, never during reconciliation.
type ErrInvalidDefinition struct {
	DocumentName string
	Msg          string
}

func NewErrInvalidDefinition(documentName, msg string, args ...interface{}) error {
	return ErrInvalidDefinition{
		DocumentName: documentName,
		Msg:          fmt.Sprintf(msg, args...),
	}
}

func (err ErrInvalidDefinition) Error() string {
	return fmt.Sprintf("invalid definition for %s%s: %s", Prefix, err.DocumentName, err.Msg)
}
