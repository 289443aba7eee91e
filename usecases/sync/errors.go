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

import (
	"fmt"
	"sort"
	"strings"

	"github.com/weaviate/couchsync/entities/design"
)

// ErrLanguageConflict indicates that the definitions destined for one
// design document do not agree on a source language. It aborts the
// whole sync, nothing is written.
type ErrLanguageConflict struct {
	DocID     string
	Languages []string
}

func NewErrLanguageConflict(docID string, languages map[string]struct{}) error {
	sorted := make([]string, 0, len(languages))
	for lang := range languages {
		sorted = append(sorted, lang)
	}
	sort.Strings(sorted)

	return ErrLanguageConflict{DocID: docID, Languages: sorted}
}

func (err ErrLanguageConflict) Error() string {
	return fmt.Sprintf("design document %s mixes source languages: %s",
		err.DocID, strings.Join(err.Languages, ", "))
}

// ErrDuplicateValidator indicates more than one validate_doc_update
// function destined for one design document. The field holds a single
// code string, there is no per-name slot.
type ErrDuplicateValidator struct {
	DocID string
	Count int
}

func NewErrDuplicateValidator(docID string, count int) error {
	return ErrDuplicateValidator{DocID: docID, Count: count}
}

func (err ErrDuplicateValidator) Error() string {
	return fmt.Sprintf("design document %s: %d validate_doc_update functions supplied, the document holds at most one",
		err.DocID, err.Count)
}

// ErrUnsupportedKind indicates a definition outside the closed kind
// set. It fails the call before any document is fetched.
type ErrUnsupportedKind struct {
	Kind         design.Kind
	DocumentName string
}

func NewErrUnsupportedKind(kind design.Kind, documentName string) error {
	return ErrUnsupportedKind{Kind: kind, DocumentName: documentName}
}

func (err ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("unsupported definition kind %q for %s%s",
		err.Kind, design.Prefix, err.DocumentName)
}

// ErrStoreUnavailable wraps a transport failure from the store
// collaborator. The reconciler propagates it unchanged and never
// retries.
type ErrStoreUnavailable struct {
	Op  string
	Err error
}

func NewErrStoreUnavailable(op string, err error) error {
	return ErrStoreUnavailable{Op: op, Err: err}
}

func (err ErrStoreUnavailable) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", err.Op, err.Err)
}

func (err ErrStoreUnavailable) Unwrap() error {
	return err.Err
}
