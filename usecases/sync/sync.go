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
	"context"
	"sort"
	"time"

	"github.com/weaviate/couchsync/entities/design"
)

// Sync reconciles the supplied definitions against their design
// documents and commits every document that changed in a single bulk
// request. It returns one outcome per changed document, in the order
// the documents were written.
//
// Definitions sharing a document name are merged into one document,
// regardless of kind. With removeMissing, artifacts stored under a
// kind that received at least one definition in this call but are no
// longer declared get deleted; a kind entirely absent from the input
// leaves its field untouched either way.
//
// onChange, if non-nil, is invoked per changed document in its final,
// not-yet-committed form. Structural failures (language conflict,
// duplicate validator, unsupported kind) abort the whole call before
// anything is written.
func (m *Manager) Sync(ctx context.Context, defs []design.Definition,
	removeMissing bool, onChange func(design.Document),
) ([]Outcome, error) {
	start := time.Now()
	defer m.metrics.ObserveSyncDuration(start)

	for _, def := range defs {
		if !def.Kind.Recognized() {
			m.metrics.IncSyncsFailed()
			return nil, NewErrUnsupportedKind(def.Kind, def.DocumentName)
		}
	}

	changed, err := m.collectChanged(ctx, defs, removeMissing, onChange)
	if err != nil {
		m.metrics.IncSyncsFailed()
		return nil, err
	}

	if len(changed) == 0 {
		m.logger.WithField("action", "sync_design_documents").
			Debug("all design documents already up to date")
		return nil, nil
	}

	outcomes, err := m.repo.BulkDocs(ctx, changed)
	if err != nil {
		m.metrics.IncSyncsFailed()
		return nil, err
	}

	m.metrics.AddDocumentsChanged(len(changed))
	for _, outcome := range outcomes {
		if !outcome.OK {
			m.metrics.IncCommitRejections()
			m.logger.WithField("action", "sync_design_documents").
				WithField("id", outcome.ID).
				WithField("error", outcome.ErrorKind).
				Warn("design document rejected by store")
		}
	}

	return outcomes, nil
}

// SyncOne reconciles a single definition, a convenience wrapper around
// Sync.
func (m *Manager) SyncOne(ctx context.Context, def design.Definition,
	removeMissing bool, onChange func(design.Document),
) ([]Outcome, error) {
	return m.Sync(ctx, []design.Definition{def}, removeMissing, onChange)
}

func (m *Manager) collectChanged(ctx context.Context, defs []design.Definition,
	removeMissing bool, onChange func(design.Document),
) ([]design.Document, error) {
	sorted := make([]design.Definition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DocumentName < sorted[j].DocumentName
	})

	var changed []design.Document
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].DocumentName == sorted[start].DocumentName {
			end++
		}

		doc, err := m.reconcileGroup(ctx, sorted[start:end], removeMissing)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			if onChange != nil {
				onChange(doc)
			}
			changed = append(changed, doc)
		}

		start = end
	}

	return changed, nil
}

// reconcileGroup merges one document's definitions into its stored
// state and returns the document if it changed, nil otherwise.
func (m *Manager) reconcileGroup(ctx context.Context, group []design.Definition,
	removeMissing bool,
) (design.Document, error) {
	id := group[0].DocID()

	doc, err := m.repo.GetDesignDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = design.NewDocument(id)
	}
	orig := doc.DeepCopy()

	byKind := partitionByKind(group)
	languages := map[string]struct{}{}
	for _, kind := range design.Kinds {
		if err := mergeKind(doc, kind, byKind[kind], removeMissing, languages); err != nil {
			return nil, err
		}
	}

	if err := applyLanguage(doc, languages); err != nil {
		return nil, err
	}

	if doc.Equal(orig) {
		return nil, nil
	}

	m.logger.WithField("action", "sync_design_documents").
		WithField("id", id).
		WithField("create", orig.Rev() == "").
		Debug("design document out of date")

	return doc, nil
}

// partitionByKind buckets a group's definitions by kind, preserving
// their relative order.
func partitionByKind(group []design.Definition) map[design.Kind][]design.Definition {
	byKind := map[design.Kind][]design.Definition{}
	for _, def := range group {
		byKind[def.Kind] = append(byKind[def.Kind], def)
	}
	return byKind
}

// applyLanguage enforces that all definitions merged into one document
// agree on a source language, then records it on the document. An
// empty language set means the document ended up without any declared
// artifacts and needs no language.
func applyLanguage(doc design.Document, languages map[string]struct{}) error {
	switch len(languages) {
	case 0:
		return nil
	case 1:
		for lang := range languages {
			doc.SetLanguage(lang)
		}
		return nil
	default:
		return NewErrLanguageConflict(doc.ID(), languages)
	}
}
