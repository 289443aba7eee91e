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
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/weaviate/couchsync/entities/design"
)

// fakeRepo is an in-memory store. It hands out deep copies so the
// manager's mutations never leak back without a commit, and it assigns
// incrementing revisions on write, the way the real store does.
type fakeRepo struct {
	docs map[string]design.Document

	getCalls  int
	bulkCalls [][]design.Document

	getErr  error
	bulkErr error

	// per-document rejections to report instead of writing, keyed by id
	rejections map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:       map[string]design.Document{},
		rejections: map[string]string{},
	}
}

func (f *fakeRepo) GetDesignDoc(ctx context.Context, id string) (design.Document, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	return doc.DeepCopy(), nil
}

func (f *fakeRepo) BulkDocs(ctx context.Context, docs []design.Document) ([]Outcome, error) {
	f.bulkCalls = append(f.bulkCalls, docs)
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}

	outcomes := make([]Outcome, len(docs))
	for i, doc := range docs {
		id := doc.ID()
		if kind, ok := f.rejections[id]; ok {
			outcomes[i] = Outcome{ID: id, ErrorKind: kind, Reason: "Document update conflict."}
			continue
		}

		stored := doc.DeepCopy()
		stored["_rev"] = fmt.Sprintf("%d-fakerev", len(f.bulkCalls))
		f.docs[id] = stored
		outcomes[i] = Outcome{OK: true, ID: id, Rev: stored.Rev()}
	}
	return outcomes, nil
}

// seed stores a document without going through BulkDocs.
func (f *fakeRepo) seed(doc design.Document) {
	f.docs[doc.ID()] = doc
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetDesignDoc(ctx context.Context, id string) (design.Document, error) {
	args := m.Called(ctx, id)
	doc, _ := args.Get(0).(design.Document)
	return doc, args.Error(1)
}

func (m *mockRepo) BulkDocs(ctx context.Context, docs []design.Document) ([]Outcome, error) {
	args := m.Called(ctx, docs)
	outcomes, _ := args.Get(0).([]Outcome)
	return outcomes, args.Error(1)
}
