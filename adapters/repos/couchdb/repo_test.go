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

package couchdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaviate/couchsync/entities/design"
	"github.com/weaviate/couchsync/usecases/sync"
)

func newTestRepo(t *testing.T, handler http.HandlerFunc) *Repo {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger, _ := test.NewNullLogger()
	return New(server.URL, "appdb", 2*time.Second, logger)
}

func TestGetDesignDoc(t *testing.T) {
	ctx := context.Background()

	t.Run("existing document", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/appdb/_design/foo", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"_id":"_design/foo","_rev":"3-xyz","language":"javascript",` +
				`"views":{"all":{"map":"function(doc) {}"}}}`))
		})

		doc, err := repo.GetDesignDoc(ctx, "_design/foo")
		require.Nil(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "_design/foo", doc.ID())
		assert.Equal(t, "3-xyz", doc.Rev())
		assert.NotNil(t, doc.Field("views")["all"])
	})

	t.Run("missing document is not an error", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not_found","reason":"missing"}`))
		})

		doc, err := repo.GetDesignDoc(ctx, "_design/foo")
		require.Nil(t, err)
		assert.Nil(t, doc)
	})

	t.Run("transient server errors are retried", func(t *testing.T) {
		attempts := 0
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"_id":"_design/foo","_rev":"1-abc"}`))
		})

		doc, err := repo.GetDesignDoc(ctx, "_design/foo")
		require.Nil(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, 3, attempts)
	})

	t.Run("persistent failure surfaces as store unavailable", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := repo.GetDesignDoc(ctx, "_design/foo")

		var unavailable sync.ErrStoreUnavailable
		require.True(t, errors.As(err, &unavailable))
		assert.Equal(t, "get _design/foo", unavailable.Op)
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		attempts := 0
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
		})

		_, err := repo.GetDesignDoc(ctx, "_design/foo")
		assert.NotNil(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestBulkDocs(t *testing.T) {
	ctx := context.Background()

	t.Run("one request, per-document outcomes in order", func(t *testing.T) {
		requests := 0
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			assert.Equal(t, "/appdb/_bulk_docs", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var body bulkDocsRequest
			require.Nil(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Docs, 2)
			assert.Equal(t, "_design/d1", body.Docs[0].ID())

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`[{"ok":true,"id":"_design/d1","rev":"1-a"},` +
				`{"id":"_design/d2","error":"conflict","reason":"Document update conflict."}]`))
		})

		outcomes, err := repo.BulkDocs(ctx, []design.Document{
			design.NewDocument("_design/d1"),
			design.NewDocument("_design/d2"),
		})
		require.Nil(t, err)
		assert.Equal(t, 1, requests)
		require.Len(t, outcomes, 2)

		assert.True(t, outcomes[0].OK)
		assert.Equal(t, "_design/d1", outcomes[0].ID)
		assert.Equal(t, "1-a", outcomes[0].Rev)

		assert.False(t, outcomes[1].OK)
		assert.Equal(t, "conflict", outcomes[1].ErrorKind)
		assert.Equal(t, "Document update conflict.", outcomes[1].Reason)
	})

	t.Run("unexpected status surfaces as store unavailable", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := repo.BulkDocs(ctx, []design.Document{design.NewDocument("_design/d1")})

		var unavailable sync.ErrStoreUnavailable
		require.True(t, errors.As(err, &unavailable))
		assert.Equal(t, "bulk docs", unavailable.Op)
	})
}
