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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/weaviate/couchsync/entities/design"
	"github.com/weaviate/couchsync/usecases/sync"
)

// Repo talks to one CouchDB database over HTTP and implements the
// store collaborator of the sync manager. Reads of design documents
// are retried on transient failures. The bulk commit is issued exactly
// once: a retried _bulk_docs would report the first attempt's writes
// as spurious conflicts.
type Repo struct {
	baseURL    string
	database   string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func New(baseURL, database string, timeout time.Duration, logger logrus.FieldLogger) *Repo {
	return &Repo{
		baseURL:  strings.TrimRight(baseURL, "/"),
		database: database,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetDesignDoc fetches one design document, returning nil without
// error when the store holds no document under that id.
func (r *Repo) GetDesignDoc(ctx context.Context, id string) (design.Document, error) {
	endpoint := r.docURL(id)

	var doc design.Document
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "create GET request"))
		}
		req.Header.Add("Accept", "application/json")

		res, err := r.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "send GET request")
		}
		defer res.Body.Close()

		switch {
		case res.StatusCode == http.StatusNotFound:
			doc = nil
			return nil
		case res.StatusCode == http.StatusOK:
			doc = design.Document{}
			if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
				return backoff.Permanent(errors.Wrap(err, "decode response body"))
			}
			return nil
		case res.StatusCode >= 500:
			return errors.Errorf("unexpected status code %d", res.StatusCode)
		default:
			body, _ := io.ReadAll(res.Body)
			return backoff.Permanent(errors.Errorf("unexpected status code %d (%s)",
				res.StatusCode, bytes.TrimSpace(body)))
		}
	}

	if err := backoff.Retry(operation, readBackoff(ctx)); err != nil {
		return nil, sync.NewErrStoreUnavailable("get "+id, err)
	}
	return doc, nil
}

type bulkDocsRequest struct {
	Docs []design.Document `json:"docs"`
}

type bulkDocsResult struct {
	ID     string `json:"id"`
	Rev    string `json:"rev"`
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// BulkDocs writes all documents through one _bulk_docs request. The
// store answers per document: accepted documents carry their new
// revision, rejected ones an error kind such as "conflict".
func (r *Repo) BulkDocs(ctx context.Context, docs []design.Document) ([]sync.Outcome, error) {
	body, err := json.Marshal(bulkDocsRequest{Docs: docs})
	if err != nil {
		return nil, errors.Wrap(err, "marshal body")
	}

	endpoint := fmt.Sprintf("%s/%s/_bulk_docs", r.baseURL, url.PathEscape(r.database))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create POST request")
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	res, err := r.httpClient.Do(req)
	if err != nil {
		return nil, sync.NewErrStoreUnavailable("bulk docs",
			errors.Wrap(err, "send POST request"))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		return nil, sync.NewErrStoreUnavailable("bulk docs",
			errors.Errorf("unexpected status code %d (%s)",
				res.StatusCode, bytes.TrimSpace(resBody)))
	}

	var results []bulkDocsResult
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return nil, sync.NewErrStoreUnavailable("bulk docs",
			errors.Wrap(err, "decode response body"))
	}

	outcomes := make([]sync.Outcome, len(results))
	for i, result := range results {
		outcomes[i] = sync.Outcome{
			OK:        result.Error == "",
			ID:        result.ID,
			Rev:       result.Rev,
			ErrorKind: result.Error,
			Reason:    result.Reason,
		}
	}
	return outcomes, nil
}

func (r *Repo) docURL(id string) string {
	name := strings.TrimPrefix(id, design.Prefix)
	return fmt.Sprintf("%s/%s/_design/%s", r.baseURL,
		url.PathEscape(r.database), url.PathEscape(name))
}

// readBackoff bounds the retries of a single read against the store
func readBackoff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(50*time.Millisecond), 3), ctx)
}
