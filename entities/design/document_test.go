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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentDeepCopy(t *testing.T) {
	doc := Document{
		"_id":      "_design/foo",
		"_rev":     "1-abc",
		"language": "javascript",
		"views": map[string]interface{}{
			"all": map[string]interface{}{
				"map":     "function(doc) {}",
				"options": map[string]interface{}{"collation": "raw"},
			},
		},
	}

	orig := doc.DeepCopy()
	require.True(t, doc.Equal(orig))

	doc.EnsureField("views")["extra"] = map[string]interface{}{"map": "function(doc) {}"}
	doc.SetLanguage("python")

	assert.False(t, doc.Equal(orig))
	assert.Nil(t, orig.Field("views")["extra"], "the copy shares no state with the original")
	lang, ok := orig.Language()
	require.True(t, ok)
	assert.Equal(t, "javascript", lang)
}

func TestDocumentAccessors(t *testing.T) {
	doc := NewDocument("_design/foo")

	assert.Equal(t, "_design/foo", doc.ID())
	assert.Equal(t, "", doc.Rev(), "a fresh document has no revision")
	assert.Nil(t, doc.Field("views"))

	field := doc.EnsureField("views")
	field["all"] = map[string]interface{}{"map": "function(doc) {}"}
	assert.Equal(t, field, doc.Field("views"))

	_, ok := doc.Language()
	assert.False(t, ok)
}
