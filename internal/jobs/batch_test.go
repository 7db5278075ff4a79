package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvgen/internal/types"
)

func TestAnalyzeBatch_PreservesOrderAndContinues(t *testing.T) {
	server := postingServer(t)
	a := newTestAnalyzer(t)

	urls := []string{
		server.URL + "/jobs/1",
		server.URL + "/missing",
		"not a url",
		server.URL + "/jobs/1",
	}
	batch := a.AnalyzeBatch(context.Background(), urls, &BatchOptions{Concurrency: 2})

	assert.NotEmpty(t, batch.ID)
	require.Len(t, batch.Results, len(urls))
	for i, r := range batch.Results {
		assert.Equal(t, urls[i], r.Source.URL)
	}
	assert.Nil(t, batch.Results[0].FetchError)
	assert.Equal(t, types.FetchHTTPStatus, batch.Results[1].FetchError.Kind)
	assert.Equal(t, types.FetchInvalidURL, batch.Results[2].FetchError.Kind)
	assert.Equal(t, "Senior Go Engineer", batch.Results[3].Title)
	assert.Equal(t, 2, batch.Failed)
	assert.False(t, batch.AllFailed())
	assert.NotEqual(t, batch.Results[0].ID, batch.Results[3].ID)
}

func TestAnalyzeBatch_AllFailed(t *testing.T) {
	batch := newTestAnalyzer(t).AnalyzeBatch(context.Background(), []string{"::", "nope"}, nil)
	assert.Equal(t, 2, batch.Failed)
	assert.True(t, batch.AllFailed())

	empty := newTestAnalyzer(t).AnalyzeBatch(context.Background(), nil, nil)
	assert.Empty(t, empty.Results)
	assert.False(t, empty.AllFailed())
}
