package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hn-reader/server/hn"
	"hn-reader/server/store"
	"hn-reader/server/summary"
)

func newStubHN(t *testing.T, items map[int]*hn.Item, top []int) *hn.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(top)
	})
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/item/"), ".json")
		id, _ := strconv.Atoi(name)
		item, ok := items[id]
		if !ok {
			w.Write([]byte("null"))
			return
		}
		json.NewEncoder(w).Encode(item)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return hn.NewClientWithBaseURL(srv.URL)
}

type memCache struct{ m map[string]string }

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.m[key]; ok {
		return v, nil
	}
	return "", store.ErrCacheMiss
}
func (c *memCache) Set(ctx context.Context, key, value string) error { c.m[key] = value; return nil }
func (c *memCache) Name() string                                     { return "mem" }

type stubSummarizer struct {
	calls atomic.Int64
	out   string
	err   error
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s.calls.Add(1)
	return s.out, s.err
}

type stubExtractor struct{ text string }

func (s *stubExtractor) PageText(ctx context.Context, url string) (string, error) {
	return s.text, nil
}

func newTestServer(t *testing.T, items map[int]*hn.Item, top []int, summarizer *stubSummarizer) *httptest.Server {
	t.Helper()
	client := newStubHN(t, items, top)
	topList := store.NewTopList()
	svc := summary.NewService(&memCache{m: map[string]string{}}, summarizer, &stubExtractor{text: "page"})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stories", NewStoriesHandler(client, topList).ListStories)
	mux.HandleFunc("GET /api/stories/{id}", NewStoryHandler(client).GetStory)
	mux.HandleFunc("POST /api/summarize", NewSummarizeHandler(svc).Summarize)
	srv := httptest.NewServer(Logging(mux))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out interface{}) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestListStoriesPagination(t *testing.T) {
	items := map[int]*hn.Item{}
	var top []int
	for id := 1; id <= 25; id++ {
		items[id] = &hn.Item{ID: id, Type: "story", By: "u", Title: "t" + strconv.Itoa(id), Score: id}
		top = append(top, id)
	}
	srv := newTestServer(t, items, top, &stubSummarizer{out: "s"})

	var page0 []*hn.Story
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/stories?page=0", &page0))
	require.Len(t, page0, 10)
	assert.Equal(t, 1, page0[0].ID)
	assert.Equal(t, 10, page0[9].ID)

	var page2 []*hn.Story
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/stories?page=2", &page2))
	assert.Len(t, page2, 5)

	// Past the ranked list: an empty page signals no more stories.
	var page9 []*hn.Story
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/stories?page=9", &page9))
	assert.Empty(t, page9)
}

func TestGetStoryWithoutComments(t *testing.T) {
	items := map[int]*hn.Item{
		1: {ID: 1, Type: "story", By: "u", Title: "childless"},
	}
	srv := newTestServer(t, items, nil, &stubSummarizer{out: "s"})

	var resp struct {
		Story    *hn.Story     `json:"story"`
		Comments []*hn.Comment `json:"comments"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/stories/1", &resp))
	assert.Equal(t, "childless", resp.Story.Title)
	assert.NotNil(t, resp.Comments)
	assert.Empty(t, resp.Comments)
}

func TestGetStoryExcludesDeadComments(t *testing.T) {
	items := map[int]*hn.Item{
		2:  {ID: 2, Type: "story", By: "u", Title: "story", Kids: []int{10, 11}, Descendants: 2},
		10: {ID: 10, Type: "comment", By: "a", Text: "visible"},
		11: {ID: 11, Type: "comment", By: "b", Text: "hidden", Dead: true},
	}
	srv := newTestServer(t, items, nil, &stubSummarizer{out: "s"})

	var resp struct {
		Comments []*hn.Comment `json:"comments"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/stories/2", &resp))
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, 10, resp.Comments[0].ID)
}

func TestGetStoryNotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil, &stubSummarizer{out: "s"})
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/stories/404", nil))
}

func TestGetStoryInvalidID(t *testing.T) {
	srv := newTestServer(t, nil, nil, &stubSummarizer{out: "s"})
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/stories/banana", nil))
}

func TestSummarizeEndpoint(t *testing.T) {
	summarizer := &stubSummarizer{out: "the gist"}
	srv := newTestServer(t, nil, nil, summarizer)

	var resp map[string]string
	status := postJSON(t, srv.URL+"/api/summarize", `{"comments":[{"id":5,"text":"hello"}]}`, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "the gist", resp["summary"])
}

func TestSummarizeEndpointEmptyComments(t *testing.T) {
	summarizer := &stubSummarizer{out: "unused"}
	srv := newTestServer(t, nil, nil, summarizer)

	var resp map[string]string
	status := postJSON(t, srv.URL+"/api/summarize", `{"comments":[]}`, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", resp["summary"])
	assert.Zero(t, summarizer.calls.Load())
}

func TestSummarizeEndpointMissingParameter(t *testing.T) {
	srv := newTestServer(t, nil, nil, &stubSummarizer{out: "s"})

	var resp map[string]string
	status := postJSON(t, srv.URL+"/api/summarize", `{}`, &resp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, resp["error"])
}

func TestSummarizeEndpointInvalidBody(t *testing.T) {
	srv := newTestServer(t, nil, nil, &stubSummarizer{out: "s"})
	assert.Equal(t, http.StatusBadRequest, postJSON(t, srv.URL+"/api/summarize", `{not json`, nil))
}

func TestSummarizeEndpointFailure(t *testing.T) {
	summarizer := &stubSummarizer{err: errors.New("model unavailable")}
	srv := newTestServer(t, nil, nil, summarizer)

	var resp map[string]string
	status := postJSON(t, srv.URL+"/api/summarize", `{"comments":[{"id":5,"text":"hello"}]}`, &resp)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, resp["error"], "model unavailable")
}
