package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultPage = `<html><body>
<div class="result">
<a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Ffr.wikipedia.org%2Fwiki%2FParis&amp;rut=abc123">Paris - Wikipedia</a>
<a class="result__snippet" href="#">Paris est la <b>capitale</b> de la France.</a>
</div>
<div class="result">
<a rel="nofollow" class="result__a" href="https://example.org/tour-eiffel">Tour Eiffel &amp; environs</a>
<a class="result__snippet" href="#">Monument de fer &#224; Paris.</a>
</div>
<div class="result">
<a rel="nofollow" class="result__a" href="https://example.org/trois">Troisi&egrave;me</a>
<a class="result__snippet" href="#">Jamais retenu.</a>
</div>
</body></html>`

func TestOfflineProvider(t *testing.T) {
	p := Offline{}
	if p.Name() != "mock" {
		t.Fatalf("Name() = %q, want %q", p.Name(), "mock")
	}

	results, err := p.Search(context.Background(), "capitale de la France")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "web_search:capitale de la France", r.Subject)
	assert.Equal(t, "Aucune recherche en ligne réelle n'a été effectuée pour 'capitale de la France'.", r.Summary)
	assert.Equal(t, "web", r.Provenance)
	assert.Empty(t, r.URL)
	require.NotNil(t, r.Confidence)
	assert.Equal(t, 0.5, *r.Confidence)
}

func TestParseResultPage(t *testing.T) {
	hits := parseResultPage(resultPage, 2)
	require.Len(t, hits, 2)

	assert.Equal(t, "Paris - Wikipedia", hits[0].title)
	assert.Equal(t, "https://fr.wikipedia.org/wiki/Paris", hits[0].url)
	assert.Equal(t, "Paris est la capitale de la France.", hits[0].snippet)

	assert.Equal(t, "Tour Eiffel & environs", hits[1].title)
	assert.Equal(t, "https://example.org/tour-eiffel", hits[1].url)
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fgolang.org%2Fdoc", "https://golang.org/doc"},
		{"https://example.org/direct", "https://example.org/direct"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resolveRedirect(tt.href); got != tt.want {
			t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>gras</b> et <i>italique</i>", "gras et italique"},
		{"A &amp; B &lt;c&gt;", "A & B <c>"},
		{"l&#39;air", "l'air"},
		{"un&nbsp;espace", "un espace"},
		{"caf&eacute; &#233;t&eacute;", "caf t"},
		{"  entoure  ", "entoure"},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDuckDuckGoSearch(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(resultPage))
	}))
	defer srv.Close()

	p := NewDuckDuckGo(2, false, nil)
	p.baseURL = srv.URL + "/"

	results, err := p.Search(context.Background(), "capitale de la France")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "capitale de la France", gotQuery)
	assert.Equal(t, userAgent, gotAgent)

	assert.Equal(t, "web_search:capitale de la France", results[0].Subject)
	assert.Equal(t, "Paris - Wikipedia : Paris est la capitale de la France.", results[0].Summary)
	assert.Equal(t, "https://fr.wikipedia.org/wiki/Paris", results[0].URL)
	assert.Equal(t, "web", results[0].Provenance)
	assert.Nil(t, results[0].Confidence)
}

func TestDuckDuckGoSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewDuckDuckGo(3, false, nil)
	p.baseURL = srv.URL + "/"

	_, err := p.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestDuckDuckGoSearchEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>aucun résultat</body></html>"))
	}))
	defer srv.Close()

	p := NewDuckDuckGo(3, false, nil)
	p.baseURL = srv.URL + "/"

	results, err := p.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}
