package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Summary    string `json:"summary"`
		Parameters []struct {
			Name string `json:"name"`
			In   string `json:"in"`
		} `json:"parameters"`
	} `json:"paths"`
}

var routeParam = regexp.MustCompile(`:(\w+)`)

func readSwaggerDoc(t *testing.T) swaggerDoc {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestSwaggerDocCoversRoutes(t *testing.T) {
	ts := newTestServer(t)
	doc := readSwaggerDoc(t)

	for _, route := range ts.app.GetRoutes(true) {
		if route.Method == http.MethodHead || !strings.HasPrefix(route.Path, "/api/v1/") {
			continue
		}
		path := strings.TrimSuffix(strings.TrimPrefix(route.Path, "/api/v1"), "/")
		path = routeParam.ReplaceAllString(path, "{$1}")

		op, ok := doc.Paths[path][strings.ToLower(route.Method)]
		if assert.True(t, ok, "%s %s is undocumented", route.Method, path) {
			assert.NotEmpty(t, op.Summary, "%s %s has no summary", route.Method, path)
		}
	}
}

func TestSwaggerDocListsVideoFilters(t *testing.T) {
	doc := readSwaggerDoc(t)
	op, ok := doc.Paths["/videos"]["get"]
	require.True(t, ok)

	var query []string
	for _, p := range op.Parameters {
		if p.In == "query" {
			query = append(query, p.Name)
		}
	}
	assert.ElementsMatch(t, []string{"page", "limit", "query", "sortBy", "sortType", "userId"}, query)
}
