package docs_test

import (
	"encoding/json"
	"strings"
	"testing"

	"seriesapi/docs"
	"seriesapi/repository"
	"seriesapi/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type operation struct {
	Summary   string                     `json:"summary"`
	Responses map[string]json.RawMessage `json:"responses"`
}

type document struct {
	BasePath    string                          `json:"basePath"`
	Paths       map[string]map[string]operation `json:"paths"`
	Definitions map[string]json.RawMessage      `json:"definitions"`
}

func readDocument(t *testing.T) (document, string) {
	raw := docs.SwaggerInfo.ReadDoc()
	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc), raw)
	return doc, raw
}

func TestEveryRouteIsDocumented(t *testing.T) {
	doc, _ := readDocument(t)
	assert.Equal(t, "/api/v1", doc.BasePath)

	routes := router.Routes(router.Deps{Repos: &repository.Repositories{}})
	documented := 0
	for _, r := range routes {
		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		op, ok := doc.Paths[path][strings.ToLower(r.Method)]
		if !assert.True(t, ok, "%s %s missing from swagger", r.Method, path) {
			continue
		}
		documented++
		assert.NotEmpty(t, op.Summary, "%s %s", r.Method, path)
		assert.NotEmpty(t, op.Responses, "%s %s", r.Method, path)
	}

	total := 0
	for _, ops := range doc.Paths {
		total += len(ops)
	}
	assert.Equal(t, documented, total, "swagger documents routes that are not mounted")
}

func TestDefinitionRefsResolve(t *testing.T) {
	doc, raw := readDocument(t)

	const prefix = `"$ref": "#/definitions/`
	for rest := raw; ; {
		i := strings.Index(rest, prefix)
		if i < 0 {
			break
		}
		rest = rest[i+len(prefix):]
		name := rest[:strings.Index(rest, `"`)]
		assert.Contains(t, doc.Definitions, name)
	}
}
