package swagger

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type document struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func TestDocRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Geotree API", doc.Info.Title)

	routes := map[string]string{
		"/countries":              "get",
		"/countries/{id}":         "get",
		"/countries/import":       "post",
		"/countries/import/plan":  "get",
		"/integrity":              "get",
		"/integrity/schema":       "get",
		"/integrity/translations": "get",
		"/integrity/snapshots":    "get",
	}
	for path, method := range routes {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}

	for _, def := range []string{"country.Summary", "country.CountryDetail", "checks.SchemaReport", "checks.TranslationReport", "checks.SnapshotReport"} {
		assert.Contains(t, doc.Definitions, def)
	}
}

func TestDocServed(t *testing.T) {
	app := fiber.New()
	app.Get("/swagger/*", swagger.HandlerDefault)

	resp, err := app.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/countries/import/plan")
}
