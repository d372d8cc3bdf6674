package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRefs(t *testing.T) {
	in := map[string]interface{}{
		"schema": map[string]interface{}{"$ref": "#/definitions/handler.FeeResponse"},
		"parameters": []interface{}{
			map[string]interface{}{"name": "unit", "in": "query", "type": "integer", "description": "Unit number"},
		},
	}

	out := convertRefs(in).(map[string]interface{})

	schema := out["schema"].(map[string]interface{})
	assert.Equal(t, "#/components/schemas/handler.FeeResponse", schema["$ref"])

	param := out["parameters"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "unit", param["name"])
	assert.NotContains(t, param, "type")
	assert.Equal(t, map[string]interface{}{"type": "integer"}, param["schema"])
}

func TestLiftBodyParams(t *testing.T) {
	paths := map[string]interface{}{
		"/tariffs": map[string]interface{}{
			"post": map[string]interface{}{
				"parameters": []interface{}{
					map[string]interface{}{
						"name":     "request",
						"in":       "body",
						"required": true,
						"schema":   map[string]interface{}{"$ref": "#/components/schemas/handler.TariffRequest"},
					},
				},
			},
		},
	}

	liftBodyParams(paths)

	op := paths["/tariffs"].(map[string]interface{})["post"].(map[string]interface{})
	assert.NotContains(t, op, "parameters")
	body := op["requestBody"].(map[string]interface{})
	assert.Equal(t, true, body["required"])
	content := body["content"].(map[string]interface{})
	assert.Contains(t, content, "application/json")
}

func TestServeOpenAPI3Spec(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/openapi.json", nil), rec)

	require.NoError(t, ServeOpenAPI3Spec(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc OpenAPI3Spec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/fees")
	assert.Contains(t, doc.Components, "securitySchemes")

	raw := rec.Body.String()
	assert.NotContains(t, raw, "#/definitions/")
	assert.NotContains(t, raw, `"in":"body"`)
}
