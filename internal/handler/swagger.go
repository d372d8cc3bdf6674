package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/condo/condo-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec is the subset of an OpenAPI 3.0 document served at /openapi.json
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// APIServers are advertised in the converted document. main overrides the
// production entry from configuration.
var APIServers = []Server{
	{URL: "http://localhost:8080/api/v1", Description: "Local Development"},
}

const (
	swaggerDefinitions = "#/definitions/"
	openAPISchemas     = "#/components/schemas/"
)

// convertRefs rewrites Swagger 2.0 $refs to component refs and converts
// non-body parameters to the 3.0 schema form
func convertRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return convertParameter(v)
			}
		}
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, swaggerDefinitions, openAPISchemas, 1)
				continue
			}
			out[key] = convertRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = convertRefs(item)
		}
		return out
	default:
		return data
	}
}

func convertParameter(param map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	if param["in"] == "body" {
		for key, val := range param {
			out[key] = val
		}
		out["schema"] = convertRefs(param["schema"])
		return out
	}
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}
	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		val, ok := param[field]
		if !ok {
			continue
		}
		if field == "items" {
			val = convertRefs(val)
		}
		schema[field] = val
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

// liftBodyParams moves "in: body" parameters of every operation into a
// requestBody, which 3.0 requires
func liftBodyParams(paths map[string]interface{}) {
	for _, item := range paths {
		ops, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for _, op := range ops {
			operation, ok := op.(map[string]interface{})
			if !ok {
				continue
			}
			params, _ := operation["parameters"].([]interface{})
			kept := params[:0]
			for _, p := range params {
				param, _ := p.(map[string]interface{})
				if param == nil || param["in"] != "body" {
					kept = append(kept, p)
					continue
				}
				operation["requestBody"] = map[string]interface{}{
					"required": param["required"],
					"content": map[string]interface{}{
						"application/json": map[string]interface{}{"schema": param["schema"]},
					},
				}
			}
			if len(kept) == 0 {
				delete(operation, "parameters")
			} else {
				operation["parameters"] = kept
			}
		}
	}
}

// ServeOpenAPI3Spec serves the generated Swagger 2.0 document converted to OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}

	info, _ := swagger2["info"].(map[string]interface{})
	paths, _ := swagger2["paths"].(map[string]interface{})
	converted, _ := convertRefs(paths).(map[string]interface{})
	if converted == nil {
		converted = map[string]interface{}{}
	}
	liftBodyParams(converted)

	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = convertRefs(definitions)
	}

	return c.JSON(http.StatusOK, OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    APIServers,
		Paths:      converted,
		Components: components,
	})
}
