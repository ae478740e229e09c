// Package docs registers the Swagger spec for the admin API. It would
// normally be regenerated by `swag init`; the template below is
// hand-maintained instead since only two endpoints exist.
package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "HomeDNS Support",
            "url": "https://github.com/arlo-voss/homedns"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "description": "Returns server health status",
                "responses": {
                    "200": { "description": "OK" }
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Server statistics",
                "description": "Returns runtime statistics including system CPU usage, memory usage, and DNS metrics",
                "responses": {
                    "200": { "description": "OK" }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger metadata.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "HomeDNS Management API",
	Description:      "REST API for monitoring HomeDNS server health and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
