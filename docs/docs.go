// Package docs holds the swagger document for the rolodex API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/token": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain an access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"APIToken": []}],
                "description": "Staff entries plus the caller's own record, in random order.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List the directory",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listUsersResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/users/{uid}": {
            "get": {
                "security": [{"APIToken": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Look up a directory entry",
                "parameters": [
                    {"type": "integer", "description": "User identifier", "name": "uid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.getUserResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"APIToken": []}],
                "description": "Body maps writable attributes (name, location, department, position, notes) to new values; null deletes an attribute.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Edit the caller's own record",
                "parameters": [
                    {"type": "integer", "description": "User identifier", "name": "uid", "in": "path", "required": true},
                    {"description": "Attribute changes", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "304": {"description": "Not Modified"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"status": {"type": "integer"}, "error": {"type": "string"}}
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "token": {"type": "string"},
                "uid": {"type": "integer"},
                "expires": {"type": "integer"}
            }
        },
        "handler.listUsersResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "users": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "handler.getUserResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "user": {"type": "object", "additionalProperties": true}
            }
        },
        "handler.statusResponse": {
            "type": "object",
            "properties": {"status": {"type": "integer"}}
        }
    },
    "securityDefinitions": {
        "APIToken": {"type": "apiKey", "name": "X-API-Token", "in": "header"},
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Rolodex API",
	Description:      "Corporate directory with token-based access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
