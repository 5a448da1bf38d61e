// Package docs holds the Swagger registration for the HTTP API.
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
        "/donations": {
            "post": {
                "tags": ["donations"],
                "summary": "Start a donation",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}, "502": {"description": "Payment gateway failure"}}
            }
        },
        "/donations/{code}": {
            "get": {
                "tags": ["donations"],
                "summary": "Get donation status",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Donation not found"}}
            }
        },
        "/webhooks/midtrans": {
            "post": {
                "tags": ["webhooks"],
                "summary": "Receive a payment gateway notification",
                "consumes": ["application/json"],
                "responses": {"200": {"description": "Acknowledged"}, "403": {"description": "Invalid signature"}, "404": {"description": "Unknown order"}, "503": {"description": "Retry later"}}
            }
        },
        "/api/v1/donations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["operator"],
                "summary": "List donations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/donations/{id}/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["operator"],
                "summary": "Confirm a manual donation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Donation is not pending"}}
            }
        },
        "/api/v1/donations/{id}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["operator"],
                "summary": "Reject or reverse a donation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Donation is already resolved"}}
            }
        },
        "/api/v1/programs/{id}/ledger": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["operator"],
                "summary": "Audit a program's collected amount",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Program not found"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Donation Payment API",
	Description:      "Donation intake, payment gateway reconciliation and operator confirmation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
