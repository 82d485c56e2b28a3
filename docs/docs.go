// Package docs registers the swagger description of the session API.
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
        "/api/session": {
            "get": {"tags": ["session"], "summary": "Current session", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.sessionView"}}}}
        },
        "/api/session/header": {
            "put": {"tags": ["session"], "summary": "Update header fields and percentages",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "description": "fields to change", "schema": {"$ref": "#/definitions/server.headerRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.sessionView"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        },
        "/api/session/items": {
            "post": {"tags": ["items"], "summary": "Append a blank row", "produces": ["application/json"],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/server.sessionView"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        },
        "/api/session/items/{id}": {
            "patch": {"tags": ["items"], "summary": "Set one field of a row",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "item id"},
                    {"name": "body", "in": "body", "required": true, "description": "field is name, qty or price", "schema": {"$ref": "#/definitions/server.editItemRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.sessionView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.AppError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.AppError"}}}},
            "delete": {"tags": ["items"], "summary": "Remove a row", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true, "description": "item id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.sessionView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        },
        "/api/session/review": {
            "post": {"tags": ["session"], "summary": "Validate and enter review", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.sessionView"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        },
        "/api/session/close": {
            "post": {"tags": ["session"], "summary": "Leave review without changes", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.sessionView"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        },
        "/api/session/next": {
            "post": {"tags": ["session"], "summary": "Start the next invoice", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.sessionView"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        },
        "/api/session/preview": {
            "get": {"tags": ["export"], "summary": "HTML preview of the reviewed invoice", "produces": ["text/html"],
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        },
        "/api/session/export": {
            "get": {"tags": ["export"], "summary": "Download the reviewed invoice as PDF", "produces": ["application/pdf"],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/server.AppError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/server.AppError"}}}}
        }
    },
    "definitions": {
        "invoice.FieldError": {"type": "object", "properties": {
            "field": {"type": "string"}, "item_id": {"type": "string"}, "message": {"type": "string"}}},
        "invoice.Item": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "qty": {"type": "string"}, "price": {"type": "string"}}},
        "invoice.Totals": {"type": "object", "properties": {
            "sub_total": {"type": "number"}, "discount_amount": {"type": "number"},
            "tax_amount": {"type": "number"}, "total": {"type": "number"}}},
        "server.AppError": {"type": "object", "properties": {
            "code": {"type": "integer"}, "message": {"type": "string"},
            "errors": {"type": "array", "items": {"$ref": "#/definitions/invoice.FieldError"}}}},
        "server.displayTotals": {"type": "object", "properties": {
            "sub_total": {"type": "string"}, "discount": {"type": "string"},
            "tax": {"type": "string"}, "total": {"type": "string"}}},
        "server.editItemRequest": {"type": "object", "properties": {
            "field": {"type": "string"}, "value": {"type": "string"}}},
        "server.headerRequest": {"type": "object", "properties": {
            "invoice_number": {"type": "string"}, "cashier_name": {"type": "string"},
            "customer_name": {"type": "string"}, "discount_percent": {"type": "string"},
            "tax_percent": {"type": "string"}}},
        "server.sessionView": {"type": "object", "properties": {
            "state": {"type": "string", "enum": ["editing", "reviewing"]},
            "invoice_number": {"type": "string"}, "cashier_name": {"type": "string"},
            "customer_name": {"type": "string"}, "discount_percent": {"type": "string"},
            "tax_percent": {"type": "string"},
            "items": {"type": "array", "items": {"$ref": "#/definitions/invoice.Item"}},
            "totals": {"$ref": "#/definitions/invoice.Totals"},
            "display": {"$ref": "#/definitions/server.displayTotals"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Builder API",
	Description:      "Edit, review and export one invoice session.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
