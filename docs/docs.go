// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g internal/api/router.go -o docs
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
    "securityDefinitions": {
        "SessionToken": {
            "type": "apiKey",
            "name": "X-Session-Token",
            "in": "header"
        }
    },
    "paths": {
        "/auth": {
            "get": {"tags": ["auth"], "summary": "Current user", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}}},
            "post": {"tags": ["auth"], "summary": "Register, login or logout selected by the action field", "responses": {"200": {"description": "OK"}, "400": {"description": "Validation or duplicate email"}, "401": {"description": "Invalid credentials"}, "405": {"description": "Unknown action"}}}
        },
        "/bookings": {
            "get": {"tags": ["bookings"], "summary": "List bookings or fetch one by id", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["bookings"], "summary": "Create a booking", "responses": {"200": {"description": "OK"}, "400": {"description": "Validation"}}},
            "put": {"tags": ["bookings"], "summary": "Update details (owner) or progress status (admin, assigned employee)", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["bookings"], "summary": "Cancel a booking", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/reviews": {
            "get": {"tags": ["reviews"], "summary": "List reviews", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reviews"], "summary": "Submit a review", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["reviews"], "summary": "Approve or reject a review", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["reviews"], "summary": "Withdraw a review", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/feedback": {
            "get": {"tags": ["feedback"], "summary": "List feedback", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["feedback"], "summary": "Submit feedback", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["feedback"], "summary": "Mark feedback read", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/services": {
            "get": {"tags": ["services"], "summary": "List services or categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["services"], "summary": "Create a service", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["services"], "summary": "Update a service", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["services"], "summary": "Delete a service", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/users": {
            "get": {"tags": ["users"], "summary": "Get one user or list users", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "summary": "Create a user with a temporary password", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["users"], "summary": "Update a user", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["users"], "summary": "Deactivate a user and end its sessions", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}}
        },
        "/schedule": {
            "get": {"tags": ["schedule"], "summary": "List active schedule entries", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["schedule"], "summary": "Create or replace a schedule entry", "security": [{"SessionToken": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Salon Booking API",
	Description:      "Bookings, reviews, feedback and catalog for a beauty salon, behind session-token authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
