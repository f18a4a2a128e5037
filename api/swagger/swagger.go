package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FarmTrack API",
        "description": "Farm management backend: herd registry, heat detection, sensor ingestion, breeding calendar",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Cows", "description": "Herd registry"},
        {"name": "Heat", "description": "Heat detection and breeding windows"},
        {"name": "Sensors", "description": "Sensor event gateway"},
        {"name": "Breeding", "description": "Breeding calendar"},
        {"name": "Health", "description": "Veterinary records"},
        {"name": "Alerts", "description": "Heat alerts"},
        {"name": "Dashboard", "description": "Farm overview and analytics"},
        {"name": "Notifications", "description": "Stored notifications"},
        {"name": "Reports", "description": "Downloadable exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/api/v1/cows": {
            "get": {
                "tags": ["Cows"],
                "summary": "List cows",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Cows"],
                "summary": "Register cow",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate tag number"}
                }
            }
        },
        "/api/v1/cows/{id}": {
            "get": {
                "tags": ["Cows"],
                "summary": "Get cow detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Cows"],
                "summary": "Update cow",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "delete": {
                "tags": ["Cows"],
                "summary": "Delete cow",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/heat-detections": {
            "get": {
                "tags": ["Heat"],
                "summary": "List heat records for a cow",
                "parameters": [
                    {"name": "cow_id", "in": "query", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Heat"],
                "summary": "Record a heat detection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Heat record, alert and breeding window"},
                    "404": {"description": "Cow not found"}
                }
            }
        },
        "/api/v1/heat-detections/{id}/inseminated": {
            "patch": {
                "tags": ["Heat"],
                "summary": "Flag a heat record as inseminated",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Flagged"}
                }
            }
        },
        "/api/v1/sensor-events": {
            "post": {
                "tags": ["Sensors"],
                "summary": "Ingest a sensor event",
                "parameters": [
                    {"name": "X-API-Key", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Stored record"},
                    "400": {"description": "Unknown type or missing fields"},
                    "401": {"description": "Invalid api key"},
                    "404": {"description": "No open check-in for check_out"}
                }
            }
        },
        "/api/v1/milk-production": {
            "get": {
                "tags": ["Sensors"],
                "summary": "List milk production records",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "cow_id", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/attendance": {
            "get": {
                "tags": ["Sensors"],
                "summary": "List attendance records",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "staff_id", "in": "query", "type": "string"},
                    {"name": "open", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/breeding-events": {
            "get": {
                "tags": ["Breeding"],
                "summary": "List breeding events",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "cow_id", "in": "query", "type": "string"},
                    {"name": "event_type", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Breeding"],
                "summary": "Create breeding event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/breeding-events/{id}": {
            "get": {
                "tags": ["Breeding"],
                "summary": "Get breeding event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "put": {
                "tags": ["Breeding"],
                "summary": "Update breeding event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "delete": {
                "tags": ["Breeding"],
                "summary": "Delete breeding event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/health-records": {
            "get": {
                "tags": ["Health"],
                "summary": "List health records",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "cow_id", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Health"],
                "summary": "Create health record",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/v1/alerts": {
            "get": {
                "tags": ["Alerts"],
                "summary": "List heat alerts",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "unread", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/alerts/{id}/read": {
            "patch": {
                "tags": ["Alerts"],
                "summary": "Mark alert as read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Marked"}
                }
            }
        },
        "/api/v1/alerts/{id}/dismiss": {
            "patch": {
                "tags": ["Alerts"],
                "summary": "Dismiss alert",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Dismissed"}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Farm overview",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/analytics/milk-trend": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Milk production trend",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Notifications"],
                "summary": "Send a notification",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Stored, sent count included"}
                }
            }
        },
        "/api/v1/reports/milk-production": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export milk production trend",
                "parameters": [
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "CSV or PDF attachment"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
