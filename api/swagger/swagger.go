package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Seating API",
        "description": "Allocates examination seats across halls and serves the published seating.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Seating", "description": "Seating generation and lookup"},
        {"name": "Halls", "description": "Hall and block configuration"},
        {"name": "Subject Configuration", "description": "Priority and Drawing subject codes"},
        {"name": "Students", "description": "Examination batch"},
        {"name": "Downloads", "description": "Hall sketch and student-wise documents"},
        {"name": "Observability", "description": "Runtime statistics"}
    ],
    "paths": {
        "/generate": {
            "post": {
                "tags": ["Seating"],
                "summary": "Generate seating for every exam session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/StudentBatch"}}
                ],
                "responses": {
                    "200": {"description": "Generation result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed batch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No halls configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/{session}": {
            "get": {
                "tags": ["Seating"],
                "summary": "Get the seating of one session",
                "parameters": [
                    {"name": "session", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions": {
            "get": {
                "tags": ["Seating"],
                "summary": "List published sessions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/search": {
            "post": {
                "tags": ["Seating"],
                "summary": "Find a student's seats across published sessions",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/halls": {
            "get": {
                "tags": ["Halls"],
                "summary": "List halls in fill order",
                "parameters": [
                    {"name": "block", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Halls"],
                "summary": "Create hall",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HallRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate hall name", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/halls/{id}": {
            "put": {
                "tags": ["Halls"],
                "summary": "Update hall",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HallRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Halls"],
                "summary": "Delete hall",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/halls/initialize": {
            "post": {
                "tags": ["Halls"],
                "summary": "Reset halls to the campus default table",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/halls/order": {
            "put": {
                "tags": ["Halls"],
                "summary": "Store block and hall fill priorities",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HallOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/blocks": {
            "get": {
                "tags": ["Halls"],
                "summary": "List blocks in fill order",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/config/subjects": {
            "get": {
                "tags": ["Subject Configuration"],
                "summary": "List effective subject configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subject Configuration"],
                "summary": "Add a custom Priority or Drawing subject code",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectConfigRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Code already configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/config/subjects/{code}": {
            "delete": {
                "tags": ["Subject Configuration"],
                "summary": "Remove a custom subject code",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "required": true, "type": "string", "enum": ["PRIORITY", "DRAWING"]}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Default codes cannot be removed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List the stored student batch",
                "parameters": [
                    {"name": "session", "in": "query", "type": "string"},
                    {"name": "registerNumber", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Replace the student batch",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentBatch"}}
                ],
                "responses": {
                    "201": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed batch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{registerNumber}/physically-challenged": {
            "put": {
                "tags": ["Students"],
                "summary": "Toggle accessibility seating for a register number",
                "parameters": [
                    {"name": "registerNumber", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"isPhysicallyChallenged": {"type": "boolean"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reset": {
            "delete": {
                "tags": ["Students"],
                "summary": "Remove the student batch and the published seating",
                "responses": {
                    "204": {"description": "Reset"}
                }
            }
        },
        "/download/hall-wise": {
            "get": {
                "tags": ["Downloads"],
                "summary": "Download the hall sketch of a session",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/pdf"],
                "parameters": [
                    {"name": "session", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["xlsx", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document", "schema": {"type": "file"}}
                }
            }
        },
        "/download/student-wise": {
            "get": {
                "tags": ["Downloads"],
                "summary": "Download the student-wise allocation of a session",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "session", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["xlsx", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document", "schema": {"type": "file"}}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["Observability"],
                "summary": "Runtime and allocation statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "registerNumber": {"type": "string", "example": "311521104001"},
                "subjectCode": {"type": "string", "example": "CS3451"},
                "department": {"type": "string", "example": "CSE"},
                "examDate": {"type": "string", "example": "2024-11-20"},
                "session": {"type": "string", "enum": ["FN", "AN"]},
                "isPhysicallyChallenged": {"type": "boolean"}
            }
        },
        "StudentBatch": {
            "type": "object",
            "properties": {
                "students": {"type": "array", "items": {"$ref": "#/definitions/Student"}}
            }
        },
        "SearchRequest": {
            "type": "object",
            "properties": {
                "registerNumber": {"type": "string"}
            }
        },
        "HallRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "block": {"type": "string"},
                "rows": {"type": "integer"},
                "columns": {"type": "integer"},
                "capacity": {"type": "integer"},
                "priority": {"type": "integer"},
                "isDrawing": {"type": "boolean"},
                "isGroundFloor": {"type": "boolean"}
            }
        },
        "HallOrderRequest": {
            "type": "object",
            "properties": {
                "blocks": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "name": {"type": "string"},
                            "priority": {"type": "integer"},
                            "halls": {
                                "type": "array",
                                "items": {
                                    "type": "object",
                                    "properties": {
                                        "id": {"type": "string"},
                                        "priority": {"type": "integer"}
                                    }
                                }
                            }
                        }
                    }
                }
            }
        },
        "SubjectConfigRequest": {
            "type": "object",
            "properties": {
                "subjectCode": {"type": "string"},
                "type": {"type": "string", "enum": ["PRIORITY", "DRAWING"]}
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
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
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
