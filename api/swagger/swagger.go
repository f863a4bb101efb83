package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Sporting Life Enrollment API",
        "description": "Course enrollment backend for the Sporting Life summer camp",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "tags": [
        {"name": "Auth", "description": "Session token issuance"},
        {"name": "Users", "description": "User registration, roles and instructor roster"},
        {"name": "Classes", "description": "Class catalog and approval workflow"},
        {"name": "Selections", "description": "Cart of classes picked before checkout"},
        {"name": "Payments", "description": "Payment intents and ledger"},
        {"name": "Enrollments", "description": "Completed enrollment records"},
        {"name": "Reports", "description": "Admin ledger exports"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/jwt": {
            "post": {
                "tags": ["Auth"],
                "summary": "Issue session token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "post": {
                "tags": ["Users"],
                "summary": "Register user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "Already registered"},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/user": {
            "get": {
                "tags": ["Users"],
                "summary": "Get own profile",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/update-user/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Update user role",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "role", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/user/admin/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Probe admin role",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/user/instructor/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Probe instructor role",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["Users"],
                "summary": "List instructors",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List approved classes",
                "parameters": [
                    {"name": "top", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Submit class for approval",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/all-classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List every class",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/my-classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List own submitted classes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/class/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Reserve a seat",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Sold out"}
                }
            }
        },
        "/update-class-status/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Approve or deny class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/update-feedback/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Attach feedback to class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/select-class": {
            "post": {
                "tags": ["Selections"],
                "summary": "Add class to cart",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selected": {
            "get": {
                "tags": ["Selections"],
                "summary": "List cart contents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/selected/{id}": {
            "get": {
                "tags": ["Selections"],
                "summary": "Get cart item",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["Selections"],
                "summary": "Remove cart item",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/create-payment-intent": {
            "post": {
                "tags": ["Payments"],
                "summary": "Create payment intent",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateIntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Gateway error"}
                }
            }
        },
        "/payment": {
            "post": {
                "tags": ["Payments"],
                "summary": "Record payment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordPaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/payment/{id}/receipt.pdf": {
            "get": {
                "tags": ["Payments"],
                "summary": "Download payment receipt",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF content"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "List payments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/enrolled": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Record enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/admin/ledger.csv": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export ledger as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV content"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/admin/ledger.pdf": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export ledger as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF content"},
                    "403": {"description": "Forbidden"}
                }
            }
        }
    },
    "definitions": {
        "TokenRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            },
            "required": ["email"]
        },
        "RegisterUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photo_url": {"type": "string"}
            },
            "required": ["email"]
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photo_url": {"type": "string"},
                "role": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Class": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "image": {"type": "string"},
                "instructor_name": {"type": "string"},
                "instructor_email": {"type": "string"},
                "price": {"type": "number"},
                "available_seats": {"type": "integer"},
                "number_of_students": {"type": "integer"},
                "status": {"type": "string"},
                "feedback": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "image": {"type": "string"},
                "price": {"type": "number"},
                "available_seats": {"type": "integer"}
            },
            "required": ["title"]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"}
            },
            "required": ["feedback"]
        },
        "SelectClassRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "class_id": {"type": "string"},
                "title": {"type": "string"},
                "image": {"type": "string"},
                "price": {"type": "number"}
            },
            "required": ["email", "class_id", "title"]
        },
        "CreateIntentRequest": {
            "type": "object",
            "properties": {
                "price": {"type": "number"}
            },
            "required": ["price"]
        },
        "RecordPaymentRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "price": {"type": "number"},
                "transaction_id": {"type": "string"},
                "class_ids": {"type": "array", "items": {"type": "string"}},
                "date": {"type": "string"}
            },
            "required": ["email", "price", "transaction_id"]
        },
        "EnrollRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "class_id": {"type": "string"},
                "title": {"type": "string"},
                "image": {"type": "string"},
                "instructor_name": {"type": "string"}
            },
            "required": ["email", "class_id", "title"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
