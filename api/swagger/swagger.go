package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassTrack API",
        "description": "School attendance and roster management backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Teacher registration and login"},
        {"name": "Students", "description": "Roster management"},
        {"name": "Attendance", "description": "Daily attendance ledger and reports"}
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
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/api/v1/teachers/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a teacher",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate email"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a teacher or student",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Enroll a student",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate email"}
                }
            }
        },
        "/api/v1/students/bulk": {
            "post": {
                "tags": ["Students"],
                "summary": "Enroll students in bulk",
                "responses": {
                    "201": {"description": "Mixed outcome result"},
                    "400": {"description": "Structural validation error"}
                }
            }
        },
        "/api/v1/teachers/{id}/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List a teacher's students",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/students/export/csv": {
            "get": {
                "tags": ["Students"],
                "summary": "Export a teacher's roster as CSV",
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/api/v1/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance",
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Student not found"},
                    "409": {"description": "Already marked"}
                }
            }
        },
        "/api/v1/students/{studentId}/report/weekly": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Weekly attendance report",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/api/v1/students/{studentId}/report/weekly/pdf": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Weekly attendance report as PDF",
                "responses": {
                    "200": {"description": "PDF payload"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/api/v1/students/{studentId}/qr": {
            "get": {
                "tags": ["Students"],
                "summary": "Student identity payload for QR encoding",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Student not found"}
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
