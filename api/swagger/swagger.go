package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Admin API",
        "description": "Admin back-office for colleges, courses, specializations and inquiry leads.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Leads", "description": "Inquiry management and analytics"},
        {"name": "Exports", "description": "Asynchronous lead export files"},
        {"name": "Colleges", "description": "College catalog"},
        {"name": "Courses", "description": "Course catalog"},
        {"name": "Specializations", "description": "Specialization catalog"},
        {"name": "Public", "description": "Marketing site endpoints"},
        {"name": "System", "description": "Process metrics"}
    ],
    "paths": {
        "/leads": {
            "post": {
                "tags": ["Public"],
                "summary": "Submit an inquiry",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateLeadRequest"}
                    }
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/colleges": {
            "get": {
                "tags": ["Public"],
                "summary": "List active colleges",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "country", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/colleges/{slug}": {
            "get": {
                "tags": ["Public"],
                "summary": "Get an active college and its active courses",
                "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export file",
                "produces": ["text/csv", "application/json", "application/pdf"],
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "File"}, "403": {"description": "Invalid or expired token"}}
            }
        },
        "/admin/leads": {
            "get": {
                "tags": ["Leads"],
                "summary": "List leads",
                "parameters": [
                    {"name": "query", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "source", "in": "query", "type": "string"},
                    {"name": "dateFrom", "in": "query", "type": "string"},
                    {"name": "dateTo", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"},
                    {"name": "sortBy", "in": "query", "type": "string"},
                    {"name": "sortOrder", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/{id}": {
            "get": {
                "tags": ["Leads"],
                "summary": "Get lead detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/{id}/status": {
            "patch": {
                "tags": ["Leads"],
                "summary": "Update lead status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateLeadStatusRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/{id}/notes": {
            "patch": {
                "tags": ["Leads"],
                "summary": "Replace lead notes",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateLeadNotesRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/bulk-status": {
            "post": {
                "tags": ["Leads"],
                "summary": "Update the status of many leads",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkLeadStatusRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/analytics": {
            "get": {
                "tags": ["Leads"],
                "summary": "Lead analytics for a period",
                "parameters": [
                    {
                        "name": "period",
                        "in": "query",
                        "type": "string",
                        "default": "week",
                        "enum": ["today", "yesterday", "week", "month", "custom"]
                    },
                    {"name": "dateFrom", "in": "query", "type": "string"},
                    {"name": "dateTo", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/summary": {
            "get": {
                "tags": ["Leads"],
                "summary": "Headline lead totals and growth",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/sources": {
            "get": {
                "tags": ["Leads"],
                "summary": "List distinct lead sources",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/export": {
            "get": {
                "tags": ["Leads"],
                "summary": "Export rows for matching leads",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "json", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "source", "in": "query", "type": "string"},
                    {"name": "dateFrom", "in": "query", "type": "string"},
                    {"name": "dateTo", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a lead export file",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/LeadExportRequest"}
                    }
                ],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/leads/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/colleges": {
            "get": {
                "tags": ["Colleges"],
                "summary": "List colleges",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "featured", "in": "query", "type": "boolean"},
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "country", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Colleges"],
                "summary": "Create college",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CollegeRequest"}
                    }
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/colleges/{id}": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Get detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Colleges"],
                "summary": "Update",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CollegeRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Colleges"],
                "summary": "Deactivate",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}, "412": {"description": "Referenced by child rows"}}
            }
        },
        "/admin/colleges/{id}/featured": {
            "patch": {
                "tags": ["Colleges"],
                "summary": "Toggle the featured flag",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/colleges/bulk-status": {
            "post": {
                "tags": ["Colleges"],
                "summary": "Update the status of many rows",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkCatalogStatusRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/colleges/stats": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Status counts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "featured", "in": "query", "type": "boolean"},
                    {"name": "collegeId", "in": "query", "type": "string"},
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CourseRequest"}
                    }
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Update",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CourseRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Deactivate",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}, "412": {"description": "Referenced by child rows"}}
            }
        },
        "/admin/courses/{id}/featured": {
            "patch": {
                "tags": ["Courses"],
                "summary": "Toggle the featured flag",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/courses/bulk-status": {
            "post": {
                "tags": ["Courses"],
                "summary": "Update the status of many rows",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkCatalogStatusRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/courses/stats": {
            "get": {
                "tags": ["Courses"],
                "summary": "Status counts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/specializations": {
            "get": {
                "tags": ["Specializations"],
                "summary": "List specializations",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "featured", "in": "query", "type": "boolean"},
                    {"name": "courseId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Specializations"],
                "summary": "Create specialization",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SpecializationRequest"}
                    }
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/specializations/{id}": {
            "get": {
                "tags": ["Specializations"],
                "summary": "Get detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Specializations"],
                "summary": "Update",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SpecializationRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Specializations"],
                "summary": "Deactivate",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}, "412": {"description": "Referenced by child rows"}}
            }
        },
        "/admin/specializations/{id}/featured": {
            "patch": {
                "tags": ["Specializations"],
                "summary": "Toggle the featured flag",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/specializations/bulk-status": {
            "post": {
                "tags": ["Specializations"],
                "summary": "Update the status of many rows",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkCatalogStatusRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/specializations/stats": {
            "get": {
                "tags": ["Specializations"],
                "summary": "Status counts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        },
        "/admin/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Process metrics snapshot",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}},
                "security": [{"BearerAuth": []}]
            }
        }
    },
    "definitions": {
        "CreateLeadRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "message": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string"},
                "nationality": {"type": "string"},
                "source": {"type": "string"},
                "collegeIds": {"type": "array", "items": {"type": "string"}},
                "courseIds": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["name", "email"]
        },
        "UpdateLeadStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["NEW", "CONTACTED", "QUALIFIED", "CONVERTED", "CLOSED"]},
                "notes": {"type": "string"}
            },
            "required": ["status"]
        },
        "UpdateLeadNotesRequest": {"type": "object", "properties": {"notes": {"type": "string"}}},
        "BulkLeadStatusRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["NEW", "CONTACTED", "QUALIFIED", "CONVERTED", "CLOSED"]}
            },
            "required": ["ids", "status"]
        },
        "LeadExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["csv", "json", "pdf"]},
                "status": {"type": "string", "enum": ["NEW", "CONTACTED", "QUALIFIED", "CONVERTED", "CLOSED"]},
                "source": {"type": "string"},
                "dateFrom": {"type": "string", "format": "date-time"},
                "dateTo": {"type": "string", "format": "date-time"}
            },
            "required": ["format"]
        },
        "Ranking": {
            "type": "object",
            "properties": {"agency": {"type": "string"}, "rank": {"type": "integer"}, "year": {"type": "integer"}}
        },
        "SyllabusModule": {
            "type": "object",
            "properties": {
                "term": {"type": "string"},
                "title": {"type": "string"},
                "topics": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CollegeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "shortName": {"type": "string"},
                "description": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "country": {"type": "string"},
                "address": {"type": "string"},
                "website": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "logoUrl": {"type": "string"},
                "establishedYear": {"type": "integer"},
                "accreditation": {"type": "string"},
                "rankings": {"type": "array", "items": {"$ref": "#/definitions/Ranking"}},
                "facilities": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "DRAFT"]},
                "featured": {"type": "boolean"}
            },
            "required": ["name"]
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "collegeId": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "degree": {"type": "string"},
                "level": {
                    "type": "string",
                    "enum": ["CERTIFICATE", "DIPLOMA", "UNDERGRADUATE", "POSTGRADUATE", "DOCTORATE"]
                },
                "durationMonths": {"type": "integer"},
                "fees": {"type": "number"},
                "currency": {"type": "string"},
                "eligibility": {"type": "string"},
                "syllabus": {"type": "array", "items": {"$ref": "#/definitions/SyllabusModule"}},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "DRAFT"]},
                "featured": {"type": "boolean"}
            },
            "required": ["collegeId", "name", "level"]
        },
        "SpecializationRequest": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "DRAFT"]},
                "featured": {"type": "boolean"}
            },
            "required": ["courseId", "name"]
        },
        "BulkCatalogStatusRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "DRAFT"]}
            },
            "required": ["ids", "status"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "hasMore": {"type": "boolean"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
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
