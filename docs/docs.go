// Jobboard - Job Board Submission Intake and Review Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/jobboard

// Package docs registers the OpenAPI (Swagger 2.0) document served under
// /swagger/. It follows the layout swag init emits and mirrors the @Router
// annotations on the internal/api handlers; keep the two in step when a
// route changes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/jobboard/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/apply": {
            "post": {
                "description": "Same handler as /api/apply, mounted for plain HTML form posts.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Applications"],
                "summary": "Submit a job application (form action)",
                "parameters": [
                    {"type": "string", "description": "Job slug (alias: slug)", "name": "jobSlug", "in": "formData", "required": true},
                    {"type": "string", "description": "Applicant name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "Applicant email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Cover letter (alias: cover)", "name": "coverLetter", "in": "formData"},
                    {"type": "file", "description": "PDF, DOC or DOCX resume", "name": "resume", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Application stored", "schema": {"$ref": "#/definitions/api.applyResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/post-job": {
            "post": {
                "description": "Browsers are redirected 303 to /jobs/{slug}; clients sending Accept: application/json receive the slug.",
                "consumes": ["multipart/form-data", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Publish a job posting",
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "name": "orgName", "in": "formData", "required": true},
                    {"type": "string", "name": "city", "in": "formData", "required": true},
                    {"type": "string", "name": "orgWebsite", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData"},
                    {"type": "string", "name": "applicationUrl", "in": "formData"},
                    {"type": "string", "name": "region", "in": "formData"},
                    {"type": "string", "name": "country", "in": "formData"},
                    {"type": "string", "name": "employmentType", "in": "formData"},
                    {"type": "string", "name": "validThrough", "in": "formData"},
                    {"type": "string", "name": "salaryValue", "in": "formData"},
                    {"type": "string", "name": "salaryCurrency", "in": "formData"},
                    {"type": "string", "name": "salaryUnit", "in": "formData"},
                    {"type": "file", "description": "PNG, JPEG or WEBP logo", "name": "logo", "in": "formData"},
                    {"type": "file", "description": "PDF, DOC or DOCX job description", "name": "jd", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Job stored", "schema": {"$ref": "#/definitions/api.postJobResponse"}},
                    "303": {"description": "Redirect to the job page"},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/api.postJobResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/api.postJobResponse"}}
                }
            }
        },
        "/api/apply": {
            "post": {
                "description": "Stores the resume and the application record, then emails the admin and the applicant. Limited to 5 requests per minute per client IP.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Applications"],
                "summary": "Submit a job application",
                "parameters": [
                    {"type": "string", "description": "Job slug (alias: slug)", "name": "jobSlug", "in": "formData", "required": true},
                    {"type": "string", "description": "Applicant name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "Applicant email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Cover letter (alias: cover)", "name": "coverLetter", "in": "formData"},
                    {"type": "file", "description": "PDF, DOC or DOCX resume", "name": "resume", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Application stored", "schema": {"$ref": "#/definitions/api.applyResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/contact": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Contact"],
                "summary": "Send a contact message to the admin",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.contactRequest"}}
                ],
                "responses": {
                    "200": {"description": "Message sent", "schema": {"$ref": "#/definitions/api.okResponse"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "List published jobs, newest first",
                "responses": {
                    "200": {"description": "Jobs", "schema": {"$ref": "#/definitions/api.jobsResponse"}}
                }
            }
        },
        "/api/jobs/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Get one published job",
                "parameters": [
                    {"type": "string", "description": "Job slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Job", "schema": {"$ref": "#/definitions/api.jobResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/admin/login": {
            "post": {
                "description": "Sets the admin session cookie. Repeated failures lock the client IP out with exponential backoff.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Logged in", "schema": {"$ref": "#/definitions/api.okResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "429": {"description": "Locked out or rate limited; see Retry-After", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/admin/logout": {
            "get": {
                "tags": ["Admin"],
                "summary": "Admin logout",
                "responses": {
                    "302": {"description": "Cookie cleared, redirect to the login page"}
                }
            }
        },
        "/api/admin/applications": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List applications",
                "parameters": [
                    {"type": "string", "description": "Only this applicant, newest submittedAt first", "name": "email", "in": "query"},
                    {"type": "string", "enum": ["submittedAt"], "description": "Order by submittedAt instead of storage modification time", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Applications", "schema": {"$ref": "#/definitions/api.applicationsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/admin/applications.csv": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["text/csv"],
                "tags": ["Admin"],
                "summary": "Export applications as CSV",
                "responses": {
                    "200": {"description": "id,jobSlug,name,email,status,submittedAt,resumeKey,coverLetter", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized (plain text)", "schema": {"type": "string"}}
                }
            }
        },
        "/api/admin/applications/{id}": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get one application",
                "parameters": [
                    {"type": "string", "description": "Submission id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Application", "schema": {"$ref": "#/definitions/submissions.Submission"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "patch": {
                "security": [{"AdminSession": []}],
                "description": "Merges status and notes; every other field is kept. A malformed body changes nothing.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Update application status or notes",
                "parameters": [
                    {"type": "string", "description": "Submission id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/api.patchRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated application", "schema": {"$ref": "#/definitions/submissions.Submission"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/admin/applications/{id}/resume": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get a signed resume download link",
                "parameters": [
                    {"type": "string", "description": "Submission id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Link valid for 5 minutes", "schema": {"$ref": "#/definitions/submissions.ResumeLink"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "No such application or no resume", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/admin/summary": {
            "get": {
                "security": [{"AdminSession": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Dashboard counters",
                "responses": {
                    "200": {"description": "Summary", "schema": {"$ref": "#/definitions/submissions.Summary"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/api/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "Process is alive", "schema": {"$ref": "#/definitions/api.healthResponse"}}
                }
            }
        },
        "/api/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Object store reachable", "schema": {"$ref": "#/definitions/api.healthResponse"}},
                    "503": {"description": "Object store unavailable", "schema": {"$ref": "#/definitions/api.healthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.applicationsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/submissions.Submission"}}
            }
        },
        "api.applyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "ok": {"type": "boolean"}
            }
        },
        "api.contactRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "message": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "api.errorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "api.healthResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"},
                "uptime": {"type": "number"}
            }
        },
        "api.jobResponse": {
            "type": "object",
            "properties": {
                "item": {"$ref": "#/definitions/jobs.Job"}
            }
        },
        "api.jobsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/jobs.Job"}}
            }
        },
        "api.loginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "api.okResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "api.patchRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "api.postJobResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "ok": {"type": "boolean"},
                "slug": {"type": "string"}
            }
        },
        "jobs.Attachments": {
            "type": "object",
            "properties": {
                "jd": {"type": "string"}
            }
        },
        "jobs.Contact": {
            "type": "object",
            "properties": {
                "applicationUrl": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "jobs.Job": {
            "type": "object",
            "properties": {
                "attachments": {"$ref": "#/definitions/jobs.Attachments"},
                "baseSalary": {"$ref": "#/definitions/jobs.Salary"},
                "contact": {"$ref": "#/definitions/jobs.Contact"},
                "datePosted": {"type": "string"},
                "description": {"type": "string"},
                "employmentType": {"type": "string"},
                "hiringOrganization": {"$ref": "#/definitions/jobs.Organization"},
                "jobLocation": {"$ref": "#/definitions/jobs.Location"},
                "published": {"type": "boolean"},
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "validThrough": {"type": "string"}
            }
        },
        "jobs.Location": {
            "type": "object",
            "properties": {
                "addressCountry": {"type": "string"},
                "addressLocality": {"type": "string"},
                "addressRegion": {"type": "string"}
            }
        },
        "jobs.Organization": {
            "type": "object",
            "properties": {
                "logo": {"type": "string"},
                "name": {"type": "string"},
                "sameAs": {"type": "string"}
            }
        },
        "jobs.Salary": {
            "type": "object",
            "properties": {
                "currency": {"type": "string"},
                "unitText": {"type": "string"},
                "value": {"type": "number"}
            }
        },
        "submissions.RecentJob": {
            "type": "object",
            "properties": {
                "datePosted": {"type": "string"},
                "orgName": {"type": "string"},
                "slug": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "submissions.ResumeLink": {
            "type": "object",
            "properties": {
                "expiresIn": {"type": "integer"},
                "url": {"type": "string"}
            }
        },
        "submissions.Submission": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "coverLetter": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "jobSlug": {"type": "string"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "resumeKey": {"type": "string"},
                "status": {"type": "string"},
                "submittedAt": {"type": "string"}
            }
        },
        "submissions.Summary": {
            "type": "object",
            "properties": {
                "recentJobs": {"type": "array", "items": {"$ref": "#/definitions/submissions.RecentJob"}},
                "statusCounts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "todayApps": {"type": "integer"},
                "totalApps": {"type": "integer"},
                "totalJobs": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "AdminSession": {
            "description": "Session marker cookie set by /api/admin/login.",
            "type": "apiKey",
            "name": "admin_session",
            "in": "cookie"
        }
    },
    "tags": [
        {"description": "Health checks", "name": "Core"},
        {"description": "Public job application intake", "name": "Applications"},
        {"description": "Job postings", "name": "Jobs"},
        {"description": "Contact form", "name": "Contact"},
        {"description": "Cookie-authenticated review of applications", "name": "Admin"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Jobboard API",
	Description:      "Job application intake, job postings and the cookie-authenticated admin review API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
