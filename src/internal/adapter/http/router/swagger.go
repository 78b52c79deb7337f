package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>LedgerDesk API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "LedgerDesk API",
    "version": "1.0.0"
  },
  "security": [{"BearerAuth": []}, {"CookieAuth": []}],
  "paths": {
    "/auth/signup": {
      "post": {
        "summary": "Register a company owner or a pending employee",
        "security": [],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name", "email", "password"],
                "properties": {
                  "name": {"type": "string"},
                  "email": {"type": "string", "format": "email"},
                  "password": {"type": "string", "minLength": 8},
                  "companyName": {"type": "string"},
                  "companyId": {"type": "string", "format": "uuid"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "User created"},
          "400": {"description": "Validation error or duplicate email"}
        }
      }
    },
    "/auth/login": {
      "post": {
        "summary": "Log in and receive the session cookie",
        "security": [],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "password"],
                "properties": {
                  "email": {"type": "string", "format": "email"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Logged in"},
          "401": {"description": "Invalid email or password"},
          "403": {"description": "Account pending approval or rejected"}
        }
      }
    },
    "/auth/logout": {
      "post": {
        "summary": "Expire the session cookie",
        "security": [],
        "responses": {"200": {"description": "Logged out"}}
      }
    },
    "/banks": {
      "get": {
        "summary": "List the company's bank accounts",
        "responses": {
          "200": {"description": "Bank accounts"},
          "401": {"description": "Unauthenticated"},
          "404": {"description": "No company"}
        }
      },
      "post": {
        "summary": "Register a bank account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["bankName", "ifscCode", "accountNumber", "accountType", "currentAmount"],
                "properties": {
                  "bankName": {"type": "string"},
                  "ifscCode": {"type": "string"},
                  "accountNumber": {"type": "string"},
                  "accountType": {"type": "string", "enum": ["saving", "current"]},
                  "currentAmount": {"type": "number", "minimum": 0}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Bank account created"},
          "400": {"description": "Validation error or duplicate account number"},
          "401": {"description": "Unauthenticated"},
          "404": {"description": "No company"}
        }
      }
    },
    "/transactions": {
      "get": {
        "summary": "List the company's transactions",
        "responses": {
          "200": {"description": "Transactions"},
          "401": {"description": "Unauthenticated"},
          "404": {"description": "No company"}
        }
      },
      "post": {
        "summary": "Record an income or expense and update the account balance",
        "parameters": [
          {
            "name": "Idempotency-Key",
            "in": "header",
            "required": false,
            "schema": {"type": "string", "maxLength": 128}
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["type", "amount", "category", "date"],
                "properties": {
                  "type": {"type": "string", "enum": ["income", "expense"]},
                  "amount": {"type": "number", "exclusiveMinimum": 0},
                  "account": {"type": "string", "description": "Bank name"},
                  "accountId": {"type": "string", "format": "uuid"},
                  "category": {"type": "string"},
                  "date": {"type": "string"},
                  "department": {"type": "string", "default": "All"},
                  "description": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Transaction recorded"},
          "200": {"description": "Idempotent replay of an earlier transaction"},
          "400": {"description": "Validation error, unknown account or insufficient funds"},
          "401": {"description": "Unauthenticated"},
          "404": {"description": "No company"},
          "500": {"description": "Failed to save transaction, please retry"}
        }
      }
    },
    "/categories": {
      "get": {
        "summary": "List transaction categories and their colors",
        "responses": {"200": {"description": "Categories"}}
      }
    },
    "/user/profile": {
      "get": {
        "summary": "Current user's profile",
        "responses": {"200": {"description": "Profile"}, "401": {"description": "Unauthenticated"}}
      }
    },
    "/users": {
      "get": {
        "summary": "Users of the caller's company",
        "responses": {"200": {"description": "Users"}, "404": {"description": "No company"}}
      }
    },
    "/user/team": {
      "get": {
        "summary": "Team members with approval state",
        "responses": {"200": {"description": "Team"}, "403": {"description": "Forbidden"}}
      }
    },
    "/user/team/{id}/approve": {
      "post": {
        "summary": "Approve a pending member",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "Approved"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
      }
    },
    "/user/team/{id}/reject": {
      "post": {
        "summary": "Reject a pending member",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "Rejected"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
      }
    },
    "/projects": {
      "get": {
        "summary": "Projects visible to the caller",
        "responses": {"200": {"description": "Projects"}}
      },
      "post": {
        "summary": "Create a project",
        "responses": {"201": {"description": "Project created"}, "400": {"description": "Validation error"}, "401": {"description": "Admins and owners only"}}
      }
    },
    "/tasks": {
      "post": {
        "summary": "Create a task in a project",
        "responses": {"201": {"description": "Task created"}, "403": {"description": "Forbidden"}, "404": {"description": "Project not found"}}
      }
    },
    "/tasks/{id}": {
      "put": {
        "summary": "Update a task",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "Task updated"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
      },
      "delete": {
        "summary": "Delete a task",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "Task deleted"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
      }
    },
    "/dashboard/summary": {
      "get": {
        "summary": "Balances, revenue growth and active projects",
        "responses": {"200": {"description": "Summary"}}
      }
    },
    "/health": {
      "get": {"summary": "Liveness", "security": [], "responses": {"200": {"description": "OK"}}}
    }
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
      "CookieAuth": {"type": "apiKey", "in": "cookie", "name": "token"}
    }
  }
}`
