// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with `swag init -g cmd/api/main.go -o cmd/api/docs` after
// changing handler annotations.
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
        "/auth/google/login": {
            "get": {
                "description": "Redirects the user to Google's OAuth2 consent page.",
                "tags": ["auth"],
                "summary": "Initiate Google Login",
                "responses": {
                    "307": {"description": "Redirects to Google"}
                }
            }
        },
        "/auth/google/callback": {
            "get": {
                "description": "Exchanges the authorization code and issues access and refresh tokens.",
                "tags": ["auth"],
                "summary": "Google OAuth2 Callback",
                "parameters": [
                    {"type": "string", "name": "code", "in": "query", "required": true},
                    {"type": "string", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid state or code"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "description": "Provides a new access token and refresh token if the provided refresh token is valid.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh JWT tokens",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Refresh token invalid or expired"}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Retrieves the progression record of the logged-in user.",
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Get My Profile",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Profile not found"}
                }
            }
        },
        "/profile/create": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Creates the progression record for the authenticated identity.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Create My Profile",
                "responses": {
                    "200": {"description": "Profile already existed"},
                    "201": {"description": "Profile created"}
                }
            }
        },
        "/profile/quiz/complete": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Adds the submitted score to the user's XP.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Complete a Quiz",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid score"}
                }
            }
        },
        "/questions": {
            "get": {
                "description": "Returns all quiz questions, oldest first.",
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "List Questions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/questions/add": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Stores a new quiz question. Requires the teacher role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Add a Question",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Teacher role required"}
                }
            }
        },
        "/questions/generate": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Drafts quiz questions for a topic with the configured local model. Requires the teacher role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Generate Question Drafts",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Teacher role required"}
                }
            }
        },
        "/community-events": {
            "get": {
                "description": "Returns events that are active and have not ended.",
                "produces": ["application/json"],
                "tags": ["community-events"],
                "summary": "List Active Community Events",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/community-events/add": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Stores a new community event. Requires the teacher role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["community-events"],
                "summary": "Add a Community Event",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Teacher role required"},
                    "409": {"description": "Duplicate title"}
                }
            }
        },
        "/community-events/complete/{eventId}": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Marks the event completed for the user and grants its rewards once.",
                "produces": ["application/json"],
                "tags": ["community-events"],
                "summary": "Complete a Community Event",
                "parameters": [
                    {"type": "string", "name": "eventId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Already completed or invalid ID"},
                    "404": {"description": "Event or profile not found"}
                }
            }
        },
        "/leaderboard": {
            "get": {
                "description": "Returns the top ten profiles by XP.",
                "produces": ["application/json"],
                "tags": ["leaderboard"],
                "summary": "Get Leaderboard",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "EcoQuest API",
	Description:      "Gamified environmental science quiz platform API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
