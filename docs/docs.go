// Package docs holds the OpenAPI 2.0 description served under /swagger.
// It follows the layout produced by swag init -g cmd/api/main.go.
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
        "/auth": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.tokenResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.fieldErrorsDoc"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Log in",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.LoginInput"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.User"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Current user",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ]
            }
        },
        "/posts": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Post"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.fieldErrorsDoc"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Create post",
                "tags": [
                    "posts"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Post text",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.TextInput"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Post"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "All posts",
                "tags": [
                    "posts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ]
            }
        },
        "/posts/comment/{id}": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Comment"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.fieldErrorsDoc"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Comment on post",
                "tags": [
                    "posts"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Post id",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Comment text",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.TextInput"
                        }
                    }
                ]
            }
        },
        "/posts/comment/{id}/{comment_id}": {
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Comment"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Delete comment",
                "tags": [
                    "posts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Post id",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Comment id",
                        "name": "comment_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/posts/like/{id}": {
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Like"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Like post",
                "tags": [
                    "posts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Post id",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/posts/unlike/{id}": {
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Like"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Unlike post",
                "tags": [
                    "posts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Post id",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/posts/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Post"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Post by id",
                "tags": [
                    "posts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Post id",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Delete post",
                "tags": [
                    "posts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Post id",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/profile": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Profile"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.fieldErrorsDoc"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Create or update profile",
                "tags": [
                    "profile"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Profile fields; skills is comma separated",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpsertProfileInput"
                        }
                    }
                ]
            },
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.Profile"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "All profiles",
                "tags": [
                    "profile"
                ],
                "produces": [
                    "application/json"
                ]
            },
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Delete account",
                "tags": [
                    "profile"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ]
            }
        },
        "/profile/education": {
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Profile"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.fieldErrorsDoc"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Add education",
                "tags": [
                    "profile"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Education entry",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.EducationInput"
                        }
                    }
                ]
            }
        },
        "/profile/education/{edu_id}": {
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Profile"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Remove education",
                "tags": [
                    "profile"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Education id",
                        "name": "edu_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/profile/experience": {
            "put": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Profile"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.fieldErrorsDoc"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Add experience",
                "tags": [
                    "profile"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Experience entry",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.ExperienceInput"
                        }
                    }
                ]
            }
        },
        "/profile/experience/{exp_id}": {
            "delete": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Profile"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Remove experience",
                "tags": [
                    "profile"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Experience id",
                        "name": "exp_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/profile/github/{username}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.GithubRepo"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "GitHub repositories",
                "tags": [
                    "profile"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "GitHub username",
                        "name": "username",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/profile/me": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Profile"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Current user's profile",
                "tags": [
                    "profile"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "TokenAuth": []
                    }
                ]
            }
        },
        "/profile/user/{user_id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Profile"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Profile by user id",
                "tags": [
                    "profile"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User id",
                        "name": "user_id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/users": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.tokenResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.fieldErrorsDoc"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.msgResponse"
                        }
                    }
                },
                "summary": "Register a user",
                "tags": [
                    "users"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Name, email and password",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.RegisterInput"
                        }
                    }
                ]
            }
        }
    },
    "definitions": {
        "domain.FieldError": {
            "type": "object",
            "properties": {
                "msg": {
                    "type": "string"
                },
                "param": {
                    "type": "string"
                }
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "avatar": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "domain.Owner": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "avatar": {
                    "type": "string"
                }
            }
        },
        "domain.Social": {
            "type": "object",
            "properties": {
                "youtube": {
                    "type": "string"
                },
                "twitter": {
                    "type": "string"
                },
                "facebook": {
                    "type": "string"
                },
                "linkedin": {
                    "type": "string"
                },
                "instagram": {
                    "type": "string"
                }
            }
        },
        "domain.Experience": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "company": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "current": {
                    "type": "boolean"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "domain.Education": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "school": {
                    "type": "string"
                },
                "degree": {
                    "type": "string"
                },
                "fieldofstudy": {
                    "type": "string"
                },
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "current": {
                    "type": "boolean"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "domain.Profile": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/domain.Owner"
                },
                "company": {
                    "type": "string"
                },
                "website": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "bio": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "skills": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "githubusername": {
                    "type": "string"
                },
                "social": {
                    "$ref": "#/definitions/domain.Social"
                },
                "experience": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Experience"
                    }
                },
                "education": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Education"
                    }
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "domain.Like": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "user": {
                    "type": "string"
                }
            }
        },
        "domain.Comment": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "user": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "avatar": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "domain.Post": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "user": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "avatar": {
                    "type": "string"
                },
                "likes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Like"
                    }
                },
                "comments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Comment"
                    }
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "domain.GithubRepo": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "full_name": {
                    "type": "string"
                },
                "html_url": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "language": {
                    "type": "string"
                },
                "stargazers_count": {
                    "type": "integer"
                },
                "watchers_count": {
                    "type": "integer"
                },
                "forks_count": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "handler.msgResponse": {
            "type": "object",
            "properties": {
                "msg": {
                    "type": "string"
                }
            }
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                }
            }
        },
        "handler.fieldErrorsDoc": {
            "type": "object",
            "properties": {
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.FieldError"
                    }
                }
            }
        },
        "ports.RegisterInput": {
            "type": "object",
            "required": [
                "name",
                "email",
                "password"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string",
                    "minLength": 6
                }
            }
        },
        "ports.LoginInput": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "ports.TextInput": {
            "type": "object",
            "required": [
                "text"
            ],
            "properties": {
                "text": {
                    "type": "string"
                }
            }
        },
        "ports.UpsertProfileInput": {
            "type": "object",
            "required": [
                "status",
                "skills"
            ],
            "properties": {
                "status": {
                    "type": "string"
                },
                "skills": {
                    "type": "string"
                },
                "company": {
                    "type": "string"
                },
                "website": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "bio": {
                    "type": "string"
                },
                "githubusername": {
                    "type": "string"
                },
                "youtube": {
                    "type": "string"
                },
                "twitter": {
                    "type": "string"
                },
                "facebook": {
                    "type": "string"
                },
                "linkedin": {
                    "type": "string"
                },
                "instagram": {
                    "type": "string"
                }
            }
        },
        "ports.ExperienceInput": {
            "type": "object",
            "required": [
                "title",
                "company",
                "from"
            ],
            "properties": {
                "title": {
                    "type": "string"
                },
                "company": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "current": {
                    "type": "boolean"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "ports.EducationInput": {
            "type": "object",
            "required": [
                "school",
                "degree",
                "fieldofstudy",
                "from"
            ],
            "properties": {
                "school": {
                    "type": "string"
                },
                "degree": {
                    "type": "string"
                },
                "fieldofstudy": {
                    "type": "string"
                },
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "current": {
                    "type": "boolean"
                },
                "description": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "TokenAuth": {
            "type": "apiKey",
            "name": "x-auth-token",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "DevConnector API",
	Description:      "Developer profiles, discussion posts and GitHub repository lookups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
