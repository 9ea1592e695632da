// Package docs содержит Swagger-спецификацию, собранную вручную по аннотациям
// обработчиков. После изменения аннотаций пересобирается командой
// `swag init -g cmd/acserver/main.go`, которая перезапишет этот файл.
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
        "/{tool_id}/status/": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "Node"
                ],
                "summary": "Статус инструмента",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "-1, 0 или 1",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/{tool_id}/card/{card_id}": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "Node"
                ],
                "summary": "Права карты на инструмент",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "ID карты",
                        "name": "card_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Секрет узла",
                        "name": "X-AC-Key",
                        "in": "header",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "-1, 0 или 1",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "403": {
                        "description": "IP forbidden",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "429": {
                        "description": "Слишком много запросов",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/{tool_id}/grant-to-card/{to_card_id}/by-card/{by_card_id}": {
            "post": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "Node"
                ],
                "summary": "Выдать право \"user\" с карты обслуживающего",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Карта получателя",
                        "name": "to_card_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Карта обслуживающего",
                        "name": "by_card_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Секрет узла",
                        "name": "X-AC-Key",
                        "in": "header",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "-1, 0 или 1",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "403": {
                        "description": "IP forbidden",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "429": {
                        "description": "Слишком много запросов",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/{tool_id}/status/{status}/by/{card_id}": {
            "post": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "Node"
                ],
                "summary": "Сменить статус инструмента",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "1 — в эксплуатацию, 0 — вывести",
                        "name": "status",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "ID карты",
                        "name": "card_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Секрет узла",
                        "name": "X-AC-Key",
                        "in": "header",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "-1, 0 или 1",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "403": {
                        "description": "IP forbidden",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "429": {
                        "description": "Слишком много запросов",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/{tool_id}/tooluse/{status}/{card_id}": {
            "post": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "Node"
                ],
                "summary": "Начало или конец сеанса работы",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "1 — начало, 0 — конец",
                        "name": "status",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "ID карты",
                        "name": "card_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Секрет узла",
                        "name": "X-AC-Key",
                        "in": "header",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "-1, 0 или 1",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "403": {
                        "description": "IP forbidden",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "429": {
                        "description": "Слишком много запросов",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/{tool_id}/tooluse/time/for/{card_id}/{duration}": {
            "post": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "Node"
                ],
                "summary": "Отчёт о длительности сеанса",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "ID карты",
                        "name": "card_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Длительность в секундах",
                        "name": "duration",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Секрет узла",
                        "name": "X-AC-Key",
                        "in": "header",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "-1, 0 или 1",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "403": {
                        "description": "IP forbidden",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "429": {
                        "description": "Слишком много запросов",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/{tool_id}/is_tool_in_use": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "Node"
                ],
                "summary": "Занят ли инструмент",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "-1, 0 или 1",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/get_tools_status": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "API"
                ],
                "summary": "Статусы всех инструментов",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Ключ API",
                        "name": "API-KEY",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/summary.ToolStatus"
                            }
                        }
                    },
                    "401": {
                        "description": "Нет или неверный ключ API",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/get_tools_summary_for_user/{user_id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "API"
                ],
                "summary": "Статусы инструментов и права пользователя",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Ключ API",
                        "name": "API-KEY",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "ID пользователя",
                        "name": "user_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/summary.UserToolSummary"
                            }
                        }
                    },
                    "401": {
                        "description": "Нет или неверный ключ API",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "400": {
                        "description": "Некорректный ID",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/get_tool_log/{tool_id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "API"
                ],
                "summary": "Журнал инструмента",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Ключ API",
                        "name": "API-KEY",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "ID инструмента",
                        "name": "tool_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Количество записей (по умолчанию 100, не больше 1000)",
                        "name": "limit",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/summary.LogRecord"
                            }
                        }
                    },
                    "401": {
                        "description": "Нет или неверный ключ API",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Ошибка сервера",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "400": {
                        "description": "Некорректный limit",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Инструмент не найден",
                        "schema": {
                            "$ref": "#/definitions/response.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "internal error"
                },
                "status": {
                    "type": "string",
                    "example": "Error"
                }
            }
        },
        "summary.ToolStatus": {
            "type": "object",
            "properties": {
                "in_use": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "status_message": {
                    "type": "string"
                }
            }
        },
        "summary.UserToolSummary": {
            "type": "object",
            "properties": {
                "in_use": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "permission": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "status_message": {
                    "type": "string"
                }
            }
        },
        "summary.LogRecord": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "duration": {
                    "type": "integer"
                },
                "id": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "user_id": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "acnode server",
	Description:      "Контроль доступа к инструментам мастерской по RFID-картам.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
