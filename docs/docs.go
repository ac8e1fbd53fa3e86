// Package docs serves the OpenAPI description of the vault API at /swagger.
// Regenerate with `swag init -g cmd/staking-vault-service/main.go` after
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
        "/healthcheck": {
            "get": {
                "description": "Checks that the server can reach the database",
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {"200": {"description": "Server is up and running"}}
            }
        },
        "/v1/vault/init": {
            "post": {
                "description": "Sets the validator the vault delegates to. Succeeds only once.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Initialize the vault",
                "parameters": [
                    {"type": "string", "description": "Admin secret", "name": "X-Admin-Secret", "in": "header", "required": true},
                    {"description": "Validator public key in hex", "name": "payload", "in": "body", "required": true,
                        "schema": {"$ref": "#/definitions/handlers.InitRequestPayload"}}
                ],
                "responses": {
                    "200": {"description": "Pool after initialization", "schema": {"$ref": "#/definitions/services.PoolPublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}},
                    "401": {"description": "Error: Unauthorized", "schema": {"$ref": "#/definitions/types.Error"}},
                    "409": {"description": "Error: Already initialized", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/vault/deposit": {
            "post": {
                "description": "Credits an amount the sidecar saw arrive in the vault purse to the caller. The pending pool is delegated once it reaches the minimum delegation.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Deposit into the vault",
                "parameters": [
                    {"type": "string", "description": "Node sidecar credential", "name": "X-Sidecar-Secret", "in": "header", "required": true},
                    {"type": "string", "description": "Caller public key in hex", "name": "X-Caller", "in": "header", "required": true},
                    {"description": "Amount in motes", "name": "payload", "in": "body", "required": true,
                        "schema": {"$ref": "#/definitions/handlers.AmountRequestPayload"}}
                ],
                "responses": {
                    "200": {"description": "Deposit and resulting pool", "schema": {"$ref": "#/definitions/services.DepositPublic"}},
                    "400": {"description": "Error: Bad Request or value not received", "schema": {"$ref": "#/definitions/types.Error"}},
                    "401": {"description": "Error: Unauthorized", "schema": {"$ref": "#/definitions/types.Error"}},
                    "409": {"description": "Error: Vault not initialized", "schema": {"$ref": "#/definitions/types.Error"}},
                    "502": {"description": "Error: Staking backend failure", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/vault/exit": {
            "post": {
                "description": "Undelegates the amount from the caller's balance and queues it for payout",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Request an exit",
                "parameters": [
                    {"type": "string", "description": "Node sidecar credential", "name": "X-Sidecar-Secret", "in": "header", "required": true},
                    {"type": "string", "description": "Caller public key in hex", "name": "X-Caller", "in": "header", "required": true},
                    {"description": "Amount in motes", "name": "payload", "in": "body", "required": true,
                        "schema": {"$ref": "#/definitions/handlers.AmountRequestPayload"}}
                ],
                "responses": {
                    "202": {"description": "Queued unstake request", "schema": {"$ref": "#/definitions/services.UnstakeRequestPublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}},
                    "401": {"description": "Error: Unauthorized", "schema": {"$ref": "#/definitions/types.Error"}},
                    "403": {"description": "Error: Insufficient balance", "schema": {"$ref": "#/definitions/types.Error"}},
                    "409": {"description": "Error: Vault not initialized", "schema": {"$ref": "#/definitions/types.Error"}},
                    "502": {"description": "Error: Staking backend failure", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/vault/drain": {
            "post": {
                "description": "Pays queued unstake requests in order while liquidity lasts",
                "produces": ["application/json"],
                "summary": "Settle queued withdrawals",
                "responses": {
                    "200": {"description": "Number of settled requests", "schema": {"$ref": "#/definitions/services.DrainPublic"}},
                    "409": {"description": "Error: Vault not initialized", "schema": {"$ref": "#/definitions/types.Error"}},
                    "502": {"description": "Error: Transfer failure", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/vault/harvest": {
            "post": {
                "description": "Records the surplus of holdings over liabilities as the harvested prize pool",
                "produces": ["application/json"],
                "summary": "Harvest the surplus",
                "responses": {
                    "200": {"description": "Harvested prize pool", "schema": {"$ref": "#/definitions/services.HarvestPublic"}},
                    "409": {"description": "Error: Vault not initialized", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/vault/pool": {
            "get": {
                "description": "Returns the pool accumulators and the unstake queue length",
                "produces": ["application/json"],
                "summary": "Get the pool",
                "responses": {"200": {"description": "Pool", "schema": {"$ref": "#/definitions/services.PoolPublic"}}}
            }
        },
        "/v1/vault/balance": {
            "get": {
                "description": "Returns the claimable balance of an account",
                "produces": ["application/json"],
                "summary": "Get a balance",
                "parameters": [
                    {"type": "string", "description": "Account public key in hex", "name": "account", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Balance", "schema": {"$ref": "#/definitions/services.BalancePublic"}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/vault/history": {
            "get": {
                "description": "Returns deposits, exit requests and payouts of an account, newest first",
                "produces": ["application/json"],
                "summary": "Get account history",
                "parameters": [
                    {"type": "string", "description": "Account public key in hex", "name": "account", "in": "query", "required": true},
                    {"type": "string", "description": "Pagination key to fetch the next page", "name": "pagination_key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Activities and pagination token",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/services.ActivityPublic"}}},
                    "400": {"description": "Error: Bad Request", "schema": {"$ref": "#/definitions/types.Error"}}
                }
            }
        },
        "/v1/vault/info": {
            "get": {
                "description": "Returns total value locked, participants, queue length and the last harvested surplus",
                "produces": ["application/json"],
                "summary": "Get vault info",
                "responses": {"200": {"description": "Vault info", "schema": {"$ref": "#/definitions/services.VaultInfoPublic"}}}
            }
        }
    },
    "definitions": {
        "handlers.AmountRequestPayload": {
            "type": "object",
            "properties": {"amount": {"type": "string"}}
        },
        "handlers.InitRequestPayload": {
            "type": "object",
            "properties": {"validator": {"type": "string"}}
        },
        "services.PoolPublic": {
            "type": "object",
            "properties": {
                "validator": {"type": "string"},
                "initialized": {"type": "boolean"},
                "treasury_balance": {"type": "string"},
                "staked_amount": {"type": "string"},
                "pending_stake_pool": {"type": "string"},
                "total_unstaked_amount": {"type": "string"},
                "total_principal": {"type": "string"},
                "harvested_prize_pool": {"type": "string"},
                "unstake_queue_length": {"type": "integer"},
                "min_delegation": {"type": "string"}
            }
        },
        "services.DepositPublic": {
            "type": "object",
            "properties": {
                "account": {"type": "string"},
                "amount": {"type": "string"},
                "delegated": {"type": "string"},
                "pool": {"$ref": "#/definitions/services.PoolPublic"}
            }
        },
        "services.UnstakeRequestPublic": {
            "type": "object",
            "properties": {
                "seq": {"type": "integer"},
                "account": {"type": "string"},
                "amount": {"type": "string"},
                "requested_at": {"type": "integer"}
            }
        },
        "services.DrainPublic": {
            "type": "object",
            "properties": {"settled": {"type": "integer"}}
        },
        "services.HarvestPublic": {
            "type": "object",
            "properties": {
                "harvested_prize_pool": {"type": "string"},
                "updated": {"type": "boolean"}
            }
        },
        "services.BalancePublic": {
            "type": "object",
            "properties": {
                "account": {"type": "string"},
                "balance": {"type": "string"}
            }
        },
        "services.ActivityPublic": {
            "type": "object",
            "properties": {
                "account": {"type": "string"},
                "type": {"type": "string"},
                "amount": {"type": "string"},
                "request_seq": {"type": "integer"},
                "operation_id": {"type": "string"},
                "timestamp": {"type": "integer"}
            }
        },
        "services.VaultInfoPublic": {
            "type": "object",
            "properties": {
                "total_value_locked": {"type": "string"},
                "participants": {"type": "integer"},
                "unstake_queue_length": {"type": "integer"},
                "harvested_prize_pool": {"type": "string"}
            }
        },
        "types.Error": {
            "type": "object",
            "properties": {
                "errorCode": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Staking Vault Service API",
	Description:      "Pooled staking vault: deposits, exit requests, withdrawals and surplus accounting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
