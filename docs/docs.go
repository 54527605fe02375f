// Package docs registers the OpenAPI document served at /swagger.
//
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
    "tags": [
        {"name": "customers", "description": "Customers and their contact metadata"},
        {"name": "catalog", "description": "Product sizes and plate types"},
        {"name": "orders", "description": "Production orders and their line items"},
        {"name": "invoices", "description": "Invoice generation, status and PDF rendering"},
        {"name": "payments", "description": "Payments against orders and invoices"}
    ],
    "paths": {
        "/customers": {
            "get": {"tags": ["customers"], "summary": "List customers", "operationId": "listCustomers", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["customers"], "summary": "Create a customer", "operationId": "createCustomer", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/customers/{id}": {
            "get": {"tags": ["customers"], "summary": "Get customer by ID", "operationId": "getCustomer", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["customers"], "summary": "Update a customer", "operationId": "updateCustomer", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["customers"], "summary": "Archive a customer", "operationId": "deleteCustomer", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/product-sizes": {
            "get": {"tags": ["catalog"], "summary": "List product sizes", "operationId": "listProductSizes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["catalog"], "summary": "Create a product size", "operationId": "createProductSize", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/product-sizes/{id}": {
            "get": {"tags": ["catalog"], "summary": "Get product size by ID", "operationId": "getProductSize", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["catalog"], "summary": "Update a product size", "operationId": "updateProductSize", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["catalog"], "summary": "Archive a product size", "operationId": "deleteProductSize", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/plate-types": {
            "get": {"tags": ["catalog"], "summary": "List plate types", "operationId": "listPlateTypes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["catalog"], "summary": "Create a plate type", "operationId": "createPlateType", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/plate-types/{id}": {
            "get": {"tags": ["catalog"], "summary": "Get plate type by ID", "operationId": "getPlateType", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["catalog"], "summary": "Update a plate type", "operationId": "updatePlateType", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["catalog"], "summary": "Archive a plate type", "operationId": "deletePlateType", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/orders": {
            "get": {"tags": ["orders"], "summary": "List orders", "operationId": "listOrders", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["orders"], "summary": "Create an order", "operationId": "createOrder", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/orders/{id}": {
            "get": {"tags": ["orders"], "summary": "Get order by ID", "operationId": "getOrder", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["orders"], "summary": "Update an order", "operationId": "updateOrder", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["orders"], "summary": "Delete an order", "operationId": "deleteOrder", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/orders/{id}/status": {
            "patch": {"tags": ["orders"], "summary": "Set order status", "operationId": "updateOrderStatus", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/invoices": {
            "get": {"tags": ["invoices"], "summary": "List invoices", "operationId": "listInvoices", "responses": {"200": {"description": "OK"}}}
        },
        "/invoices/generate": {
            "post": {"tags": ["invoices"], "summary": "Generate an invoice", "operationId": "generateInvoice", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}, "422": {"description": "No eligible orders"}}}
        },
        "/invoices/{id}": {
            "get": {"tags": ["invoices"], "summary": "Get invoice by ID", "operationId": "getInvoice", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["invoices"], "summary": "Delete an invoice", "operationId": "deleteInvoice", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/invoices/{id}/status": {
            "patch": {"tags": ["invoices"], "summary": "Set invoice status", "operationId": "updateInvoiceStatus", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/invoices/{id}/pdf": {
            "get": {"tags": ["invoices"], "summary": "Download invoice PDF", "operationId": "downloadInvoicePDF", "produces": ["application/pdf"], "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}, {"type": "boolean", "name": "archive", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "404": {"description": "Not Found"}}}
        },
        "/payments": {
            "get": {"tags": ["payments"], "summary": "List payments", "operationId": "listPayments", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["payments"], "summary": "Record a payment", "operationId": "recordPayment", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/payments/{id}": {
            "get": {"tags": ["payments"], "summary": "Get payment by ID", "operationId": "getPayment", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["payments"], "summary": "Update a payment", "operationId": "updatePayment", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["payments"], "summary": "Delete a payment", "operationId": "deletePayment", "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pressworks Billing API",
	Description:      "Order, invoice and payment reconciliation for a printing press",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
