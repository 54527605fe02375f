// Package billing provides the domain model for invoicing customers and
// recording their payments.
//
// An Invoice bills a set of orders for one customer. Its items are derived
// from the orders' line items, plate charges and advances when the invoice is
// generated, and its amounts never change afterwards. A Payment is money
// received against an invoice, an order, or both; the invoice status is
// recomputed from the sum of its linked payments.
//
// The package is free of persistence concerns. Repository interfaces are
// declared in repository.go and implemented by the persistence layer.
package billing
