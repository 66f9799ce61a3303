// Package errors provides custom error types for inventory operations.
package errors

import "errors"

// ErrInvalidArgument covers every rejected input: negative price or stock,
// nil or duplicate product, nil order, unknown product or non-positive
// quantity on an order line.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrProductNotFound reports a lookup miss to callers that need to
// distinguish absence from rejection.
var ErrProductNotFound = errors.New("product not found")
