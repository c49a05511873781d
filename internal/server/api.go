// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import "github.com/pdiddy/binconv/pkg/types"

// ConvertRequest is the body of POST /v1/convert.
type ConvertRequest struct {
	Direction types.Direction `json:"direction"`
	Input     string          `json:"input"`
}

// ConvertResponse is returned by a successful POST /v1/convert.
type ConvertResponse struct {
	Direction types.Direction `json:"direction"`
	Input     string          `json:"input"`
	Output    string          `json:"output"`
}

// ValidateResponse is returned by GET /v1/validate.
type ValidateResponse struct {
	Direction types.Direction `json:"direction"`
	Input     string          `json:"input"`
	Valid     bool            `json:"valid"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// API routes.
const (
	// PathConvert accepts a ConvertRequest via POST.
	PathConvert = "/v1/convert"
	// PathValidate takes direction and input query parameters via GET.
	PathValidate = "/v1/validate"
	// PathHealth answers "ok" and needs no token.
	PathHealth = "/healthz"
)
