package dto

import "net/http"

// Response is the envelope returned by every endpoint. Count only appears
// on collection responses; Payload is omitted on errors.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Count      *int        `json:"count,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
}

// OK wraps a single payload
func OK(payload interface{}) Response {
	return Response{
		StatusCode: http.StatusOK,
		Message:    "success",
		Payload:    payload,
	}
}

// OKList wraps a collection payload with its count
func OKList(count int, payload interface{}) Response {
	return Response{
		StatusCode: http.StatusOK,
		Message:    "success",
		Count:      &count,
		Payload:    payload,
	}
}

// Created wraps a payload persisted by the request
func Created(payload interface{}) Response {
	return Response{
		StatusCode: http.StatusCreated,
		Message:    "created",
		Payload:    payload,
	}
}

// Error builds an error envelope
func Error(statusCode int, message string) Response {
	return Response{
		StatusCode: statusCode,
		Message:    message,
	}
}
