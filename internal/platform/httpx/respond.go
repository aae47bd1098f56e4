// Package httpx provides JSON request and response helpers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// DetailBody is the error envelope returned by every endpoint.
type DetailBody struct {
	Detail string `json:"detail"`
}

// MessageBody acknowledges mutations that return no entity.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Detail sends an error envelope.
func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, DetailBody{Detail: detail})
}

// Message sends a 200 acknowledgement.
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, MessageBody{Message: message})
}
