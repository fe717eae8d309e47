// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockServer provides a mock HTTP server for testing full node endpoints
type MockServer struct {
	server    *httptest.Server
	routes    map[string]MockRoute
	mu        sync.RWMutex
	callCount map[string]int
}

// MockRoute defines the response configuration for a specific endpoint
type MockRoute struct {
	StatusCode int
	Body       interface{}
	Headers    map[string]string
}

// NewMockServer creates a new mock server with the given routes
func NewMockServer(routes map[string]MockRoute) *MockServer {
	ms := &MockServer{
		routes:    make(map[string]MockRoute),
		callCount: make(map[string]int),
	}

	for path, route := range routes {
		ms.routes[path] = route
	}

	ms.server = httptest.NewServer(http.HandlerFunc(ms.handleRequest))

	return ms
}

// handleRequest handles incoming HTTP requests and returns the configured response
func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	ms.callCount[r.URL.Path]++
	ms.mu.Unlock()

	ms.mu.RLock()
	route, exists := ms.routes[r.URL.Path]
	ms.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")

	if !exists {
		// Return 404 for unmapped endpoints
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"status": "error",
			"detail": fmt.Sprintf("endpoint not found: %s", r.URL.Path),
		}); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
		return
	}

	if route.Headers != nil {
		for key, value := range route.Headers {
			w.Header().Set(key, value)
		}
	}

	w.WriteHeader(route.StatusCode)

	if route.Body != nil {
		if err := json.NewEncoder(w).Encode(route.Body); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}

// URL returns the base URL of the mock server
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close stops the mock server
func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// AddRoute adds or updates a route in the running server
func (ms *MockServer) AddRoute(path string, route MockRoute) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.routes[path] = route
}

// CallCount returns how many times a path has been requested
func (ms *MockServer) CallCount(path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.callCount[path]
}
