// Package conformance provides backend-agnostic conformance tests that verify
// backends correctly implement the Backend interface contract.
//
// # Running Conformance Tests
//
// Conformance tests invoke real interpreter tooling and are gated behind build
// tags, so they do not run with regular `go test`.
//
// Run venv backend conformance tests:
//
//	go test -tags=conformance,venv ./internal/backend/conformance
//
// Run virtualenv backend conformance tests (requires virtualenv on PATH):
//
//	go test -tags=conformance,virtualenv ./internal/backend/conformance
//
// # Adding a New Backend
//
// To add conformance tests for a new backend:
//
//  1. Create a new test file (e.g., uv_test.go) with appropriate build tags:
//
//     //go:build conformance && uv
//
//  2. Register the backend and create a test function:
//
//     func TestUvConformance(t *testing.T) {
//     be, _ := backend.Get("uv")
//     suite := &Suite{Backend: be, Tool: "uv"}
//     suite.Run(t)
//     }
//
// # Test Categories
//
// The conformance suite tests:
//   - Layout: created environments carry bin/python and pyvenv.cfg
//   - Interpreter: the environment's own interpreter runs and reports its prefix
//   - Options: CreateOptions are honored where observable
//   - Failures: a bad interpreter produces an InvocationError, not a panic
package conformance
