// Package model defines the provider-agnostic abstractions for interacting
// with language models.
//
// Core goals:
//   - Normalize tool / function call representation (ToolDefinition, ToolCall)
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so higher layers remain decoupled from vendor SDKs. Generation is
// synchronous: the orchestrator awaits every reply at the turn boundary, so
// streaming adds no capability here.
package model
