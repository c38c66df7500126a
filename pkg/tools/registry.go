// Package tools holds the tool catalog and the dispatcher that turns an
// incoming (name, arguments) call into a validated handler invocation and a
// uniform response envelope.
package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jayra/tradebot/pkg/kite"
)

// Param declares one input parameter of a tool.
type Param struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	Items       string      `json:"items,omitempty"` // element type for array params
}

// Definition declares a tool: its wire name, description, input parameters
// and the handler that implements it.
type Definition struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Handler executes a tool call. Arguments have already been validated
// against the tool's schema and filled with declared defaults.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Descriptor is the advertised form of a tool: name, description and a
// JSON-Schema input contract.
type Descriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

type registeredTool struct {
	def       Definition
	schemaMap map[string]interface{}
	schema    *gojsonschema.Schema
}

// Registry maps tool names to definitions and compiled schemas. Lookup is
// O(1); the advertised catalog order is stable (sorted by name).
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*registeredTool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*registeredTool)}
}

// Register adds a tool. Names must be unique; definitions are validated and
// their schema compiled once, at registration.
func (r *Registry) Register(def Definition) error {
	if err := validateDefinition(def); err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}

	schemaMap := buildSchemaMap(def.Params)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
	if err != nil {
		return fmt.Errorf("failed to compile schema for %s: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool already registered: %s", def.Name)
	}

	r.tools[def.Name] = &registeredTool{
		def:       def,
		schemaMap: schemaMap,
		schema:    schema,
	}

	log.Debug().Str("tool", def.Name).Msg("Tool registered")
	return nil
}

// RegisterAll registers a batch of tools, failing on the first bad one.
func (r *Registry) RegisterAll(defs []Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Descriptors returns the advertised catalog, sorted by tool name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.tools))
	for _, tool := range r.tools {
		descriptors = append(descriptors, Descriptor{
			Name:        tool.def.Name,
			Description: tool.def.Description,
			InputSchema: tool.schemaMap,
		})
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})
	return descriptors
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Dispatch runs one tool call to completion and always returns exactly one
// envelope. Unknown names and invalid arguments are rejected before any
// handler (and therefore any gateway) is touched; handler failures are
// mapped at this single boundary and never propagate out.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]interface{}) Envelope {
	r.mu.RLock()
	tool := r.tools[name]
	r.mu.RUnlock()

	if tool == nil {
		log.Warn().Str("tool", name).Msg("Unknown tool requested")
		return Envelope{Tool: name, Error: fmt.Sprintf("Unknown tool: %s", name)}
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	if err := validateArgs(tool.schema, args); err != nil {
		log.Warn().Str("tool", name).Err(err).Msg("Argument validation failed")
		return Envelope{Tool: name, Error: fmt.Sprintf("invalid arguments: %v", err)}
	}

	applyDefaults(tool.def.Params, args)

	result, err := r.invoke(ctx, tool.def, args)
	if err != nil {
		return failureEnvelope(name, err)
	}

	log.Debug().Str("tool", name).Msg("Tool call succeeded")
	return Envelope{Success: true, Tool: name, Data: result}
}

// invoke runs the handler, converting a panic into an error so a single bad
// call can never take the process down.
func (r *Registry) invoke(ctx context.Context, def Definition, args map[string]interface{}) (result interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("tool", def.Name).Interface("panic", rec).Msg("Handler panicked")
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()
	return def.Handler(ctx, args)
}

func failureEnvelope(name string, err error) Envelope {
	env := Envelope{Tool: name, Error: err.Error()}

	switch err.(type) {
	case *kite.AuthError, *kite.GatewayError:
		env.Hint = "If authentication error, please use set_access_token or generate_access_token first"
	}

	log.Error().Str("tool", name).Err(err).Msg("Tool call failed")
	return env
}

func validateDefinition(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Description == "" {
		return fmt.Errorf("tool description cannot be empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	validTypes := map[string]bool{
		"string": true, "number": true, "boolean": true,
		"object": true, "array": true, "integer": true,
	}
	for _, param := range def.Params {
		if param.Name == "" {
			return fmt.Errorf("parameter name cannot be empty")
		}
		if !validTypes[param.Type] {
			return fmt.Errorf("invalid parameter type %s for %s", param.Type, param.Name)
		}
		if param.Type == "array" && !validTypes[param.Items] {
			return fmt.Errorf("invalid item type %s for array parameter %s", param.Items, param.Name)
		}
	}
	return nil
}

// buildSchemaMap renders the declared parameters as a JSON-Schema object.
// The same map is compiled for validation and advertised verbatim in the
// catalog listing.
func buildSchemaMap(params []Param) map[string]interface{} {
	properties := make(map[string]interface{}, len(params))
	required := []string{}

	for _, param := range params {
		paramSchema := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Default != nil {
			paramSchema["default"] = param.Default
		}
		if len(param.Enum) > 0 {
			paramSchema["enum"] = param.Enum
		}
		if param.Type == "array" {
			paramSchema["items"] = map[string]interface{}{"type": param.Items}
		}

		properties[param.Name] = paramSchema
		if param.Required {
			required = append(required, param.Name)
		}
	}

	schemaMap := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schemaMap["required"] = required
	}
	return schemaMap
}

func validateArgs(schema *gojsonschema.Schema, args map[string]interface{}) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return err
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			messages = append(messages, resultErr.String())
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}

func applyDefaults(params []Param, args map[string]interface{}) {
	for _, param := range params {
		if param.Default == nil {
			continue
		}
		if _, present := args[param.Name]; !present {
			args[param.Name] = param.Default
		}
	}
}
