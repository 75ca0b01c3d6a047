// Package tools declares the Zendesk tool table. Each tool validates its
// arguments, forwards them to one zendesk.Client operation and returns the
// JSON response as indented text, with objects repeated as structured
// content. Errors never escape a handler; they become error-flagged results.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
	"github.com/ggoodman/zendesk-mcp-server-go/mcpservice"
	"github.com/ggoodman/zendesk-mcp-server-go/risk"
	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
)

// All returns the full tool table bound to c. The set of names is identical
// on every call.
func All(c *zendesk.Client) []mcpservice.StaticTool {
	defs := slices.Concat(
		ticketTools(c),
		userTools(c),
		organizationTools(c),
		groupTools(c),
		macroTools(c),
		viewTools(c),
		triggerTools(c),
		automationTools(c),
		searchTools(c),
		helpCenterTools(c),
		talkTools(c),
		chatTools(c),
	)
	names := make([]string, 0, len(defs)+1)
	descs := make(map[string]string, len(defs)+1)
	for _, d := range defs {
		names = append(names, d.Descriptor.Name)
		descs[d.Descriptor.Name] = d.Descriptor.Description
	}
	risks := listToolRisks(names, descs)
	return append(defs, risks)
}

// Names returns the tool names in registration order.
func Names() []string {
	all := All(nil)
	out := make([]string, len(all))
	for i, t := range all {
		out[i] = t.Descriptor.Name
	}
	return out
}

func annotations(name string) mcp.ToolAnnotations {
	l := risk.Classify(name)
	return mcp.ToolAnnotations{
		ReadOnlyHint:    l == risk.Safe,
		DestructiveHint: l == risk.High,
	}
}

// rawTool builds a tool whose handler returns one raw API response.
func rawTool[A any](name, desc string, fn func(ctx context.Context, a A) (json.RawMessage, error)) mcpservice.StaticTool {
	return mcpservice.NewTool(name, func(ctx context.Context, w mcpservice.ToolResponseWriter, r *mcpservice.ToolRequest[A]) error {
		raw, err := fn(ctx, r.Args())
		if err != nil {
			return err
		}
		return w.AppendJSON(raw)
	}, options(name, desc)...)
}

func options(name, desc string) []mcpservice.ToolOption {
	return []mcpservice.ToolOption{
		mcpservice.WithToolDescription(risk.Describe(name, desc)),
		mcpservice.WithToolAnnotations(annotations(name)),
	}
}

// payload marshals args and removes the keys that address the entity rather
// than describe it. Unset optional fields are omitted by their omitempty tags,
// so partial updates never send nulls.
func payload(args any, drop ...string) (map[string]json.RawMessage, error) {
	b, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	for _, k := range drop {
		delete(out, k)
	}
	return out, nil
}

// setJSON stores v under key in p.
func setJSON(p map[string]json.RawMessage, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	p[key] = b
	return nil
}

// Shared argument shapes.

type listArgs struct {
	Page      *int    `json:"page,omitempty" validate:"omitempty,min=0" jsonschema:"description=Page number (1-based; 0 or absent means the first page)"`
	PerPage   *int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100" jsonschema:"description=Results per page (max 100)"`
	SortBy    *string `json:"sort_by,omitempty" jsonschema:"description=Field to sort by"`
	SortOrder *string `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc" jsonschema:"enum=asc,enum=desc"`
}

func (a listArgs) options() zendesk.ListOptions {
	var o zendesk.ListOptions
	if a.Page != nil {
		o.Page = *a.Page
	}
	if a.PerPage != nil {
		o.PerPage = *a.PerPage
	}
	if a.SortBy != nil {
		o.SortBy = *a.SortBy
	}
	if a.SortOrder != nil {
		o.SortOrder = *a.SortOrder
	}
	return o
}

type idArgs struct {
	ID int64 `json:"id" validate:"required" jsonschema:"description=Numeric ID"`
}

type noArgs struct{}

// Condition is one rule in a view, trigger or automation.
type Condition struct {
	Field    string `json:"field" validate:"required"`
	Operator string `json:"operator" validate:"required"`
	Value    any    `json:"value,omitempty"`
}

// Conditions groups rules that must all match and rules of which any must match.
type Conditions struct {
	All []Condition `json:"all,omitempty" validate:"dive"`
	Any []Condition `json:"any,omitempty" validate:"dive"`
}

// Action is one field change applied by a macro, trigger or automation.
type Action struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

// CustomField sets a ticket custom field.
type CustomField struct {
	ID    int64 `json:"id" validate:"required"`
	Value any   `json:"value"`
}
