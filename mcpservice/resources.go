package mcpservice

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ggoodman/zendesk-mcp-server-go/mcp"
)

// TemplateReadFunc reads a resource addressed through a template. vars holds
// the values bound to the template's {placeholders}.
type TemplateReadFunc func(ctx context.Context, uri string, vars map[string]string) ([]mcp.ResourceContents, error)

type templateEntry struct {
	tmpl mcp.ResourceTemplate
	read TemplateReadFunc
}

// ResourcesContainer implements ResourcesCapability over a fixed set of
// concrete resources and URI templates. Reads are always resolved through a
// template; concrete resources are listing entries for URIs a template can
// serve.
type ResourcesContainer struct {
	mu        sync.RWMutex
	resources []mcp.Resource
	templates []templateEntry
	pageSize  int
}

// NewResourcesContainer returns an empty container.
func NewResourcesContainer() *ResourcesContainer {
	return &ResourcesContainer{}
}

// AddTemplate registers a URI template and the function serving it.
func (rc *ResourcesContainer) AddTemplate(t mcp.ResourceTemplate, fn TemplateReadFunc) {
	rc.mu.Lock()
	rc.templates = append(rc.templates, templateEntry{tmpl: t, read: fn})
	rc.mu.Unlock()
}

// AddResource registers a concrete resource for listing.
func (rc *ResourcesContainer) AddResource(r ...mcp.Resource) {
	rc.mu.Lock()
	rc.resources = append(rc.resources, r...)
	rc.mu.Unlock()
}

// SetPageSize sets the page size for both listings. Non-positive disables paging.
func (rc *ResourcesContainer) SetPageSize(n int) {
	rc.mu.Lock()
	rc.pageSize = max(n, 0)
	rc.mu.Unlock()
}

func (rc *ResourcesContainer) ListResources(ctx context.Context, cursor *string) (Page[mcp.Resource], error) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return paginate(rc.resources, cursor, rc.pageSize), nil
}

func (rc *ResourcesContainer) ListResourceTemplates(ctx context.Context, cursor *string) (Page[mcp.ResourceTemplate], error) {
	rc.mu.RLock()
	all := make([]mcp.ResourceTemplate, len(rc.templates))
	for i, t := range rc.templates {
		all[i] = t.tmpl
	}
	size := rc.pageSize
	rc.mu.RUnlock()
	return paginate(all, cursor, size), nil
}

func (rc *ResourcesContainer) ReadResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	rc.mu.RLock()
	templates := append([]templateEntry(nil), rc.templates...)
	rc.mu.RUnlock()
	for _, t := range templates {
		if vars, ok := MatchTemplate(t.tmpl.URITemplate, uri); ok {
			return t.read(ctx, uri, vars)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
}

// MatchTemplate matches uri against a level-1 URI template such as
// "zendesk://docs/{section}". A placeholder binds one non-empty path segment.
func MatchTemplate(tmpl, uri string) (map[string]string, bool) {
	vars := map[string]string{}
	for tmpl != "" {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			return vars, tmpl == uri
		}
		if !strings.HasPrefix(uri, tmpl[:open]) {
			return nil, false
		}
		uri = uri[open:]
		closing := strings.IndexByte(tmpl[open:], '}')
		if closing < 0 {
			return nil, false
		}
		name := tmpl[open+1 : open+closing]
		tmpl = tmpl[open+closing+1:]

		end := strings.IndexByte(uri, '/')
		if end < 0 {
			end = len(uri)
		}
		if end == 0 {
			return nil, false
		}
		vars[name] = uri[:end]
		uri = uri[end:]
	}
	return vars, uri == ""
}
