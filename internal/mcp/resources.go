package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/clab/internal/catalog"
)

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) plan(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	weeks, err := h.ds.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, weeks)
}

func (h *handlers) stats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sum, err := h.ds.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, sum)
}

func (h *handlers) catalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, catalog.Default())
}
