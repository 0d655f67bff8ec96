package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerExercisesResource(srv, svc)
	registerCategoriesResource(srv, svc)
	registerScheduleResource(srv, svc)
	registerExerciseTemplate(srv, svc)
}

func registerExercisesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"uebung://exercises",
		"Exercises",
		mcp.WithResourceDescription("All exercise templates with their schedule."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		exercises, err := svc.ListExercises(ctx, 0)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"exercises": exercises,
			"count":     len(exercises),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerCategoriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"uebung://categories",
		"Categories",
		mcp.WithResourceDescription("The categories that link exercises to weekdays."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		categories, err := svc.Categories(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"categories": categories,
			"count":      len(categories),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerScheduleResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"uebung://schedule",
		"Schedule",
		mcp.WithResourceDescription("The category assigned to each weekday, Monday first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		schedule, err := svc.Schedule(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"schedule": schedule,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerExerciseTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"uebung://exercises/{id}",
		"Exercise Details",
		mcp.WithTemplateDescription("One exercise with its most recent log."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw := templateArg(request.Params.Arguments, "id")
		if raw == "" {
			return nil, fmt.Errorf("exercise id is required")
		}
		id, err := ParseExerciseID(raw)
		if err != nil {
			return nil, err
		}

		last, err := svc.LastLog(ctx, id)
		if err != nil {
			return nil, err
		}
		ex, err := svc.App.Exercise(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"exercise": ex,
			"last":     last,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable, which arrives either as a
// string or as a list of strings.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
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
