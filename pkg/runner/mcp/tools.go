package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerDayPlanTool(srv, svc)
	registerSaveLogTool(srv, svc)
	registerLastLogTool(srv, svc)
	registerListExercisesTool(srv, svc)
	registerScaleCoverageTool(srv, svc)
	registerProgressTool(srv, svc)
}

func registerDayPlanTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"day_plan",
		mcp.WithDescription("List the exercises scheduled on a day with the values a practice session would show."),
		mcp.WithString("date",
			mcp.Description("Day in YYYY-MM-DD form. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		plan, err := svc.DayPlan(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(plan)
	})
}

func registerSaveLogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_log",
		mcp.WithDescription("Record practice for one exercise on one day. Saving the same exercise and day again replaces the log."),
		mcp.WithNumber("exercise_id",
			mcp.Required(),
			mcp.Description("Exercise identifier."),
		),
		mcp.WithString("date",
			mcp.Description("Day in YYYY-MM-DD form. Defaults to today."),
		),
		mcp.WithString("song", mcp.Description("Song practiced.")),
		mcp.WithNumber("bpm",
			mcp.Description("Tempo in beats per minute."),
			mcp.Min(1),
		),
		mcp.WithString("page", mcp.Description("Page in the book.")),
		mcp.WithString("book", mcp.Description("Book practiced from.")),
		mcp.WithString("notes", mcp.Description("Notes for this day.")),
		mcp.WithString("global_notes", mcp.Description("Notes shown on every future session of the exercise.")),
		mcp.WithBoolean("completed", mcp.Description("Whether the exercise was completed.")),
		mcp.WithString("scales",
			mcp.Description("Comma separated KEY:MODE pairs, for example \"C:Dur,A:Moll\"."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SaveLogOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		l, err := svc.SaveLog(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(l)
	})
}

func registerLastLogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"last_log",
		mcp.WithDescription("Fetch the most recent log of an exercise."),
		mcp.WithString("exercise_id",
			mcp.Required(),
			mcp.Description("Exercise identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("exercise_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := ParseExerciseID(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		l, err := svc.LastLog(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"exercise_id": id,
			"log":         l,
		})
	})
}

func registerListExercisesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_exercises",
		mcp.WithDescription("List exercise templates with the weekdays that schedule them."),
		mcp.WithNumber("phase",
			mcp.Description("Only list exercises of this phase. 0 lists all."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		phase := request.GetInt("phase", 0)
		exercises, err := svc.ListExercises(ctx, phase)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"phase":     phase,
			"exercises": exercises,
			"count":     len(exercises),
		})
	})
}

func registerScaleCoverageTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"scale_coverage",
		mcp.WithDescription("Report which keys and modes an exercise has covered."),
		mcp.WithString("exercise_id",
			mcp.Required(),
			mcp.Description("Exercise identifier."),
		),
		mcp.WithString("date",
			mcp.Description("Day whose pairs count as today. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("exercise_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := ParseExerciseID(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		cov, err := svc.ScaleCoverage(ctx, id, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(cov)
	})
}

func registerProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"progress",
		mcp.WithDescription("Summarise completed practice within a window."),
		mcp.WithString("last",
			mcp.Description("Window such as 3d, 1w or 1mo (default 1w)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.Progress(ctx, request.GetString("last", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
