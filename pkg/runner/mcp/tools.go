package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/category"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTodoTool(srv, svc)
	registerCompleteItemTool(srv, svc)
	registerDeleteItemTool(srv, svc)
	registerScheduleTodoTool(srv, svc)
	registerAddPlannerItemTool(srv, svc)
	registerReschedulePlannerItemTool(srv, svc)
	registerAssignHourTool(srv, svc)
	registerRestoreItemTool(srv, svc)
	registerGetDayTool(srv, svc)
	registerListArchiveTool(srv, svc)
}

func categoryEnum() []string {
	names := make([]string, 0, len(category.All()))
	for _, id := range category.All() {
		names = append(names, string(id))
	}
	return names
}

func registerAddTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_todo",
		mcp.WithDescription("Add a todo to the end of a category list."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category that should hold the new todo."),
			mcp.Enum(categoryEnum()...),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What needs doing. Blank text is rejected."),
		),
		mcp.WithString("schedule",
			mcp.Description("Optional schedule tag."),
			mcp.Enum("none", "today", "tomorrow", "this-week"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Category string `json:"category"`
			Text     string `json:"text"`
			Schedule string `json:"schedule"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddTodo(ctx, args.Category, args.Text, args.Schedule)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

// registerIDTool wires the tools that only take an item id.
func registerIDTool(srv *server.MCPServer, name, description string, fn func(context.Context, string) (*ItemDTO, error)) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item identifier, or a unique prefix of one."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := fn(ctx, strings.TrimSpace(id))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCompleteItemTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv, "complete_item",
		"Complete a todo or planner item and move it to the archive.",
		svc.Complete)
}

func registerDeleteItemTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv, "delete_item",
		"Permanently delete a live todo or planner item. Archived items cannot be deleted.",
		svc.Delete)
}

func registerRestoreItemTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv, "restore_item",
		"Return an archived item to its category or the planner, uncompleted.",
		svc.Restore)
}

func registerScheduleTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"schedule_todo",
		mcp.WithDescription("Tag a todo for today, tomorrow or this week, or clear its tag. Clearing also clears its hour."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Todo identifier."),
		),
		mcp.WithString("schedule",
			mcp.Required(),
			mcp.Enum("none", "today", "tomorrow", "this-week"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tag, err := request.RequireString("schedule")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.Schedule(ctx, id, tag)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddPlannerItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_planner_item",
		mcp.WithDescription("Add an item to the day planner at a date and hour."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What is planned."),
		),
		mcp.WithNumber("hour",
			mcp.Required(),
			mcp.Description("Hour of the day, 0-23."),
			mcp.Min(0),
			mcp.Max(23),
		),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD; defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text string `json:"text"`
			Hour int    `json:"hour"`
			Date string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddPlanner(ctx, strings.TrimSpace(args.Date), args.Hour, args.Text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerReschedulePlannerItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reschedule_planner_item",
		mcp.WithDescription("Move a planner item to another date, keeping its hour."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Planner item identifier."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Target date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.Reschedule(ctx, id, strings.TrimSpace(date))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAssignHourTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"assign_hour",
		mcp.WithDescription("Bind a scheduled todo to an hour of the planner, or omit hour to unbind it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Scheduled todo identifier."),
		),
		mcp.WithNumber("hour",
			mcp.Description("Hour of the day, 0-23. Omit to clear."),
			mcp.Min(0),
			mcp.Max(23),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID   string `json:"id"`
			Hour *int   `json:"hour"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.ID) == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.AssignHour(ctx, strings.TrimSpace(args.ID), args.Hour)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_day",
		mcp.WithDescription("Aggregate a date: planner items and scheduled todos by hour, plus the unassigned tray."),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD; defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := strings.TrimSpace(request.GetString("date", ""))

		day, err := svc.Day(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(day)
	})
}

func registerListArchiveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_archive",
		mcp.WithDescription("List archived items grouped by the day they were completed, newest first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days, err := svc.Archive(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
