package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/pace"
	"github.com/claude/clab/internal/schedule"
)

var distanceEnum = mcp.Enum(
	string(models.Distance5K), string(models.Distance10K), string(models.DistanceHalf),
	string(models.DistanceMarathon), string(models.DistanceHyrox),
)

// --- Tool definitions ---

var toolComputePaces = mcp.NewTool("compute_paces",
	mcp.WithDescription("Compute training paces (min/km) for a race goal: race, threshold, interval and easy pace, plus the slowdown gap in percent. Without week, returns every week of the plan."),
	mcp.WithString("distance", mcp.Required(), mcp.Description("Target race"), distanceEnum),
	mcp.WithNumber("goal_time", mcp.Required(), mcp.Description("Goal finish time in minutes")),
	mcp.WithNumber("week", mcp.Description("Week number (1-based). Omit for all weeks.")),
	mcp.WithNumber("total_weeks", mcp.Description("Plan length in weeks. Defaults to 10.")),
	mcp.WithNumber("progression_start", mcp.Description("Week 1 slowdown in percent (0-30). Defaults to 15.")),
	mcp.WithNumber("difficulty_factor", mcp.Description("Multiplier on goal time, >= 0.8. Defaults to 1.0.")),
)

var toolGeneratePlan = mcp.NewTool("generate_plan",
	mcp.WithDescription("Generate a new plan and make it the current one. Omitted fields keep the stored profile values. Completion ticks are kept."),
	mcp.WithString("distance", mcp.Description("Target race"), distanceEnum),
	mcp.WithNumber("goal_time", mcp.Description("Goal finish time in minutes")),
	mcp.WithNumber("duration_weeks", mcp.Description("Plan length in weeks (4-52)")),
	mcp.WithNumber("run_days", mcp.Description("Running sessions per week (0-7)")),
	mcp.WithNumber("strength_days", mcp.Description("Gym sessions per week (0-7)")),
	mcp.WithNumber("hyrox_sessions", mcp.Description("Hyrox workouts per week (0-7), hyrox only")),
	mcp.WithString("strength_focus", mcp.Description("Gym programming style"),
		mcp.Enum(string(models.FocusForce), string(models.FocusHypertrophy), string(models.FocusStreetWorkout))),
)

var toolGetWeek = mcp.NewTool("get_week",
	mcp.WithDescription("Get one week of the current plan: sessions with their exercises, and the day-by-day calendar."),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number (1-based)")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Completion progress, kilometres done, weekly volume and load, and low/high intensity split."),
)

var toolToggleSession = mcp.NewTool("toggle_session",
	mcp.WithDescription("Mark a session done, or undone if it already was. Returns the new state."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id, e.g. w3-r2")),
)

var toolSwapDays = mcp.NewTool("swap_days",
	mcp.WithDescription("Swap the contents of two days in a week's calendar."),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number (1-based)")),
	mcp.WithString("day_a", mcp.Required(), mcp.Description("Day name (Lundi..Dimanche, monday..sunday) or index 0-6")),
	mcp.WithString("day_b", mcp.Required(), mcp.Description("Day name or index 0-6")),
)

var toolResetWeekSchedule = mcp.NewTool("reset_week_schedule",
	mcp.WithDescription("Rebuild a week's calendar from its sessions, discarding manual swaps."),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number (1-based)")),
)

// --- Tool handlers ---

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

type weekPaces struct {
	Week int `json:"week"`
	models.PaceSet
}

func (h *handlers) computePaces(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	distance, err := req.RequireString("distance")
	if err != nil {
		return mcp.NewToolResultError("distance parameter is required"), nil
	}
	goal, err := req.RequireFloat("goal_time")
	if err != nil {
		return mcp.NewToolResultError("goal_time parameter is required"), nil
	}

	cfg := models.DefaultUserConfig()
	cfg.TargetDistance = models.Distance(distance)
	cfg.GoalTime = goal
	cfg.DurationWeeks = req.GetInt("total_weeks", cfg.DurationWeeks)
	cfg.ProgressionStart = req.GetFloat("progression_start", cfg.ProgressionStart)
	cfg.DifficultyFactor = req.GetFloat("difficulty_factor", cfg.DifficultyFactor)
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	week := req.GetInt("week", 0)
	if week < 0 || week > cfg.DurationWeeks {
		return mcp.NewToolResultError("week out of range"), nil
	}
	first, last := 1, cfg.DurationWeeks
	if week > 0 {
		first, last = week, week
	}

	out := make([]weekPaces, 0, last-first+1)
	for w := first; w <= last; w++ {
		ps, err := pace.ForConfig(cfg, w)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out = append(out, weekPaces{Week: w, PaceSet: ps})
	}
	if week > 0 {
		return jsonResult(out[0])
	}
	return jsonResult(out)
}

type weekSummary struct {
	Week     int    `json:"week"`
	Focus    string `json:"focus"`
	Volume   string `json:"volume"`
	Sessions int    `json:"sessions"`
	Minutes  int    `json:"minutes"`
}

func (h *handlers) generatePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.ds.Profile(ctx)
	if err != nil {
		h.log.Error("mcp generate_plan profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	cfg.TargetDistance = models.Distance(req.GetString("distance", string(cfg.TargetDistance)))
	cfg.GoalTime = req.GetFloat("goal_time", cfg.GoalTime)
	cfg.DurationWeeks = req.GetInt("duration_weeks", cfg.DurationWeeks)
	cfg.RunDaysPerWeek = req.GetInt("run_days", cfg.RunDaysPerWeek)
	cfg.StrengthDaysPerWeek = req.GetInt("strength_days", cfg.StrengthDaysPerWeek)
	cfg.HyroxSessionsPerWeek = req.GetInt("hyrox_sessions", cfg.HyroxSessionsPerWeek)
	cfg.StrengthFocus = models.StrengthFocus(req.GetString("strength_focus", string(cfg.StrengthFocus)))
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	weeks, err := h.ds.GeneratePlan(ctx, cfg)
	if err != nil {
		h.log.Error("mcp generate_plan", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}

	summary := make([]weekSummary, len(weeks))
	for i, w := range weeks {
		summary[i] = weekSummary{
			Week:     w.WeekNumber,
			Focus:    w.Focus,
			Volume:   w.VolumeLabel,
			Sessions: len(w.Sessions),
			Minutes:  w.TotalMinutes(),
		}
	}
	return jsonResult(map[string]any{
		"profile": cfg,
		"weeks":   summary,
	})
}

func (h *handlers) getWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}

	w, err := h.ds.Week(ctx, week)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(w)
}

func (h *handlers) getStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum, err := h.ds.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sum)
}

func (h *handlers) toggleSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	done, err := h.ds.ToggleSession(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"id": id, "done": done})
}

func (h *handlers) swapDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	rawA, err := req.RequireString("day_a")
	if err != nil {
		return mcp.NewToolResultError("day_a parameter is required"), nil
	}
	rawB, err := req.RequireString("day_b")
	if err != nil {
		return mcp.NewToolResultError("day_b parameter is required"), nil
	}
	a, err := schedule.DayIndex(rawA)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := schedule.DayIndex(rawB)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	w, err := h.ds.SwapDays(ctx, week, a, b)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(w.Schedule)
}

func (h *handlers) resetWeekSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}

	w, err := h.ds.ResetSchedule(ctx, week)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(w.Schedule)
}
