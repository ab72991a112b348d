package mcp

import (
	"context"

	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/progress"
	"github.com/claude/clab/internal/service"
)

// DataSource abstracts the plan store for MCP tools. Both *service.Service
// (in-process) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Profile(ctx context.Context) (models.UserConfig, error)
	GeneratePlan(ctx context.Context, cfg models.UserConfig) ([]models.WeekBlock, error)
	Plan(ctx context.Context) ([]models.WeekBlock, error)
	Week(ctx context.Context, n int) (models.WeekBlock, error)
	Stats(ctx context.Context) (progress.Summary, error)
	ToggleSession(ctx context.Context, id string) (bool, error)
	SwapDays(ctx context.Context, week, a, b int) (models.WeekBlock, error)
	ResetSchedule(ctx context.Context, week int) (models.WeekBlock, error)
}

// Compile-time check: *service.Service satisfies DataSource.
var _ DataSource = (*service.Service)(nil)
