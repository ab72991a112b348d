package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/claude/clab/internal/config"
	"github.com/claude/clab/internal/export"
	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/pace"
	"github.com/claude/clab/internal/plan"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func profileFlags() []cli.Flag {
	def := models.DefaultUserConfig()
	return []cli.Flag{
		&cli.StringFlag{Name: "distance", Value: string(def.TargetDistance), Usage: "target race: 5k, 10k, 21k, 42k or hyrox"},
		&cli.Float64Flag{Name: "goal", Value: def.GoalTime, Usage: "goal finish time in minutes"},
		&cli.IntFlag{Name: "weeks", Value: def.DurationWeeks, Usage: "plan length in weeks"},
		&cli.Float64Flag{Name: "progression", Value: def.ProgressionStart, Usage: "week 1 slowdown in percent"},
		&cli.Float64Flag{Name: "factor", Value: def.DifficultyFactor, Usage: "difficulty factor applied to the goal time"},
		&cli.IntFlag{Name: "run-days", Value: def.RunDaysPerWeek, Usage: "running sessions per week"},
		&cli.IntFlag{Name: "strength-days", Value: def.StrengthDaysPerWeek, Usage: "gym sessions per week"},
		&cli.IntFlag{Name: "hyrox-sessions", Value: def.HyroxSessionsPerWeek, Usage: "hyrox workouts per week"},
		&cli.IntFlag{Name: "extra-runs", Value: def.ExtraRunSessions, Usage: "bonus runs per week (hyrox)"},
		&cli.IntFlag{Name: "extra-strength", Value: def.ExtraStrengthSessions, Usage: "bonus gym sessions per week (hyrox)"},
		&cli.StringFlag{Name: "focus", Value: string(def.StrengthFocus), Usage: "strength focus: force, hypertrophy or street_workout"},
		&cli.StringFlag{Name: "profile", Usage: "JSON profile file; flags set explicitly override it"},
	}
}

// profile builds the user config from --profile and the explicit flags.
func profile(c *cli.Context) (models.UserConfig, error) {
	cfg := models.DefaultUserConfig()
	if path := c.String("profile"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading profile: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing profile: %w", err)
		}
	}
	set := func(name string, apply func()) {
		if c.IsSet(name) || c.String("profile") == "" {
			apply()
		}
	}
	set("distance", func() { cfg.TargetDistance = models.Distance(c.String("distance")) })
	set("goal", func() { cfg.GoalTime = c.Float64("goal") })
	set("weeks", func() { cfg.DurationWeeks = c.Int("weeks") })
	set("progression", func() { cfg.ProgressionStart = c.Float64("progression") })
	set("factor", func() { cfg.DifficultyFactor = c.Float64("factor") })
	set("run-days", func() { cfg.RunDaysPerWeek = c.Int("run-days") })
	set("strength-days", func() { cfg.StrengthDaysPerWeek = c.Int("strength-days") })
	set("hyrox-sessions", func() { cfg.HyroxSessionsPerWeek = c.Int("hyrox-sessions") })
	set("extra-runs", func() { cfg.ExtraRunSessions = c.Int("extra-runs") })
	set("extra-strength", func() { cfg.ExtraStrengthSessions = c.Int("extra-strength") })
	set("focus", func() { cfg.StrengthFocus = models.StrengthFocus(c.String("focus")) })
	return cfg, cfg.Validate()
}

func generate(c *cli.Context) error {
	cfg, err := profile(c)
	if err != nil {
		return err
	}
	weeks, err := plan.Generate(cfg)
	if err != nil {
		return err
	}
	log.Info("plan generated", "weeks", len(weeks), "distance", cfg.TargetDistance)

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(weeks)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEMAINE\tPHASE\tVOLUME\tSÉANCES\tMINUTES")
	for _, w := range weeks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", w.WeekNumber, w.Focus, w.VolumeLabel, len(w.Sessions), w.TotalMinutes())
		for _, day := range w.Schedule {
			if len(day.SessionIDs) == 0 {
				continue
			}
			fmt.Fprintf(tw, "\t%s\t%s\t%s\t\n", day.Day, day.Activity, strings.Join(day.SessionIDs, " "))
		}
	}
	return tw.Flush()
}

func paces(c *cli.Context) error {
	cfg, err := profile(c)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEMAINE\tCOURSE\tSEUIL\tVMA\tENDURANCE\tÉCART")
	for w := 1; w <= cfg.DurationWeeks; w++ {
		ps, err := pace.ForConfig(cfg, w)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t+%d%%\n", w, ps.Race, ps.Threshold, ps.Interval, ps.EasyRange, ps.Gap)
	}
	return tw.Flush()
}

func exportPlan(c *cli.Context) (err error) {
	format := c.String("format")
	start := export.NextMonday(time.Now())
	switch format {
	case "ics":
		if hour := c.Int("hour"); hour < 0 || hour > 23 {
			return fmt.Errorf("--hour must be between 0 and 23")
		}
		if c.IsSet("start") {
			start, err = time.ParseInLocation(config.DateLayout, c.String("start"), time.Local)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
		}
	case "xlsx", "csv":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	cfg, err := profile(c)
	if err != nil {
		return err
	}
	weeks, err := plan.Generate(cfg)
	if err != nil {
		return err
	}

	var out io.Writer = c.App.Writer
	if path := c.String("output"); path != "" {
		fp, ferr := os.Create(path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := fp.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", path, cerr)
			}
		}()
		out = fp
	}

	if err := writePlan(out, format, weeks, start, c.Int("hour")); err != nil {
		return err
	}
	log.Info("plan exported", "format", format, "output", c.String("output"))
	return nil
}

func writePlan(out io.Writer, format string, weeks []models.WeekBlock, start time.Time, hour int) error {
	switch format {
	case "ics":
		_, err := io.WriteString(out, export.ICS(weeks, start, hour))
		return err
	case "xlsx":
		f, err := export.XLSX(weeks)
		if err != nil {
			return err
		}
		defer f.Close()
		return f.Write(out)
	default:
		return export.CSV(out, weeks)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "clab-plan",
		HelpName: "clab-plan",
		Usage:    "Generate training plans offline",
		Version:  Version,
		Flags:    profileFlags(),
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			log.Error(c.App.Name, "error", err)
		},
		Before: func(c *cli.Context) error {
			log = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: slog.LevelInfo}))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "print the plan week by week",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "print the full plan as JSON"}},
				Action: generate,
			},
			{
				Name:   "paces",
				Usage:  "print the training paces of every week",
				Action: paces,
			},
			{
				Name:  "export",
				Usage: "write the plan as a calendar, workbook or CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "ics", Usage: "ics, xlsx or csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (stdout when empty)"},
					&cli.StringFlag{Name: "start", Usage: "Monday of week 1, YYYY-MM-DD (ics only)", EnvVars: []string{"CLAB_CALENDAR_START"}},
					&cli.IntFlag{Name: "hour", Value: 7, Usage: "session start hour (ics only)"},
				},
				Action: exportPlan,
			},
		},
	}
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
