package main

import (
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

func TestStartPipelineSchedulerDisabledWithoutSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Schedule = "   "
	cfg.Location = time.UTC

	if StartPipelineScheduler(cfg, nil) {
		t.Fatal("expected scheduler to stay off without a schedule")
	}
}

func TestScheduleExpressionNextRun(t *testing.T) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse("0 6 * * *")
	if err != nil {
		t.Fatalf("parsing schedule failed: %v", err)
	}
	now := time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC)
	next := sched.Next(now)
	want := time.Date(2024, 5, 11, 6, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected next run %v, got %v", want, next)
	}
}

func TestStartPipelineSchedulerInvalidExpressionFatal(t *testing.T) {
	if os.Getenv("TEST_BAD_SCHEDULE_FATAL") == "1" {
		cfg := testConfig()
		cfg.Schedule = "not a cron line"
		cfg.Location = time.UTC
		StartPipelineScheduler(cfg, nil)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestStartPipelineSchedulerInvalidExpressionFatal")
	cmd.Env = append(os.Environ(), "TEST_BAD_SCHEDULE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with failure")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got: %v", err)
	}
}

func TestNotifySlackNoOpWhenUnconfigured(t *testing.T) {
	cfg := testConfig()
	if err := NotifySlack(cfg, "summary", []string{"/nonexistent/report.xlsx"}); err != nil {
		t.Fatalf("expected no-op without Slack config, got %v", err)
	}
}
