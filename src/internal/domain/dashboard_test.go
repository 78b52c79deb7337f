package domain_test

import (
	"testing"
	"time"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRevenueGrowth(t *testing.T) {
	d := decimal.RequireFromString

	g := domain.RevenueGrowth(d("150"), d("100"))
	assert.Equal(t, "up", g.Trend)
	assert.Equal(t, "+50.0%", g.Change)

	g = domain.RevenueGrowth(d("50"), d("100"))
	assert.Equal(t, "down", g.Trend)
	assert.Equal(t, "-50.0%", g.Change)

	g = domain.RevenueGrowth(d("10"), decimal.Zero)
	assert.Equal(t, "up", g.Trend)
	assert.Equal(t, "+100%", g.Change)

	g = domain.RevenueGrowth(decimal.Zero, decimal.Zero)
	assert.Equal(t, "down", g.Trend)
	assert.Equal(t, "0%", g.Change)
}

func TestMonthBoundsAcrossYear(t *testing.T) {
	now := time.Date(2026, time.January, 17, 10, 0, 0, 0, time.UTC)
	thisMonth, lastMonth := domain.MonthBounds(now)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), thisMonth)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), lastMonth)
}

func TestTaskSetStatus(t *testing.T) {
	now := time.Now()
	task := domain.Task{Status: domain.TaskStatusToDo}

	task.SetStatus(domain.TaskStatusDone, now)
	if task.CompletionDate == nil || !task.CompletionDate.Equal(now) {
		t.Fatalf("expected completion date %v, got %v", now, task.CompletionDate)
	}

	task.SetStatus(domain.TaskStatusInProgress, now)
	if task.CompletionDate != nil {
		t.Fatal("expected completion date to be cleared")
	}
}
