package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

func TestActivityList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.a.listOut = []*models.ActivityEvent{
		{ID: "a2", Type: activity.AddLog, CreatedAt: time.Now()},
		{ID: "a1", Type: activity.Generic, CreatedAt: time.Now().Add(-time.Hour)},
	}
	s := NewActivityService(db, rm, logging.Nop{})

	got := s.List(context.Background(), "u1", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID)
	assert.Equal(t, "activity", got[1].Type.Category().Name)
}

func TestActivityList_Degrades(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	rm := newFakeRepoManager()
	rm.a.listErr = errBoom{}
	s := NewActivityService(db, rm, log)

	got := s.List(context.Background(), "u1", 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "error fetching activities")

	assert.Empty(t, s.List(context.Background(), "", 10))
}

func TestRecordActivity(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	require.NoError(t, recordActivity(context.Background(), repo, "u1", activity.ExportLogs, "Logs successfully exported"))
	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, activity.ExportLogs, ev.Type)
}
