package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/worklog/internal/activity"
	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

func TestAppend_ExistingDayKeepsOrder(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewLogService(db, rm, logging.Nop{})

	_, err := s.Append(context.Background(), "u1", "01-03-2024", "a")
	require.NoError(t, err)
	rec, err := s.Append(context.Background(), "u1", "01-03-2024", "b")
	require.NoError(t, err)

	assert.Equal(t, &models.LogRecord{Date: "01-03-2024", Comments: []string{"a", "b"}}, rec)
	require.Len(t, rm.a.events, 2)
	assert.Equal(t, activity.AddLog, rm.a.events[1].Type)
	assert.Equal(t, "Added log for 01-03-2024", rm.a.events[1].Activity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_NewDayAndDuplicates(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	rm := newFakeRepoManager()
	s := NewLogService(db, rm, logging.Nop{})

	rec, err := s.Append(context.Background(), "u1", "02-03-2024", "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, rec.Comments)

	_, err = s.Append(context.Background(), "u1", "02-03-2024", "x")
	require.NoError(t, err)
	rec, err = s.Append(context.Background(), "u2", "02-03-2024", "other user")
	require.NoError(t, err)
	assert.Equal(t, []string{"other user"}, rec.Comments)

	rows, _ := rm.l.ListByDate(context.Background(), "u1", "02-03-2024")
	assert.Len(t, rows, 2, "duplicates are allowed")
}

func TestAppend_EmptyDateMeansToday(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	s := NewLogService(db, newFakeRepoManager(), logging.Nop{})
	s.now = func() time.Time { return time.Date(2024, 3, 15, 23, 30, 0, 0, time.FixedZone("X", -3*3600)) }

	rec, err := s.Append(context.Background(), "u1", "", "late night")
	require.NoError(t, err)
	assert.Equal(t, "16-03-2024", rec.Date, "today is taken in UTC")
}

func TestAppend_ValidationBeforeStore(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewLogService(db, rm, logging.Nop{})

	_, err := s.Append(context.Background(), "u1", "01-03-2024", "   ")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Append(context.Background(), "", "01-03-2024", "x")
	assert.ErrorIs(t, err, common.ErrorNoUserID)

	_, err = s.Append(context.Background(), "u1", "2024-03-01", "x")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Append(context.Background(), "u1", "31-02-2024", "x")
	assert.ErrorIs(t, err, common.ErrorValidation)

	assert.Empty(t, rm.l.rows)
	assert.NoError(t, mock.ExpectationsWereMet(), "no transaction may start")
}

func TestAppend_StoreFailureSurfaces(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	rm.l.failAdd = errBoom{}
	s := NewLogService(db, rm, logging.Nop{})

	_, err := s.Append(context.Background(), "u1", "01-03-2024", "x")
	assert.ErrorIs(t, err, common.ErrorRemote)
	assert.ErrorContains(t, err, "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Each concurrent call reaches the repository once; the repository's
// single-INSERT append is covered in the logs package.
func TestAppend_ConcurrentCallsEachReachRepository(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	db.SetMaxOpenConns(1)

	const n = 20
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	rm := newFakeRepoManager()
	s := NewLogService(db, rm, logging.Nop{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Append(context.Background(), "u1", "01-03-2024", fmt.Sprintf("c%d", i))
		}(i)
	}
	wg.Wait()

	rows, _ := rm.l.ListByDate(context.Background(), "u1", "01-03-2024")
	assert.Len(t, rows, n)
}

func TestListGrouped(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	for _, r := range []struct{ date, comment string }{
		{"01-03-2024", "a"}, {"15-03-2024", "b"}, {"bad-date", "x"}, {"01-03-2024", "c"}, {"20-02-2024", "d"},
	} {
		_, _ = rm.l.Append(context.Background(), "u1", r.date, r.comment)
	}
	s := NewLogService(db, rm, logging.Nop{})

	got := s.ListGrouped(context.Background(), "u1")
	assert.Equal(t, []string{"March 2024", "February 2024"}, got.Keys())
	march, _ := got.Lookup("March 2024")
	assert.Equal(t, []models.LogRecord{
		{Date: "15-03-2024", Comments: []string{"b"}},
		{Date: "01-03-2024", Comments: []string{"a", "c"}},
	}, march)
}

func TestListGrouped_Degrades(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.l.failGet = errBoom{}
	s := NewLogService(db, rm, logging.Nop{})

	assert.Empty(t, s.ListGrouped(context.Background(), "u1"))
	assert.Empty(t, s.ListGrouped(context.Background(), ""))
}
