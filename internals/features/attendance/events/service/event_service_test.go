package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	eventModel "iescms_backend/internals/features/attendance/events/model"
	"iescms_backend/internals/features/attendance/events/repository"
	scheduleModel "iescms_backend/internals/features/attendance/schedules/model"
	scheduleRepo "iescms_backend/internals/features/attendance/schedules/repository"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
	"iescms_backend/internals/testutil"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []any
}

func (p *recordingPublisher) Publish(_ context.Context, msg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// staleStore pura-pura belum melihat event yang sudah ada (simulasi race).
type staleStore struct {
	*repository.EventRepository
}

func (staleStore) ExistingDates(context.Context, uuid.UUID) (dbtime.DateSet, error) {
	return dbtime.NewDateSet(), nil
}

type fixture struct {
	db        *gorm.DB
	schedules *scheduleRepo.ScheduleRepository
	events    *repository.EventRepository
	pub       *recordingPublisher
	svc       *EventService
}

func newFixture(t *testing.T, horizon int) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		schedules: scheduleRepo.NewScheduleRepository(db),
		events:    repository.NewEventRepository(db),
		pub:       &recordingPublisher{},
	}
	gen := &Generator{Now: fixedNow(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)), Horizon: horizon}
	f.svc = NewEventService(f.schedules, f.events, gen, f.pub, nil)
	return f
}

func (f *fixture) createWeekly(t *testing.T, days ...int) *scheduleModel.EventScheduleModel {
	t.Helper()
	s := newSchedule(t, scheduleModel.WeeklyRecurrence{Days: days}, 0)
	require.NoError(t, f.schedules.Create(context.Background(), s))
	return s
}

func (f *fixture) countEvents(t *testing.T, scheduleID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&eventModel.ChurchEventModel{}).
		Where("church_event_schedule_id = ?", scheduleID).Count(&n).Error)
	return n
}

func TestCreateNextEvents_PersistsAndPublishes(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	s := f.createWeekly(t, 0, 3)

	created, err := f.svc.CreateNextEvents(ctx, s.EventScheduleID, false)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, 1, 3), date(2024, 1, 7)}, dates(created))
	assert.EqualValues(t, 2, f.countEvents(t, s.EventScheduleID))

	stored, err := f.svc.GetEvent(ctx, s.EventScheduleID, created[0].ChurchEventID)
	require.NoError(t, err)
	require.Len(t, stored.ChurchEventActivities, 2)
	assert.True(t, stored.ChurchEventActivities[0].Time.Equal(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)))

	require.Len(t, f.pub.msgs, 1)
	msg := f.pub.msgs[0].(EventsCreatedMessage)
	assert.Equal(t, s.EventScheduleID, msg.ScheduleID)
	assert.Equal(t, "2024-01-03", msg.Events[0].Date)

	// panggilan kedua lanjut dari tanggal terakhir
	next, err := f.svc.CreateNextEvents(ctx, s.EventScheduleID, false)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, 1, 10), date(2024, 1, 14)}, dates(next))
	assert.EqualValues(t, 4, f.countEvents(t, s.EventScheduleID))
}

func TestCreateNextEvents_SnapshotIsImmutable(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	s := f.createWeekly(t, 0)

	created, err := f.svc.CreateNextEvents(ctx, s.EventScheduleID, false)
	require.NoError(t, err)
	require.Len(t, created, 1)

	a := s.Activities[0]
	a.EventScheduleActivityName = "Renamed"
	a.EventScheduleActivityHour = 11
	require.NoError(t, f.schedules.UpdateActivity(ctx, &a))

	stored, err := f.svc.GetEvent(ctx, s.EventScheduleID, created[0].ChurchEventID)
	require.NoError(t, err)
	assert.Equal(t, "Pagi", stored.ChurchEventActivities[0].Name)
}

func TestCreateNextEvents_LostRace(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	s := f.createWeekly(t, 0, 3)

	_, err := f.svc.CreateNextEvents(ctx, s.EventScheduleID, false)
	require.NoError(t, err)

	stale := NewEventService(f.schedules, staleStore{f.events}, f.svc.Gen, f.pub, nil)

	got, err := stale.CreateNextEvents(ctx, s.EventScheduleID, false)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = stale.CreateNextEvents(ctx, s.EventScheduleID, true)
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindConflict, e.Kind)
	assert.Equal(t, s.EventScheduleID.String(), e.ScheduleID)

	assert.EqualValues(t, 2, f.countEvents(t, s.EventScheduleID))
}

func TestCreateNextEvents_Concurrent(t *testing.T) {
	f := newFixture(t, 2)
	s := f.createWeekly(t, 0, 3)

	const callers = 4
	results := make([][]eventModel.ChurchEventModel, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.svc.CreateNextEvents(context.Background(), s.EventScheduleID, false)
		}(i)
	}
	wg.Wait()

	returned := map[time.Time]int{}
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		for _, e := range results[i] {
			returned[e.ChurchEventDate]++
		}
	}

	var rows []eventModel.ChurchEventModel
	require.NoError(t, f.db.Where("church_event_schedule_id = ?", s.EventScheduleID).Find(&rows).Error)

	stored := map[time.Time]int{}
	for _, r := range rows {
		stored[dbtime.DateOf(r.ChurchEventDate)]++
	}
	for d, n := range stored {
		assert.Equal(t, 1, n, "date %s stored %d times", d, n)
		assert.Equal(t, 1, returned[d], "date %s returned %d times", d, returned[d])
	}
	assert.Len(t, returned, len(stored))
}

func TestCreateNextEvents_Errors(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.CreateNextEvents(ctx, uuid.New(), false)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	s := newSchedule(t, scheduleModel.WeeklyRecurrence{Days: []int{0}}, 0)
	s.Activities = nil
	require.NoError(t, f.schedules.Create(ctx, s))

	_, err = f.svc.CreateNextEvents(ctx, s.EventScheduleID, false)
	assert.True(t, errors.Is(err, apperr.ErrInvalidSchedule))
	assert.Empty(t, f.pub.msgs)
}

func TestListEvents_RangeAndCursor(t *testing.T) {
	f := newFixture(t, 6)
	ctx := context.Background()
	s := f.createWeekly(t, 0, 3)

	_, err := f.svc.CreateNextEvents(ctx, s.EventScheduleID, false)
	require.NoError(t, err)
	// 3, 7, 10, 14, 17, 21 Jan 2024

	start, end := date(2024, 1, 5), date(2024, 1, 20)
	filter := repository.ListFilter{StartDate: &start, EndDate: &end}

	page, err := f.svc.ListEvents(ctx, s.EventScheduleID, filter, 2, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.TotalCount)
	assert.Equal(t, []time.Time{date(2024, 1, 7), date(2024, 1, 10)}, normalise(dates(page.Events)))
	require.NotEmpty(t, page.NextCursor)

	last := uuid.MustParse(page.NextCursor)
	page, err = f.svc.ListEvents(ctx, s.EventScheduleID, filter, 2, &last)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, 1, 14), date(2024, 1, 17)}, normalise(dates(page.Events)))
	assert.Empty(t, page.NextCursor)

	_, err = f.svc.ListEvents(ctx, s.EventScheduleID, filter, 0, nil)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	unknown := uuid.New()
	_, err = f.svc.ListEvents(ctx, s.EventScheduleID, filter, 2, &unknown)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = f.svc.ListEvents(ctx, uuid.New(), filter, 2, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.svc.GetEvent(ctx, uuid.New(), page.Events[0].ChurchEventID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func normalise(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	for i, t := range ts {
		out[i] = dbtime.DateOf(t)
	}
	return out
}
