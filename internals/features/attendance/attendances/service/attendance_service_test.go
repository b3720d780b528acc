package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"iescms_backend/internals/features/attendance/attendances/model"
	"iescms_backend/internals/features/attendance/attendances/repository"
	eventModel "iescms_backend/internals/features/attendance/events/model"
	eventRepo "iescms_backend/internals/features/attendance/events/repository"
	scheduleModel "iescms_backend/internals/features/attendance/schedules/model"
	scheduleRepo "iescms_backend/internals/features/attendance/schedules/repository"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/testutil"
)

var base = time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store    *repository.AttendanceRepository
	events   *eventRepo.EventRepository
	svc      *AttendanceService
	schedule *scheduleModel.EventScheduleModel
	pagi     uuid.UUID
	malam    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	ctx := context.Background()

	f := &fixture{
		store:  repository.NewAttendanceRepository(db),
		events: eventRepo.NewEventRepository(db),
		pagi:   uuid.New(),
		malam:  uuid.New(),
	}
	schedules := scheduleRepo.NewScheduleRepository(db)

	sid := uuid.New()
	f.schedule = &scheduleModel.EventScheduleModel{
		EventScheduleID:   sid,
		EventScheduleName: "Ibadah Raya",
		Activities: []scheduleModel.ActivityModel{
			{EventScheduleActivityID: f.pagi, EventScheduleActivityScheduleID: sid, EventScheduleActivityName: "Pagi", EventScheduleActivityHour: 9},
			{EventScheduleActivityID: f.malam, EventScheduleActivityScheduleID: sid, EventScheduleActivityName: "Malam", EventScheduleActivityHour: 18},
		},
	}
	require.NoError(t, f.schedule.SetRecurrence(scheduleModel.WeeklyRecurrence{Days: []int{0}}))
	require.NoError(t, schedules.Create(ctx, f.schedule))

	f.svc = NewAttendanceService(f.events, schedules, f.store, nil)
	f.svc.Now = func() time.Time { return base }
	return f
}

func (f *fixture) addEvent(t *testing.T, day time.Time) *eventModel.ChurchEventModel {
	t.Helper()
	ev := &eventModel.ChurchEventModel{
		ChurchEventID:         eventModel.EventIDFor(f.schedule.EventScheduleID, day),
		ChurchEventScheduleID: f.schedule.EventScheduleID,
		ChurchEventDate:       day,
		ChurchEventName:       f.schedule.EventScheduleName,
		ChurchEventActivities: datatypes.JSONSlice[eventModel.EventActivity]{
			{ID: f.pagi, Name: "Pagi", Time: day.Add(9 * time.Hour)},
			{ID: f.malam, Name: "Malam", Time: day.Add(18 * time.Hour)},
		},
	}
	ok, err := f.events.InsertIfAbsent(context.Background(), ev)
	require.NoError(t, err)
	require.True(t, ok)
	return ev
}

// seed menyimpan satu record per tipe dengan created_at berurutan (detik ke-i).
func (f *fixture) seed(t *testing.T, eventID, activityID uuid.UUID, types ...model.AttendanceType) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(types))
	for i, typ := range types {
		id, err := uuid.NewV7()
		require.NoError(t, err)
		m := &model.EventAttendanceModel{
			EventAttendanceID:          id,
			EventAttendanceEventID:     eventID,
			EventAttendanceActivityID:  activityID,
			EventAttendanceType:        typ,
			EventAttendancePersonID:    uuid.New(),
			EventAttendanceCheckInTime: base,
			EventAttendanceCreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, f.store.Create(context.Background(), m))
		ids = append(ids, id)
	}
	return ids
}

func idsOf(rows []model.EventAttendanceModel) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EventAttendanceID)
	}
	return out
}

func repeat(t model.AttendanceType, n int) []model.AttendanceType {
	out := make([]model.AttendanceType, n)
	for i := range out {
		out[i] = t
	}
	return out
}

/* =========================================================
   QueryEngine
========================================================= */

func TestList_FiveRegularLimitTwo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	ids := f.seed(t, ev.ChurchEventID, f.pagi, repeat(model.AttendanceTypeRegular, 5)...)

	filter := Filter{AttendanceTypes: []model.AttendanceType{model.AttendanceTypeRegular}}

	page, err := f.svc.ListAttendance(ctx, ev.ChurchEventID, filter, 2, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.Equal(t, ids[:2], idsOf(page.Records))
	assert.Equal(t, ids[1].String(), page.NextCursor)

	page, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, filter, 2, page.NextCursor)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.Equal(t, ids[2:4], idsOf(page.Records))

	page, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, filter, 2, page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, ids[4:], idsOf(page.Records))
	assert.Empty(t, page.NextCursor)

	// cursor di record terakhir: kosong, bukan error
	page, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, filter, 2, ids[4].String())
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.EqualValues(t, 5, page.TotalCount)
}

func TestList_PaginationCompleteness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))

	var want []uuid.UUID
	want = append(want, f.seed(t, ev.ChurchEventID, f.pagi,
		model.AttendanceTypeRegular, model.AttendanceTypeGuest, model.AttendanceTypeVolunteer, model.AttendanceTypeRegular)...)
	want = append(want, f.seed(t, ev.ChurchEventID, f.malam,
		model.AttendanceTypeGuest, model.AttendanceTypeRegular, model.AttendanceTypeGuest)...)

	// seed kedua mulai lagi dari detik 0: urutan global ikut (created_at, id)
	all, err := f.store.ListAfter(ctx, ev.ChurchEventID, repository.Filter{}, nil, 100)
	require.NoError(t, err)
	require.Len(t, all, len(want))

	for _, k := range []int{1, 2, 3, 7, 10} {
		var got []uuid.UUID
		cursor := ""
		for round := 0; round < 20; round++ {
			page, err := f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{}, k, cursor)
			require.NoError(t, err)
			assert.EqualValues(t, len(want), page.TotalCount)
			got = append(got, idsOf(page.Records)...)
			if page.NextCursor == "" {
				break
			}
			cursor = page.NextCursor
		}
		assert.Equal(t, idsOf(all), got, "limit=%d", k)
		assert.ElementsMatch(t, want, got, "limit=%d", k)
	}
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	other := f.addEvent(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC))

	pagi := f.seed(t, ev.ChurchEventID, f.pagi, model.AttendanceTypeRegular, model.AttendanceTypeGuest, model.AttendanceTypeVolunteer)
	f.seed(t, ev.ChurchEventID, f.malam, model.AttendanceTypeGuest)
	f.seed(t, other.ChurchEventID, f.pagi, model.AttendanceTypeGuest)

	page, err := f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{ActivityID: &f.pagi}, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Equal(t, pagi, idsOf(page.Records))

	page, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{
		AttendanceTypes: []model.AttendanceType{model.AttendanceTypeGuest, model.AttendanceTypeVolunteer},
	}, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	for _, r := range page.Records {
		assert.NotEqual(t, model.AttendanceTypeRegular, r.EventAttendanceType)
		assert.Equal(t, ev.ChurchEventID, r.EventAttendanceEventID)
	}

	page, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{
		ActivityID:      &f.malam,
		AttendanceTypes: []model.AttendanceType{model.AttendanceTypeRegular},
	}, 10, "")
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
	assert.Empty(t, page.Records)
}

func TestList_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	other := f.addEvent(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC))
	foreign := f.seed(t, other.ChurchEventID, f.pagi, model.AttendanceTypeRegular)

	fieldOf := func(err error) string {
		var e *apperr.Error
		require.True(t, errors.As(err, &e), "got %v", err)
		assert.Equal(t, apperr.KindInvalidArgument, e.Kind)
		return e.Field
	}

	for _, limit := range []int{0, -1} {
		_, err := f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{}, limit, "")
		assert.Equal(t, "limit", fieldOf(err))
	}

	_, err := f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{}, 2, "not-a-uuid")
	assert.Equal(t, "cursor", fieldOf(err))

	_, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{}, 2, uuid.NewString())
	assert.Equal(t, "cursor", fieldOf(err))

	// cursor milik event lain
	_, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{}, 2, foreign[0].String())
	assert.Equal(t, "cursor", fieldOf(err))

	_, err = f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{AttendanceTypes: []model.AttendanceType{"Choir"}}, 2, "")
	assert.Equal(t, "types", fieldOf(err))

	_, err = f.svc.ListAttendance(ctx, uuid.New(), Filter{}, 2, "")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestList_SameCreatedAtBreaksTieByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		id, err := uuid.NewV7()
		require.NoError(t, err)
		require.NoError(t, f.store.Create(ctx, &model.EventAttendanceModel{
			EventAttendanceID:          id,
			EventAttendanceEventID:     ev.ChurchEventID,
			EventAttendanceActivityID:  f.pagi,
			EventAttendanceType:        model.AttendanceTypeRegular,
			EventAttendancePersonID:    uuid.New(),
			EventAttendanceCheckInTime: base,
			EventAttendanceCreatedAt:   base,
		}))
		ids = append(ids, id)
	}

	first, err := f.svc.Query.List(ctx, ev.ChurchEventID, Filter{}, 2, "")
	require.NoError(t, err)
	second, err := f.svc.Query.List(ctx, ev.ChurchEventID, Filter{}, 2, first.NextCursor)
	require.NoError(t, err)

	got := append(idsOf(first.Records), idsOf(second.Records)...)
	assert.ElementsMatch(t, ids, got)
	assert.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].String(), got[i].String())
	}
}

/* =========================================================
   CheckIn
========================================================= */

func TestCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	person := uuid.New()

	rec, err := f.svc.CheckIn(ctx, CheckInInput{
		EventID:    ev.ChurchEventID,
		ActivityID: f.pagi,
		PersonID:   person,
		Type:       model.AttendanceTypeGuest,
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), rec.EventAttendanceID.Version())
	assert.True(t, rec.EventAttendanceCheckInTime.Equal(base))

	_, err = f.svc.CheckIn(ctx, CheckInInput{
		EventID:    ev.ChurchEventID,
		ActivityID: f.pagi,
		PersonID:   person,
		Type:       model.AttendanceTypeRegular,
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)

	// orang yang sama, activity lain: boleh
	at := base.Add(9 * time.Hour)
	rec, err = f.svc.CheckIn(ctx, CheckInInput{
		EventID:     ev.ChurchEventID,
		ActivityID:  f.malam,
		PersonID:    person,
		Type:        model.AttendanceTypeRegular,
		CheckInTime: &at,
	})
	require.NoError(t, err)
	assert.True(t, rec.EventAttendanceCheckInTime.Equal(at))

	page, err := f.svc.ListAttendance(ctx, ev.ChurchEventID, Filter{}, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)
}

func TestCheckIn_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(ctx, CheckInInput{EventID: ev.ChurchEventID, ActivityID: uuid.New(), PersonID: uuid.New(), Type: model.AttendanceTypeRegular})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = f.svc.CheckIn(ctx, CheckInInput{EventID: ev.ChurchEventID, ActivityID: f.pagi, PersonID: uuid.New(), Type: "Choir"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = f.svc.CheckIn(ctx, CheckInInput{EventID: ev.ChurchEventID, ActivityID: f.pagi, Type: model.AttendanceTypeRegular})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, err = f.svc.CheckIn(ctx, CheckInInput{EventID: uuid.New(), ActivityID: f.pagi, PersonID: uuid.New(), Type: model.AttendanceTypeRegular})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

/* =========================================================
   ScheduleStats
========================================================= */

func TestScheduleStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jan7 := f.addEvent(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC))
	jan14 := f.addEvent(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC))
	f.addEvent(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC))

	f.seed(t, jan7.ChurchEventID, f.pagi, model.AttendanceTypeRegular, model.AttendanceTypeRegular, model.AttendanceTypeGuest)
	f.seed(t, jan7.ChurchEventID, f.malam, model.AttendanceTypeVolunteer)
	f.seed(t, jan14.ChurchEventID, f.pagi, model.AttendanceTypeGuest)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	st, err := f.svc.ScheduleStats(ctx, f.schedule.EventScheduleID, eventRepo.ListFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, st.Events, 2)

	counts := func(es EventStats) map[model.AttendanceType]int64 {
		out := map[model.AttendanceType]int64{}
		for _, c := range es.AttendanceCount {
			out[c.AttendanceType] = c.Count
		}
		return out
	}
	assert.Equal(t, jan7.ChurchEventID, st.Events[0].EventID)
	assert.Equal(t, map[model.AttendanceType]int64{
		model.AttendanceTypeRegular: 2, model.AttendanceTypeGuest: 1, model.AttendanceTypeVolunteer: 1,
	}, counts(st.Events[0]))
	assert.Equal(t, map[model.AttendanceType]int64{
		model.AttendanceTypeRegular: 0, model.AttendanceTypeGuest: 1, model.AttendanceTypeVolunteer: 0,
	}, counts(st.Events[1]))

	_, err = f.svc.ScheduleStats(ctx, uuid.New(), eventRepo.ListFilter{})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.svc.ScheduleStats(ctx, f.schedule.EventScheduleID, eventRepo.ListFilter{StartDate: &end, EndDate: &start})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}
