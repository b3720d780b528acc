package scheduler

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventModel "iescms_backend/internals/features/attendance/events/model"
	"iescms_backend/internals/helpers/apperr"
)

type fakeLister struct {
	ids   []uuid.UUID
	calls int
}

func (f *fakeLister) IDsAfter(_ context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	f.calls++
	var out []uuid.UUID
	for _, id := range f.ids {
		if id.String() > after.String() {
			out = append(out, id)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeCreator struct {
	results map[uuid.UUID]error
	seen    []uuid.UUID
}

func (f *fakeCreator) CreateNextEvents(_ context.Context, id uuid.UUID, strict bool) ([]eventModel.ChurchEventModel, error) {
	f.seen = append(f.seen, id)
	if strict {
		return nil, errors.New("auto-materializer must not run strict")
	}
	if err := f.results[id]; err != nil {
		return nil, err
	}
	return make([]eventModel.ChurchEventModel, 2), nil
}

func sortedIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func TestRunOnce_WalksAllSchedulesInBatches(t *testing.T) {
	ids := sortedIDs(5)
	lister := &fakeLister{ids: ids}
	creator := &fakeCreator{results: map[uuid.UUID]error{
		ids[1]: apperr.InvalidSchedule(ids[1].String(), "activities", "no activities"),
		ids[3]: apperr.Unavailable("insert event", errors.New("connection reset")),
	}}

	m := &AutoMaterializer{Schedules: lister, Events: creator, BatchSize: 2}
	res, err := m.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ids, creator.seen)
	assert.Equal(t, RunResult{Schedules: 5, Created: 6, Skipped: 1, Failed: 1}, res)
	// 3 batch berisi + 1 batch kosong
	assert.Equal(t, 4, lister.calls)
}

func TestRunOnce_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &AutoMaterializer{Schedules: &fakeLister{ids: sortedIDs(3)}, Events: &fakeCreator{}}
	res, err := m.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Schedules)
}

func TestStart_RejectsBadSpec(t *testing.T) {
	_, err := Start("not a cron spec", &AutoMaterializer{})
	assert.Error(t, err)

	c, err := Start("@every 1h", &AutoMaterializer{Schedules: &fakeLister{}, Events: &fakeCreator{}})
	require.NoError(t, err)
	<-c.Stop().Done()
}
