package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/example/task-reminder-bot/modules/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModule builds a tracker over an in-memory store with a fixed clock.
func newTestModule(t *testing.T) *TrackerModule {
	t.Helper()

	ctx := context.Background()
	storeModule := store.NewModule(store.Config{Path: ":memory:"})
	require.NoError(t, storeModule.Start(ctx))
	t.Cleanup(func() { _ = storeModule.Stop(ctx) })

	m := NewModule()
	m.SetStore(storeModule)
	// Fixed reference time: 2025-04-10 10:00 UTC.
	m.SetNow(func() time.Time {
		return time.Date(2025, time.April, 10, 10, 0, 0, 0, time.UTC)
	})
	require.NoError(t, m.Start(ctx))
	return m
}

// phone with no recognized prefix so the default zone is UTC and the fixed
// clock needs no zone database.
const testPhone = "12345"

func TestAddTaskWithDueText(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	resp, err := m.addTask(ctx, AddTaskRequest{
		Phone:   testPhone,
		Name:    "Buy milk",
		DueText: "today 18:00",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Index)
	assert.Equal(t, "Buy milk", resp.Name)
	assert.Equal(t, "10-04-2025 18:00", resp.Deadline)

	list, err := m.listTasks(ctx, ListTasksRequest{Phone: testPhone}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "10-04-2025 18:00", list.Tasks[0].Deadline)
	assert.False(t, list.Tasks[0].Done)
}

func TestAddTaskUnparseableDueText(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	// Unrecognized date text is not an error: the task is created, just
	// without a deadline.
	resp, err := m.addTask(ctx, AddTaskRequest{
		Phone:   testPhone,
		Name:    "Call mom",
		DueText: "sometime soon",
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Deadline)

	list, err := m.listTasks(ctx, ListTasksRequest{Phone: testPhone}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Empty(t, list.Tasks[0].Deadline)
}

func TestCompleteTaskOutOfRange(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	_, err := m.addTask(ctx, AddTaskRequest{Phone: testPhone, Name: "only task"}, nil)
	require.NoError(t, err)

	for _, index := range []int{0, -1, 2, 99} {
		resp, err := m.completeTask(ctx, CompleteTaskRequest{Phone: testPhone, Index: index}, nil)
		require.NoError(t, err)
		assert.False(t, resp.OK, "index %d should be rejected", index)
	}

	// The rejections must not have mutated anything.
	list, err := m.listTasks(ctx, ListTasksRequest{Phone: testPhone}, nil)
	require.NoError(t, err)
	assert.False(t, list.Tasks[0].Done)

	resp, err := m.completeTask(ctx, CompleteTaskRequest{Phone: testPhone, Index: 1}, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK)
}

func TestSetTimezone(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	touch, err := m.touchUser(ctx, TouchUserRequest{Phone: testPhone}, nil)
	require.NoError(t, err)
	assert.True(t, touch.Created)
	assert.Equal(t, "UTC", touch.Timezone)

	t.Run("invalid zone leaves stored zone unchanged", func(t *testing.T) {
		resp, err := m.setTimezone(ctx, SetTimezoneRequest{Phone: testPhone, Timezone: "Not/AZone"}, nil)
		require.NoError(t, err)
		assert.False(t, resp.Valid)

		touch, err := m.touchUser(ctx, TouchUserRequest{Phone: testPhone}, nil)
		require.NoError(t, err)
		assert.Equal(t, "UTC", touch.Timezone)
	})

	t.Run("valid zone persists", func(t *testing.T) {
		resp, err := m.setTimezone(ctx, SetTimezoneRequest{Phone: testPhone, Timezone: "Europe/London"}, nil)
		require.NoError(t, err)
		assert.True(t, resp.Valid)

		touch, err := m.touchUser(ctx, TouchUserRequest{Phone: testPhone}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Europe/London", touch.Timezone)
	})
}

func TestPurgeDone(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := m.addTask(ctx, AddTaskRequest{Phone: testPhone, Name: name}, nil)
		require.NoError(t, err)
	}
	_, err := m.completeTask(ctx, CompleteTaskRequest{Phone: testPhone, Index: 2}, nil)
	require.NoError(t, err)

	resp, err := m.purgeDone(ctx, PurgeDoneRequest{Phone: testPhone}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Removed)

	list, err := m.listTasks(ctx, ListTasksRequest{Phone: testPhone}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "a", list.Tasks[0].Name)
	assert.Equal(t, "c", list.Tasks[1].Name)
	// Indexes are recomputed after the purge.
	assert.Equal(t, 1, list.Tasks[0].Index)
	assert.Equal(t, 2, list.Tasks[1].Index)
}

func TestTouchUserIdempotent(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	first, err := m.touchUser(ctx, TouchUserRequest{Phone: testPhone}, nil)
	require.NoError(t, err)
	second, err := m.touchUser(ctx, TouchUserRequest{Phone: testPhone}, nil)
	require.NoError(t, err)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.UserID, second.UserID)
}
