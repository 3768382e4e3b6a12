package sprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tasksWithStatuses(statuses ...Status) []Task {
	tasks := make([]Task, len(statuses))
	for i, s := range statuses {
		tasks[i] = Task{Key: "PROJ-1", Status: s}
	}
	return tasks
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, Progress{}, Aggregate(nil))
	assert.Equal(t, Progress{}, Aggregate([]Task{}))
}

func TestAggregateCounts(t *testing.T) {
	progress := Aggregate(tasksWithStatuses(StatusDone, StatusDone, StatusInProgress))

	assert.Equal(t, TaskStats{Done: 2, InProgress: 1, Todo: 0, Total: 3}, progress.TaskStats)
	// round(2/3 * 100); rounding is half away from zero throughout.
	assert.Equal(t, 67, progress.Percent)
}

func TestAggregateDerivedTodo(t *testing.T) {
	progress := Aggregate(tasksWithStatuses(StatusDone, StatusToDo, StatusToDo, StatusToDo))

	assert.Equal(t, TaskStats{Done: 1, InProgress: 0, Todo: 3, Total: 4}, progress.TaskStats)
	assert.Equal(t, 25, progress.Percent)
}

func TestAggregateUnknownStatusCountsAsTodo(t *testing.T) {
	progress := Aggregate(tasksWithStatuses(StatusDone, Status("Blocked")))

	assert.Equal(t, TaskStats{Done: 1, InProgress: 0, Todo: 1, Total: 2}, progress.TaskStats)
	assert.Equal(t, 50, progress.Percent)
}

func TestAggregateComplete(t *testing.T) {
	progress := Aggregate(tasksWithStatuses(StatusDone, StatusDone))

	assert.Equal(t, 100, progress.Percent)
}
