package sprint

import "math"

// Aggregate computes completion statistics for a goal's task set.
// Todo is derived rather than counted, so a status outside the three
// canonical values can never inflate it on its own. Percent is the share
// of done tasks, rounded half away from zero. Empty input yields zeros.
func Aggregate(tasks []Task) Progress {
	if len(tasks) == 0 {
		return Progress{}
	}

	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case StatusDone:
			stats.Done++
		case StatusInProgress:
			stats.InProgress++
		}
	}
	stats.Todo = stats.Total - stats.Done - stats.InProgress

	return Progress{
		TaskStats: stats,
		Percent:   int(math.Round(float64(stats.Done) / float64(stats.Total) * 100)),
	}
}
