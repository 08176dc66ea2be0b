package redemption

import "time"

var DefaultRetrySchedule = []time.Duration{
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	time.Hour,
}

type RetryPolicy struct {
	schedule []time.Duration
}

func NewRetryPolicy(schedule []time.Duration) RetryPolicy {
	if len(schedule) == 0 {
		schedule = DefaultRetrySchedule
	}
	return RetryPolicy{schedule: append([]time.Duration(nil), schedule...)}
}

// Next returns the delay before the next attempt after failures attempts
// have failed, or false once the schedule is exhausted.
func (r RetryPolicy) Next(failures int) (time.Duration, bool) {
	if failures < 1 || failures > len(r.schedule) {
		return 0, false
	}
	return r.schedule[failures-1], true
}

func (r RetryPolicy) MaxRetries() int {
	return len(r.schedule)
}
