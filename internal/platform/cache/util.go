package cache

import (
	"time"
)

// TimeUntilNext はnowから次のhour時0分（loc基準）までの期間を返します。
// ちょうどその時刻の場合は24時間後を次回とします。
func TimeUntilNext(now time.Time, hour int, loc *time.Location) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)

	// 今日の指定時刻が既に過ぎている場合は明日の同時刻を使用
	if !now.Before(next) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, loc)
	}

	return next.Sub(now)
}
