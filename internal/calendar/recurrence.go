package calendar

import "time"

// NextOccurrence 返回本周内 day 的下一次（或当天）出现时刻
//
// 偏移量 = (day - 今天星期 + 7) % 7，落在 [0, 6]。
// 与今天同一星期时偏移为 0，即使该时刻已经过去也返回今天。
func NextOccurrence(today time.Time, day time.Weekday, tod TimeOfDay) time.Time {
	offset := (int(day) - int(today.Weekday()) + 7) % 7
	return tod.On(StartOfDay(today).AddDate(0, 0, offset))
}

// Occurrence 以星期代码与 "HH:MM" 文本计算出现时刻
func Occurrence(today time.Time, code, hhmm string) (time.Time, error) {
	day, err := ParseWeekday(code)
	if err != nil {
		return time.Time{}, err
	}
	tod, err := ParseTimeOfDay(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return NextOccurrence(today, day, tod), nil
}
