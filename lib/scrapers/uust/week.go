package uust

import (
	"regexp"
	"slices"
	"strconv"
)

// header cells look like: <th>Понедельник (20.10.2025)</th>. Matched
// against the raw markup: the portal sometimes emits the headers
// outside any table wrapper and an HTML5 parser would relocate or drop
// such a th entirely.
var headerDateRegex = regexp.MustCompile(
	`<th[^>]*>(Понедельник|Вторник|Среда|Четверг|Пятница|Суббота)\s*\((\d{2}\.\d{2}\.\d{4})\)`,
)

// lesson cells are injected client-side:
// $('#3_1_group').append('...'); where the id is <lesson>_<day>_group
var cellAppendRegex = regexp.MustCompile(`\$\('#(\d+)_(\d+)_group'\)\.append\('(.+?)'\);`)

func parseHeaderDates(raw string) map[string]string {
	dates := map[string]string{}
	for _, m := range headerDateRegex.FindAllStringSubmatch(raw, -1) {
		dates[m[1]] = m[2]
	}
	return dates
}

// ParseWeek normalizes one week of raw schedule markup into days in
// WeekdayOrder. Malformed or empty input yields an empty week, never an
// error: the caller treats that as "no schedule this week".
func ParseWeek(raw string) Week {
	dates := parseHeaderDates(raw)

	// keyed by slot number per day so a repeated cell id cannot produce
	// two entries for the same (day, lesson) position
	lessonsByDay := map[string]map[int]Lesson{}
	for _, m := range cellAppendRegex.FindAllStringSubmatch(raw, -1) {
		lessonNumber, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		dayNumber, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		dayName, known := weekdayByNumber[dayNumber]
		if !known {
			// the grid only has six columns, anything else is garbage
			continue
		}

		lesson, ok := ParseLessonCell(m[3])
		if !ok {
			continue
		}
		lesson.Number = lessonNumber
		lesson.TimeSlot = TimeSlots[lessonNumber]

		if lessonsByDay[dayName] == nil {
			lessonsByDay[dayName] = map[int]Lesson{}
		}
		lessonsByDay[dayName][lessonNumber] = lesson
	}

	var week Week
	for _, dayName := range WeekdayOrder {
		byNumber := lessonsByDay[dayName]
		if len(byNumber) == 0 {
			continue
		}

		lessons := make([]Lesson, 0, len(byNumber))
		for _, lesson := range byNumber {
			lessons = append(lessons, lesson)
		}
		slices.SortFunc(lessons, func(a, b Lesson) int {
			return a.Number - b.Number
		})

		week = append(week, Day{
			Weekday: dayName,
			Date:    dates[dayName],
			Lessons: lessons,
		})
	}
	return week
}
