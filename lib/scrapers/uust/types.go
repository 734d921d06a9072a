package uust

import (
	"bytes"
	"encoding/json"
)

// WeekdayOrder is the timetable rendering order, Monday first. The
// portal renders the week Monday-first, so this ordering is a contract
// downstream consumers depend on, not a convenience.
var WeekdayOrder = []string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

// day numbers as encoded in the grid cell ids
var weekdayByNumber = map[int]string{
	1: "Понедельник",
	2: "Вторник",
	3: "Среда",
	4: "Четверг",
	5: "Пятница",
	6: "Суббота",
}

// WeekdayIndex returns the position of a weekday in WeekdayOrder,
// or -1 for anything that is not one of the six known days.
func WeekdayIndex(name string) int {
	for i, day := range WeekdayOrder {
		if day == name {
			return i
		}
	}
	return -1
}

// TimeSlots is the bell schedule: lesson slot number -> time range.
var TimeSlots = map[int]string{
	1: "08:00-09:20",
	2: "09:35-10:55",
	3: "11:35-12:55",
	4: "13:10-14:30",
	5: "15:10-16:30",
	6: "16:45-18:05",
	7: "18:20-19:40",
	8: "19:55-21:15",
	9: "21:25-22:45",
}

// UnknownLessonType is assigned when a cell's first line carries no
// parenthesized lesson type.
const UnknownLessonType = "Неизвестно"

// Lesson is one scheduled occurrence within a day. The json tags mirror
// the portal's schedule JSON shape.
type Lesson struct {
	Number    int    `json:"номер_пары"`
	TimeSlot  string `json:"время"`
	Subject   string `json:"предмет"`
	Type      string `json:"тип"`
	Teacher   string `json:"преподаватель"`
	Classroom string `json:"аудитория"`
}

// Day holds one weekday's lessons, sorted ascending by slot number.
type Day struct {
	Weekday string   `json:"-"`
	Date    string   `json:"дата"`
	Lessons []Lesson `json:"пары"`
}

// Week is a normalized week: days appear in WeekdayOrder and days
// without lessons are omitted entirely.
type Week []Day

// MarshalJSON renders the week as an object keyed by weekday name. The
// keys are written in slice order so the Monday-first ordering survives
// serialization, which a plain map would not guarantee.
func (w Week) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(day.Weekday)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		body, err := json.Marshal(day)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
