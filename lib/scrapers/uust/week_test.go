package uust

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseWeekScenario(t *testing.T) {
	raw := `<table><tr><th class="header">Понедельник (01.09.2025)</th></tr></table>
<script>
$('#3_1_group').append('Matan (Лекция)|Ivanov I.I.|Корпус 1, ауд. 305');
</script>`

	got := ParseWeek(raw)
	want := Week{
		{
			Weekday: "Понедельник",
			Date:    "01.09.2025",
			Lessons: []Lesson{
				{
					Number:    3,
					TimeSlot:  "11:35-12:55",
					Subject:   "Matan",
					Type:      "Лекция",
					Teacher:   "Ivanov I.I.",
					Classroom: "Корпус 1, ауд. 305",
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("week mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWeekHeaderOutsideTable(t *testing.T) {
	// the portal sometimes sends the day headers without a table
	// wrapper; dates must still come through
	raw := `<th>Понедельник (01.09.2025)</th>
$('#3_1_group').append('Matan (Лекция)|Ivanov I.I.|Корпус 1, ауд. 305');`

	week := ParseWeek(raw)
	require.Len(t, week, 1)
	require.Equal(t, "Понедельник", week[0].Weekday)
	require.Equal(t, "01.09.2025", week[0].Date)
}

func TestParseWeekDayOrdering(t *testing.T) {
	// cells deliberately out of order: Saturday, Wednesday, Monday
	raw := `
$('#1_6_group').append('Сб пара');
$('#1_3_group').append('Ср пара');
$('#1_1_group').append('Пн пара');
`
	week := ParseWeek(raw)
	require.Len(t, week, 3)
	require.Equal(t, "Понедельник", week[0].Weekday)
	require.Equal(t, "Среда", week[1].Weekday)
	require.Equal(t, "Суббота", week[2].Weekday)
}

func TestParseWeekLessonOrdering(t *testing.T) {
	raw := `
$('#5_2_group').append('Пятая пара');
$('#2_2_group').append('Вторая пара');
$('#8_2_group').append('Восьмая пара');
`
	week := ParseWeek(raw)
	require.Len(t, week, 1)
	require.Equal(t, "Вторник", week[0].Weekday)

	numbers := []int{}
	for _, lesson := range week[0].Lessons {
		numbers = append(numbers, lesson.Number)
	}
	require.Equal(t, []int{2, 5, 8}, numbers)
}

func TestParseWeekEmptyDaysElided(t *testing.T) {
	raw := `<th>Вторник (02.09.2025)</th>
$('#1_1_group').append('Единственная пара');
`
	week := ParseWeek(raw)
	// Tuesday has a date header but no lessons, it must not appear
	require.Len(t, week, 1)
	require.Equal(t, "Понедельник", week[0].Weekday)
}

func TestParseWeekUnknownDayDropped(t *testing.T) {
	raw := `
$('#1_7_group').append('Воскресной пары не бывает');
$('#1_9_group').append('Девятого дня тоже');
`
	require.Empty(t, ParseWeek(raw))
}

func TestParseWeekDuplicateCellCollapsed(t *testing.T) {
	raw := `
$('#4_1_group').append('Первая версия');
$('#4_1_group').append('Вторая версия');
`
	week := ParseWeek(raw)
	require.Len(t, week, 1)
	require.Len(t, week[0].Lessons, 1)
	require.Equal(t, "Вторая версия", week[0].Lessons[0].Subject)
}

func TestParseWeekUnknownSlotHasNoTimeRange(t *testing.T) {
	raw := `$('#12_1_group').append('Странная пара');`
	week := ParseWeek(raw)
	require.Len(t, week, 1)
	require.Equal(t, 12, week[0].Lessons[0].Number)
	require.Equal(t, "", week[0].Lessons[0].TimeSlot)
}

func TestParseWeekMalformed(t *testing.T) {
	require.Empty(t, ParseWeek(""))
	require.Empty(t, ParseWeek("<html><body>Сервис временно недоступен</body></html>"))
	require.Empty(t, ParseWeek("$('#oops').append('nonsense');"))
}
