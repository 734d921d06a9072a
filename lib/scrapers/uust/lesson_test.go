package uust

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLessonCellSubjectSplit(t *testing.T) {
	lesson, ok := ParseLessonCell("Matan (Лекция)")
	require.True(t, ok)
	require.Equal(t, "Matan", lesson.Subject)
	require.Equal(t, "Лекция", lesson.Type)

	lesson, ok = ParseLessonCell("Matan")
	require.True(t, ok)
	require.Equal(t, "Matan", lesson.Subject)
	require.Equal(t, UnknownLessonType, lesson.Type)
}

func TestParseLessonCellDeterminism(t *testing.T) {
	const content = `Философия (Практика)|Петров П.П.|Корпус 2, ауд. 101`
	first, ok := ParseLessonCell(content)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := ParseLessonCell(content)
		require.True(t, ok)
		require.Equal(t, first, again)
	}
}

func TestParseLessonCellMarkupSegments(t *testing.T) {
	lesson, ok := ParseLessonCell(
		`<b>Физика (Лекция)<\/b><br><a href=\'\/teacher\/42\'>Сидоров С.С.<\/a><br>Корпус 1, ауд. 305`,
	)
	require.True(t, ok)
	require.Equal(t, "Физика", lesson.Subject)
	require.Equal(t, "Лекция", lesson.Type)
	require.Equal(t, "Сидоров С.С.", lesson.Teacher)
	require.Equal(t, "Корпус 1, ауд. 305", lesson.Classroom)
}

func TestParseLessonCellClassroomNeverTeacher(t *testing.T) {
	// a building segment is a classroom no matter where it shows up
	lesson, ok := ParseLessonCell("Химия (Лаб)|Корпус 8, ауд. 12|Иванова И.И.")
	require.True(t, ok)
	require.Equal(t, "Корпус 8, ауд. 12", lesson.Classroom)
	require.Equal(t, "Иванова И.И.", lesson.Teacher)
}

func TestParseLessonCellLastMatchWins(t *testing.T) {
	lesson, ok := ParseLessonCell("История (Семинар)|Иванов И.И.|Петров П.П.")
	require.True(t, ok)
	require.Equal(t, "Петров П.П.", lesson.Teacher)

	lesson, ok = ParseLessonCell("История (Семинар)|Корпус 1, ауд. 1|Корпус 2, ауд. 2")
	require.True(t, ok)
	require.Equal(t, "Корпус 2, ауд. 2", lesson.Classroom)
}

func TestParseLessonCellShortSegmentsIgnored(t *testing.T) {
	// segments of two characters or less are noise, not teachers
	lesson, ok := ParseLessonCell("ОБЖ|--|Иванов И.И.")
	require.True(t, ok)
	require.Equal(t, "Иванов И.И.", lesson.Teacher)
}

func TestParseLessonCellEmpty(t *testing.T) {
	_, ok := ParseLessonCell("")
	require.False(t, ok)

	_, ok = ParseLessonCell("<br><br>")
	require.False(t, ok)
}
