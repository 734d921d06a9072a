package uust

import (
	"courseportal-backend/lib/htmlutil"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var subjectTypeRegex = regexp.MustCompile(`^(.+?)\s*\((.+?)\)`)

// ParseLessonCell extracts one lesson from the escaped HTML fragment of
// a single timetable cell. ok is false when the cell holds no usable
// lesson, which callers must treat as "empty cell", not as a fault.
func ParseLessonCell(content string) (lesson Lesson, ok bool) {
	// the fragments arrive inside javascript string literals
	content = strings.ReplaceAll(content, `\/`, "/")
	content = strings.ReplaceAll(content, `\'`, "'")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil || len(doc.Nodes) == 0 {
		return Lesson{}, false
	}
	text := htmlutil.SeparatedText(doc.Nodes[0], "|")

	var parts []string
	for _, p := range strings.Split(text, "|") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 1 {
		return Lesson{}, false
	}

	if m := subjectTypeRegex.FindStringSubmatch(parts[0]); m != nil {
		lesson.Subject = strings.TrimSpace(m[1])
		lesson.Type = strings.TrimSpace(m[2])
	} else {
		lesson.Subject = parts[0]
		lesson.Type = UnknownLessonType
	}

	// later segments overwrite earlier ones: the source markup sometimes
	// repeats a teacher or room line and the final occurrence is the one
	// the portal displays
	for _, part := range parts[1:] {
		if strings.Contains(part, "Корпус") {
			lesson.Classroom = part
		} else if len([]rune(part)) > 2 {
			lesson.Teacher = part
		}
	}

	return lesson, true
}
