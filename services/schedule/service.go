package schedule

import (
	"context"
	"courseportal-backend/lib/scrapers/uust"
	"courseportal-backend/lib/timezone"
	"courseportal-backend/services/schedule/db"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/schedule")

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ReplaceWeekRequest struct {
	GroupID    int64
	GroupName  string
	WeekNumber int
	Week       uust.Week
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ReplaceWeek swaps out everything stored for (group, week) with the
// given normalized week in one transaction. Stale entries are never
// mixed with fresh ones: on any fault the whole replacement rolls back.
func (s Service) ReplaceWeek(ctx context.Context, req ReplaceWeekRequest) error {
	ctx, span := tracer.Start(ctx, "ReplaceWeek")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("group_id", req.GroupID),
		attribute.Int("week_number", req.WeekNumber),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteWeekEntries(ctx, db.DeleteWeekEntriesParams{
		GroupID:    req.GroupID,
		WeekNumber: int64(req.WeekNumber),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	now := timezone.Now().Unix()
	for _, day := range req.Week {
		for _, lesson := range day.Lessons {
			err := txqry.CreateScheduleEntry(ctx, db.CreateScheduleEntryParams{
				GroupID:      req.GroupID,
				GroupName:    req.GroupName,
				WeekNumber:   int64(req.WeekNumber),
				DayName:      day.Weekday,
				Date:         day.Date,
				LessonNumber: int64(lesson.Number),
				TimeSlot:     lesson.TimeSlot,
				Subject:      lesson.Subject,
				LessonType:   lesson.Type,
				Teacher:      nullable(lesson.Teacher),
				Classroom:    nullable(lesson.Classroom),
				LastUpdated:  now,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// assembleWeek rebuilds the normalizer's day structure from flat rows,
// restoring the fixed Monday-first day order.
func assembleWeek(entries []db.ScheduleEntry) uust.Week {
	lessonsByDay := map[string][]uust.Lesson{}
	dateByDay := map[string]string{}
	for _, e := range entries {
		lessonsByDay[e.DayName] = append(lessonsByDay[e.DayName], uust.Lesson{
			Number:    int(e.LessonNumber),
			TimeSlot:  e.TimeSlot,
			Subject:   e.Subject,
			Type:      e.LessonType,
			Teacher:   e.Teacher.String,
			Classroom: e.Classroom.String,
		})
		dateByDay[e.DayName] = e.Date
	}

	var week uust.Week
	for _, dayName := range uust.WeekdayOrder {
		lessons := lessonsByDay[dayName]
		if len(lessons) == 0 {
			continue
		}
		week = append(week, uust.Day{
			Weekday: dayName,
			Date:    dateByDay[dayName],
			Lessons: lessons,
		})
	}
	return week
}

// GetWeek returns the stored schedule for one (group, week), or an
// empty week when nothing is stored.
func (s Service) GetWeek(ctx context.Context, groupId int64, week int) (uust.Week, error) {
	ctx, span := tracer.Start(ctx, "GetWeek")
	defer span.End()

	entries, err := s.qry.GetWeekEntries(ctx, db.GetWeekEntriesParams{
		GroupID:    groupId,
		WeekNumber: int64(week),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get week %d for group %d: %w", week, groupId, err)
	}
	return assembleWeek(entries), nil
}

type WeekSchedule struct {
	WeekNumber int
	Days       uust.Week
}

// GetGroupSchedule returns every stored week for a group, ordered by
// week number, each week in the normalizer's day structure.
func (s Service) GetGroupSchedule(ctx context.Context, groupId int64) ([]WeekSchedule, error) {
	ctx, span := tracer.Start(ctx, "GetGroupSchedule")
	defer span.End()

	entries, err := s.qry.GetGroupEntries(ctx, groupId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get schedule for group %d: %w", groupId, err)
	}

	// rows arrive ordered by week number, so one pass suffices
	var weeks []WeekSchedule
	start := 0
	for i := 1; i <= len(entries); i++ {
		if i < len(entries) && entries[i].WeekNumber == entries[start].WeekNumber {
			continue
		}
		weeks = append(weeks, WeekSchedule{
			WeekNumber: int(entries[start].WeekNumber),
			Days:       assembleWeek(entries[start:i]),
		})
		start = i
	}
	return weeks, nil
}

// GetGroupLastUpdated returns the time of the most recent write for a
// group, or the zero time when nothing is stored.
func (s Service) GetGroupLastUpdated(ctx context.Context, groupId int64) (time.Time, error) {
	unix, err := s.qry.GetGroupLastUpdated(ctx, groupId)
	if err != nil {
		return time.Time{}, err
	}
	if unix == 0 {
		return time.Time{}, nil
	}
	return time.Unix(unix, 0).In(timezone.Location), nil
}

// ListGroups enumerates every group with stored entries.
func (s Service) ListGroups(ctx context.Context) ([]Group, error) {
	ctx, span := tracer.Start(ctx, "ListGroups")
	defer span.End()

	rows, err := s.qry.ListGroups(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	groups := make([]Group, len(rows))
	for i, r := range rows {
		groups[i] = Group{ID: r.GroupID, Name: r.GroupName}
	}
	return groups, nil
}
