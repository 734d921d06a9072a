package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type ScheduleEntry struct {
	ID           int64
	GroupID      int64
	GroupName    string
	WeekNumber   int64
	DayName      string
	Date         string
	LessonNumber int64
	TimeSlot     string
	Subject      string
	LessonType   string
	Teacher      sql.NullString
	Classroom    sql.NullString
	LastUpdated  int64
}

const deleteWeekEntries = `
DELETE FROM schedule_entries WHERE group_id = ? AND week_number = ?
`

type DeleteWeekEntriesParams struct {
	GroupID    int64
	WeekNumber int64
}

func (q *Queries) DeleteWeekEntries(ctx context.Context, arg DeleteWeekEntriesParams) error {
	_, err := q.db.ExecContext(ctx, deleteWeekEntries, arg.GroupID, arg.WeekNumber)
	return err
}

const createScheduleEntry = `
INSERT INTO schedule_entries (
    group_id, group_name, week_number, day_name, date,
    lesson_number, time_slot, subject, lesson_type, teacher, classroom,
    last_updated
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateScheduleEntryParams struct {
	GroupID      int64
	GroupName    string
	WeekNumber   int64
	DayName      string
	Date         string
	LessonNumber int64
	TimeSlot     string
	Subject      string
	LessonType   string
	Teacher      sql.NullString
	Classroom    sql.NullString
	LastUpdated  int64
}

func (q *Queries) CreateScheduleEntry(ctx context.Context, arg CreateScheduleEntryParams) error {
	_, err := q.db.ExecContext(ctx, createScheduleEntry,
		arg.GroupID,
		arg.GroupName,
		arg.WeekNumber,
		arg.DayName,
		arg.Date,
		arg.LessonNumber,
		arg.TimeSlot,
		arg.Subject,
		arg.LessonType,
		arg.Teacher,
		arg.Classroom,
		arg.LastUpdated,
	)
	return err
}

const getWeekEntries = `
SELECT id, group_id, group_name, week_number, day_name, date,
       lesson_number, time_slot, subject, lesson_type, teacher, classroom,
       last_updated
FROM schedule_entries
WHERE group_id = ? AND week_number = ?
ORDER BY lesson_number
`

type GetWeekEntriesParams struct {
	GroupID    int64
	WeekNumber int64
}

func (q *Queries) GetWeekEntries(ctx context.Context, arg GetWeekEntriesParams) ([]ScheduleEntry, error) {
	rows, err := q.db.QueryContext(ctx, getWeekEntries, arg.GroupID, arg.WeekNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ScheduleEntry
	for rows.Next() {
		var i ScheduleEntry
		err := rows.Scan(
			&i.ID,
			&i.GroupID,
			&i.GroupName,
			&i.WeekNumber,
			&i.DayName,
			&i.Date,
			&i.LessonNumber,
			&i.TimeSlot,
			&i.Subject,
			&i.LessonType,
			&i.Teacher,
			&i.Classroom,
			&i.LastUpdated,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getGroupEntries = `
SELECT id, group_id, group_name, week_number, day_name, date,
       lesson_number, time_slot, subject, lesson_type, teacher, classroom,
       last_updated
FROM schedule_entries
WHERE group_id = ?
ORDER BY week_number, lesson_number
`

func (q *Queries) GetGroupEntries(ctx context.Context, groupId int64) ([]ScheduleEntry, error) {
	rows, err := q.db.QueryContext(ctx, getGroupEntries, groupId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ScheduleEntry
	for rows.Next() {
		var i ScheduleEntry
		err := rows.Scan(
			&i.ID,
			&i.GroupID,
			&i.GroupName,
			&i.WeekNumber,
			&i.DayName,
			&i.Date,
			&i.LessonNumber,
			&i.TimeSlot,
			&i.Subject,
			&i.LessonType,
			&i.Teacher,
			&i.Classroom,
			&i.LastUpdated,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getGroupLastUpdated = `
SELECT COALESCE(MAX(last_updated), 0) FROM schedule_entries WHERE group_id = ?
`

func (q *Queries) GetGroupLastUpdated(ctx context.Context, groupId int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, getGroupLastUpdated, groupId)
	var lastUpdated int64
	err := row.Scan(&lastUpdated)
	return lastUpdated, err
}

const listGroups = `
SELECT group_id, group_name
FROM (
    SELECT group_id, group_name,
           ROW_NUMBER() OVER (
               PARTITION BY group_id
               ORDER BY last_updated DESC, id DESC
           ) AS recency
    FROM schedule_entries
)
WHERE recency = 1
ORDER BY group_name
`

type ListGroupsRow struct {
	GroupID   int64
	GroupName string
}

func (q *Queries) ListGroups(ctx context.Context) ([]ListGroupsRow, error) {
	rows, err := q.db.QueryContext(ctx, listGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListGroupsRow
	for rows.Next() {
		var i ListGroupsRow
		err := rows.Scan(&i.GroupID, &i.GroupName)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
