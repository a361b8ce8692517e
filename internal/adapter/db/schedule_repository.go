package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"schedsync/internal/core/domain"
	"schedsync/internal/core/ports"
)

const (
	dayLayout = "2006-01-02"

	mysqlDuplicateEntry = 1062
)

const (
	selectScheduleQuery       = `SELECT id, user_id, day, created_at FROM schedules WHERE id = ?`
	lockScheduleQuery         = `SELECT id, user_id, day, created_at FROM schedules WHERE id = ? FOR UPDATE`
	selectScheduleForDayQuery = `SELECT id, user_id, day, created_at FROM schedules WHERE user_id = ? AND day = ?`
	insertScheduleQuery       = `INSERT INTO schedules (id, user_id, day, created_at) VALUES (?, ?, ?, ?)`

	selectTasksQuery = `SELECT id, schedule_id, position, name, start_minute, duration, is_email_enabled, is_whatsapp_enabled, is_telegram_enabled, is_call_enabled FROM tasks WHERE schedule_id = ? ORDER BY position`
	deleteTasksQuery = `DELETE FROM tasks WHERE schedule_id = ?`
	insertTaskQuery  = `INSERT INTO tasks (id, schedule_id, position, name, start_minute, duration, is_email_enabled, is_whatsapp_enabled, is_telegram_enabled, is_call_enabled) VALUES (:id, :schedule_id, :position, :name, :start_minute, :duration, :is_email_enabled, :is_whatsapp_enabled, :is_telegram_enabled, :is_call_enabled)`

	insertAdjustmentQuery = `INSERT INTO adjustments (id, schedule_id, delta, created_at) VALUES (?, ?, ?, ?)`
	selectAdjustmentQuery = `SELECT id, schedule_id, delta, created_at FROM adjustments WHERE schedule_id = ? ORDER BY seq`
)

type ScheduleRepository struct {
	db    *sqlx.DB
	newID func() string
	now   func() time.Time
}

type scheduleRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Day       time.Time `db:"day"`
	CreatedAt time.Time `db:"created_at"`
}

type taskRow struct {
	ID              string `db:"id"`
	ScheduleID      string `db:"schedule_id"`
	Position        int    `db:"position"`
	Name            string `db:"name"`
	StartMinute     int    `db:"start_minute"`
	Duration        int    `db:"duration"`
	EmailEnabled    bool   `db:"is_email_enabled"`
	WhatsAppEnabled bool   `db:"is_whatsapp_enabled"`
	TelegramEnabled bool   `db:"is_telegram_enabled"`
	CallEnabled     bool   `db:"is_call_enabled"`
}

type adjustmentRow struct {
	ID         string    `db:"id"`
	ScheduleID string    `db:"schedule_id"`
	Delta      []byte    `db:"delta"`
	CreatedAt  time.Time `db:"created_at"`
}

var _ ports.ScheduleRepository = (*ScheduleRepository)(nil)

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db, newID: uuid.NewString, now: time.Now}
}

func (r *ScheduleRepository) GetSchedule(ctx context.Context, scheduleID string) (domain.Schedule, error) {
	var row scheduleRow
	if err := r.db.GetContext(ctx, &row, selectScheduleQuery, scheduleID); err != nil {
		return domain.Schedule{}, scheduleLookupError("get schedule", err)
	}

	tasks, err := loadTasks(ctx, r.db, scheduleID)
	if err != nil {
		return domain.Schedule{}, err
	}

	return row.toDomain(tasks), nil
}

func (r *ScheduleRepository) FindScheduleForDay(ctx context.Context, userID string, day time.Time) (domain.Schedule, error) {
	var row scheduleRow
	if err := r.db.GetContext(ctx, &row, selectScheduleForDayQuery, userID, day.Format(dayLayout)); err != nil {
		return domain.Schedule{}, scheduleLookupError("find schedule", err)
	}

	tasks, err := loadTasks(ctx, r.db, row.ID)
	if err != nil {
		return domain.Schedule{}, err
	}

	return row.toDomain(tasks), nil
}

func (r *ScheduleRepository) CreateSchedule(ctx context.Context, userID string, day time.Time, tasks domain.TaskList) (domain.Schedule, error) {
	row := scheduleRow{
		ID:        r.newID(),
		UserID:    userID,
		Day:       day,
		CreatedAt: r.now().UTC(),
	}
	stored := r.assignIDs(tasks.Clone(), row.ID)

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertScheduleQuery, row.ID, row.UserID, day.Format(dayLayout), row.CreatedAt); err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
				return fmt.Errorf("%w: schedule for %s on %s already exists", domain.ErrPersistence, userID, day.Format(dayLayout))
			}
			return persistenceError("insert schedule", err)
		}
		return insertTasks(ctx, tx, stored)
	})
	if err != nil {
		return domain.Schedule{}, err
	}

	return row.toDomain(stored.Clone()), nil
}

// MutateTasks locks the schedule row for the duration of the transaction so
// concurrent mutations of the same schedule run one after the other.
func (r *ScheduleRepository) MutateTasks(ctx context.Context, scheduleID string, mutate ports.TaskMutation) (domain.TaskList, error) {
	var result domain.TaskList

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var row scheduleRow
		if err := tx.GetContext(ctx, &row, lockScheduleQuery, scheduleID); err != nil {
			return scheduleLookupError("lock schedule", err)
		}

		before, err := loadTasks(ctx, tx, scheduleID)
		if err != nil {
			return err
		}

		after, err := mutate(before.Clone())
		if err != nil {
			return err
		}
		after = r.assignIDs(after.Clone(), scheduleID)

		if before.Equal(after) {
			result = after
			return nil
		}

		if _, err := tx.ExecContext(ctx, deleteTasksQuery, scheduleID); err != nil {
			return persistenceError("delete tasks", err)
		}
		if err := insertTasks(ctx, tx, after); err != nil {
			return err
		}

		// Renames, flag toggles and moves between equal times are stored but
		// leave no adjustment.
		changes := domain.DiffTasks(before, after)
		if len(changes) == 0 {
			result = after
			return nil
		}
		delta, err := domain.EncodeChanges(changes)
		if err != nil {
			return persistenceError("encode adjustment", err)
		}
		if _, err := tx.ExecContext(ctx, insertAdjustmentQuery, r.newID(), scheduleID, delta, r.now().UTC()); err != nil {
			return persistenceError("insert adjustment", err)
		}

		result = after
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ScheduleRepository) ReplaceTasks(ctx context.Context, scheduleID string, tasks domain.TaskList) (domain.TaskList, error) {
	return r.MutateTasks(ctx, scheduleID, func(domain.TaskList) (domain.TaskList, error) {
		return tasks, nil
	})
}

func (r *ScheduleRepository) ListAdjustments(ctx context.Context, scheduleID string) ([]domain.Adjustment, error) {
	var rows []adjustmentRow
	if err := r.db.SelectContext(ctx, &rows, selectAdjustmentQuery, scheduleID); err != nil {
		return nil, persistenceError("list adjustments", err)
	}

	adjustments := make([]domain.Adjustment, 0, len(rows))
	for _, row := range rows {
		changes, err := domain.DecodeChanges(row.Delta)
		if err != nil {
			return nil, persistenceError("decode adjustment "+row.ID, err)
		}
		adjustments = append(adjustments, domain.Adjustment{
			ID:         row.ID,
			ScheduleID: row.ScheduleID,
			Changes:    changes,
			CreatedAt:  row.CreatedAt,
		})
	}

	return adjustments, nil
}

func (r *ScheduleRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return persistenceError("begin transaction", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return persistenceError("commit", err)
	}
	return nil
}

func (r *ScheduleRepository) assignIDs(tasks domain.TaskList, scheduleID string) domain.TaskList {
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = r.newID()
		}
		tasks[i].ScheduleID = scheduleID
	}
	return tasks
}

func loadTasks(ctx context.Context, q sqlx.QueryerContext, scheduleID string) (domain.TaskList, error) {
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, q, &rows, selectTasksQuery, scheduleID); err != nil {
		return nil, persistenceError("load tasks", err)
	}

	tasks := make(domain.TaskList, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func insertTasks(ctx context.Context, tx *sqlx.Tx, tasks domain.TaskList) error {
	if len(tasks) == 0 {
		return nil
	}

	rows := make([]taskRow, 0, len(tasks))
	for i, task := range tasks {
		rows = append(rows, mapDomainTaskToTaskRow(task, i))
	}

	if _, err := tx.NamedExecContext(ctx, insertTaskQuery, rows); err != nil {
		return persistenceError("insert tasks", err)
	}
	return nil
}

func (row scheduleRow) toDomain(tasks domain.TaskList) domain.Schedule {
	return domain.Schedule{
		ID:        row.ID,
		UserID:    row.UserID,
		Day:       row.Day,
		CreatedAt: row.CreatedAt,
		Tasks:     tasks,
	}
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	return domain.Task{
		ID:              row.ID,
		ScheduleID:      row.ScheduleID,
		Name:            row.Name,
		Time:            domain.Clock(row.StartMinute),
		Duration:        row.Duration,
		EmailEnabled:    row.EmailEnabled,
		WhatsAppEnabled: row.WhatsAppEnabled,
		TelegramEnabled: row.TelegramEnabled,
		CallEnabled:     row.CallEnabled,
	}
}

func mapDomainTaskToTaskRow(task domain.Task, position int) taskRow {
	return taskRow{
		ID:              task.ID,
		ScheduleID:      task.ScheduleID,
		Position:        position,
		Name:            task.Name,
		StartMinute:     int(task.Time),
		Duration:        task.Duration,
		EmailEnabled:    task.EmailEnabled,
		WhatsAppEnabled: task.WhatsAppEnabled,
		TelegramEnabled: task.TelegramEnabled,
		CallEnabled:     task.CallEnabled,
	}
}

func scheduleLookupError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrScheduleNotFound
	}
	return persistenceError(op, err)
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}
