package domain_test

import (
	"errors"
	"testing"

	"schedsync/internal/core/domain"
	"schedsync/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestTask_Validate(t *testing.T) {
	valid := domain.Task{Name: "Write", Time: testutil.Clock("09:00"), Duration: 30}
	require.NoError(t, valid.Validate())

	noName := valid
	noName.Name = "  "
	err := noName.Validate()
	require.ErrorIs(t, err, domain.ErrValidation)

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, "name", validationErr.Field)

	zeroDuration := valid
	zeroDuration.Duration = 0
	require.ErrorIs(t, zeroDuration.Validate(), domain.ErrValidation)

	late := valid
	late.Time = testutil.Clock("23:45")
	err = late.Validate()
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorIs(t, err, domain.ErrScheduleOverflow)

	endsAtMidnight := valid
	endsAtMidnight.Time = testutil.Clock("23:30")
	require.NoError(t, endsAtMidnight.Validate())
}

func TestTaskList_CloneDoesNotAlias(t *testing.T) {
	tasks := domain.TaskList{{ID: "a", Name: "A", Time: 540, Duration: 30}}

	clone := tasks.Clone()
	clone[0].Time = 600

	require.Equal(t, domain.Clock(540), tasks[0].Time)
	require.Equal(t, 0, tasks.IndexOf("a"))
	require.Equal(t, -1, tasks.IndexOf("missing"))
	require.NotNil(t, domain.TaskList(nil).Clone())
}

func TestTaskList_Equal(t *testing.T) {
	base := domain.TaskList{
		{ID: "a", Name: "A", Time: 540, Duration: 30},
		{ID: "b", Name: "B", Time: 570, Duration: 15},
	}

	renamed := base.Clone()
	renamed[0].Name = "Renamed"
	flagged := base.Clone()
	flagged[1].WhatsAppEnabled = true
	swapped := domain.TaskList{base[1], base[0]}

	require.True(t, base.Equal(base.Clone()))
	require.False(t, base.Equal(renamed))
	require.False(t, base.Equal(flagged))
	require.False(t, base.Equal(swapped))
	require.False(t, base.Equal(base[:1]))
	require.True(t, domain.TaskList{}.Equal(nil))
}

func TestUpdateTaskInput_Apply(t *testing.T) {
	name := " Deep work "
	duration := 90
	email := true

	task := domain.Task{ID: "a", Name: "A", Time: 540, Duration: 30}
	got := domain.UpdateTaskInput{Name: &name, Duration: &duration, EmailEnabled: &email}.Apply(task)

	require.Equal(t, "Deep work", got.Name)
	require.Equal(t, domain.Clock(540), got.Time)
	require.Equal(t, 90, got.Duration)
	require.True(t, got.EmailEnabled)
	require.True(t, domain.UpdateTaskInput{}.IsEmpty())
}
