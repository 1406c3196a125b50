package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizokt/spendtrack/internal/logging"
)

func TestAddOrUpdate_RegistersNamedJobs(t *testing.T) {
	s := New(logging.Setup())

	require.NoError(t, s.AddOrUpdate("daily-expense-aggregation", "daily", func() {}))
	require.NoError(t, s.AddOrUpdate("weekly-expense-aggregation", "weekly", func() {}))
	require.NoError(t, s.AddOrUpdate("monthly-expense-aggregation", "monthly", func() {}))

	assert.Equal(t, []string{
		"daily-expense-aggregation",
		"monthly-expense-aggregation",
		"weekly-expense-aggregation",
	}, s.JobNames())
}

func TestAddOrUpdate_Idempotent(t *testing.T) {
	s := New(logging.Setup())

	require.NoError(t, s.AddOrUpdate("daily-expense-aggregation", "daily", func() {}))
	require.NoError(t, s.AddOrUpdate("daily-expense-aggregation", "daily", func() {}))

	assert.Equal(t, []string{"daily-expense-aggregation"}, s.JobNames())
	assert.Len(t, s.cron.Entries(), 1)
}

func TestAddOrUpdate_RawCronExpression(t *testing.T) {
	s := New(logging.Setup())
	require.NoError(t, s.AddOrUpdate("custom", "30 3 * * *", func() {}))
	assert.Equal(t, []string{"custom"}, s.JobNames())
}

func TestAddOrUpdate_UnknownCadence(t *testing.T) {
	s := New(logging.Setup())
	err := s.AddOrUpdate("bad", "every-blue-moon", func() {})
	assert.Error(t, err)
	assert.Empty(t, s.JobNames())
}
