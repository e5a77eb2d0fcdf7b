package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/desk"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

func Test_NewObservabilityConfig_RequiresLogger(t *testing.T) {
	// act
	_, err := config.NewObservabilityConfig(true, nil)

	// assert
	assert.ErrorIs(t, err, config.ErrNilLogger)
}

func Test_NewObservabilityConfig_Disabled(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy()

	// act
	cfg, err := config.NewObservabilityConfig(false, logSpy.Logger())

	// assert
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.Nil(t, cfg.MetricsCollector)
	assert.Nil(t, cfg.TracingCollector)
	assert.Nil(t, cfg.ContextualLogger)
	assert.Len(t, cfg.JournalOptions(), 1)
	assert.Len(t, cfg.DeskOptions(), 1)
	assert.NoError(t, cfg.Shutdown())

	rm, err := cfg.CollectMetrics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, config.MetricNames(rm))
}

func Test_NewObservabilityConfig_Enabled_RecordsDeskAndJournalMetrics(t *testing.T) {
	// arrange
	ctx := context.Background()
	logSpy := helper.NewLogHandlerSpy()

	cfg, err := config.NewObservabilityConfig(true, logSpy.Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Shutdown() })

	j, err := journal.NewJournal(cfg.JournalOptions()...)
	require.NoError(t, err)

	d, err := desk.NewDesk(j, circulation.DefaultPolicy(), cfg.DeskOptions()...)
	require.NoError(t, err)

	// act
	result, err := d.Checkout(ctx, 1, 1)
	require.NoError(t, err)

	rm, err := cfg.CollectMetrics(ctx)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, cfg.Enabled())
	assert.NotNil(t, cfg.Resource)

	names := config.MetricNames(rm)
	assert.Contains(t, names, shell.CommandHandlerDurationMetric)
	assert.Contains(t, names, shell.CommandHandlerOutcomesMetric)
	assert.Contains(t, names, journal.MetricAppendDuration)

	assert.True(t, logSpy.HasInfoLog(shell.LogMsgCommandCompleted).
		WithAttrValue(shell.LogAttrCommandType, "Checkout").
		Assert())
}
