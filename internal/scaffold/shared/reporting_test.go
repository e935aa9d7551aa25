package shared_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

func TestLoggerReporterMapsLevels(t *testing.T) {
	t.Parallel()

	core, observedLogs := observer.New(zapcore.DebugLevel)
	reporter := shared.NewLoggerReporter(zap.New(core))

	reporter.Report(shared.Event{Level: shared.EventLevelWarn, Code: shared.EventCodeRenameConflict, Path: "/tmp/a", Message: "rename skipped", Details: map[string]string{"target": "/tmp/b"}})
	reporter.Report(shared.Event{Level: shared.EventLevelDebug, Code: shared.EventCodeFileSkipped, Message: "skipped"})
	reporter.Report(shared.Event{Code: shared.EventCodeFileCopied, Message: "copied"})

	entries := observedLogs.All()
	require.Len(t, entries, 3)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	require.Equal(t, "/tmp/b", entries[0].ContextMap()["target"])
	require.Equal(t, "/tmp/a", entries[0].ContextMap()["path"])
	require.Equal(t, zapcore.DebugLevel, entries[1].Level)
	require.Equal(t, zapcore.InfoLevel, entries[2].Level)
}

func TestEventCollectorConcurrentReports(t *testing.T) {
	t.Parallel()

	collector := &shared.EventCollector{}
	fanout := shared.NewFanoutReporter(collector, nil, shared.NopReporter{})

	var waitGroup sync.WaitGroup
	for index := 0; index < 20; index++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			fanout.Report(shared.Event{Code: shared.EventCodeFileRewritten})
		}()
	}
	waitGroup.Wait()
	collector.Report(shared.Event{Code: shared.EventCodePathRenamed})

	require.Len(t, collector.Events(), 21)
	require.Len(t, collector.EventsWithCode(shared.EventCodeFileRewritten), 20)
	require.Equal(t, "FILE_REWRITTEN=20 PATH_RENAMED=1", collector.Summary())
}
