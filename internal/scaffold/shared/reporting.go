package shared

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// EventLevel describes the severity of a reported scaffolding event.
type EventLevel string

// Supported event levels.
const (
	EventLevelDebug EventLevel = "DEBUG"
	EventLevelInfo  EventLevel = "INFO"
	EventLevelWarn  EventLevel = "WARN"
	EventLevelError EventLevel = "ERROR"
)

// Event codes emitted by the scaffolding stages.
const (
	EventCodeStageCompleted     = "STAGE_COMPLETED"
	EventCodeStageFailed        = "STAGE_FAILED"
	EventCodeFileCopied         = "FILE_COPIED"
	EventCodeFileRewritten      = "FILE_REWRITTEN"
	EventCodeFileSkipped        = "FILE_SKIPPED"
	EventCodeDirectorySkipped   = "DIRECTORY_SKIPPED"
	EventCodePathRenamed        = "PATH_RENAMED"
	EventCodeRenameConflict     = "RENAME_CONFLICT"
	EventCodePackageMoved       = "PACKAGE_MOVED"
	EventCodePackageMerged      = "PACKAGE_MERGED"
	EventCodePackageChildExists = "PACKAGE_CHILD_EXISTS"
	EventCodeDirectoryPruned    = "DIRECTORY_PRUNED"
	EventCodePlatformRemoved    = "PLATFORM_REMOVED"
	EventCodeStructureVerified  = "STRUCTURE_VERIFIED"
)

const (
	logFieldCodeConstant    = "code"
	logFieldPathConstant    = "path"
	summaryEntryTemplate    = "%s=%d"
	summarySeparatorMessage = " "
)

// Event captures structured information about a single scaffolding action.
type Event struct {
	Level   EventLevel
	Code    string
	Path    string
	Message string
	Details map[string]string
}

// Reporter emits structured scaffolding events.
type Reporter interface {
	Report(event Event)
}

// NopReporter discards every event.
type NopReporter struct{}

// Report discards the event.
func (NopReporter) Report(Event) {}

// LoggerReporter forwards events to a zap logger.
type LoggerReporter struct {
	logger *zap.Logger
}

// NewLoggerReporter constructs a LoggerReporter; a nil logger discards events.
func NewLoggerReporter(logger *zap.Logger) LoggerReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return LoggerReporter{logger: logger}
}

// Report logs the event at the level it declares.
func (reporter LoggerReporter) Report(event Event) {
	fields := make([]zap.Field, 0, len(event.Details)+2)
	fields = append(fields, zap.String(logFieldCodeConstant, event.Code))
	if len(event.Path) > 0 {
		fields = append(fields, zap.String(logFieldPathConstant, event.Path))
	}
	detailKeys := make([]string, 0, len(event.Details))
	for key := range event.Details {
		detailKeys = append(detailKeys, key)
	}
	sort.Strings(detailKeys)
	for _, key := range detailKeys {
		fields = append(fields, zap.String(key, event.Details[key]))
	}

	switch event.Level {
	case EventLevelDebug:
		reporter.logger.Debug(event.Message, fields...)
	case EventLevelWarn:
		reporter.logger.Warn(event.Message, fields...)
	case EventLevelError:
		reporter.logger.Error(event.Message, fields...)
	default:
		reporter.logger.Info(event.Message, fields...)
	}
}

// FanoutReporter delivers each event to every wrapped reporter in order.
type FanoutReporter struct {
	reporters []Reporter
}

// NewFanoutReporter constructs a FanoutReporter skipping nil reporters.
func NewFanoutReporter(reporters ...Reporter) FanoutReporter {
	filtered := make([]Reporter, 0, len(reporters))
	for _, reporter := range reporters {
		if reporter != nil {
			filtered = append(filtered, reporter)
		}
	}
	return FanoutReporter{reporters: filtered}
}

// Report forwards the event.
func (reporter FanoutReporter) Report(event Event) {
	for _, wrapped := range reporter.reporters {
		wrapped.Report(event)
	}
}

// EventCollector records events and is safe for concurrent use.
type EventCollector struct {
	mutex  sync.Mutex
	events []Event
}

// Report records the event.
func (collector *EventCollector) Report(event Event) {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()
	collector.events = append(collector.events, event)
}

// Events returns a snapshot of recorded events in arrival order.
func (collector *EventCollector) Events() []Event {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()
	return append([]Event(nil), collector.events...)
}

// EventsWithCode returns recorded events carrying the code.
func (collector *EventCollector) EventsWithCode(code string) []Event {
	matching := make([]Event, 0)
	for _, event := range collector.Events() {
		if event.Code == code {
			matching = append(matching, event)
		}
	}
	return matching
}

// Summary renders per-code event counts sorted by code.
func (collector *EventCollector) Summary() string {
	counts := make(map[string]int)
	for _, event := range collector.Events() {
		counts[event.Code]++
	}
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	entries := make([]string, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, fmt.Sprintf(summaryEntryTemplate, code, counts[code]))
	}
	return strings.Join(entries, summarySeparatorMessage)
}

// ReporterOrNop returns the reporter or a NopReporter when nil.
func ReporterOrNop(reporter Reporter) Reporter {
	if reporter == nil {
		return NopReporter{}
	}
	return reporter
}
