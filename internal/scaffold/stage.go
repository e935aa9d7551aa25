package scaffold

// Stage is a step of a scaffolding run. Runs advance linearly and stop at Done or Failed.
type Stage string

// Scaffolding stages in execution order.
const (
	StageIdle               Stage = "idle"
	StageInputGathered      Stage = "input_gathered"
	StageCopied             Stage = "copied"
	StageContentSubstituted Stage = "content_substituted"
	StagePathsRenamed       Stage = "paths_renamed"
	StagePlatformsCleaned   Stage = "platforms_cleaned"
	StageDone               Stage = "done"
	StageFailed             Stage = "failed"
)

// String returns the stage identifier.
func (stage Stage) String() string {
	return string(stage)
}
