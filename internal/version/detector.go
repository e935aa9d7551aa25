package version

import (
	"runtime/debug"
	"strings"
)

const (
	unknownVersionFallbackConstant = "unknown"
	buildInfoDevelVersionValue     = "(devel)"
	vcsRevisionSettingKeyConstant  = "vcs.revision"
	vcsModifiedSettingKeyConstant  = "vcs.modified"
	vcsModifiedTrueValueConstant   = "true"
	revisionPrefixConstant         = "devel-"
	dirtySuffixConstant            = "-dirty"
	shortRevisionLengthConstant    = 12
)

// Release is populated at link time with -ldflags "-X .../internal/version.Release=v1.2.3".
var Release string

// BuildInfoProvider exposes runtime build metadata.
type BuildInfoProvider interface {
	Read() (*debug.BuildInfo, bool)
}

// Detector resolves application version strings.
type Detector struct {
	buildInfoProvider BuildInfoProvider
	release           string
}

// Dependencies describes the collaborators required for version detection.
type Dependencies struct {
	BuildInfoProvider BuildInfoProvider
	Release           string
}

// NewDetector constructs a Detector with the supplied dependencies or sensible defaults.
func NewDetector(dependencies Dependencies) *Detector {
	provider := dependencies.BuildInfoProvider
	if provider == nil {
		provider = runtimeBuildInfoProvider{}
	}

	release := strings.TrimSpace(dependencies.Release)
	if len(release) == 0 {
		release = strings.TrimSpace(Release)
	}

	return &Detector{buildInfoProvider: provider, release: release}
}

// Detect resolves the application version using the supplied dependencies.
func Detect(dependencies Dependencies) string {
	return NewDetector(dependencies).Version()
}

// Version returns the detected application version string. Link-time releases win over module
// versions, which win over the VCS revision stamped into development builds.
func (detector *Detector) Version() string {
	if detector == nil {
		return unknownVersionFallbackConstant
	}

	if len(detector.release) > 0 {
		return detector.release
	}

	buildInfo, available := detector.readBuildInfo()
	if !available {
		return unknownVersionFallbackConstant
	}

	if moduleVersion := versionFromModule(buildInfo); len(moduleVersion) > 0 {
		return moduleVersion
	}

	if revision := versionFromVCS(buildInfo); len(revision) > 0 {
		return revision
	}

	return unknownVersionFallbackConstant
}

func (detector *Detector) readBuildInfo() (*debug.BuildInfo, bool) {
	if detector.buildInfoProvider == nil {
		return nil, false
	}
	buildInfo, available := detector.buildInfoProvider.Read()
	if !available || buildInfo == nil {
		return nil, false
	}
	return buildInfo, true
}

func versionFromModule(buildInfo *debug.BuildInfo) string {
	trimmedVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(trimmedVersion) == 0 {
		return ""
	}
	if strings.EqualFold(trimmedVersion, buildInfoDevelVersionValue) {
		return ""
	}
	return trimmedVersion
}

func versionFromVCS(buildInfo *debug.BuildInfo) string {
	revision := ""
	modified := false
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case vcsRevisionSettingKeyConstant:
			revision = strings.TrimSpace(setting.Value)
		case vcsModifiedSettingKeyConstant:
			modified = setting.Value == vcsModifiedTrueValueConstant
		}
	}
	if len(revision) == 0 {
		return ""
	}
	if len(revision) > shortRevisionLengthConstant {
		revision = revision[:shortRevisionLengthConstant]
	}
	versionString := revisionPrefixConstant + revision
	if modified {
		versionString += dirtySuffixConstant
	}
	return versionString
}

type runtimeBuildInfoProvider struct{}

func (runtimeBuildInfoProvider) Read() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}
