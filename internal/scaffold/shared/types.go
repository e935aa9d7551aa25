package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
)

const (
	projectNameRequiredMessageConstant   = "Project name is required"
	projectNameCharactersMessageConstant = "Project name can only contain letters, numbers, hyphens, and underscores"
	platformsRequiredMessageConstant     = "Please select at least one platform"
	substitutionPatternErrorTemplate     = "invalid substitution pattern %q: %w"
)

var projectNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// PlatformTag identifies a target platform a template path belongs to.
type PlatformTag string

// Supported platform tags.
const (
	PlatformIOS       PlatformTag = "ios"
	PlatformAndroid   PlatformTag = "android"
	PlatformHarmonyOS PlatformTag = "harmonyos"
)

// String returns the tag value.
func (tag PlatformTag) String() string {
	return string(tag)
}

// ValidateProjectName ensures the name is non-empty and restricted to letters, digits, hyphen and underscore.
func ValidateProjectName(name string) error {
	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) == 0 {
		return scaffolderrors.WrapMessage(scaffolderrors.OperationInputGather, name, scaffolderrors.ErrProjectNameInvalid, projectNameRequiredMessageConstant)
	}
	if !projectNamePattern.MatchString(trimmedName) {
		return scaffolderrors.WrapMessage(scaffolderrors.OperationInputGather, name, scaffolderrors.ErrProjectNameInvalid, projectNameCharactersMessageConstant)
	}
	return nil
}

// ProjectConfig is the validated, immutable input of a scaffolding run.
type ProjectConfig struct {
	name            string
	platforms       []PlatformTag
	targetDirectory string
}

// NewProjectConfig validates inputs and constructs a ProjectConfig.
func NewProjectConfig(name string, platforms []PlatformTag, targetDirectory string) (ProjectConfig, error) {
	if validationError := ValidateProjectName(name); validationError != nil {
		return ProjectConfig{}, validationError
	}

	uniquePlatforms := make(map[PlatformTag]struct{}, len(platforms))
	normalizedPlatforms := make([]PlatformTag, 0, len(platforms))
	for _, platform := range platforms {
		normalized := PlatformTag(strings.ToLower(strings.TrimSpace(string(platform))))
		if len(normalized) == 0 {
			continue
		}
		if _, seen := uniquePlatforms[normalized]; seen {
			continue
		}
		uniquePlatforms[normalized] = struct{}{}
		normalizedPlatforms = append(normalizedPlatforms, normalized)
	}
	if len(normalizedPlatforms) == 0 {
		return ProjectConfig{}, scaffolderrors.WrapMessage(scaffolderrors.OperationInputGather, name, scaffolderrors.ErrPlatformsMissing, platformsRequiredMessageConstant)
	}
	sort.Slice(normalizedPlatforms, func(left, right int) bool {
		return normalizedPlatforms[left] < normalizedPlatforms[right]
	})

	return ProjectConfig{
		name:            strings.TrimSpace(name),
		platforms:       normalizedPlatforms,
		targetDirectory: filepath.Clean(targetDirectory),
	}, nil
}

// Name returns the validated project name.
func (config ProjectConfig) Name() string {
	return config.name
}

// Platforms returns a copy of the selected platform tags in sorted order.
func (config ProjectConfig) Platforms() []PlatformTag {
	return append([]PlatformTag(nil), config.platforms...)
}

// Selects reports whether the platform tag was selected.
func (config ProjectConfig) Selects(tag PlatformTag) bool {
	for _, platform := range config.platforms {
		if platform == tag {
			return true
		}
	}
	return false
}

// TargetDirectory returns the parent directory the project is created in.
func (config ProjectConfig) TargetDirectory() string {
	return config.targetDirectory
}

// TargetPath returns the directory the project is materialized into.
func (config ProjectConfig) TargetPath() string {
	return filepath.Join(config.targetDirectory, config.name)
}

// SubstitutionRule pairs a pattern with its replacement. The replacement follows regexp template syntax.
type SubstitutionRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewSubstitutionRule compiles the expression into a SubstitutionRule.
func NewSubstitutionRule(expression string, replacement string) (SubstitutionRule, error) {
	pattern, compileError := regexp.Compile(expression)
	if compileError != nil {
		return SubstitutionRule{}, fmt.Errorf(substitutionPatternErrorTemplate, expression, compileError)
	}
	return SubstitutionRule{Pattern: pattern, Replacement: replacement}, nil
}

// MustSubstitutionRule compiles the expression and panics when it is invalid.
func MustSubstitutionRule(expression string, replacement string) SubstitutionRule {
	rule, ruleError := NewSubstitutionRule(expression, replacement)
	if ruleError != nil {
		panic(ruleError)
	}
	return rule
}

// EnvironmentProvider isolates ambient process state from the scaffolding core.
type EnvironmentProvider interface {
	WorkingDirectory() (string, error)
	LookupEnvironment(key string) (string, bool)
}

// OSEnvironment reads the process working directory and environment.
type OSEnvironment struct{}

// WorkingDirectory returns the process working directory.
func (OSEnvironment) WorkingDirectory() (string, error) {
	return os.Getwd()
}

// LookupEnvironment reads a process environment variable.
func (OSEnvironment) LookupEnvironment(key string) (string, bool) {
	return os.LookupEnv(key)
}

// StaticEnvironment serves a fixed working directory and variable set.
type StaticEnvironment struct {
	Directory string
	Variables map[string]string
}

// WorkingDirectory returns the configured directory.
func (environment StaticEnvironment) WorkingDirectory() (string, error) {
	return environment.Directory, nil
}

// LookupEnvironment returns the configured variable.
func (environment StaticEnvironment) LookupEnvironment(key string) (string, bool) {
	value, found := environment.Variables[key]
	return value, found
}
