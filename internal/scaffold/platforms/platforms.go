// Package platforms maps template paths to the platforms they belong to.
package platforms

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	tagSeparatorConstant        = ","
	unknownPlatformTemplate     = "Unknown platform %q (supported: %s)"
	supportedPlatformsSeparator = ", "
)

// Definition binds a platform tag to its top-level directory and characteristic file markers.
type Definition struct {
	Tag         shared.PlatformTag
	DisplayName string
	Root        string
	Markers     []string
}

var definitions = []Definition{
	{Tag: shared.PlatformIOS, DisplayName: "iOS", Root: "apple", Markers: []string{".swift", ".xcodeproj", ".xcworkspace"}},
	{Tag: shared.PlatformAndroid, DisplayName: "Android", Root: "android", Markers: []string{".gradle", ".kt", ".kts"}},
	{Tag: shared.PlatformHarmonyOS, DisplayName: "HarmonyOS", Root: "harmony", Markers: []string{".ets"}},
}

// Definitions returns every known platform definition in display order.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// KnownTags returns every known platform tag in display order.
func KnownTags() []shared.PlatformTag {
	tags := make([]shared.PlatformTag, 0, len(definitions))
	for _, definition := range definitions {
		tags = append(tags, definition.Tag)
	}
	return tags
}

// Lookup finds the definition of a tag.
func Lookup(tag shared.PlatformTag) (Definition, bool) {
	for _, definition := range definitions {
		if definition.Tag == tag {
			return definition, true
		}
	}
	return Definition{}, false
}

// ParseTags splits comma-separated values, normalizes case and rejects unknown tags.
func ParseTags(values []string) ([]shared.PlatformTag, error) {
	tags := make([]shared.PlatformTag, 0, len(values))
	for _, value := range values {
		for _, candidate := range strings.Split(value, tagSeparatorConstant) {
			normalized := strings.ToLower(strings.TrimSpace(candidate))
			if len(normalized) == 0 {
				continue
			}
			tag := shared.PlatformTag(normalized)
			if _, known := Lookup(tag); !known {
				return nil, scaffolderrors.WrapMessage(
					scaffolderrors.OperationInputGather,
					normalized,
					scaffolderrors.ErrPlatformUnknown,
					fmt.Sprintf(unknownPlatformTemplate, normalized, supportedTags()),
				)
			}
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// PlatformsOf returns the sorted tags a template-relative path belongs to. A path under a platform's
// root directory, or with a path component carrying one of its markers, belongs to that platform.
// An empty result means the path is shared by every platform.
func PlatformsOf(relativePath string) []shared.PlatformTag {
	components := strings.Split(strings.TrimPrefix(filepath.ToSlash(filepath.Clean(relativePath)), "./"), "/")
	tags := make([]shared.PlatformTag, 0)
	for _, definition := range definitions {
		if matchesDefinition(components, definition) {
			tags = append(tags, definition.Tag)
		}
	}
	sort.Slice(tags, func(left, right int) bool {
		return tags[left] < tags[right]
	})
	return tags
}

// ShouldInclude reports whether a path is copied for the selected platforms.
func ShouldInclude(relativePath string, config shared.ProjectConfig) bool {
	tags := PlatformsOf(relativePath)
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if config.Selects(tag) {
			return true
		}
	}
	return false
}

func matchesDefinition(components []string, definition Definition) bool {
	if len(components) > 0 && components[0] == definition.Root {
		return true
	}
	for _, component := range components {
		for _, marker := range definition.Markers {
			if strings.HasSuffix(component, marker) || strings.Contains(component, marker+".") {
				return true
			}
		}
	}
	return false
}

func supportedTags() string {
	names := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		names = append(names, string(definition.Tag))
	}
	return strings.Join(names, supportedPlatformsSeparator)
}
