// Package prompt collects the project name and platform selection from the user.
package prompt

import (
	"context"
	"strings"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/platforms"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	// ProjectNameQuestionConstant asks for the project name.
	ProjectNameQuestionConstant = "What is your app named?"
	// PlatformsQuestionConstant asks for the platform selection.
	PlatformsQuestionConstant = "What platforms do you want to start with?"
	// DefaultProjectNameConstant is suggested when no name was supplied.
	DefaultProjectNameConstant = "my-lynx-app"

	platformsRequiredMessageConstant = "Please select at least one platform"
)

// DefaultPlatforms are preselected when the user is asked for platforms.
var DefaultPlatforms = []shared.PlatformTag{shared.PlatformIOS, shared.PlatformAndroid}

// Request carries values already supplied on the command line; empty values are asked for.
type Request struct {
	ProjectName string
	Platforms   []shared.PlatformTag
}

// Answers holds the gathered input.
type Answers struct {
	ProjectName string
	Platforms   []shared.PlatformTag
}

// Gatherer completes a Request. A user abort yields an error matching errors.ErrInputCancelled.
type Gatherer interface {
	Gather(executionContext context.Context, request Request) (Answers, error)
}

// DefaultsGatherer never prompts: missing values fall back to the defaults.
type DefaultsGatherer struct {
	ProjectName string
	Platforms   []shared.PlatformTag
}

// Gather fills missing values with defaults and validates the name.
func (gatherer DefaultsGatherer) Gather(_ context.Context, request Request) (Answers, error) {
	answers := Answers{ProjectName: strings.TrimSpace(request.ProjectName), Platforms: request.Platforms}
	if len(answers.ProjectName) == 0 {
		answers.ProjectName = gatherer.ProjectName
		if len(answers.ProjectName) == 0 {
			answers.ProjectName = DefaultProjectNameConstant
		}
	}
	if len(answers.Platforms) == 0 {
		answers.Platforms = gatherer.Platforms
		if len(answers.Platforms) == 0 {
			answers.Platforms = DefaultPlatforms
		}
	}
	if validationError := shared.ValidateProjectName(answers.ProjectName); validationError != nil {
		return Answers{}, validationError
	}
	return answers, nil
}

func cancelled() error {
	return scaffolderrors.Wrap(scaffolderrors.OperationInputGather, "", scaffolderrors.ErrInputCancelled, nil)
}

func platformLabels() []string {
	definitions := platforms.Definitions()
	labels := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		labels = append(labels, definition.DisplayName)
	}
	return labels
}

func labelsOf(tags []shared.PlatformTag) []string {
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		if definition, found := platforms.Lookup(tag); found {
			labels = append(labels, definition.DisplayName)
		}
	}
	return labels
}

func tagsOfLabels(labels []string) []shared.PlatformTag {
	tags := make([]shared.PlatformTag, 0, len(labels))
	for _, label := range labels {
		for _, definition := range platforms.Definitions() {
			if definition.DisplayName == label {
				tags = append(tags, definition.Tag)
			}
		}
	}
	return tags
}
