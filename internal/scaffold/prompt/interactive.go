package prompt

import (
	"context"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

// TextInput asks a free-text question. The boolean reports an interrupt.
type TextInput func(question string, defaultValue string) (string, bool, error)

// MultiSelect asks the user to pick among options. The boolean reports an interrupt.
type MultiSelect func(question string, options []string, defaults []string) ([]string, bool, error)

// InteractiveDependencies supplies collaborators for the InteractiveGatherer.
type InteractiveDependencies struct {
	Output      io.Writer
	TextInput   TextInput
	MultiSelect MultiSelect
}

// InteractiveGatherer asks missing questions with terminal widgets.
type InteractiveGatherer struct {
	output      io.Writer
	textInput   TextInput
	multiSelect MultiSelect
}

// NewInteractiveGatherer constructs an InteractiveGatherer backed by pterm widgets unless overridden.
func NewInteractiveGatherer(dependencies InteractiveDependencies) *InteractiveGatherer {
	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}
	textInput := dependencies.TextInput
	if textInput == nil {
		textInput = ptermTextInput
	}
	multiSelect := dependencies.MultiSelect
	if multiSelect == nil {
		multiSelect = ptermMultiSelect
	}
	return &InteractiveGatherer{output: output, textInput: textInput, multiSelect: multiSelect}
}

// Gather asks for the project name and platforms when the request lacks them, repeating a question
// until the answer is valid.
func (gatherer *InteractiveGatherer) Gather(executionContext context.Context, request Request) (Answers, error) {
	answers := Answers{ProjectName: strings.TrimSpace(request.ProjectName), Platforms: request.Platforms}

	for len(answers.ProjectName) == 0 {
		if contextError := executionContext.Err(); contextError != nil {
			return Answers{}, contextError
		}
		name, interrupted, inputError := gatherer.textInput(ProjectNameQuestionConstant, DefaultProjectNameConstant)
		if inputError != nil {
			return Answers{}, inputError
		}
		if interrupted {
			return Answers{}, cancelled()
		}
		if validationError := shared.ValidateProjectName(name); validationError != nil {
			gatherer.warn(validationError.Error())
			continue
		}
		answers.ProjectName = strings.TrimSpace(name)
	}

	for len(answers.Platforms) == 0 {
		if contextError := executionContext.Err(); contextError != nil {
			return Answers{}, contextError
		}
		selected, interrupted, selectError := gatherer.multiSelect(PlatformsQuestionConstant, platformLabels(), labelsOf(DefaultPlatforms))
		if selectError != nil {
			return Answers{}, selectError
		}
		if interrupted {
			return Answers{}, cancelled()
		}
		answers.Platforms = tagsOfLabels(selected)
		if len(answers.Platforms) == 0 {
			gatherer.warn(platformsRequiredMessageConstant)
		}
	}

	return answers, nil
}

func (gatherer *InteractiveGatherer) warn(message string) {
	pterm.Warning.WithWriter(gatherer.output).Println(message)
}

func ptermTextInput(question string, defaultValue string) (string, bool, error) {
	interrupted := false
	answer, showError := pterm.DefaultInteractiveTextInput.
		WithDefaultText(question).
		WithDefaultValue(defaultValue).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show()
	return answer, interrupted, showError
}

func ptermMultiSelect(question string, options []string, defaults []string) ([]string, bool, error) {
	interrupted := false
	selected, showError := pterm.DefaultInteractiveMultiselect.
		WithDefaultText(question).
		WithOptions(options).
		WithDefaultOptions(defaults).
		WithFilter(false).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show()
	return selected, interrupted, showError
}
