package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/platforms"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	nameQuestionTemplate      = "%s (%s): "
	platformsQuestionTemplate = "%s [%s] (%s): "
	listSeparatorConstant     = ", "
)

// LineGatherer asks questions line by line, for terminals without widget support and for piped input.
type LineGatherer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLineGatherer constructs a LineGatherer from the provided reader and writer.
func NewLineGatherer(input io.Reader, output io.Writer) *LineGatherer {
	if output == nil {
		output = io.Discard
	}
	return &LineGatherer{reader: bufio.NewReader(input), writer: output}
}

// Gather asks for missing values. An empty answer accepts the suggested default; end of input cancels.
func (gatherer *LineGatherer) Gather(executionContext context.Context, request Request) (Answers, error) {
	answers := Answers{ProjectName: strings.TrimSpace(request.ProjectName), Platforms: request.Platforms}

	for len(answers.ProjectName) == 0 {
		if contextError := executionContext.Err(); contextError != nil {
			return Answers{}, contextError
		}
		response, readError := gatherer.ask(fmt.Sprintf(nameQuestionTemplate, ProjectNameQuestionConstant, DefaultProjectNameConstant))
		if readError != nil {
			return Answers{}, readError
		}
		if len(response) == 0 {
			response = DefaultProjectNameConstant
		}
		if validationError := shared.ValidateProjectName(response); validationError != nil {
			if _, writeError := fmt.Fprintln(gatherer.writer, validationError.Error()); writeError != nil {
				return Answers{}, writeError
			}
			continue
		}
		answers.ProjectName = response
	}

	for len(answers.Platforms) == 0 {
		if contextError := executionContext.Err(); contextError != nil {
			return Answers{}, contextError
		}
		question := fmt.Sprintf(
			platformsQuestionTemplate,
			PlatformsQuestionConstant,
			joinTags(platforms.KnownTags()),
			joinTags(DefaultPlatforms),
		)
		response, readError := gatherer.ask(question)
		if readError != nil {
			return Answers{}, readError
		}
		if len(response) == 0 {
			answers.Platforms = append([]shared.PlatformTag(nil), DefaultPlatforms...)
			continue
		}
		parsed, parseError := platforms.ParseTags([]string{response})
		if parseError != nil {
			if _, writeError := fmt.Fprintln(gatherer.writer, parseError.Error()); writeError != nil {
				return Answers{}, writeError
			}
			continue
		}
		if len(parsed) == 0 {
			if _, writeError := fmt.Fprintln(gatherer.writer, platformsRequiredMessageConstant); writeError != nil {
				return Answers{}, writeError
			}
			continue
		}
		answers.Platforms = parsed
	}

	return answers, nil
}

func (gatherer *LineGatherer) ask(question string) (string, error) {
	if _, writeError := io.WriteString(gatherer.writer, question); writeError != nil {
		return "", writeError
	}
	response, readError := gatherer.reader.ReadString('\n')
	if readError != nil {
		if errors.Is(readError, io.EOF) && len(strings.TrimSpace(response)) == 0 {
			return "", cancelled()
		}
		if !errors.Is(readError, io.EOF) {
			return "", readError
		}
	}
	return strings.TrimSpace(response), nil
}

func joinTags(tags []shared.PlatformTag) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, string(tag))
	}
	return strings.Join(names, listSeparatorConstant)
}
