// Package console renders the scaffolding banner, progress and closing messages.
package console

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

const (
	titlePrefixConstant    = "Create "
	titleBrandConstant     = "Lynx"
	titleSuffixConstant    = " App"
	gradientStartConstant  = "#ff6b9d"
	gradientEndConstant    = "#45b7d1"
	outroColorConstant     = "#45b7d1"
	hintColorConstant      = "245"
	outroMessageConstant   = "Happy hacking!"
	nextStepsLabelConstant = "Next steps:"
	cancelMessageConstant  = "Operation cancelled."
	stepIndentConstant     = "  "
)

// Progress receives stage messages while a project is created.
type Progress interface {
	Update(message string)
	Succeed(message string)
	Fail(message string)
}

// Console writes user-facing output.
type Console struct {
	output      io.Writer
	renderer    *lipgloss.Renderer
	interactive bool
}

// New constructs a Console. Interactive consoles animate progress; others print one line per stage.
func New(output io.Writer, interactive bool) *Console {
	if output == nil {
		output = io.Discard
	}
	return &Console{output: output, renderer: lipgloss.NewRenderer(output), interactive: interactive}
}

// Title renders the banner text.
func (console *Console) Title() string {
	bold := console.renderer.NewStyle().Bold(true)
	var brand strings.Builder
	runes := []rune(titleBrandConstant)
	for index, character := range runes {
		color := interpolateHexColor(gradientStartConstant, gradientEndConstant, index, len(runes))
		brand.WriteString(bold.Foreground(lipgloss.Color(color)).Render(string(character)))
	}
	return bold.Render(titlePrefixConstant) + brand.String() + bold.Render(titleSuffixConstant)
}

// Intro prints the banner.
func (console *Console) Intro() {
	fmt.Fprintln(console.output, console.Title())
}

// StartProgress begins reporting progress with an initial message.
func (console *Console) StartProgress(message string) Progress {
	if console.interactive {
		spinner, startError := pterm.DefaultSpinner.WithWriter(console.output).WithRemoveWhenDone(false).Start(message)
		if startError == nil {
			return spinnerProgress{spinner: spinner}
		}
	}
	fmt.Fprintln(console.output, message)
	return lineProgress{output: console.output}
}

// Outro prints the closing message and the commands to run next.
func (console *Console) Outro(nextSteps []string) {
	outroStyle := console.renderer.NewStyle().Foreground(lipgloss.Color(outroColorConstant))
	hintStyle := console.renderer.NewStyle().Foreground(lipgloss.Color(hintColorConstant))
	fmt.Fprintln(console.output, outroStyle.Render(outroMessageConstant))
	fmt.Fprintln(console.output, nextStepsLabelConstant)
	for _, step := range nextSteps {
		fmt.Fprintln(console.output, hintStyle.Render(stepIndentConstant+step))
	}
}

// Cancelled prints the cancellation notice.
func (console *Console) Cancelled() {
	fmt.Fprintln(console.output, cancelMessageConstant)
}

type spinnerProgress struct {
	spinner *pterm.SpinnerPrinter
}

func (progress spinnerProgress) Update(message string) {
	progress.spinner.UpdateText(message)
}

func (progress spinnerProgress) Succeed(message string) {
	progress.spinner.Success(message)
}

func (progress spinnerProgress) Fail(message string) {
	progress.spinner.Fail(message)
}

type lineProgress struct {
	output io.Writer
}

func (progress lineProgress) Update(message string) {
	fmt.Fprintln(progress.output, message)
}

func (progress lineProgress) Succeed(message string) {
	fmt.Fprintln(progress.output, message)
}

func (progress lineProgress) Fail(message string) {
	fmt.Fprintln(progress.output, message)
}

// NopProgress discards progress messages.
type NopProgress struct{}

// Update discards the message.
func (NopProgress) Update(string) {}

// Succeed discards the message.
func (NopProgress) Succeed(string) {}

// Fail discards the message.
func (NopProgress) Fail(string) {}

func interpolateHexColor(start string, end string, index int, count int) string {
	startRed, startGreen, startBlue := parseHexColor(start)
	endRed, endGreen, endBlue := parseHexColor(end)
	if count <= 1 {
		return start
	}
	ratio := float64(index) / float64(count-1)
	blend := func(from int, to int) int {
		return from + int(math.Round(float64(to-from)*ratio))
	}
	return fmt.Sprintf("#%02x%02x%02x", blend(startRed, endRed), blend(startGreen, endGreen), blend(startBlue, endBlue))
}

func parseHexColor(color string) (int, int, int) {
	var red, green, blue int
	if _, scanError := fmt.Sscanf(color, "#%02x%02x%02x", &red, &green, &blue); scanError != nil {
		return 0, 0, 0
	}
	return red, green, blue
}
