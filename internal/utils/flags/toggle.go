package flags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTypeNameConstant        = "bool"
	toggleNoOptionDefaultConstant = "true"
	toggleParseErrorTemplate      = "invalid toggle value %q (use yes/no, on/off, true/false)"
	choiceUsageTemplate           = "%s (one of: %s; default %s)"
	choiceSeparatorConstant       = ", "
	longFlagPrefixConstant        = "--"
)

type toggleValue struct {
	target *bool
}

func (value *toggleValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Set(raw string) error {
	parsed, parseError := parseToggleValue(raw)
	if parseError != nil {
		return parseError
	}
	*value.target = parsed
	return nil
}

func (value *toggleValue) Type() string {
	return toggleTypeNameConstant
}

// IsBoolFlag lets the flag appear without a value.
func (value *toggleValue) IsBoolFlag() bool {
	return true
}

// AddToggleFlag registers a boolean flag that also accepts yes/no and on/off spellings. A nil target
// allocates storage owned by the flag.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 || flagSet.Lookup(name) != nil {
		return
	}
	if target == nil {
		target = new(bool)
	}
	*target = defaultValue
	flag := flagSet.VarPF(&toggleValue{target: target}, name, shorthand, usage)
	flag.NoOptDefVal = toggleNoOptionDefaultConstant
}

// NormalizeToggleArguments joins "--flag value" pairs into "--flag=value" for toggle flags of the set, so a
// following yes/no literal is not taken as a positional argument.
func NormalizeToggleArguments(flagSet *pflag.FlagSet, arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefixConstant {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if !strings.HasPrefix(current, longFlagPrefixConstant) || strings.Contains(current, "=") || index+1 >= len(arguments) {
			normalized = append(normalized, current)
			continue
		}
		if !isToggleFlag(flagSet, strings.TrimPrefix(current, longFlagPrefixConstant)) {
			normalized = append(normalized, current)
			continue
		}
		if _, parseError := parseToggleValue(arguments[index+1]); parseError != nil {
			normalized = append(normalized, current)
			continue
		}
		normalized = append(normalized, current+"="+arguments[index+1])
		index++
	}
	return normalized
}

// FormatChoiceUsage renders usage text listing the accepted choices and the default.
func FormatChoiceUsage(defaultValue string, choices []string, usage string) string {
	return fmt.Sprintf(choiceUsageTemplate, usage, strings.Join(choices, choiceSeparatorConstant), defaultValue)
}

func isToggleFlag(flagSet *pflag.FlagSet, name string) bool {
	if flagSet == nil {
		return false
	}
	flag := flagSet.Lookup(name)
	if flag == nil {
		return false
	}
	_, isToggle := flag.Value.(*toggleValue)
	return isToggle
}

func parseToggleValue(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf(toggleParseErrorTemplate, raw)
	}
}
