package flags

import "github.com/spf13/cobra"

const (
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Skip prompts and use defaults for anything not given on the command line"
	// TailwindFlagName exposes the Tailwind CSS toggle flag name.
	TailwindFlagName = "tailwind"
	// TailwindFlagUsage describes the Tailwind CSS toggle flag purpose.
	TailwindFlagUsage = "Set up Tailwind CSS in the generated project"
	// PlatformsFlagName exposes the platform selection flag name.
	PlatformsFlagName = "platforms"
	// PlatformsFlagShorthand provides the shorthand for the platform selection flag.
	PlatformsFlagShorthand = "p"
	// PlatformsFlagUsage describes the platform selection flag purpose.
	PlatformsFlagUsage = "Platforms to start with (repeatable or comma-separated)"
	// DirectoryFlagName exposes the target directory flag name.
	DirectoryFlagName = "directory"
	// DirectoryFlagShorthand provides the shorthand for the target directory flag.
	DirectoryFlagShorthand = "d"
	// DirectoryFlagUsage describes the target directory flag purpose.
	DirectoryFlagUsage = "Directory the project folder is created in (defaults to the working directory)"
)

// ProjectFlagDefinition captures configuration for a project selection flag.
type ProjectFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// ProjectFlagDefinitions groups project selection flag definitions.
type ProjectFlagDefinitions struct {
	Platforms ProjectFlagDefinition
	Directory ProjectFlagDefinition
}

// ProjectFlagValues stores project selection flag values.
type ProjectFlagValues struct {
	Platforms []string
	Directory string
}

// BindProjectFlags attaches project selection flags to the provided command.
func BindProjectFlags(command *cobra.Command, defaults ProjectFlagValues, definitions ProjectFlagDefinitions) *ProjectFlagValues {
	values := ProjectFlagValues{Platforms: append([]string{}, defaults.Platforms...), Directory: defaults.Directory}
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if definitions.Platforms.Enabled && len(definitions.Platforms.Name) > 0 && flagSet.Lookup(definitions.Platforms.Name) == nil {
		flagSet.StringSliceVarP(&values.Platforms, definitions.Platforms.Name, definitions.Platforms.Shorthand, values.Platforms, definitions.Platforms.Usage)
	}
	if definitions.Directory.Enabled && len(definitions.Directory.Name) > 0 && flagSet.Lookup(definitions.Directory.Name) == nil {
		flagSet.StringVarP(&values.Directory, definitions.Directory.Name, definitions.Directory.Shorthand, values.Directory, definitions.Directory.Usage)
	}
	return &values
}
