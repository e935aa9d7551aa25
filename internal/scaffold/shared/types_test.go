package shared_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

func TestValidateProjectName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "kebab_name", input: "my-lynx-app"},
		{name: "underscore_name", input: "my_app_2"},
		{name: "rejects_empty", input: "", expectError: true},
		{name: "rejects_whitespace", input: "   ", expectError: true},
		{name: "rejects_space", input: "9Cool App!", expectError: true},
		{name: "rejects_slash", input: "nested/app", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			validationError := shared.ValidateProjectName(testCase.input)
			if testCase.expectError {
				require.Error(t, validationError)
				require.True(t, errors.Is(validationError, scaffolderrors.ErrProjectNameInvalid))
				return
			}
			require.NoError(t, validationError)
		})
	}
}

func TestNewProjectConfig(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()

	config, configError := shared.NewProjectConfig(
		"my-lynx-app",
		[]shared.PlatformTag{" Android ", shared.PlatformIOS, shared.PlatformAndroid},
		directory,
	)
	require.NoError(t, configError)
	require.Equal(t, "my-lynx-app", config.Name())
	require.Equal(t, []shared.PlatformTag{shared.PlatformAndroid, shared.PlatformIOS}, config.Platforms())
	require.True(t, config.Selects(shared.PlatformIOS))
	require.False(t, config.Selects(shared.PlatformHarmonyOS))
	require.Equal(t, filepath.Join(directory, "my-lynx-app"), config.TargetPath())

	platforms := config.Platforms()
	platforms[0] = shared.PlatformHarmonyOS
	require.Equal(t, shared.PlatformAndroid, config.Platforms()[0])
}

func TestNewProjectConfigRequiresPlatforms(t *testing.T) {
	t.Parallel()

	_, configError := shared.NewProjectConfig("app", []shared.PlatformTag{" "}, t.TempDir())
	require.Error(t, configError)
	require.True(t, errors.Is(configError, scaffolderrors.ErrPlatformsMissing))
}

func TestNewSubstitutionRule(t *testing.T) {
	t.Parallel()

	rule, ruleError := shared.NewSubstitutionRule(`Hello(World)`, "Bye$1")
	require.NoError(t, ruleError)
	require.Equal(t, "ByeWorld!", rule.Pattern.ReplaceAllString("HelloWorld!", rule.Replacement))

	_, invalidError := shared.NewSubstitutionRule(`(`, "")
	require.Error(t, invalidError)
}

func TestStaticEnvironment(t *testing.T) {
	t.Parallel()

	environment := shared.StaticEnvironment{Directory: "/work", Variables: map[string]string{"KEY": "value"}}

	directory, directoryError := environment.WorkingDirectory()
	require.NoError(t, directoryError)
	require.Equal(t, "/work", directory)

	value, found := environment.LookupEnvironment("KEY")
	require.True(t, found)
	require.Equal(t, "value", value)

	_, missing := environment.LookupEnvironment("MISSING")
	require.False(t, missing)
}
