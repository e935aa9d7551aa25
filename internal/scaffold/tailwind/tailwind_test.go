package tailwind_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/tailwind"
)

const (
	projectRootConstant     = "/projects/my-lynx-app"
	packageManifestConstant = `{
  "name": "my-lynx-app",
  "version": "0.1.0",
  "scripts": {"dev": "rspeedy dev"},
  "devDependencies": {"typescript": "~5.8.3"}
}
`
)

func seedProject(testInstance *testing.T, manifestContent string) afero.Fs {
	testInstance.Helper()
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, fileSystem.MkdirAll(filepath.Join(projectRootConstant, "src"), 0o755))
	require.NoError(testInstance, afero.WriteFile(fileSystem, filepath.Join(projectRootConstant, "package.json"), []byte(manifestContent), 0o644))
	require.NoError(testInstance, afero.WriteFile(fileSystem, filepath.Join(projectRootConstant, "src", "App.css"), []byte(".App {}"), 0o644))
	return fileSystem
}

func TestSetupAddsDevDependenciesAndKeepsExistingKeys(t *testing.T) {
	t.Parallel()

	fileSystem := seedProject(t, packageManifestConstant)
	configurator := tailwind.NewConfigurator(tailwind.Dependencies{FileSystem: fileSystem})

	result, setupError := configurator.Setup(projectRootConstant)
	require.NoError(t, setupError)
	require.Equal(t, []string{"tailwindcss", "@lynx-js/tailwind-preset"}, result.AddedDependencies)

	content, readError := afero.ReadFile(fileSystem, filepath.Join(projectRootConstant, "package.json"))
	require.NoError(t, readError)
	devDependencies := gjson.GetBytes(content, "devDependencies")
	require.Equal(t, "~5.8.3", devDependencies.Get("typescript").String())
	require.Equal(t, "^3", devDependencies.Get("tailwindcss").String())
	require.Equal(t, "latest", devDependencies.Map()["@lynx-js/tailwind-preset"].String())
	require.Equal(t, "my-lynx-app", gjson.GetBytes(content, "name").String())
	require.Less(t, strings.Index(string(content), `"name"`), strings.Index(string(content), `"devDependencies"`))
}

func TestSetupWritesConfigurationFiles(t *testing.T) {
	t.Parallel()

	fileSystem := seedProject(t, packageManifestConstant)
	configurator := tailwind.NewConfigurator(tailwind.Dependencies{FileSystem: fileSystem})

	result, setupError := configurator.Setup(projectRootConstant)
	require.NoError(t, setupError)
	require.ElementsMatch(t, []string{"postcss.config.js", "tailwind.config.ts", "src/App.css", "src/App.tsx"}, result.WrittenFiles)

	stylesheet, readError := afero.ReadFile(fileSystem, filepath.Join(projectRootConstant, "src", "App.css"))
	require.NoError(t, readError)
	require.True(t, strings.HasPrefix(string(stylesheet), "@tailwind base;"))

	configuration, configurationError := afero.ReadFile(fileSystem, filepath.Join(projectRootConstant, "tailwind.config.ts"))
	require.NoError(t, configurationError)
	require.Contains(t, string(configuration), "@lynx-js/tailwind-preset")
}

func TestSetupIsRepeatable(t *testing.T) {
	t.Parallel()

	fileSystem := seedProject(t, packageManifestConstant)
	configurator := tailwind.NewConfigurator(tailwind.Dependencies{FileSystem: fileSystem})

	_, firstError := configurator.Setup(projectRootConstant)
	require.NoError(t, firstError)
	first, _ := afero.ReadFile(fileSystem, filepath.Join(projectRootConstant, "package.json"))

	_, secondError := configurator.Setup(projectRootConstant)
	require.NoError(t, secondError)
	second, _ := afero.ReadFile(fileSystem, filepath.Join(projectRootConstant, "package.json"))
	require.Equal(t, string(first), string(second))
}

func TestSetupRejectsInvalidPackageManifest(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		setup func(testInstance *testing.T) afero.Fs
	}{
		{
			name: "invalid_json",
			setup: func(testInstance *testing.T) afero.Fs {
				return seedProject(testInstance, "{\"name\": ")
			},
		},
		{
			name: "missing_manifest",
			setup: func(testInstance *testing.T) afero.Fs {
				return afero.NewMemMapFs()
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testInstance *testing.T) {
			testInstance.Parallel()

			configurator := tailwind.NewConfigurator(tailwind.Dependencies{FileSystem: testCase.setup(testInstance)})
			_, setupError := configurator.Setup(projectRootConstant)
			require.Error(testInstance, setupError)
			require.True(testInstance, errors.Is(setupError, scaffolderrors.ErrTailwindSetupFailed))
		})
	}
}
