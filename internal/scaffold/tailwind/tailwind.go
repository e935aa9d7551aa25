// Package tailwind configures a scaffolded project for Tailwind CSS with the Lynx preset.
package tailwind

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	packageManifestFileNameConstant = "package.json"
	devDependenciesKeyConstant      = "devDependencies"
	assetsRootConstant              = "assets"
	indentConstant                  = "  "
	prettyWidthConstant             = 80

	invalidManifestMessageConstant = "package.json is not valid JSON"
	fileWrittenMessageConstant     = "tailwind file written"
	dependencyAddedMessageConstant = "tailwind dependency added"
	dependencyDetailKeyConstant    = "dependency"
)

const (
	directoryPermissionsConstant os.FileMode = 0o755
	filePermissionsConstant      os.FileMode = 0o644
)

//go:embed assets
var assets embed.FS

// Dependency is a devDependency added to package.json.
type Dependency struct {
	Name    string
	Version string
}

var devDependencies = []Dependency{
	{Name: "tailwindcss", Version: "^3"},
	{Name: "@lynx-js/tailwind-preset", Version: "latest"},
}

var pathEscaper = strings.NewReplacer(
	".", `\.`,
	"*", `\*`,
	"?", `\?`,
	"@", `\@`,
	"#", `\#`,
	"|", `\|`,
)

// DevDependencies returns the packages the setup adds.
func DevDependencies() []Dependency {
	return append([]Dependency(nil), devDependencies...)
}

// Dependencies supplies collaborators for the Configurator.
type Dependencies struct {
	FileSystem afero.Fs
	Reporter   shared.Reporter
}

// Result lists what the setup changed, relative to the project root.
type Result struct {
	AddedDependencies []string
	WrittenFiles      []string
}

// Configurator applies Tailwind configuration to a project.
type Configurator struct {
	fileSystem afero.Fs
	reporter   shared.Reporter
}

// NewConfigurator constructs a Configurator, defaulting to the OS filesystem.
func NewConfigurator(dependencies Dependencies) *Configurator {
	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Configurator{fileSystem: fileSystem, reporter: shared.ReporterOrNop(dependencies.Reporter)}
}

// Setup adds the Tailwind devDependencies to package.json, keeping existing keys in place, and
// writes the PostCSS, Tailwind and stylesheet files, replacing the template's App.css and App.tsx.
func (configurator *Configurator) Setup(projectRoot string) (Result, error) {
	result := Result{}

	addedDependencies, manifestError := configurator.updatePackageManifest(filepath.Join(projectRoot, packageManifestFileNameConstant))
	if manifestError != nil {
		return result, manifestError
	}
	result.AddedDependencies = addedDependencies

	walkError := fs.WalkDir(assets, assetsRootConstant, func(assetPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		relativePath := strings.TrimPrefix(assetPath, assetsRootConstant+"/")
		content, readError := assets.ReadFile(assetPath)
		if readError != nil {
			return readError
		}
		targetPath := filepath.Join(projectRoot, filepath.FromSlash(relativePath))
		if makeError := configurator.fileSystem.MkdirAll(filepath.Dir(targetPath), directoryPermissionsConstant); makeError != nil {
			return makeError
		}
		if writeError := afero.WriteFile(configurator.fileSystem, targetPath, content, filePermissionsConstant); writeError != nil {
			return writeError
		}
		result.WrittenFiles = append(result.WrittenFiles, relativePath)
		configurator.reporter.Report(shared.Event{
			Level:   shared.EventLevelDebug,
			Code:    shared.EventCodeFileRewritten,
			Path:    targetPath,
			Message: fileWrittenMessageConstant,
		})
		return nil
	})
	if walkError != nil {
		return result, scaffolderrors.Wrap(scaffolderrors.OperationTailwindSetup, projectRoot, scaffolderrors.ErrTailwindSetupFailed, walkError)
	}

	return result, nil
}

func (configurator *Configurator) updatePackageManifest(manifestPath string) ([]string, error) {
	content, readError := afero.ReadFile(configurator.fileSystem, manifestPath)
	if readError != nil {
		return nil, scaffolderrors.Wrap(scaffolderrors.OperationTailwindSetup, manifestPath, scaffolderrors.ErrTailwindSetupFailed, readError)
	}
	if !gjson.ValidBytes(content) {
		return nil, scaffolderrors.Wrap(scaffolderrors.OperationTailwindSetup, manifestPath, scaffolderrors.ErrTailwindSetupFailed, errors.New(invalidManifestMessageConstant))
	}

	info, statError := configurator.fileSystem.Stat(manifestPath)
	if statError != nil {
		return nil, scaffolderrors.Wrap(scaffolderrors.OperationTailwindSetup, manifestPath, scaffolderrors.ErrTailwindSetupFailed, statError)
	}

	added := make([]string, 0, len(devDependencies))
	updated := content
	for _, dependency := range devDependencies {
		dependencyPath := devDependenciesKeyConstant + "." + pathEscaper.Replace(dependency.Name)
		var setError error
		updated, setError = sjson.SetBytes(updated, dependencyPath, dependency.Version)
		if setError != nil {
			return nil, scaffolderrors.Wrap(scaffolderrors.OperationTailwindSetup, manifestPath, scaffolderrors.ErrTailwindSetupFailed, setError)
		}
		added = append(added, dependency.Name)
	}

	formatted := pretty.PrettyOptions(updated, &pretty.Options{Width: prettyWidthConstant, Indent: indentConstant})
	if writeError := afero.WriteFile(configurator.fileSystem, manifestPath, formatted, info.Mode().Perm()); writeError != nil {
		return nil, scaffolderrors.Wrap(scaffolderrors.OperationTailwindSetup, manifestPath, scaffolderrors.ErrTailwindSetupFailed, writeError)
	}

	for _, dependencyName := range added {
		configurator.reporter.Report(shared.Event{
			Level:   shared.EventLevelDebug,
			Code:    shared.EventCodeFileRewritten,
			Path:    manifestPath,
			Message: dependencyAddedMessageConstant,
			Details: map[string]string{dependencyDetailKeyConstant: dependencyName},
		})
	}
	return added, nil
}
