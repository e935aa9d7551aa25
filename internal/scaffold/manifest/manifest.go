// Package manifest describes the placeholders and layout conventions of a template directory.
package manifest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	scaffolderrors "github.com/tyemirov/create-lynx-app/internal/scaffold/errors"
)

const (
	// FileNameConstant names the optional manifest at the template root. It is never copied into projects.
	FileNameConstant = ".template.yaml"

	defaultPlaceholderConstant        = "HelloWorld"
	defaultPackagePlaceholderConstant = "helloworld"
	defaultPackageParentConstant      = "com"
	defaultLegacyNamespaceConstant    = "com.lynx.kotlinemptyproject"

	placeholderRequiredMessageConstant        = "manifest placeholder must not be empty"
	packagePlaceholderRequiredMessageConstant = "manifest package_placeholder must not be empty"
	packageParentRequiredMessageConstant      = "manifest package_parent must not be empty"
)

// Manifest captures the template conventions consumed by the scaffolding stages.
type Manifest struct {
	Placeholder                 string   `yaml:"placeholder"`
	PackagePlaceholder          string   `yaml:"package_placeholder"`
	LegacyNamespaces            []string `yaml:"legacy_namespaces"`
	ProtectedFileNames          []string `yaml:"protected_file_names"`
	ProtectedFilePrefixes       []string `yaml:"protected_file_prefixes"`
	PackageSourceRoots          []string `yaml:"package_source_roots"`
	PackageParent               string   `yaml:"package_parent"`
	PackagePlaceholderLocations []string `yaml:"package_placeholder_locations"`
	ExcludedComponents          []string `yaml:"excluded_components"`
	ExcludedPrefixes            []string `yaml:"excluded_prefixes"`
	VerificationFiles           []string `yaml:"verification_files"`
	ExecutableFiles             []string `yaml:"executable_files"`
}

// Default returns the conventions of the bundled Lynx template.
func Default() Manifest {
	return Manifest{
		Placeholder:        defaultPlaceholderConstant,
		PackagePlaceholder: defaultPackagePlaceholderConstant,
		LegacyNamespaces:   []string{defaultLegacyNamespaceConstant},
		ProtectedFileNames: []string{
			"build.gradle.kts",
			"settings.gradle.kts",
			"gradle.properties",
		},
		ProtectedFilePrefixes: []string{"gradlew"},
		PackageSourceRoots: []string{
			"android/app/src/main/java",
			"android/app/src/test/java",
			"android/app/src/androidTest/java",
		},
		PackageParent: defaultPackageParentConstant,
		PackagePlaceholderLocations: []string{
			defaultPackagePlaceholderConstant,
			"lynx/" + defaultPackagePlaceholderConstant,
		},
		ExcludedComponents: []string{"node_modules", "dist", ".git", "xcuserdata"},
		ExcludedPrefixes: []string{
			"android/app/build",
			"android/.gradle",
		},
		VerificationFiles: []string{
			"android/build.gradle.kts",
			"android/app/build.gradle.kts",
			"android/settings.gradle.kts",
		},
		ExecutableFiles: []string{"android/gradlew"},
	}
}

// Load reads the manifest from the template root, layering it over Default. A missing manifest yields Default.
func Load(fileSystem afero.Fs, templateDirectory string) (Manifest, error) {
	manifestPath := filepath.Join(templateDirectory, FileNameConstant)
	content, readError := afero.ReadFile(fileSystem, manifestPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Default(), nil
		}
		return Manifest{}, scaffolderrors.Wrap(scaffolderrors.OperationManifestLoad, manifestPath, scaffolderrors.ErrManifestInvalid, readError)
	}
	return Parse(manifestPath, content)
}

// Parse decodes manifest content over Default and validates the result.
func Parse(source string, content []byte) (Manifest, error) {
	parsed := Default()
	if decodeError := yaml.Unmarshal(content, &parsed); decodeError != nil {
		return Manifest{}, scaffolderrors.Wrap(scaffolderrors.OperationManifestLoad, source, scaffolderrors.ErrManifestInvalid, decodeError)
	}
	if validationError := parsed.Validate(); validationError != nil {
		return Manifest{}, scaffolderrors.Wrap(scaffolderrors.OperationManifestLoad, source, scaffolderrors.ErrManifestInvalid, validationError)
	}
	return parsed, nil
}

// Validate ensures placeholders and the package parent are present.
func (manifest Manifest) Validate() error {
	switch {
	case len(strings.TrimSpace(manifest.Placeholder)) == 0:
		return errors.New(placeholderRequiredMessageConstant)
	case len(strings.TrimSpace(manifest.PackagePlaceholder)) == 0:
		return errors.New(packagePlaceholderRequiredMessageConstant)
	case len(strings.TrimSpace(manifest.PackageParent)) == 0:
		return errors.New(packageParentRequiredMessageConstant)
	default:
		return nil
	}
}

// IsProtected reports whether a basename must keep its exact name.
func (manifest Manifest) IsProtected(baseName string) bool {
	for _, protectedName := range manifest.ProtectedFileNames {
		if baseName == protectedName {
			return true
		}
	}
	for _, protectedPrefix := range manifest.ProtectedFilePrefixes {
		if len(protectedPrefix) > 0 && strings.HasPrefix(baseName, protectedPrefix) {
			return true
		}
	}
	return false
}

// IsExecutable reports whether a slash-separated template-relative path is copied with execute permission.
func (manifest Manifest) IsExecutable(relativePath string) bool {
	normalizedPath := filepath.ToSlash(relativePath)
	for _, executablePath := range manifest.ExecutableFiles {
		if normalizedPath == executablePath {
			return true
		}
	}
	return false
}

// IsExcluded reports whether a slash-separated template-relative path is a build artifact that must not be copied.
func (manifest Manifest) IsExcluded(relativePath string) bool {
	normalizedPath := filepath.ToSlash(relativePath)
	if normalizedPath == FileNameConstant {
		return true
	}
	for _, component := range strings.Split(normalizedPath, "/") {
		for _, excludedComponent := range manifest.ExcludedComponents {
			if component == excludedComponent {
				return true
			}
		}
	}
	for _, excludedPrefix := range manifest.ExcludedPrefixes {
		trimmedPrefix := strings.TrimSuffix(excludedPrefix, "/")
		if normalizedPath == trimmedPrefix || strings.HasPrefix(normalizedPath, trimmedPrefix+"/") {
			return true
		}
	}
	return false
}
