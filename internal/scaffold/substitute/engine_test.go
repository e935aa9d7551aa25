package substitute_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/manifest"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/naming"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/substitute"
)

const (
	projectRootConstant    = "/project"
	projectNameConstant    = "my-lynx-app"
	filePermissionConstant = 0o644
)

func writeFile(testInstance *testing.T, fileSystem afero.Fs, relativePath string, content []byte) string {
	testInstance.Helper()
	absolutePath := filepath.Join(projectRootConstant, relativePath)
	require.NoError(testInstance, fileSystem.MkdirAll(filepath.Dir(absolutePath), 0o755))
	require.NoError(testInstance, afero.WriteFile(fileSystem, absolutePath, content, filePermissionConstant))
	return absolutePath
}

func readFile(testInstance *testing.T, fileSystem afero.Fs, absolutePath string) string {
	testInstance.Helper()
	content, readError := afero.ReadFile(fileSystem, absolutePath)
	require.NoError(testInstance, readError)
	return string(content)
}

func TestDefaultRulesRewriteTemplateIdioms(t *testing.T) {
	t.Parallel()

	rules := substitute.DefaultRules(naming.Derive(projectNameConstant), manifest.Default())

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "manifest_name_lowercase", input: `{"name": "helloworld", "version": "1.0.0"}`, expected: `{"name": "my-lynx-app", "version": "1.0.0"}`},
		{name: "manifest_name_pascal", input: `"name":"HelloWorld"`, expected: `"name":"my-lynx-app"`},
		{name: "kotlin_package", input: "package com.helloworld", expected: "package com.mylynxapp"},
		{name: "legacy_namespace", input: `namespace = "com.lynx.kotlinemptyproject"`, expected: `namespace = "com.mylynxapp"`},
		{name: "theme_reference", input: `android:theme="@style/Theme.HelloWorld"`, expected: `android:theme="@style/Theme.MyLynxApp"`},
		{name: "example_namespace", input: "com.example.HelloWorld.Tests", expected: "com.example.MyLynxApp.Tests"},
		{name: "bare_placeholder", input: "class HelloWorldActivity", expected: "class MyLynxAppActivity"},
		{name: "quoted_project_name_outside_manifest", input: `rootProject.name = "HelloWorld"`, expected: `rootProject.name = "MyLynxApp"`},
		{name: "lowercase_placeholder", input: "helloworld://open", expected: "mylynxapp://open"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testInstance *testing.T) {
			testInstance.Parallel()

			updated, dirty := substitute.ApplyRules(testCase.input, rules)
			require.True(testInstance, dirty)
			require.Equal(testInstance, testCase.expected, updated)
		})
	}
}

func TestApplyRulesFeedsEarlierOutputToLaterRules(t *testing.T) {
	t.Parallel()

	rules := []shared.SubstitutionRule{
		shared.MustSubstitutionRule("alpha", "beta"),
		shared.MustSubstitutionRule("beta", "gamma"),
	}

	updated, dirty := substitute.ApplyRules("alpha", rules)
	require.True(t, dirty)
	require.Equal(t, "gamma", updated)

	unchanged, unchangedDirty := substitute.ApplyRules("delta", rules)
	require.False(t, unchangedDirty)
	require.Equal(t, "delta", unchanged)
}

func TestDefaultRulesRewriteEachOccurrenceOnce(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		projectName string
		input       string
		expected    string
	}{
		{name: "package_line_with_placeholder_prefix", projectName: "helloworld2", input: "package com.helloworld", expected: "package com.helloworld2"},
		{name: "manifest_name_with_placeholder_prefix", projectName: "helloworld2", input: `"name": "HelloWorld"`, expected: `"name": "helloworld2"`},
		{name: "legacy_namespace_with_placeholder_prefix", projectName: "helloworld2", input: `namespace = "com.lynx.kotlinemptyproject"`, expected: `namespace = "com.helloworld2"`},
		{name: "bare_placeholders_with_placeholder_prefix", projectName: "helloworld2", input: "class HelloWorldActivity // helloworld", expected: "class Helloworld2Activity // helloworld2"},
		{name: "example_namespace_with_pascal_placeholder", projectName: "HelloWorldX", input: "com.example.HelloWorld.Tests", expected: "com.example.HelloWorldX.Tests"},
		{name: "theme_with_pascal_placeholder", projectName: "HelloWorldX", input: `@style/Theme.HelloWorld`, expected: `@style/Theme.HelloWorldX`},
		{name: "name_equal_to_placeholder", projectName: "hello-world", input: "package com.helloworld\nclass HelloWorld", expected: "package com.helloworld\nclass HelloWorld"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testInstance *testing.T) {
			testInstance.Parallel()

			rules := substitute.DefaultRules(naming.Derive(testCase.projectName), manifest.Default())
			updated, dirty := substitute.ApplyRules(testCase.input, rules)
			require.True(testInstance, dirty)
			require.Equal(testInstance, testCase.expected, updated)
		})
	}
}

func TestSubstituteContentRewritesOnlyMatchingTextFiles(t *testing.T) {
	t.Parallel()

	fileSystem := afero.NewMemMapFs()
	matchingPath := writeFile(t, fileSystem, "src/App.tsx", []byte("export const HelloWorld = 1\n"))
	untouchedPath := writeFile(t, fileSystem, "README.md", []byte("nothing to replace\n"))
	pngContent := []byte("\x89PNG\r\n\x1a\nHelloWorld")
	pngPath := writeFile(t, fileSystem, "assets/HelloWorld.png", pngContent)
	invalidContent := []byte{0xff, 0xfe, 'H', 'e', 'l', 'l', 'o', 'W', 'o', 'r', 'l', 'd'}
	invalidPath := writeFile(t, fileSystem, "data/blob.txt", invalidContent)

	collector := &shared.EventCollector{}
	engine := substitute.NewEngine(substitute.Dependencies{FileSystem: fileSystem, Reporter: collector})
	rules := substitute.DefaultRules(naming.Derive(projectNameConstant), manifest.Default())

	result, substituteError := engine.SubstituteContent(context.Background(), projectRootConstant, rules)
	require.NoError(t, substituteError)

	require.Equal(t, "export const MyLynxApp = 1\n", readFile(t, fileSystem, matchingPath))
	require.Equal(t, "nothing to replace\n", readFile(t, fileSystem, untouchedPath))
	require.Equal(t, string(pngContent), readFile(t, fileSystem, pngPath))
	require.Equal(t, string(invalidContent), readFile(t, fileSystem, invalidPath))

	require.Equal(t, substitute.Result{Candidates: 2, Rewritten: 1, Skipped: 1}, result)
	rewrittenEvents := collector.EventsWithCode(shared.EventCodeFileRewritten)
	require.Len(t, rewrittenEvents, 1)
	require.Equal(t, matchingPath, rewrittenEvents[0].Path)
}

func TestSubstituteContentPreservesFileMode(t *testing.T) {
	t.Parallel()

	rootDirectory := t.TempDir()
	scriptPath := filepath.Join(rootDirectory, "run-helloworld.sh")
	require.NoError(t, os.WriteFile(scriptPath, []byte("#!/bin/sh\necho helloworld\n"), 0o755))

	engine := substitute.NewEngine(substitute.Dependencies{FileSystem: afero.NewOsFs()})
	_, substituteError := engine.SubstituteContent(context.Background(), rootDirectory, substitute.DefaultRules(naming.Derive(projectNameConstant), manifest.Default()))
	require.NoError(t, substituteError)

	content, readError := os.ReadFile(scriptPath)
	require.NoError(t, readError)
	require.Equal(t, "#!/bin/sh\necho mylynxapp\n", string(content))

	info, statError := os.Stat(scriptPath)
	require.NoError(t, statError)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestSubstituteContentProcessesManyFilesConcurrently(t *testing.T) {
	t.Parallel()

	fileSystem := afero.NewMemMapFs()
	const fileCount = 64
	paths := make([]string, 0, fileCount)
	for index := 0; index < fileCount; index++ {
		paths = append(paths, writeFile(t, fileSystem, fmt.Sprintf("module%02d/File%02d.kt", index%8, index), []byte("package com.helloworld\n")))
	}

	engine := substitute.NewEngine(substitute.Dependencies{FileSystem: fileSystem, Concurrency: 4})
	result, substituteError := engine.SubstituteContent(context.Background(), projectRootConstant, substitute.DefaultRules(naming.Derive(projectNameConstant), manifest.Default()))
	require.NoError(t, substituteError)
	require.Equal(t, fileCount, result.Rewritten)

	for _, path := range paths {
		require.Equal(t, "package com.mylynxapp\n", readFile(t, fileSystem, path))
	}
}

func TestSubstituteContentHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	fileSystem := afero.NewMemMapFs()
	writeFile(t, fileSystem, "a.txt", []byte("HelloWorld"))

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	engine := substitute.NewEngine(substitute.Dependencies{FileSystem: fileSystem})
	_, substituteError := engine.SubstituteContent(cancelledContext, projectRootConstant, substitute.DefaultRules(naming.Derive(projectNameConstant), manifest.Default()))
	require.ErrorIs(t, substituteError, context.Canceled)
}
