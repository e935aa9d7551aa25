package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/tyemirov/create-lynx-app/internal/utils/path"
)

const (
	testHomeDirectoryConstant    = "/home/lynx"
	testWorkingDirectoryConstant = "/workspace"
)

func TestDirectoryResolverResolve(testInstance *testing.T) {
	resolver := pathutils.NewDirectoryResolverWithHome(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	testCases := []struct {
		name             string
		raw              string
		workingDirectory string
		expected         string
		expectedError    error
	}{
		{name: "blank_uses_working_directory", raw: "  ", workingDirectory: testWorkingDirectoryConstant, expected: testWorkingDirectoryConstant},
		{name: "relative_is_anchored", raw: "apps/../mobile", workingDirectory: testWorkingDirectoryConstant, expected: filepath.Join(testWorkingDirectoryConstant, "mobile")},
		{name: "absolute_is_cleaned", raw: "/srv//projects/", workingDirectory: testWorkingDirectoryConstant, expected: "/srv/projects"},
		{name: "tilde_expands", raw: "~/Projects", workingDirectory: testWorkingDirectoryConstant, expected: filepath.Join(testHomeDirectoryConstant, "Projects")},
		{name: "bare_tilde", raw: "~", workingDirectory: "", expected: testHomeDirectoryConstant},
		{name: "relative_without_anchor", raw: "apps", workingDirectory: "", expectedError: pathutils.ErrWorkingDirectoryMissing},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolved, resolveError := resolver.Resolve(testCase.raw, testCase.workingDirectory)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, resolveError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expected, resolved)
		})
	}
}

func TestDirectoryResolverReportsHomeFailure(t *testing.T) {
	resolver := pathutils.NewDirectoryResolverWithHome(func() (string, error) {
		return "", errors.New("no home")
	})

	_, resolveError := resolver.Resolve("~/apps", testWorkingDirectoryConstant)
	require.Error(t, resolveError)
}
