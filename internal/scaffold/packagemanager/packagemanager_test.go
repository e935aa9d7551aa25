package packagemanager_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/packagemanager"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		variables map[string]string
		expected  packagemanager.Name
	}{
		{name: "no_environment", variables: nil, expected: packagemanager.NPM},
		{name: "yarn_user_agent", variables: map[string]string{"npm_config_user_agent": "yarn/1.22.19 npm/? node/v20.11.0"}, expected: packagemanager.Yarn},
		{name: "pnpm_user_agent", variables: map[string]string{"npm_config_user_agent": "pnpm/9.1.0 npm/? node/v20.11.0"}, expected: packagemanager.PNPM},
		{name: "bun_user_agent", variables: map[string]string{"npm_config_user_agent": "bun/1.1.0"}, expected: packagemanager.Bun},
		{name: "npm_user_agent", variables: map[string]string{"npm_config_user_agent": "npm/10.2.4 node/v20.11.0"}, expected: packagemanager.NPM},
		{name: "executable_path_fallback", variables: map[string]string{"npm_execpath": "/usr/local/lib/node_modules/pnpm/bin/pnpm.cjs"}, expected: packagemanager.PNPM},
		{
			name: "user_agent_precedes_executable_path",
			variables: map[string]string{
				"npm_config_user_agent": "bun/1.1.0",
				"npm_execpath":          "/opt/yarn/bin/yarn.js",
			},
			expected: packagemanager.Bun,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testInstance *testing.T) {
			testInstance.Parallel()
			environment := shared.StaticEnvironment{Variables: testCase.variables}
			require.Equal(testInstance, testCase.expected, packagemanager.Detect(environment))
		})
	}
}

func TestNextSteps(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		manager  packagemanager.Name
		expected []string
	}{
		{name: "npm", manager: packagemanager.NPM, expected: []string{"cd my-lynx-app", "npm install", "npm run dev"}},
		{name: "yarn", manager: packagemanager.Yarn, expected: []string{"cd my-lynx-app", "yarn", "yarn dev"}},
		{name: "pnpm", manager: packagemanager.PNPM, expected: []string{"cd my-lynx-app", "pnpm install", "pnpm dev"}},
		{name: "bun", manager: packagemanager.Bun, expected: []string{"cd my-lynx-app", "bun install", "bun dev"}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testInstance *testing.T) {
			testInstance.Parallel()
			require.Equal(testInstance, testCase.expected, packagemanager.NextSteps("my-lynx-app", testCase.manager))
		})
	}
}
