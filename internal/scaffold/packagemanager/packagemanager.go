// Package packagemanager chooses the install and run commands suggested after scaffolding.
package packagemanager

import (
	"strings"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

// Name identifies a JavaScript package manager.
type Name string

// Supported package managers.
const (
	NPM  Name = "npm"
	Yarn Name = "yarn"
	PNPM Name = "pnpm"
	Bun  Name = "bun"
)

const (
	userAgentVariableConstant      = "npm_config_user_agent"
	executablePathVariableConstant = "npm_execpath"
	changeDirectoryPrefixConstant  = "cd "
)

var detectionOrder = []Name{Yarn, PNPM, Bun}

// Detect inspects the invoking package manager's environment variables. The user agent prefix wins
// over the executable path; npm is the fallback.
func Detect(environment shared.EnvironmentProvider) Name {
	if environment == nil {
		return NPM
	}
	if userAgent, found := environment.LookupEnvironment(userAgentVariableConstant); found {
		for _, candidate := range detectionOrder {
			if strings.HasPrefix(userAgent, string(candidate)) {
				return candidate
			}
		}
	}
	if executablePath, found := environment.LookupEnvironment(executablePathVariableConstant); found {
		for _, candidate := range detectionOrder {
			if strings.Contains(executablePath, string(candidate)) {
				return candidate
			}
		}
	}
	return NPM
}

// InstallCommand returns the dependency installation command.
func (name Name) InstallCommand() string {
	if name == Yarn {
		return string(Yarn)
	}
	return string(name) + " install"
}

// DevCommand returns the command starting the development server.
func (name Name) DevCommand() string {
	switch name {
	case Yarn:
		return "yarn dev"
	case NPM:
		return "npm run dev"
	default:
		return string(name) + " dev"
	}
}

// NextSteps lists the commands a user runs after the project named projectName is created.
func NextSteps(projectName string, name Name) []string {
	return []string{changeDirectoryPrefixConstant + projectName, name.InstallCommand(), name.DevCommand()}
}
