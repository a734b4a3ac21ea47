package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devshell-sh/cli/internal/condition"
	"github.com/devshell-sh/cli/internal/constants"
)

// AppDataPath returns the directory under which we store all internal application data
func AppDataPath() (string, error) {
	if localPath, envSet := os.LookupEnv(constants.ConfigEnvVarName); envSet {
		return AppDataPathWithParent(localPath)
	}

	if condition.InTest() {
		localPath, err := appDataPathInTest()
		if err != nil {
			// panic as this is only happening in tests
			panic(err)
		}
		return AppDataPathWithParent(localPath)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Account for HOME dir not being set, eg. in docker envs
		localPath, err := os.MkdirTemp("", "cli-config")
		if err != nil {
			return "", fmt.Errorf("could not create temp dir: %w", err)
		}
		return AppDataPathWithParent(localPath)
	}

	return filepath.Join(configDir, constants.InternalConfigNamespace, constants.LibraryName), nil
}

var _appDataPathInTest string

func appDataPathInTest() (string, error) {
	if _appDataPathInTest != "" {
		return _appDataPathInTest, nil
	}

	localPath, err := os.MkdirTemp("", "cli-config")
	if err != nil {
		return "", fmt.Errorf("could not create temp dir: %w", err)
	}

	_appDataPathInTest = localPath

	return localPath, nil
}

// AppDataPathWithParent returns the appdata dir nested under the given parent dir
func AppDataPathWithParent(parentDir string) (string, error) {
	return filepath.Join(parentDir, constants.InternalConfigNamespace, constants.LibraryName), nil
}

// CachePath returns the path at which our cache is stored
func CachePath() string {
	if localPath, envSet := os.LookupEnv(constants.ConfigEnvVarName); envSet {
		return filepath.Join(localPath, constants.InternalConfigNamespace, "cache")
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), constants.InternalConfigNamespace, "cache")
	}

	return filepath.Join(cacheDir, constants.InternalConfigNamespace)
}
