package logging

import (
	"log"
	"os"
	"runtime"

	"github.com/rollbar/rollbar-go"

	"github.com/devshell-sh/cli/internal/condition"
	"github.com/devshell-sh/cli/internal/constants"
)

// SetupRollbar wires the rollbar client so Critical messages sent via multilog reach our dashboard
func SetupRollbar(token string) {
	rollbar.SetToken(token)
	rollbar.SetEnvironment("release")
	rollbar.SetCodeVersion(constants.Version)
	rollbar.SetServerRoot(constants.LibraryNamespace + constants.LibraryName)
	rollbar.SetLogger(&rollbar.SilentClientLogger{})

	// We can't use runtime.GOOS for the official platform field because rollbar sees that as a server-only platform
	// (which we don't have credentials for). So we're faking it with a custom field until rollbar gets their act together.
	rollbar.SetPlatform("client")
	rollbar.SetTransform(func(data map[string]interface{}) {
		// We're not a server, so don't send server info (could contain sensitive info, like hostname)
		data["server"] = map[string]interface{}{}
		data["platform_os"] = runtime.GOOS
	})

	rollbar.SetEnabled(rollbarEnabled())

	log.SetOutput(CurrentHandler().Output())
}

func rollbarEnabled() bool {
	if condition.InTest() || condition.BuiltOnCI() {
		return false
	}
	return os.Getenv(constants.DisableRollbar) == ""
}

// WaitForRollbar gives queued rollbar payloads a chance to flush before exit
func WaitForRollbar() {
	rollbar.Wait()
}
