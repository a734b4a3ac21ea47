package constants

// LibraryName contains the main name of this library
const LibraryName = "cli"

// LibraryOwner contains the name of the owner of this library
const LibraryOwner = "devshell-sh"

// LibraryNamespace is the namespace that the library belongs to
const LibraryNamespace = "github.com/devshell-sh/"

// CommandName holds the name of our command
const CommandName = "devshell"

// Version is the semver of this build, stamped at release time
const Version = "0.11.2"

// ConfigFileName holds the name of the file that declares a project's development environment
const ConfigFileName = "devshell.yaml"

// LocalOverrideFileName holds the name of the optional per-user override file that sits next to ConfigFileName
const LocalOverrideFileName = "devshell.local.yaml"

// InternalConfigNamespace holds the appdata folder name under which we store our config
const InternalConfigNamespace = "devshell"

// InternalConfigFileName is the name of the internal settings database stored under the appdata dir
const InternalConfigFileName = "config.db"

// SnapshotHistoryFileName is the name of the file recording previously resolved channel snapshots
const SnapshotHistoryFileName = "snapshots.json"

// HomeEnvVarName is the fallback env var used to determine the user's home directory.
const HomeEnvVarName = "DEVSHELL_HOME"

// ConfigEnvVarName is the env var used to override the config dir that devshell uses
const ConfigEnvVarName = "DEVSHELL_CONFIGDIR"

// LogEnvVarName is the env var used to override the log file path
const LogEnvVarName = "DEVSHELL_LOGFILE"

// VerboseEnvVarName is the env var used to enable verbose logging to stderr
const VerboseEnvVarName = "VERBOSE"

// NonInteractiveEnvVarName is the env var used to force non-interactive mode
const NonInteractiveEnvVarName = "DEVSHELL_NONINTERACTIVE"

// ActivatedEnvVarName is the env var set in an activated session, pointing at the descriptor dir
const ActivatedEnvVarName = "DEVSHELL_ACTIVATED"

// ActivatedIDEnvVarName is the env var holding the unique ID of an activated session
const ActivatedIDEnvVarName = "DEVSHELL_ACTIVATED_ID"

// ChannelEnvVarName is the env var used to override the base environment source (channel)
const ChannelEnvVarName = "DEVSHELL_CHANNEL"

// ChannelIndexBaseURLEnvVarName is the env var used to override the channel index endpoint
const ChannelIndexBaseURLEnvVarName = "DEVSHELL_CHANNEL_INDEX"

// BackendEnvVarName is the env var used to override the provisioning backend executable
const BackendEnvVarName = "DEVSHELL_BACKEND"

// DefaultChannel is the floating channel used when the descriptor does not name one
const DefaultChannel = "stable"

// DefaultChannelIndexBaseURL is the endpoint channel references are resolved against
const DefaultChannelIndexBaseURL = "https://channels.devshell.sh"

// DefaultBackendCommand is the provisioning backend executable we delegate resolution to
const DefaultBackendCommand = "devshell-backend"

// MinimumBackendVersion is the oldest provisioning backend we know how to talk to
const MinimumBackendVersion = "0.4.0"

// ExpanderMaxDepth defines the maximum depth to fully expand a descriptor value
const ExpanderMaxDepth = 10

// DevshellRollbarToken is the token used to talk to rollbar
const DevshellRollbarToken = "a7ab2f4ce7de4be5bca8bd14b99b1c92"

// DisableRollbar is the env var used to disable rollbar reporting
const DisableRollbar = "DEVSHELL_DISABLE_ROLLBAR"

// InternalErrorPrefix is the prefix we print before internal (non user facing) error messages
const InternalErrorPrefix = "x Internal Error:"
