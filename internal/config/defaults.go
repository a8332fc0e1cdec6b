package config

import "time"

const (
	// DefaultProjectPath is the default Django project path
	DefaultProjectPath = "."
	// DefaultVenvDir is the virtual environment directory, relative to the project
	DefaultVenvDir = "venv"
	// DefaultManagePy is the Django management script, relative to the project
	DefaultManagePy = "manage.py"
	// DefaultVerboseLevel is the --verbosity passed to the delegate when -v is given
	DefaultVerboseLevel = 2
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".runtests"
	// DefaultProcessors is the default number of workers for the each command
	DefaultProcessors = 1
	// DefaultWatchDebounce is how long watch waits for file events to settle
	DefaultWatchDebounce = 500 * time.Millisecond
	// FileName is the optional project configuration file
	FileName = "runtests.toml"
	// DotEnvFileName is the optional dotenv file read from the project root
	DotEnvFileName = ".env"
	// WorkerEnvVar tells the delegate which pool worker it runs under
	WorkerEnvVar = "ASCENDIA_TEST_WORKER"
)

// Environment variables that override file configuration
const (
	EnvVenv           = "ASCENDIA_VENV"
	EnvManagePy       = "ASCENDIA_MANAGE_PY"
	EnvVerboseLevel   = "ASCENDIA_VERBOSE_LEVEL"
	EnvDefaultModules = "ASCENDIA_DEFAULT_MODULES"
)

// DefaultModules are the Django apps run when no selector is given
var DefaultModules = []string{
	"users",
	"notes",
	"workspace",
}

// KnownModule lists the test classes documented for one test module
type KnownModule struct {
	Module  string
	Classes []string
}

// DefaultKnownTestClasses is shown in the help text. It is informational only.
var DefaultKnownTestClasses = []KnownModule{
	{
		Module: "users.tests",
		Classes: []string{
			"ProfileModelTests",
			"SignUpFormTests",
			"UserUpdateFormTests",
			"ProfileUpdateFormTests",
			"SignUpViewTests",
			"LoginViewTests",
			"ProfileViewTests",
			"AvatarUpdateTests",
			"LogoutTests",
			"HomeViewTests",
			"CSRFProtectionTests",
			"SQLInjectionTests",
			"XSSProtectionTests",
			"RememberMeTests",
			"PasswordResetTests",
		},
	},
	{
		Module: "notes.tests",
		Classes: []string{
			"NoteModelTest",
			"TagModelTest",
			"NoteTagModelTest",
			"NoteViewsTest",
			"TagViewsTest",
			"NoteTagRelationshipTest",
			"NotePermissionsTest",
		},
	},
	{
		Module: "workspace.tests",
		Classes: []string{
			"NotebookModelTest",
			"WorkspaceViewsTest",
			"NotebookPermissionsTest",
		},
	},
}

// DefaultPathsToIgnore are the directories skipped when scanning or watching the project
var DefaultPathsToIgnore = []string{
	"venv",
	".venv",
	"env",
	"node_modules",
	"static",
	"staticfiles",
	"media",
	"migrations",
	"__pycache__",
}
