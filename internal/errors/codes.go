package errors

// Error code constants organized by kind
// C100-C199: Configuration errors
// F200-F299: Filesystem errors

const (
	// Configuration errors (C100-C199)
	ErrInvalidBuildScript    = "C100"
	ErrUnresolvableOutputDir = "C101"
	ErrRootOutputDirNotBound = "C102"
	ErrOutputDirCollision    = "C103"
	ErrUnknownProject        = "C104"
	ErrDuplicateTask         = "C105"
	ErrEvaluationCycle       = "C106"
	ErrDuplicateProject      = "C107"
	ErrInvalidJavaVersion    = "C108"
	ErrInvalidClasspathEntry = "C109"
	ErrUnknownTask           = "C110"

	// Filesystem errors (F200-F299)
	ErrDeleteFailed           = "F201"
	ErrProjectDirNotFound     = "F202"
	ErrBuildScriptNotReadable = "F203"
)

// ErrorMessages maps error codes to their default messages
var ErrorMessages = map[string]string{
	ErrInvalidBuildScript:    "Invalid build script",
	ErrUnresolvableOutputDir: "Output directory cannot be resolved",
	ErrRootOutputDirNotBound: "Root output directory is not bound yet",
	ErrOutputDirCollision:    "Two projects resolve to the same output directory",
	ErrUnknownProject:        "Project not found in the project graph",
	ErrDuplicateTask:         "Task is already registered",
	ErrEvaluationCycle:       "Evaluation dependencies form a cycle",
	ErrDuplicateProject:      "Project is included more than once",
	ErrInvalidJavaVersion:    "Unsupported Java language level",
	ErrInvalidClasspathEntry: "Classpath entry is not a group:artifact:version coordinate",
	ErrUnknownTask:           "Task not found",

	ErrDeleteFailed:           "Failed to delete path",
	ErrProjectDirNotFound:     "Project directory not found",
	ErrBuildScriptNotReadable: "Build script cannot be read",
}

// GetErrorMessage returns the default message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}
