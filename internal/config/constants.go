package config

const SourceFileExt = ".tet"

// Version is the toolchain version reported by the CLI.
const Version = "0.3.0"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".tet"}

// ProjectConfigName is the per-project configuration file searched for
// upward from the source directory.
const ProjectConfigName = "tether.yaml"

// IsTestMode indicates if the program is running in test mode.
// This is set once at startup when handling the test command.
var IsTestMode = false

// Lifecycle message names with synthesized defaults
const (
	MsgReady     = "ready"
	MsgEnter     = "enter"
	MsgSaveState = "saveState"
	MsgLoadState = "loadState"
)

// Other built-in lifecycle message names
const (
	MsgStep     = "step"
	MsgLateStep = "lateStep"
	MsgExit     = "exit"
	MsgOnHit    = "onHit"
	MsgOnLeave  = "onLeave"
)

// Names recognized or emitted by the expander
const (
	FetchFuncName         = "fetch"
	SelfName              = "self"
	EnsureLoadedFuncName  = "ensureLoaded"
	PersistFieldsFuncName = "persistFields"
	RestoreFieldsFuncName = "restoreFields"
)

// Built-in type names
const (
	EntityClassName    = "Entity"
	ComponentClassName = "Component"
	TypeClassName      = "Type"
	IntClassName       = "Int"
	FloatClassName     = "Float"
	StringClassName    = "String"
)

// TempPrefix is the prefix for compiler-generated temporaries.
const TempPrefix = "__t"
