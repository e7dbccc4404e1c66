package config

// Version can be set at build time using: -ldflags "-X github.com/funvibe/funamb/internal/config.Version=..."
var Version = "0.1.0"

const SourceFileExt = ".amb"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".amb", ".js"}

// DefaultConfigFile is looked up in the working directory when -config is not given.
const DefaultConfigFile = "funamb.yaml"

// Special forms. Applications whose operator is one of these bare names are
// not function calls.
const (
	AmbName     = "amb"
	RequireName = "require"
)

// Built-in function names
const (
	DisplayFuncName   = "display"
	StringifyFuncName = "stringify"
	ErrorFuncName     = "error"
	ListFuncName      = "list"
	PairFuncName      = "pair"
	HeadFuncName      = "head"
	TailFuncName      = "tail"
	SetHeadFuncName   = "set_head"
	SetTailFuncName   = "set_tail"
	LengthFuncName    = "length"
	AppendFuncName    = "append"
	ReverseFuncName   = "reverse"
	MemberFuncName    = "member"
	DistinctFuncName  = "distinct"
)

// Built-in constant names
const (
	UndefinedName = "undefined"
	InfinityName  = "Infinity"
	NaNName       = "NaN"
	MathPIName    = "math_PI"
	MathEName     = "math_E"
)

// REPL
const (
	InputPrompt        = "input: "
	ContinuationPrompt = "...    "
	OutputPrefix       = "result: "
	TryAgainCommand    = "try-again"
)
