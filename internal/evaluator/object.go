package evaluator

type ObjectType string

const (
	NUMBER_OBJ    = "NUMBER"
	STRING_OBJ    = "STRING"
	BOOLEAN_OBJ   = "BOOLEAN"
	NULL_OBJ      = "NULL"
	UNDEFINED_OBJ = "UNDEFINED"
	PAIR_OBJ      = "PAIR"
	ACK_OBJ       = "ACK"
	FUNCTION_OBJ  = "FUNCTION"
	BUILTIN_OBJ   = "BUILTIN"
	ERROR_OBJ     = "ERROR"

	// Placeholder for declared names whose declaration has not run yet.
	// Never visible to programs.
	UNASSIGNED_OBJ = "UNASSIGNED"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}
