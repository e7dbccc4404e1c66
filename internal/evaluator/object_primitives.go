package evaluator

import (
	"strconv"
)

// Number. All numbers are IEEE doubles.
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return formatNumber(n.Value) }

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

// Null is the empty list.
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

// Undefined is the value of a call that reaches no return, and of an
// empty sequence.
type Undefined struct{}

func (u *Undefined) Type() ObjectType { return UNDEFINED_OBJ }
func (u *Undefined) Inspect() string  { return "undefined" }

// Acknowledgement is what declarations, assignments and require succeed with.
type Acknowledgement struct{}

func (a *Acknowledgement) Type() ObjectType { return ACK_OBJ }
func (a *Acknowledgement) Inspect() string  { return "ok" }

type unassignedValue struct{}

func (u *unassignedValue) Type() ObjectType { return UNASSIGNED_OBJ }
func (u *unassignedValue) Inspect() string  { return "<unassigned>" }

var (
	TRUE      = &Boolean{Value: true}
	FALSE     = &Boolean{Value: false}
	NULL      = &Null{}
	UNDEFINED = &Undefined{}
	ACK       = &Acknowledgement{}

	unassigned Object = &unassignedValue{}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}
