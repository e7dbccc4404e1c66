package evaluator

import "strings"

// Pair is a mutable cons cell. Lists are chains of pairs ending in NULL.
type Pair struct {
	Head Object
	Tail Object
}

func (p *Pair) Type() ObjectType { return PAIR_OBJ }
func (p *Pair) Inspect() string {
	var out strings.Builder
	writePair(&out, p, make(map[*Pair]bool))
	return out.String()
}

// writePair prints [head, tail]. Pairs already on the current path are
// printed as "..." so cyclic structures built with set_tail terminate.
func writePair(out *strings.Builder, p *Pair, visiting map[*Pair]bool) {
	if visiting[p] {
		out.WriteString("...")
		return
	}
	visiting[p] = true
	out.WriteString("[")
	writeObject(out, p.Head, visiting)
	out.WriteString(", ")
	writeObject(out, p.Tail, visiting)
	out.WriteString("]")
	delete(visiting, p)
}

func writeObject(out *strings.Builder, obj Object, visiting map[*Pair]bool) {
	if p, ok := obj.(*Pair); ok {
		writePair(out, p, visiting)
		return
	}
	out.WriteString(obj.Inspect())
}

// NewList builds a proper list from elements.
func NewList(elements ...Object) Object {
	var result Object = NULL
	for i := len(elements) - 1; i >= 0; i-- {
		result = &Pair{Head: elements[i], Tail: result}
	}
	return result
}

// ListToSlice returns the elements of a proper list. ok is false if obj is
// not a proper list (an improper tail or a cycle).
func ListToSlice(obj Object) ([]Object, bool) {
	var elements []Object
	seen := make(map[*Pair]bool)
	for {
		switch v := obj.(type) {
		case *Null:
			return elements, true
		case *Pair:
			if seen[v] {
				return nil, false
			}
			seen[v] = true
			elements = append(elements, v.Head)
			obj = v.Tail
		default:
			return nil, false
		}
	}
}
