package evaluator

// StrictEquals implements ===. Numbers, strings and booleans compare by
// value (NaN is not equal to itself); pairs and functions by identity.
func StrictEquals(a, b Object) bool {
	switch av := a.(type) {
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Undefined:
		_, ok := b.(*Undefined)
		return ok
	case *Acknowledgement:
		_, ok := b.(*Acknowledgement)
		return ok
	}
	return a == b
}
