package evaluator

import (
	"github.com/funvibe/funamb/internal/config"
)

var listBuiltins = map[string]*Builtin{
	config.ListFuncName: {Name: config.ListFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		return NewList(args...)
	}},
	config.PairFuncName: {Name: config.PairFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.PairFuncName, args, 2); err != nil {
			return err
		}
		return &Pair{Head: args[0], Tail: args[1]}
	}},
	config.HeadFuncName: {Name: config.HeadFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.HeadFuncName, args, 1); err != nil {
			return err
		}
		p, err := pairArg(config.HeadFuncName, args, 0)
		if err != nil {
			return err
		}
		return p.Head
	}},
	config.TailFuncName: {Name: config.TailFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.TailFuncName, args, 1); err != nil {
			return err
		}
		p, err := pairArg(config.TailFuncName, args, 0)
		if err != nil {
			return err
		}
		return p.Tail
	}},
	// set_head and set_tail mutate in place. Unlike assignment they are not
	// undone on backtracking.
	config.SetHeadFuncName: {Name: config.SetHeadFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.SetHeadFuncName, args, 2); err != nil {
			return err
		}
		p, err := pairArg(config.SetHeadFuncName, args, 0)
		if err != nil {
			return err
		}
		p.Head = args[1]
		return UNDEFINED
	}},
	config.SetTailFuncName: {Name: config.SetTailFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.SetTailFuncName, args, 2); err != nil {
			return err
		}
		p, err := pairArg(config.SetTailFuncName, args, 0)
		if err != nil {
			return err
		}
		p.Tail = args[1]
		return UNDEFINED
	}},
	"is_pair": {Name: "is_pair", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("is_pair", args, 1); err != nil {
			return err
		}
		_, ok := args[0].(*Pair)
		return nativeBoolToBooleanObject(ok)
	}},
	"is_null": {Name: "is_null", Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity("is_null", args, 1); err != nil {
			return err
		}
		_, ok := args[0].(*Null)
		return nativeBoolToBooleanObject(ok)
	}},
	config.LengthFuncName: {Name: config.LengthFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.LengthFuncName, args, 1); err != nil {
			return err
		}
		elements, err := listArg(config.LengthFuncName, args, 0)
		if err != nil {
			return err
		}
		return &Number{Value: float64(len(elements))}
	}},
	config.AppendFuncName: {Name: config.AppendFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.AppendFuncName, args, 2); err != nil {
			return err
		}
		elements, err := listArg(config.AppendFuncName, args, 0)
		if err != nil {
			return err
		}
		result := args[1]
		for i := len(elements) - 1; i >= 0; i-- {
			result = &Pair{Head: elements[i], Tail: result}
		}
		return result
	}},
	config.ReverseFuncName: {Name: config.ReverseFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.ReverseFuncName, args, 1); err != nil {
			return err
		}
		elements, err := listArg(config.ReverseFuncName, args, 0)
		if err != nil {
			return err
		}
		var result Object = NULL
		for _, el := range elements {
			result = &Pair{Head: el, Tail: result}
		}
		return result
	}},
	// member returns the first sublist whose head is === x, or null.
	config.MemberFuncName: {Name: config.MemberFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.MemberFuncName, args, 2); err != nil {
			return err
		}
		if _, err := listArg(config.MemberFuncName, args, 1); err != nil {
			return err
		}
		for items := args[1]; ; {
			p, ok := items.(*Pair)
			if !ok {
				return NULL
			}
			if StrictEquals(args[0], p.Head) {
				return p
			}
			items = p.Tail
		}
	}},
	// distinct reports whether no two elements of the list are ===.
	config.DistinctFuncName: {Name: config.DistinctFuncName, Fn: func(e *Evaluator, args ...Object) Object {
		if err := checkArity(config.DistinctFuncName, args, 1); err != nil {
			return err
		}
		elements, err := listArg(config.DistinctFuncName, args, 0)
		if err != nil {
			return err
		}
		for i := range elements {
			for j := i + 1; j < len(elements); j++ {
				if StrictEquals(elements[i], elements[j]) {
					return FALSE
				}
			}
		}
		return TRUE
	}},
}
