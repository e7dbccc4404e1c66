package funamb

import (
	"fmt"
	"math"
	"reflect"

	"github.com/funvibe/funamb/internal/evaluator"
)

var objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()

// Marshaller handles conversion between Go values and evaluator objects.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to an evaluator Object. Numbers of every Go
// kind become numbers, slices and arrays become lists and functions become
// primitives.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return evaluator.NULL, nil
	}
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &evaluator.Number{Value: float64(v.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &evaluator.Number{Value: float64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &evaluator.Number{Value: v.Float()}, nil
	case reflect.Bool:
		if v.Bool() {
			return evaluator.TRUE, nil
		}
		return evaluator.FALSE, nil
	case reflect.String:
		return &evaluator.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		return m.sliceToList(v)
	case reflect.Func:
		return m.funcToBuiltin("<host>", v), nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return evaluator.NULL, nil
		}
		return m.ToValue(v.Elem().Interface())
	default:
		return nil, fmt.Errorf("unsupported Go type %s", v.Type())
	}
}

// FromValue converts an evaluator Object to a Go value. targetType is
// optional; without it numbers become float64 and proper lists become
// []interface{}.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}
	if targetType != nil && targetType == objectType {
		return obj, nil
	}
	if targetType != nil && targetType.Kind() == reflect.Interface {
		targetType = nil
	}

	switch o := obj.(type) {
	case *evaluator.Number:
		if targetType == nil {
			return o.Value, nil
		}
		if val, ok := convertNumber(o.Value, targetType); ok {
			return val, nil
		}
	case *evaluator.String:
		if targetType == nil || targetType.Kind() == reflect.String {
			return o.Value, nil
		}
	case *evaluator.Boolean:
		if targetType == nil || targetType.Kind() == reflect.Bool {
			return o.Value, nil
		}
	case *evaluator.Null, *evaluator.Undefined:
		return nil, nil
	case *evaluator.Pair:
		if elements, ok := evaluator.ListToSlice(o); ok {
			return m.listToSlice(elements, targetType)
		}
		if targetType == nil {
			return o, nil
		}
	default:
		if targetType == nil {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("cannot convert %s to %s", obj.Inspect(), targetType)
}

// convertNumber converts n to a numeric Go type. ok is false when n has a
// fraction for an integer type or does not fit the type.
func convertNumber(n float64, targetType reflect.Type) (interface{}, bool) {
	zero := reflect.Zero(targetType)
	switch targetType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 || zero.OverflowInt(int64(n)) {
			return nil, false
		}
		return reflect.ValueOf(int64(n)).Convert(targetType).Interface(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n != math.Trunc(n) || n < 0 || n >= math.MaxUint64 || zero.OverflowUint(uint64(n)) {
			return nil, false
		}
		return reflect.ValueOf(uint64(n)).Convert(targetType).Interface(), true
	case reflect.Float32, reflect.Float64:
		if !math.IsInf(n, 0) && !math.IsNaN(n) && zero.OverflowFloat(n) {
			return nil, false
		}
		return reflect.ValueOf(n).Convert(targetType).Interface(), true
	}
	return nil, false
}

func (m *Marshaller) sliceToList(v reflect.Value) (evaluator.Object, error) {
	elements := make([]evaluator.Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return evaluator.NewList(elements...), nil
}

func (m *Marshaller) listToSlice(elements []evaluator.Object, targetType reflect.Type) (interface{}, error) {
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil {
		if targetType.Kind() != reflect.Slice {
			return nil, fmt.Errorf("cannot convert a list to %s", targetType)
		}
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(elements))
	for _, el := range elements {
		val, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, err
		}
		if val == nil {
			slice = reflect.Append(slice, reflect.Zero(elemType))
			continue
		}
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(elemType) {
			return nil, fmt.Errorf("cannot convert %s to %s", rv.Type(), elemType)
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

// funcToBuiltin wraps a Go function as a primitive. Arguments are converted
// to the parameter types of fn. A trailing error result aborts the run.
func (m *Marshaller) funcToBuiltin(name string, fn reflect.Value) *evaluator.Builtin {
	return &evaluator.Builtin{
		Name: name,
		Fn: func(e *evaluator.Evaluator, args ...evaluator.Object) evaluator.Object {
			res, err := m.call(fn, args)
			if err != nil {
				return &evaluator.Error{Message: fmt.Sprintf("%s: %s", name, err)}
			}
			return res
		},
	}
}

func (m *Marshaller) call(fn reflect.Value, args []evaluator.Object) (evaluator.Object, error) {
	fnType := fn.Type()
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	if isVariadic {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("expected %d arguments, got %d", numIn, len(args))
	}

	goArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		var targetType reflect.Type
		if isVariadic && i >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		} else {
			targetType = fnType.In(i)
		}

		val, err := m.FromValue(arg, targetType)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		if val == nil {
			goArgs[i] = reflect.Zero(targetType)
		} else {
			goArgs[i] = reflect.ValueOf(val)
		}
	}

	results := fn.Call(goArgs)

	if n := len(results); n > 0 && fnType.Out(n-1) == reflect.TypeOf((*error)(nil)).Elem() {
		if err, _ := results[n-1].Interface().(error); err != nil {
			return nil, err
		}
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return evaluator.UNDEFINED, nil
	case 1:
		return m.ToValue(results[0].Interface())
	}
	elements := make([]evaluator.Object, len(results))
	for i, res := range results {
		val, err := m.ToValue(res.Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return evaluator.NewList(elements...), nil
}
