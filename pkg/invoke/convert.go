package invoke

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var durationType = reflect.TypeFor[time.Duration]()

// Coerce converts value to target. Command-line values arrive as strings,
// booleans and string slices; Coerce turns them into the Go type a handler
// declares. nil becomes the zero value of target and a pointer target
// receives the address of the converted element.
func Coerce(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(target) {
		return v, nil
	}

	switch target.Kind() {
	case reflect.Pointer:
		inner, err := Coerce(value, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	case reflect.Interface:
		return reflect.Value{}, fmt.Errorf("%T does not implement %s", value, target)
	case reflect.Slice:
		return coerceSlice(v, target)
	}

	if target == durationType {
		d, err := cast.ToDurationE(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	}

	converted, err := coerceScalar(value, target.Kind())
	if err != nil {
		return reflect.Value{}, err
	}
	if converted != nil {
		out := reflect.ValueOf(converted)
		if overflows(out, target) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", value, target)
		}
		return out.Convert(target), nil
	}

	if v.Type().ConvertibleTo(target) {
		return v.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", value, target)
}

// coerceScalar converts value for the basic kinds cast knows about.
// It returns nil, nil for kinds it does not handle. Integers typed on a
// command line are decimal: "010" is ten and "0x10" is rejected.
func coerceScalar(value any, kind reflect.Kind) (any, error) {
	s, isString := value.(string)
	s = strings.TrimSpace(s)

	switch kind {
	case reflect.String:
		return cast.ToStringE(value)
	case reflect.Bool:
		return cast.ToBoolE(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if isString {
			return strconv.ParseInt(s, 10, 64)
		}
		return cast.ToInt64E(value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if isString {
			return strconv.ParseUint(s, 10, 64)
		}
		return cast.ToUint64E(value)
	case reflect.Float32, reflect.Float64:
		return cast.ToFloat64E(value)
	default:
		return nil, nil
	}
}

// overflows reports whether v, as returned by coerceScalar, does not fit in
// target.
func overflows(v reflect.Value, target reflect.Type) bool {
	zero := reflect.Zero(target)
	switch v.Kind() {
	case reflect.Int64:
		return zero.OverflowInt(v.Int())
	case reflect.Uint64:
		return zero.OverflowUint(v.Uint())
	case reflect.Float64:
		return zero.OverflowFloat(v.Float())
	}
	return false
}

func coerceSlice(v reflect.Value, target reflect.Type) (reflect.Value, error) {
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		// A single value becomes a one-element slice.
		elem, err := Coerce(v.Interface(), target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.MakeSlice(target, 1, 1)
		out.Index(0).Set(elem)
		return out, nil
	}

	out := reflect.MakeSlice(target, v.Len(), v.Len())
	for i := range v.Len() {
		elem, err := Coerce(v.Index(i).Interface(), target.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(elem)
	}
	return out, nil
}
