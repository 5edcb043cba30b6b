package reactive

import "reflect"

// anyEqual is the default "changed unless references/scalars compare
// equal" comparison from §4.4, grounded on the same fast-path-plus-
// reflect.DeepEqual-fallback shape the source project's signal.go uses for
// its own default equality.
func anyEqual[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		bv, _ := any(b).(int)
		return av == bv
	case int64:
		bv, _ := any(b).(int64)
		return av == bv
	case float64:
		bv, _ := any(b).(float64)
		return av == bv
	case string:
		bv, _ := any(b).(string)
		return av == bv
	case bool:
		bv, _ := any(b).(bool)
		return av == bv
	}
	return reflect.DeepEqual(a, b)
}
