package initchecker

import (
	"fmt"
	"reflect"
)

// CheckInit panics on the first nil dependency. Arguments are name/value pairs.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: odd number of arguments")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("CheckInit: first argument of a pair must be a string")
		}
		if isNil(pairs[i+1]) {
			panic(fmt.Sprintf("%s dependency is not initialized", name))
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
