package logsafe

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

// TruncatedSuffix is appended to text cut short by a `log.max` directive.
const TruncatedSuffix = "...(truncated)"

// transform applies a field's directives to its raw value in fixed order:
// null, size, hash, truncate, mask, then expansion. Each step that produces
// a result ends the chain. keep is false when the field must be omitted.
func (w *walk) transform(raw reflect.Value, readable bool, fd *fieldDescriptor, depth int) (any, bool) {
	if !readable {
		return nil, true
	}

	if isNil(raw) {
		return nil, fd.logNull
	}

	if fd.logSize {
		return sizeOf(raw), true
	}

	if fd.hash != "" {
		return w.s.hasher(fd.hash).Hash([]byte(textOf(raw))), true
	}

	value := raw
	if fd.maxLength >= 0 {
		if text, ok := stringOf(raw); ok && utf8.RuneCountInString(text) > fd.maxLength {
			value = reflect.ValueOf(truncate(text, fd.maxLength))
		}
	}

	if fd.mask {
		return w.s.masker(fd).Mask(textOf(value)), true
	}

	return w.expand(value, depth), true
}

// expand renders an untransformed field value owned by an object at ownerDepth.
func (w *walk) expand(v reflect.Value, ownerDepth int) any {
	if sv, ok := scalar(v); ok {
		return sv
	}

	target := indirect(v)
	if !target.IsValid() {
		return nil
	}

	if isCollection(target.Type()) {
		if w.exceeds(ownerDepth + 1) {
			return MarkerMaxDepth
		}
		return w.processCollection(target, ownerDepth+1)
	}

	if target.Kind() == reflect.Struct && describe(target.Type()).eligible {
		if w.exceeds(ownerDepth + 1) {
			return MarkerMaxDepth
		}
		return w.processObject(v, ownerDepth+1)
	}

	return textOf(v)
}

// truncate keeps the first n runes of text and appends TruncatedSuffix.
func truncate(text string, n int) string {
	runes := []rune(text)
	return string(runes[:n]) + TruncatedSuffix
}

// sizeOf returns the element, entry, or rune count of v. Values without a
// natural size report the rune count of their textual form.
func sizeOf(v reflect.Value) int {
	v = indirect(v)
	if !v.IsValid() {
		return 0
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return v.Len()
	case reflect.String:
		return utf8.RuneCountInString(v.String())
	}
	return utf8.RuneCountInString(textOf(v))
}

// stringOf returns the text of a string-kinded value, following pointers.
func stringOf(v reflect.Value) (string, bool) {
	v = indirect(v)
	if v.IsValid() && v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

// textOf returns the natural textual form of v. Values whose %v form would
// revisit a map or slice already being printed render as MarkerCircular.
func textOf(v reflect.Value) string {
	if text, ok := stringOf(v); ok {
		return text
	}
	v = unwrap(v)
	if !v.IsValid() || !v.CanInterface() {
		return "null"
	}
	if selfReferencing(v, 0, make(map[visitKey]struct{})) {
		return string(MarkerCircular)
	}
	return fmt.Sprint(v.Interface())
}

// selfReferencing follows the traversal fmt uses for the %v verb and reports
// whether it reaches a map or slice that is already on the current path.
// Values with their own formatting methods end the traversal, as do
// pointers below the top level, which fmt prints as addresses.
func selfReferencing(v reflect.Value, depth int, path map[visitKey]struct{}) bool {
	if !v.IsValid() {
		return false
	}
	if v.CanInterface() {
		switch v.Interface().(type) {
		case fmt.Formatter, fmt.Stringer, error:
			return false
		}
	}

	switch v.Kind() {
	case reflect.Interface:
		return selfReferencing(v.Elem(), depth+1, path)

	case reflect.Ptr:
		if depth > 0 || v.IsNil() {
			return false
		}
		switch v.Elem().Kind() {
		case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
			return selfReferencing(v.Elem(), depth+1, path)
		}
		return false

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if selfReferencing(v.Field(i), depth+1, path) {
				return true
			}
		}
		return false

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return false
		}
		for i := 0; i < v.Len(); i++ {
			if selfReferencing(v.Index(i), depth+1, path) {
				return true
			}
		}
		return false

	case reflect.Map, reflect.Slice:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return false
		}
		key, ok := identity(v)
		if !ok {
			return false
		}
		if _, seen := path[key]; seen {
			return true
		}
		path[key] = struct{}{}
		defer delete(path, key)

		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				if selfReferencing(v.Index(i), depth+1, path) {
					return true
				}
			}
			return false
		}
		iter := v.MapRange()
		for iter.Next() {
			if selfReferencing(iter.Key(), depth+1, path) || selfReferencing(iter.Value(), depth+1, path) {
				return true
			}
		}
		return false
	}
	return false
}
