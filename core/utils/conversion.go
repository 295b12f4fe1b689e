package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ToInt converts numbers, numeric strings and byte slices to int.
// Anything else, including unparsable text, yields 0.
func ToInt(val any) int {
	return int(ToInt64(val))
}

// ToInt64 converts numbers, numeric strings and byte slices to int64.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case string:
		return parseInt(v)
	case []byte:
		return parseInt(string(v))
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float())
	default:
		return parseInt(fmt.Sprintf("%v", val))
	}
}

func parseInt(s string) int64 {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return i
}

// ToBool converts various types to bool. Numbers are true when equal to 1;
// text is true for "1", "true", "yes" and "on" in any case.
func ToBool(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return truthy(v)
	case []byte:
		return truthy(string(v))
	}

	switch reflect.ValueOf(val).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ToInt64(val) == 1
	default:
		return false
	}
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
