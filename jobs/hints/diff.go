package hints

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Diff compara o formato esperado com o recebido e devolve uma dica por problema:
// tipo divergente, chaves ausentes e chaves inesperadas (estas duas só quando
// ambos são objetos). Chaves saem em ordem alfabética.
func Diff(expected, actual any) []string {
	var out []string

	ek, ak := KindOf(expected), KindOf(actual)
	if ek != ak {
		out = append(out, fmt.Sprintf("Expected type: %s, but got: %s", ek, ak))
	}

	if ek != "object" || ak != "object" {
		return out
	}

	expectedKeys := objectKeys(expected)
	actualKeys := objectKeys(actual)

	var missing, extra []string
	for k := range expectedKeys {
		if _, ok := actualKeys[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range actualKeys {
		if _, ok := expectedKeys[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)

	if len(missing) > 0 {
		out = append(out, "Missing keys: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		out = append(out, "Unexpected keys: "+strings.Join(extra, ", "))
	}
	return out
}

// KindOf devolve o nome do tipo JSON de v: string, number, boolean, object, array ou null.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return KindOf(rv.Elem().Interface())
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return "unknown"
}

func objectKeys(v any) map[string]struct{} {
	keys := make(map[string]struct{})
	if m, ok := v.(map[string]any); ok {
		for k := range m {
			keys[k] = struct{}{}
		}
		return keys
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map:
		for _, k := range rv.MapKeys() {
			keys[fmt.Sprint(k.Interface())] = struct{}{}
		}
	case reflect.Struct:
		// segue o nome que o campo teria no JSON
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				tagName, _, _ := strings.Cut(tag, ",")
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			keys[name] = struct{}{}
		}
	}
	return keys
}
