package simpleexcel

import (
	"fmt"
	"reflect"
)

// toRows flattens section data into one map per row keyed by field name.
// Data may be nil, a slice of structs, a slice of maps or a single struct.
func toRows(data interface{}) ([]map[string]interface{}, error) {
	if data == nil {
		return nil, nil
	}
	dyn, err := ConvertToDynamicData(data)
	if err != nil {
		return nil, err
	}
	switch v := dyn.(type) {
	case []map[string]interface{}:
		return v, nil
	case map[string]interface{}:
		return []map[string]interface{}{v}, nil
	default:
		return nil, fmt.Errorf("unsupported data %T", data)
	}
}

// ConvertToDynamicData flattens a struct or a slice of structs (or maps) into
// maps keyed by field name. Map fields are expanded as <Field>_<key>.
func ConvertToDynamicData(data interface{}) (interface{}, error) {
	val := reflect.ValueOf(data)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		return flattenStruct(val), nil
	case reflect.Slice:
		return flattenSlice(val)
	default:
		return nil, fmt.Errorf("expected struct or slice, got %v", val.Kind())
	}
}

func flattenStruct(val reflect.Value) map[string]interface{} {
	result := make(map[string]interface{})

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}
		fieldName := fieldType.Name

		if field.Kind() == reflect.Map {
			if field.IsNil() {
				continue
			}
			for _, key := range field.MapKeys() {
				flattenedKey := fmt.Sprintf("%s_%v", fieldName, key.Interface())
				result[flattenedKey] = field.MapIndex(key).Interface()
			}
		} else {
			result[fieldName] = field.Interface()
		}
	}

	return result
}

func flattenSlice(val reflect.Value) ([]map[string]interface{}, error) {
	result := make([]map[string]interface{}, val.Len())

	for i := 0; i < val.Len(); i++ {
		elem := val.Index(i)
		if elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}

		switch elem.Kind() {
		case reflect.Struct:
			result[i] = flattenStruct(elem)
		case reflect.Map:
			row := make(map[string]interface{}, elem.Len())
			for _, key := range elem.MapKeys() {
				row[fmt.Sprint(key.Interface())] = elem.MapIndex(key).Interface()
			}
			result[i] = row
		default:
			return nil, fmt.Errorf("expected slice of structs, got slice of %v", elem.Kind())
		}
	}

	return result, nil
}
