package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is one flat row keyed by column name
type Record map[string]interface{}

// Columns returns the sorted keys of the first record, or nil when there are none
func Columns(records []Record) []string {
	if len(records) == 0 {
		return nil
	}
	cols := make([]string, 0, len(records[0]))
	for k := range records[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Encode writes a header line of columns then one line per record. When columns is
// empty the keys of the first record are used. Missing keys are written as empty fields.
func Encode(w io.Writer, columns []string, records []Record) error {
	if len(columns) == 0 {
		columns = Columns(records)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			row[i] = formatValue(reflect.ValueOf(r[c]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FromStructs flattens a slice of structs into records named by their json tags.
// Embedded structs are inlined; nested slices, maps and structs other than time.Time are skipped.
// The returned columns follow field order.
func FromStructs(slice interface{}) ([]string, []Record, error) {
	v := reflect.ValueOf(slice)
	if v.Kind() != reflect.Slice {
		return nil, nil, fmt.Errorf("export: want a slice, got %s", v.Kind())
	}
	elem := v.Type().Elem()
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("export: want a slice of structs, got %s", elem)
	}

	columns := flatColumns(elem)
	records := make([]Record, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := reflect.Indirect(v.Index(i))
		rec := Record{}
		if item.IsValid() {
			flatValues(item, rec)
		}
		records = append(records, rec)
	}
	return columns, records, nil
}

var timeType = reflect.TypeOf(time.Time{})

func jsonName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		name = f.Name
	}
	return name, true
}

func flatKind(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Interface, reflect.Func, reflect.Chan:
		return false
	case reflect.Struct:
		return t == timeType
	}
	return true
}

func flatColumns(t reflect.Type) []string {
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("json") == "" {
			cols = append(cols, flatColumns(f.Type)...)
			continue
		}
		name, ok := jsonName(f)
		if !ok || !flatKind(f.Type) {
			continue
		}
		cols = append(cols, name)
	}
	return cols
}

func flatValues(v reflect.Value, rec Record) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("json") == "" {
			flatValues(v.Field(i), rec)
			continue
		}
		name, ok := jsonName(f)
		if !ok || !flatKind(f.Type) {
			continue
		}
		rec[name] = v.Field(i).Interface()
	}
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		ts := v.Interface().(time.Time)
		if ts.IsZero() {
			return ""
		}
		return ts.UTC().Format(time.RFC3339)
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(v.Interface())
}
