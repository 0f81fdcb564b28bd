package core

import (
	"sort"
	"strings"
)

// Field is one key-value pair of the mapped diagnostic context.
type Field struct {
	Key   string
	Value string
}

// String renders the field as key=value.
func (f Field) String() string {
	return f.Key + "=" + f.Value
}

// FieldsFromMap converts a context map into fields ordered by key so that
// every appender renders the same context in the same order.
func FieldsFromMap(m map[string]string) []Field {
	if len(m) == 0 {
		return nil
	}
	fields := make([]Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, Field{Key: k, Value: v})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

// JoinFields renders fields as "{k1=v1, k2=v2}". An empty context yields "{}".
func JoinFields(fields []Field) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Key)
		sb.WriteByte('=')
		sb.WriteString(f.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}
