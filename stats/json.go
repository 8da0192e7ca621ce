// Package stats - json.go renders distributions and views as JSON.
//
// DESIGN: encoding/json rejects NaN, and empty or single-sample
// distributions carry NaN statistics. Documents are therefore assembled
// with sjson, writing NaN and ±Inf as null and appending keys in name order.
package stats

import (
	"math"
	"strings"

	"github.com/tidwall/sjson"
)

var nullJSON = []byte("null")

// MarshalJSON implements json.Marshaler.
func (d Distribution) MarshalJSON() ([]byte, error) {
	doc, err := sjson.SetBytes([]byte("{}"), "count", d.count)
	if err != nil {
		return nil, err
	}
	fields := []struct {
		key   string
		value float64
	}{
		{"min", d.Min()},
		{"max", d.Max()},
		{"mean", d.Mean()},
		{"stddev", d.StdDev()},
		{"sum", d.Sum()},
	}
	for _, f := range fields {
		if doc, err = setFloat(doc, f.key, f.value); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// MarshalJSON implements json.Marshaler. Keys appear in name order.
func (ds Distributions) MarshalJSON() ([]byte, error) {
	doc := []byte("{}")
	for _, name := range ds.Names() {
		raw, err := ds[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		if doc, err = sjson.SetRawBytes(doc, EscapePath(name), raw); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// MarshalJSON implements json.Marshaler. Keys appear in name order.
func (cs Counts) MarshalJSON() ([]byte, error) {
	doc := []byte("{}")
	for _, name := range cs.Names() {
		var err error
		if doc, err = sjson.SetBytes(doc, EscapePath(name), cs[name]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func setFloat(doc []byte, key string, v float64) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sjson.SetRawBytes(doc, key, nullJSON)
	}
	return sjson.SetBytes(doc, key, v)
}

// EscapePath escapes a metric name so sjson and gjson treat it as a single
// literal object key. Names such as "db.query.ok" would otherwise be read as
// nested paths.
func EscapePath(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-':
		case r >= '0' && r <= '9', r > 127:
		default:
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
