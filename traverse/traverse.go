// Package traverse turns nested documents into the ordered traversal
// consumed by imprint.Build.
//
// A document's root must be an object. Object members are visited in
// declaration order for JSON input and in sorted key order for Go maps,
// array elements by position, containers before their children.
package traverse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/0xcert/framework-sub004/imprint"
)

var (
	// ErrNotObject indicates that the document root is not an object.
	ErrNotObject = errors.New("[traverse] Document root is not an object")
	// ErrUnsupportedType indicates a Go value that has no document shape.
	ErrUnsupportedType = errors.New("[traverse] Unsupported type")
)

// JSON returns the traversal of a JSON document.
func JSON(doc []byte) ([]imprint.Entry, error) {
	return Decode(bytes.NewReader(doc))
}

// Decode reads one JSON document from r and returns its traversal.
// Numbers are kept as json.Number, so integers are hashed exactly as
// written. Trailing data after the document is an error.
func Decode(r io.Reader) ([]imprint.Entry, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, ErrNotObject
	}
	w := &jsonWalker{dec: dec}
	if err := w.object(imprint.Path{}); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("[traverse] trailing data after document")
	}
	return w.entries, nil
}

type jsonWalker struct {
	dec     *json.Decoder
	entries []imprint.Entry
}

// object visits the members of an object whose opening brace has been read.
func (w *jsonWalker) object(p imprint.Path) error {
	seen := make(map[string]bool)
	for w.dec.More() {
		tok, err := w.dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("[traverse] unexpected %v at %s", tok, p)
		}
		if seen[name] {
			return fmt.Errorf("[traverse] duplicate member %q at %s", name, p)
		}
		seen[name] = true
		if err := w.value(p.Child(imprint.Field(name))); err != nil {
			return err
		}
	}
	_, err := w.dec.Token() // }
	return err
}

func (w *jsonWalker) array(p imprint.Path) error {
	for i := 0; w.dec.More(); i++ {
		if err := w.value(p.Child(imprint.Index(i))); err != nil {
			return err
		}
	}
	_, err := w.dec.Token() // ]
	return err
}

func (w *jsonWalker) value(p imprint.Path) error {
	tok, err := w.dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case json.Delim('{'):
		w.entries = append(w.entries, imprint.Container(p))
		return w.object(p)
	case json.Delim('['):
		w.entries = append(w.entries, imprint.Container(p))
		return w.array(p)
	}
	w.entries = append(w.entries, imprint.Leaf(p, tok))
	return nil
}

// Value returns the traversal of a Go value made of maps with string
// keys, slices, arrays, pointers and scalars, such as the result of
// decoding JSON into an interface{}. The root must be a map.
func Value(v interface{}) ([]imprint.Entry, error) {
	rv := indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Map {
		return nil, ErrNotObject
	}
	var entries []imprint.Entry
	if err := walkValue(imprint.Path{}, rv, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func walkValue(p imprint.Path, rv reflect.Value, entries *[]imprint.Entry) error {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key %s at %s", ErrUnsupportedType, rv.Type().Key(), p)
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			c := p.Child(imprint.Field(k))
			mv := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			if err := walkChild(c, mv, entries); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := walkChild(p.Child(imprint.Index(i)), rv.Index(i), entries); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkChild(p imprint.Path, rv reflect.Value, entries *[]imprint.Entry) error {
	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		*entries = append(*entries, imprint.Container(p))
		return walkValue(p, rv, entries)
	case reflect.Invalid:
		*entries = append(*entries, imprint.Leaf(p, nil))
		return nil
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		*entries = append(*entries, imprint.Leaf(p, scalar(rv)))
		return nil
	}
	return fmt.Errorf("%w: %s at %s", ErrUnsupportedType, rv.Type(), p)
}

// indirect follows pointers and interfaces; a nil one yields the
// invalid Value.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// scalar returns the value held by rv as one of the basic types
// imprint.Canon accepts.
func scalar(rv reflect.Value) interface{} {
	if n, ok := rv.Interface().(json.Number); ok {
		return n
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	}
	return rv.Float()
}
