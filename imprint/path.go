package imprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Key identifies a node among its siblings: a field name for object
// members, a non-negative position for array elements.
// The zero Key is the empty field name, which is also the key of the root.
type Key struct {
	name    string
	index   int
	isIndex bool
}

// Field returns the key of the object member name.
func Field(name string) Key {
	return Key{name: name}
}

// Index returns the key of the i-th array element. It panics if i < 0.
func Index(i int) Key {
	if i < 0 {
		panic("[imprint] negative array index")
	}
	return Key{index: i, isIndex: true}
}

// IsIndex reports whether k addresses an array element.
func (k Key) IsIndex() bool {
	return k.isIndex
}

// Name returns the field name of k, or "" for an array index.
func (k Key) Name() string {
	return k.name
}

// Int returns the array index of k, or -1 for a field name.
func (k Key) Int() int {
	if !k.isIndex {
		return -1
	}
	return k.index
}

func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// MarshalJSON encodes a field name as a JSON string and an index as
// a JSON number.
func (k Key) MarshalJSON() ([]byte, error) {
	if k.isIndex {
		return []byte(strconv.Itoa(k.index)), nil
	}
	return json.Marshal(k.name)
}

// UnmarshalJSON decodes a key written by MarshalJSON.
func (k *Key) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*k = Field(name)
		return nil
	}
	i, err := strconv.Atoi(string(b))
	if err != nil || i < 0 {
		return fmt.Errorf("[imprint] invalid path key %s", b)
	}
	*k = Index(i)
	return nil
}

// Path locates a node in the nested structure. The root path is empty.
type Path []Key

// NewPath builds a Path from strings (field names) and non-negative ints
// (array indices).
func NewPath(keys ...interface{}) (Path, error) {
	p := make(Path, 0, len(keys))
	for _, k := range keys {
		switch x := k.(type) {
		case string:
			p = append(p, Field(x))
		case int:
			if x < 0 {
				return nil, fmt.Errorf("[imprint] negative array index %d", x)
			}
			p = append(p, Index(x))
		case Key:
			p = append(p, x)
		default:
			return nil, fmt.Errorf("[imprint] invalid path key type %T", k)
		}
	}
	return p, nil
}

// MustPath is like NewPath but panics on invalid keys.
// It is intended for path literals.
func MustPath(keys ...interface{}) Path {
	p, err := NewPath(keys...)
	if err != nil {
		panic(err)
	}
	return p
}

// Parent returns the path of p's parent. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// Child returns a new path extending p with k.
func (p Path) Child(k Key) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)
	return append(c, k)
}

// HasPrefix reports whether q is an ancestor of p or p itself.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Equal reports whether p and q address the same node.
func (p Path) Equal(q Path) bool {
	return len(p) == len(q) && p.HasPrefix(q)
}

// id returns a string identifying p unambiguously, for use as a map key.
func (p Path) id() string {
	var b strings.Builder
	for _, k := range p {
		if k.isIndex {
			b.WriteByte('i')
			b.WriteString(strconv.Itoa(k.index))
			b.WriteByte(';')
			continue
		}
		b.WriteByte('s')
		b.WriteString(strconv.Itoa(len(k.name)))
		b.WriteByte(':')
		b.WriteString(k.name)
	}
	return b.String()
}

// String formats p as book.title or books[1].title. Field names which
// cannot be written bare are quoted in brackets: a["x.y"].
func (p Path) String() string {
	var b strings.Builder
	for i, k := range p {
		switch {
		case k.isIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(k.index))
			b.WriteByte(']')
		case bareField(k.name):
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(k.name)
		default:
			b.WriteByte('[')
			b.WriteString(strconv.Quote(k.name))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func bareField(name string) bool {
	return name != "" &&
		strings.TrimSpace(name) == name &&
		!strings.ContainsAny(name, ".[]\"")
}

// MarshalJSON encodes p as a JSON array of keys; the root is [].
func (p Path) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Key(p))
}

// ParsePath parses either the textual form produced by Path.String
// or a JSON array such as ["books",1,"title"]. The empty string is the root.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	if s[0] == '[' {
		var p Path
		if err := json.Unmarshal([]byte(s), &p); err == nil {
			if p == nil {
				p = Path{}
			}
			return p, nil
		}
	}

	p := Path{}
	afterDot := false
	for i := 0; i < len(s); {
		switch s[i] {
		case '[':
			if afterDot {
				return nil, badPath(s)
			}
			k, n, err := parseBracket(s[i:])
			if err != nil {
				return nil, badPath(s)
			}
			p = append(p, k)
			i += n
		case '.':
			if len(p) == 0 || afterDot {
				return nil, badPath(s)
			}
			afterDot = true
			i++
			continue
		default:
			if len(p) > 0 && !afterDot {
				return nil, badPath(s)
			}
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			p = append(p, Field(s[i:j]))
			i = j
		}
		afterDot = false
	}
	if afterDot {
		return nil, badPath(s)
	}
	return p, nil
}

// parseBracket parses [n] or ["name"] at the start of s and returns the
// key and the number of bytes consumed.
func parseBracket(s string) (Key, int, error) {
	rest := s[1:]
	if strings.HasPrefix(rest, `"`) {
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return Key{}, 0, err
		}
		name, err := strconv.Unquote(q)
		if err != nil {
			return Key{}, 0, err
		}
		if !strings.HasPrefix(rest[len(q):], "]") {
			return Key{}, 0, fmt.Errorf("missing ]")
		}
		return Field(name), len(q) + 2, nil
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return Key{}, 0, fmt.Errorf("missing ]")
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil || n < 0 {
		return Key{}, 0, fmt.Errorf("bad index %q", rest[:end])
	}
	return Index(n), end + 2, nil
}

func badPath(s string) error {
	return fmt.Errorf("[imprint] cannot parse path %q", s)
}
