package navigator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oakwood-commons/jv/pkg/document"
)

// Segment is one step of a node path.
type Segment interface{}

// Field selects an object member by key.
type Field struct {
	Name string
}

// ArrayIndex selects an array element.
type ArrayIndex struct {
	Index int
}

// ParsePath splits a node path such as `3.user.tags[0]` into the record
// index and the segments below the record root.
func ParsePath(path string) (int, []Segment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, nil, fmt.Errorf("empty path")
	}

	end := strings.IndexAny(path, ".[")
	if end == -1 {
		end = len(path)
	}
	record, err := strconv.Atoi(path[:end])
	if err != nil || record < 0 {
		return 0, nil, fmt.Errorf("path %q must start with a record index", path)
	}

	var segments []Segment
	i := end
	for i < len(path) {
		switch path[i] {
		case '.':
			j := i + 1
			for j < len(path) && path[j] != '.' && path[j] != '[' {
				j++
			}
			segments = append(segments, Field{Name: path[i+1 : j]})
			i = j
		case '[':
			rb := strings.IndexByte(path[i:], ']')
			if rb == -1 {
				return 0, nil, fmt.Errorf("path %q has an unterminated index", path)
			}
			n, err := strconv.Atoi(path[i+1 : i+rb])
			if err != nil || n < 0 {
				return 0, nil, fmt.Errorf("path %q has an invalid index %q", path, path[i+1:i+rb])
			}
			segments = append(segments, ArrayIndex{Index: n})
			i += rb + 1
		default:
			return 0, nil, fmt.Errorf("path %q: unexpected %q at offset %d", path, path[i], i)
		}
	}
	return record, segments, nil
}

// Resolve returns the node that path identifies within doc.
func Resolve(doc document.Document, path string) (document.Value, error) {
	record, segments, err := ParsePath(path)
	if err != nil {
		return document.Value{}, err
	}
	node, ok := doc.Record(record)
	if !ok {
		return document.Value{}, fmt.Errorf("path %q: record %d out of range (%d records)", path, record, doc.Len())
	}
	for _, seg := range segments {
		switch s := seg.(type) {
		case Field:
			child, ok := node.Get(s.Name)
			if !ok {
				return document.Value{}, fmt.Errorf("path %q: no member %q", path, s.Name)
			}
			node = child
		case ArrayIndex:
			if node.Kind != document.Array || s.Index >= len(node.Items) {
				return document.Value{}, fmt.Errorf("path %q: no element %d", path, s.Index)
			}
			node = node.Items[s.Index]
		}
	}
	return node, nil
}
