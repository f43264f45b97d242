package formatter

import "strconv"

// RootPath is the path of record i's root node.
func RootPath(i int) string {
	return strconv.Itoa(i)
}

// ChildKey is the path of member key under an object at parent.
func ChildKey(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// ChildIndex is the path of element i under an array at parent.
func ChildIndex(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
