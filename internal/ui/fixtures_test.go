package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jv/internal/navigator"
	"github.com/oakwood-commons/jv/pkg/document"
	"github.com/oakwood-commons/jv/pkg/loader"
)

func mustDoc(t *testing.T, input string) document.Document {
	t.Helper()
	doc, err := loader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return doc
}

func twoRecords(t *testing.T) *navigator.Controller {
	t.Helper()
	return navigator.New(mustDoc(t, "{\"a\":1}\n[true,null]\n"))
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return lines[len(lines)-1]
}
