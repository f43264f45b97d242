package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jv/pkg/document"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{name: "single object", input: `{"a":1,"b":[1,2]}`, wantLen: 1},
		{name: "two records", input: "{\"id\":1}\n{\"id\":2}\n", wantLen: 2},
		{name: "blank lines skipped", input: "\n  \n{\"id\":1}\n\n\t\n[1]\n", wantLen: 2},
		{name: "scalars", input: "1\n\"s\"\ntrue\nnull\n", wantLen: 4},
		{name: "crlf endings", input: "{\"a\":1}\r\n{\"a\":2}\r\n", wantLen: 2},
		{name: "empty input", input: "", wantLen: 0},
		{name: "only whitespace", input: "\n\n   \n", wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, doc.Len())
		})
	}
}

func TestParsePreservesOrder(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"z":1,"a":{"y":true,"b":null},"m":["x",2.50,-1e3]}`))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())

	root := doc.Records[0]
	require.Equal(t, document.Object, root.Kind)
	keys := make([]string, 0, len(root.Members))
	for _, m := range root.Members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	nested, ok := root.Get("a")
	require.True(t, ok)
	assert.Equal(t, "y", nested.Members[0].Key)
	assert.Equal(t, document.BoolValue(true), nested.Members[0].Value)
	assert.Equal(t, document.NullValue(), nested.Members[1].Value)

	list, ok := root.Get("m")
	require.True(t, ok)
	assert.Equal(t, []document.Value{
		document.StringValue("x"),
		document.NumberValue("2.50"),
		document.NumberValue("-1e3"),
	}, list.Items)
}

func TestParseUnescapesStringsAndKeys(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"say \"hi\"":"line\nbreak é \/"}`))
	require.NoError(t, err)
	root := doc.Records[0]
	require.Len(t, root.Members, 1)
	assert.Equal(t, `say "hi"`, root.Members[0].Key)
	assert.Equal(t, "line\nbreak é /", root.Members[0].Value.Str)
}

func TestParseValueLoneSurrogates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  document.Value
	}{
		{
			name:  "in key",
			input: `{"\ud800":1}`,
			want:  document.ObjectValue(document.Member{Key: "\uFFFD", Value: document.NumberValue("1")}),
		},
		{
			name:  "in member value",
			input: `{"a":"\ud800"}`,
			want:  document.ObjectValue(document.Member{Key: "a", Value: document.StringValue("\uFFFD")}),
		},
		{
			name:  "in array item",
			input: `["\udc00"]`,
			want:  document.ArrayValue(document.StringValue("\uFFFD")),
		},
		{
			name:  "top-level string",
			input: `"\ud83dx"`,
			want:  document.StringValue("\uFFFDx"),
		},
		{
			name:  "member order kept",
			input: `{"z":"\udfff","a":[true,null,2.50]}`,
			want: document.ObjectValue(
				document.Member{Key: "z", Value: document.StringValue("\uFFFD")},
				document.Member{Key: "a", Value: document.ArrayValue(
					document.BoolValue(true), document.NullValue(), document.NumberValue("2.50"),
				)},
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSurrogatePairStillDecodes(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"e":"\ud83d\ude00"}` + "\n" + `["\ud800"]`))
	require.NoError(t, err)
	require.Equal(t, 2, doc.Len())
	assert.Equal(t, "\U0001F600", doc.Records[0].Members[0].Value.Str)
	assert.Equal(t, "\uFFFD", doc.Records[1].Items[0].Str)
}

func TestParseEmptyContainers(t *testing.T) {
	doc, err := Parse(strings.NewReader("{}\n[]\n{\"a\":{},\"b\":[]}"))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Len())
	assert.Equal(t, document.Object, doc.Records[0].Kind)
	assert.Equal(t, 0, doc.Records[0].Len())
	assert.Equal(t, document.Array, doc.Records[1].Kind)
	assert.Equal(t, 0, doc.Records[1].Len())
}

func TestParseMalformedLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{name: "truncated object", input: `{"a":1`, wantLine: 1},
		{name: "second line bad", input: "{\"a\":1}\n{a:1}\n", wantLine: 2},
		{name: "after blank lines", input: "\n\n[1,2,]\n", wantLine: 3},
		{name: "trailing garbage", input: `{"a":1} x`, wantLine: 1},
		{name: "bare word", input: `hello`, wantLine: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidJSON))

			var lineErr *LineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, tt.wantLine, lineErr.Line)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":1}\n{\"id\":2}\n"), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, path, doc.Source)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.jsonl"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.jsonl")
	require.NoError(t, os.WriteFile(bad, []byte("{\"ok\":true}\nnot json\n"), 0o600))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidJSON))
	assert.Contains(t, err.Error(), "bad.jsonl")
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, doc.Empty())
}
