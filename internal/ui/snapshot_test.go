package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jv/internal/formatter"
	"github.com/oakwood-commons/jv/internal/navigator"
)

func TestRenderSnapshotInitial(t *testing.T) {
	out, err := RenderSnapshot(twoRecords(t), SnapshotConfig{
		Width:   40,
		Height:  10,
		Keys:    DefaultKeyMap(),
		Palette: formatter.PlainPalette(),
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n[1/2]", out)
}

func TestRenderSnapshotReplaysKeys(t *testing.T) {
	out, err := RenderSnapshot(twoRecords(t), SnapshotConfig{
		Keys:      DefaultKeyMap(),
		Palette:   formatter.PlainPalette(),
		StartKeys: []string{"<Down>", "<Enter>"},
	})
	require.NoError(t, err)
	assert.Equal(t, "{ ... }\n[2/2]", out)
}

func TestRenderSnapshotStopsAtQuit(t *testing.T) {
	out, err := RenderSnapshot(twoRecords(t), SnapshotConfig{
		Keys:      DefaultKeyMap(),
		Palette:   formatter.PlainPalette(),
		StartKeys: []string{"q<Down>"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[1/2]", lastLine(out))
}

func TestRenderSnapshotHorizontalScroll(t *testing.T) {
	ctrl := navigator.New(mustDoc(t, `{"name":"value"}`))
	out, err := RenderSnapshot(ctrl, SnapshotConfig{
		Keys:      DefaultKeyMap(),
		Palette:   formatter.PlainPalette(),
		StartKeys: []string{"<Right>"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", `ame": "value"`, "", "]"}, strings.Split(out, "\n"))
}

func TestRenderSnapshotColor(t *testing.T) {
	theme, err := LoadTheme("dark", nil)
	require.NoError(t, err)
	out, err := RenderSnapshot(twoRecords(t), SnapshotConfig{
		Keys:    DefaultKeyMap(),
		Palette: theme.Palette(false),
	})
	require.NoError(t, err)
	assert.NotEqual(t, ansi.Strip(out), out)
	assert.Equal(t, "{\n  \"a\": 1\n}\n[1/2]", ansi.Strip(out))
}

func TestRenderSnapshotBadKey(t *testing.T) {
	_, err := RenderSnapshot(twoRecords(t), SnapshotConfig{StartKeys: []string{"<Nope>"}})
	require.Error(t, err)
}
