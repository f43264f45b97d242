package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jv/internal/navigator"
)

// ParseStartupKeys turns --press tokens into commands using keys. Keys that
// are not bound to any command are skipped.
func ParseStartupKeys(keys KeyMap, tokens []string) ([]navigator.Command, error) {
	msgs, err := StartupKeyMsgs(tokens)
	if err != nil {
		return nil, err
	}
	var cmds []navigator.Command
	for _, msg := range msgs {
		if cmd := keys.CommandFor(msg); cmd != navigator.CommandNone {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

// StartupKeyMsgs turns --press tokens into key presses. Tokens mix <Key>
// forms ("<Down>", "<PgDn>", "<C-f>", "<Enter>") with literal characters
// ("jjf"). A leading backslash makes the whole token literal.
func StartupKeyMsgs(tokens []string) ([]tea.KeyPressMsg, error) {
	var msgs []tea.KeyPressMsg
	for _, raw := range tokens {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, `\`) {
			for _, r := range strings.TrimPrefix(token, `\`) {
				msgs = append(msgs, literalKey(r))
			}
			continue
		}
		for _, seg := range parseTokenSegments(token) {
			if !seg.isKey {
				for _, r := range seg.text {
					msgs = append(msgs, literalKey(r))
				}
				continue
			}
			msg, ok := keyMsgFromToken(seg.text)
			if !ok {
				return nil, fmt.Errorf("unknown key %s", seg.text)
			}
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}

func literalKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits "<Down>jj" into key and literal segments.
// An unterminated "<" is literal text.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for len(remaining) > 0 {
		start := strings.Index(remaining, "<")
		if start == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if start > 0 {
			segments = append(segments, tokenSegment{text: remaining[:start]})
		}
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			segments = append(segments, tokenSegment{text: remaining[start:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[start : start+end+1], isKey: true})
		remaining = remaining[start+end+1:]
	}
	return segments
}

// keyMsgFromToken parses one <...> token.
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	switch inner {
	case "cr", "enter", "return":
		return tea.KeyPressMsg{Code: tea.KeyEnter}, true
	case "esc", "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, true
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}, true
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}, true
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}, true
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}, true
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}, true
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}, true
	case "pgdn", "pgdown", "pagedown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}, true
	case "pgup", "pageup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}, true
	case "lt":
		return literalKey('<'), true
	}
	if strings.HasPrefix(inner, "c-") && len([]rune(inner)) == 3 {
		r := []rune(inner)[2]
		return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}, true
	}
	return tea.KeyPressMsg{}, false
}
