package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

const (
	defaultSnapshotWidth  = 80
	defaultSnapshotHeight = 24
	resizePollInterval    = 250 * time.Millisecond
)

// Terminal hooks, swapped out by tests.
var (
	stdinRedirected = func() bool {
		stat, err := os.Stdin.Stat()
		return err == nil && stat.Mode()&os.ModeCharDevice == 0
	}
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	openTTY          = func() (ttyPair, error) { return openTTYDevices(ttyDevicePaths(runtime.GOOS)) }
	openDevice       = os.OpenFile
	termGetSize      = term.GetSize
	newResizeTicker  = func(d time.Duration) resizeTicker { return tickerAdapter{time.NewTicker(d)} }
)

type resizeTicker interface {
	C() <-chan time.Time
	Stop()
}

type tickerAdapter struct{ *time.Ticker }

func (a tickerAdapter) C() <-chan time.Time { return a.Ticker.C }

// gridSize is the cell grid a snapshot is rendered into.
type gridSize struct {
	Width  int
	Height int
}

// snapshotGrid fills each missing dimension from the terminal, then from the
// 80x24 default.
func snapshotGrid(width, height int) gridSize {
	var termW, termH int
	if width <= 0 || height <= 0 {
		termW, termH = probeTerminalSize()
	}
	return gridSize{
		Width:  firstPositive(width, termW, defaultSnapshotWidth),
		Height: firstPositive(height, termH, defaultSnapshotHeight),
	}
}

// probeTerminalSize asks stdout, stderr and stdin in turn and settles for
// $COLUMNS and $LINES when none of them is a terminal.
func probeTerminalSize() (width, height int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		w, h, err := termGetSize(int(f.Fd()))
		if err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	return positiveEnv("COLUMNS"), positiveEnv("LINES")
}

func positiveEnv(name string) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func firstPositive(candidates ...int) int {
	for _, n := range candidates {
		if n > 0 {
			return n
		}
	}
	return 0
}

// ttyPair holds the reopened terminal. in and out share one handle on unix.
type ttyPair struct {
	in  *os.File
	out *os.File
}

func (p ttyPair) Close() error {
	err := p.in.Close()
	if p.out != p.in {
		err = errors.Join(err, p.out.Close())
	}
	return err
}

func ttyDevicePaths(goos string) (in, out string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

// openTTYDevices opens both devices or neither.
func openTTYDevices(inPath, outPath string) (ttyPair, error) {
	in, err := openDevice(inPath, os.O_RDWR, 0)
	if err != nil {
		return ttyPair{}, fmt.Errorf("open %s: %w", inPath, err)
	}
	if outPath == inPath {
		return ttyPair{in: in, out: in}, nil
	}
	out, err := openDevice(outPath, os.O_RDWR, 0)
	if err != nil {
		_ = in.Close()
		return ttyPair{}, fmt.Errorf("open %s: %w", outPath, err)
	}
	return ttyPair{in: in, out: out}, nil
}

// ttyProgramOptions points Bubble Tea at the controlling terminal when stdin
// is redirected, as in `jv data.jsonl < /dev/null` under a job runner. Without
// a terminal it returns no options. release must run after the program exits.
func ttyProgramOptions() (opts []tea.ProgramOption, release func()) {
	if !stdinRedirected() {
		return nil, func() {}
	}
	tty, err := openTTY()
	if err != nil {
		return nil, func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	opts = []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(tty.in),
		tea.WithOutput(tty.out),
		watchTTYSize(ctx, tty.out),
	}
	return opts, func() {
		cancel()
		_ = tty.Close()
	}
}

// watchTTYSize polls out for size changes, since a reopened console does not
// get SIGWINCH on every platform.
func watchTTYSize(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		go pollTTYSize(ctx, out, func(msg tea.WindowSizeMsg) { p.Send(msg) })
	}
}

// pollTTYSize reports each distinct size of out until ctx ends.
func pollTTYSize(ctx context.Context, out *os.File, notify func(tea.WindowSizeMsg)) {
	ticker := newResizeTicker(resizePollInterval)
	defer ticker.Stop()

	var last tea.WindowSizeMsg
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}
		w, h, err := termGetSize(int(out.Fd()))
		if err != nil {
			continue
		}
		size := tea.WindowSizeMsg{Width: w, Height: h}
		if size == last {
			continue
		}
		last = size
		notify(size)
	}
}
