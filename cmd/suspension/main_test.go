package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/akmonengine/suspension"
	"github.com/akmonengine/suspension/config"
	"github.com/akmonengine/suspension/input"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"letters", "wA", []string{"w", "a"}},
		{"arrows", "\x1b[A\x1b[D", []string{keyUp, keyLeft}},
		{"mixed", "d\x1b[Bq", []string{"d", keyDown, keyQuit}},
		{"ctrl-c", "\x03", []string{keyQuit}},
		{"space", " ", []string{keyRelease}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeKeys([]byte(tt.in)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeKeys(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadKeys(t *testing.T) {
	keyboard := input.NewKeyboard()
	ctx, cancel := context.WithCancel(context.Background())

	readKeys(strings.NewReader("w\x1b[Dd d"), keyboard, cancel)

	if ctx.Err() == nil {
		t.Error("readKeys should cancel once the input ends")
	}
	// w, left and d toggled on, space released everything, d toggled on again
	if got := keyboard.Snapshot(0); got != (input.State{Right: true}) {
		t.Errorf("Snapshot() = %+v, want only Right", got)
	}
}

func TestSummaryTable(t *testing.T) {
	s := config.Default()
	s.Simulation.Duration = 2

	out := summaryTable([]suspension.Result{
		suspension.Simulate(s, nil),
		{Name: "broken", Err: errors.New("bad spring")},
	})

	for _, want := range []string{"SCENARIO", "settle", "broken", "error: bad spring"} {
		if !strings.Contains(out, want) {
			t.Errorf("table misses %q:\n%s", want, out)
		}
	}
}

func TestApp_Run(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "trace.csv")

	var out bytes.Buffer
	app.Writer = &out
	defer func() { app.Writer = os.Stdout }()

	err := app.Run([]string{"suspension", "run", "--builtin", "settle", "--duration", "1", "--csv", csvPath})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "settle") {
		t.Errorf("run printed:\n%s", out.String())
	}
	if info, err := os.Stat(csvPath); err != nil || info.Size() == 0 {
		t.Errorf("no csv written: %v", err)
	}

	out.Reset()
	if err := app.Run([]string{"suspension", "list"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := strings.Fields(out.String()); !reflect.DeepEqual(got, config.BuiltinNames()) {
		t.Errorf("list printed %v", got)
	}

	if err := app.Run([]string{"suspension", "batch"}); err == nil {
		t.Error("batch without scenarios should fail")
	}
}
