package main

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opalcas/opal/internal/config"
	"github.com/opalcas/opal/internal/reader"
	"github.com/opalcas/opal/pkg/cas"
)

func newTestREPL(t *testing.T) *repl {
	t.Helper()
	cfg := config.Default()
	cfg.StorePath = filepath.Join(t.TempDir(), "opal.db")
	r := &repl{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:    &bytes.Buffer{},
	}
	if err := r.init(); err != nil {
		t.Fatalf("init error: %v", err)
	}
	t.Cleanup(r.close)
	return r
}

func TestREPLEvaluatesArithmetic(t *testing.T) {
	r := newTestREPL(t)
	tests := []struct {
		input string
		want  string
	}{
		{"(add 1 2)", "3"},
		{"(add 1 2 3 4)", "10"},
		{"(mul 2 (add 1 2))", "6"},
		{"(expt 2 10)", "1024"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			buf := &bytes.Buffer{}
			r.out = buf
			if err := r.evalAndPrint(tt.input); err != nil {
				t.Fatalf("eval %q: %v", tt.input, err)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("eval %q = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestREPLDefinitionsPersistAndReload(t *testing.T) {
	r := newTestREPL(t)
	if err := r.define("three", "(add 1 2)", true); err != nil {
		t.Fatalf("define error: %v", err)
	}
	if err := r.define("sq", "(fn (x) (mul x x))", true); err != nil {
		t.Fatalf("define fn error: %v", err)
	}

	// A second repl over the same store sees both definitions.
	r2 := &repl{
		cfg:    r.cfg,
		logger: r.logger,
		out:    &bytes.Buffer{},
	}
	if err := r2.init(); err != nil {
		t.Fatalf("second init error: %v", err)
	}
	defer r2.close()

	if got := r2.defs["three"]; got != cas.Expr(cas.Int(3)) {
		t.Errorf("reloaded three = %v, want 3", got)
	}
	got, err := r2.evaluate(mustRead(t, "(sq 5)"))
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}
	if got != cas.Expr(cas.Int(25)) {
		t.Errorf("(sq 5) = %v, want 25", got)
	}
}

func TestREPLOperatorWorkflow(t *testing.T) {
	r := newTestREPL(t)
	// Bind an operator built from the ring and apply it to a function.
	if err := r.define("sq", "(fn (x) (mul x x))", false); err != nil {
		t.Fatalf("define sq: %v", err)
	}
	if err := r.define("twice", "(add identity identity)", false); err != nil {
		t.Fatalf("define twice: %v", err)
	}
	if !cas.IsOperator(r.defs["twice"]) {
		t.Fatalf("twice = %T, want an operator", r.defs["twice"])
	}
	scaled, err := r.evaluate(mustRead(t, "(twice sq)"))
	if err != nil {
		t.Fatalf("applying operator: %v", err)
	}
	f, ok := scaled.(*cas.Function)
	if !ok {
		t.Fatalf("(twice sq) = %T, want a function", scaled)
	}
	got, err := f.Apply(cas.Int(3))
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got != cas.Expr(cas.Int(18)) { // 9 + 9
		t.Errorf("(twice sq)(3) = %v, want 18", got)
	}
}

func TestREPLCommandsRequireArguments(t *testing.T) {
	r := newTestREPL(t)
	for _, cmd := range []string{":sort", ":vars", ":let", ":fn"} {
		t.Run(cmd, func(t *testing.T) {
			buf := &bytes.Buffer{}
			r.out = buf
			if quit := r.command(cmd); quit {
				t.Fatalf("%s quit the repl", cmd)
			}
			if got := buf.String(); !strings.Contains(got, "usage:") {
				t.Errorf("%s output = %q, want a usage error", cmd, got)
			}
		})
	}
}

func TestFnForm(t *testing.T) {
	params, body, ok := fnForm(mustRead(t, "(fn (x y) (add x y))"))
	if !ok || len(params) != 2 || params[0] != "x" || params[1] != "y" {
		t.Fatalf("fnForm = %v %v %v", params, body, ok)
	}
	if _, _, ok := fnForm(mustRead(t, "(add 1 2)")); ok {
		t.Error("fnForm accepted a non-fn form")
	}
}

func mustRead(t *testing.T, source string) cas.Expr {
	t.Helper()
	node, err := reader.Read(source)
	if err != nil {
		t.Fatalf("read %q: %v", source, err)
	}
	return node
}
