package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/opalcas/opal/internal/config"
	"github.com/opalcas/opal/internal/reader"
	"github.com/opalcas/opal/internal/session"
	"github.com/opalcas/opal/pkg/cas"
)

const (
	colorReset = "\x1b[0m"
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
)

type repl struct {
	cfg    config.Config
	logger *slog.Logger
	color  bool
	out    io.Writer

	store *session.Store
	sess  session.Session
	defs  map[cas.Symbol]cas.Expr
}

func (r *repl) init() error {
	store, err := session.Open(r.cfg.StorePath)
	if err != nil {
		return err
	}
	r.store = store
	sess, err := store.NewSession()
	if err != nil {
		store.Close()
		return err
	}
	r.sess = sess
	r.defs = map[cas.Symbol]cas.Expr{
		"identity": cas.Identity(),
	}
	r.logger.Debug("session started", "id", sess.ID)
	return r.reloadDefinitions()
}

func (r *repl) close() {
	if r.store != nil {
		r.store.Close()
	}
}

func (r *repl) reloadDefinitions() error {
	defs, err := r.store.Definitions()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.define(name, defs[name], false); err != nil {
			r.logger.Warn("skipping stored definition", "name", name, "error", err)
		}
	}
	return nil
}

func (r *repl) loop(in *bufio.Scanner) {
	fmt.Fprintln(r.out, "opal - operator algebra kernel. :help for commands.")
	for {
		fmt.Fprint(r.out, r.cfg.Prompt)
		if !in.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if err := r.store.AppendHistory(r.sess.ID, line); err != nil {
			r.logger.Warn("history write failed", "error", err)
		}
		if strings.HasPrefix(line, ":") {
			if quit := r.command(line); quit {
				return
			}
			continue
		}
		if err := r.evalAndPrint(line); err != nil {
			r.printError(err)
		}
	}
}

func (r *repl) command(line string) (quit bool) {
	fields := strings.SplitN(line, " ", 3)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(r.out, `commands:
  :let NAME EXPR    evaluate EXPR and bind it to NAME (persisted)
  :fn NAME (fn (PARAMS) BODY)   define a function (persisted)
  :defs             list persisted definitions
  :vars EXPR        free variables of EXPR
  :sort EXPR        canonical ordering of a list
  :history          inputs of this session
  :quit             leave
`)
	case ":let", ":fn":
		if len(fields) < 3 {
			r.printError(fmt.Errorf("usage: %s NAME EXPR", fields[0]))
			return false
		}
		name, source := fields[1], fields[2]
		if err := r.define(name, source, true); err != nil {
			r.printError(err)
			return false
		}
		fmt.Fprintf(r.out, "%s defined\n", name)
	case ":defs":
		defs, err := r.store.Definitions()
		if err != nil {
			r.printError(err)
			return false
		}
		names := make([]string, 0, len(defs))
		for name := range defs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.out, "%s = %s\n", name, defs[name])
		}
	case ":vars":
		if len(fields) < 2 {
			r.printError(fmt.Errorf("usage: :vars EXPR"))
			return false
		}
		node, err := reader.Read(strings.TrimPrefix(line, ":vars "))
		if err != nil {
			r.printError(err)
			return false
		}
		for _, v := range cas.Variables(node) {
			fmt.Fprintf(r.out, "%s ", v)
		}
		fmt.Fprintln(r.out)
	case ":sort":
		if len(fields) < 2 {
			r.printError(fmt.Errorf("usage: :sort EXPR"))
			return false
		}
		node, err := reader.Read(strings.TrimPrefix(line, ":sort "))
		if err != nil {
			r.printError(err)
			return false
		}
		fmt.Fprintln(r.out, cas.Sort(node).Inspect())
	case ":history":
		lines, err := r.store.History(r.sess.ID, 50)
		if err != nil {
			r.printError(err)
			return false
		}
		for _, l := range lines {
			fmt.Fprintln(r.out, l)
		}
	default:
		r.printError(fmt.Errorf("unknown command %s", fields[0]))
	}
	return false
}

// define parses and evaluates source, binds the result to name, and
// persists the source when persist is set. A (fn (params) body) form
// becomes a function value instead of being evaluated.
func (r *repl) define(name, source string, persist bool) error {
	node, err := reader.Read(source)
	if err != nil {
		return err
	}
	var value cas.Expr
	if params, body, ok := fnForm(node); ok {
		value = r.makeFunction(cas.Symbol(name), params, body)
	} else {
		value, err = r.evaluate(node)
		if err != nil {
			return err
		}
	}
	r.defs[cas.Symbol(name)] = value
	if persist {
		if err := r.store.SaveDefinition(r.sess.ID, name, source); err != nil {
			return err
		}
	}
	r.logger.Debug("definition bound", "name", name)
	return nil
}

// fnForm recognizes (fn (params...) body).
func fnForm(node cas.Expr) (params []cas.Symbol, body cas.Expr, ok bool) {
	form, isList := node.(cas.List)
	if !isList || len(form) != 3 {
		return nil, nil, false
	}
	if head, isSym := form[0].(cas.Symbol); !isSym || head != "fn" {
		return nil, nil, false
	}
	paramList, isList := form[1].(cas.List)
	if !isList {
		return nil, nil, false
	}
	for _, p := range paramList {
		sym, isSym := p.(cas.Symbol)
		if !isSym {
			return nil, nil, false
		}
		params = append(params, sym)
	}
	return params, form[2], true
}

func (r *repl) makeFunction(name cas.Symbol, params []cas.Symbol, body cas.Expr) *cas.Function {
	return cas.NewFunction(name, cas.Exactly(len(params)), func(args ...cas.Expr) (cas.Expr, error) {
		vars := r.varEnv()
		for i, p := range params {
			vars[p] = args[i]
		}
		return cas.Evaluate(body, vars, r.fnEnv())
	})
}

func (r *repl) varEnv() map[cas.Symbol]cas.Expr {
	vars := make(map[cas.Symbol]cas.Expr, len(r.defs))
	for name, value := range r.defs {
		vars[name] = value
	}
	return vars
}

// fnEnv builds the function environment: the four generic operations,
// folded left over their arguments, plus every definition that is itself
// applicable (functions and operators).
func (r *repl) fnEnv() map[cas.Symbol]cas.Applicable {
	fns := map[cas.Symbol]cas.Applicable{
		"add":  variadic(cas.Add),
		"sub":  variadic(cas.Sub),
		"mul":  variadic(cas.Mul),
		"expt": variadic(cas.Expt),
	}
	for name, value := range r.defs {
		if applicable, ok := value.(cas.Applicable); ok {
			fns[name] = applicable
		}
	}
	return fns
}

func variadic(op func(a, b cas.Expr) (cas.Expr, error)) cas.Applicable {
	return cas.Fn(func(args ...cas.Expr) (cas.Expr, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("need at least 2 arguments, got %d", len(args))
		}
		acc := args[0]
		for _, arg := range args[1:] {
			next, err := op(acc, arg)
			if err != nil {
				return nil, err
			}
			acc = next
		}
		return acc, nil
	})
}

func (r *repl) evaluate(node cas.Expr) (cas.Expr, error) {
	return cas.Evaluate(node, r.varEnv(), r.fnEnv())
}

func (r *repl) evalAndPrint(source string) error {
	node, err := reader.Read(source)
	if err != nil {
		return err
	}
	result, err := r.evaluate(node)
	if err != nil {
		return err
	}
	rendered := cas.Freeze(result).Inspect()
	if r.color {
		fmt.Fprintf(r.out, "%s%s%s\n", colorGreen, rendered, colorReset)
	} else {
		fmt.Fprintln(r.out, rendered)
	}
	r.logger.Debug("evaluated", "input", source, "result", rendered)
	return nil
}

func (r *repl) printError(err error) {
	if r.color {
		fmt.Fprintf(r.out, "%serror: %v%s\n", colorRed, err, colorReset)
	} else {
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
}
