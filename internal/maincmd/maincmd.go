// Package maincmd implements the ilregex command-line tool's command
// dispatch: each exported method on Cmd matching the (context, Stdio,
// []string) error shape becomes a subcommand, named after the method in
// lowercase, mirroring the reflection-based dispatch mna/mainer-based tools
// use to keep main.go itself free of command-specific logic.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "ilregex"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Compiles and runs ilregex patterns against CIL-like instruction streams.

The <command> can be one of:
       tokenize <pattern>        Scan a pattern file and print its tokens.
       parse <pattern>           Parse a pattern file and print its checks.
       compile <pattern>         Compile a pattern file and print the
                                 resulting program (disassembly).
       match <pattern> <insns>   Compile a pattern file and match it
                                 against the instruction listing in <insns>,
                                 printing the first match's captures.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <match> command are:
       --swap-greedy             Invert every quantifier's greediness.
       --all                     Print every non-overlapping match instead
                                 of only the first.
`, binName)
)

// Cmd is the parsed command line, and the receiver of every subcommand
// method.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	SwapGreedy bool `flag:"swap-greedy"`
	All        bool `flag:"all"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	switch cmdName {
	case "tokenize", "parse", "compile":
		if len(c.args[1:]) != 1 {
			return fmt.Errorf("%s: exactly one pattern file must be provided", cmdName)
		}
	case "match":
		if len(c.args[1:]) != 2 {
			return fmt.Errorf("match: a pattern file and an instruction listing file must be provided")
		}
	}

	if (c.flags["swap-greedy"] || c.flags["all"]) && cmdName != "match" {
		return fmt.Errorf("%s: flags --swap-greedy and --all only apply to 'match'", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		// flags also accept an environment-variable override, e.g.
		// ILREGEX_SWAP_GREEDY=1, so CI pipelines can pin match options
		// without rewriting the invocation.
		EnvVars:   true,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", c.args[0], err)
		return mainer.Failure
	}
	return mainer.Success
}

func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
