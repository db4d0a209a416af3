package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/ilregex/lang/compiler"
	"github.com/mna/ilregex/lang/pattern"
)

func (c *Cmd) Compile(_ context.Context, stdio mainer.Stdio, args []string) error {
	pat, err := pattern.FromFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	prog, err := compiler.Compile(pat)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprint(stdio.Stdout, compiler.Disassemble(prog))
	return nil
}
