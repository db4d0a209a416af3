package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/ilregex/lang/pattern"
)

func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	pat, err := pattern.FromFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	for i, ch := range pat.Checks() {
		fmt.Fprintf(stdio.Stdout, "%4d  %s%s\n", i, ch.String(), ch.Quant.String())
	}
	return nil
}
