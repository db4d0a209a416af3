package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/ilregex/lang/scanner"
	"github.com/mna/ilregex/lang/token"
)

func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var sc scanner.Scanner
	sc.Init(data)
	for {
		tok, val, err := sc.Scan()
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		fmt.Fprintf(stdio.Stdout, "%s: %s", val.Pos, tok)
		if val.Raw != "" {
			fmt.Fprintf(stdio.Stdout, " %q", val.Raw)
		}
		fmt.Fprintln(stdio.Stdout)
		if tok == token.EOF {
			return nil
		}
	}
}
