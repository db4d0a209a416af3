package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/ilregex/internal/instrtext"
	"github.com/mna/ilregex/lang/machine"
)

func (c *Cmd) Match(_ context.Context, stdio mainer.Stdio, args []string) error {
	patData, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	insns, err := instrtext.Parse(f)
	if err != nil {
		return err
	}

	re, err := machine.New(string(patData), machine.Options{SwapGreedy: c.SwapGreedy})
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	res, ok, err := re.Match(insns, 0, 0, len(insns))
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	if !ok {
		fmt.Fprintln(stdio.Stdout, "no match")
		return nil
	}
	for {
		printMatch(stdio, res)
		if !c.All {
			return nil
		}
		res, ok, err = re.NextMatch(insns, res, 0, len(insns))
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		if !ok {
			return nil
		}
	}
}

func printMatch(stdio mainer.Stdio, res *machine.MatchResult) {
	fmt.Fprintf(stdio.Stdout, "match [%d, %d)\n", res.Start, res.End)
	for i, g := range res.Groups() {
		if !g.Matched {
			continue
		}
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("%d", i)
		}
		fmt.Fprintf(stdio.Stdout, "  group %s: [%d, %d)\n", name, g.Start, g.End)
	}
	for i, o := range res.Operands() {
		if !o.Matched {
			continue
		}
		name := o.Name
		if name == "" {
			name = fmt.Sprintf("%d", i)
		}
		fmt.Fprintf(stdio.Stdout, "  operand %s: %s\n", name, o.Value)
	}
}
