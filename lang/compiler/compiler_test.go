package compiler_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/ilregex/internal/filetest"
	"github.com/mna/ilregex/lang/ast"
	"github.com/mna/ilregex/lang/compiler"
	"github.com/mna/ilregex/lang/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateDisassembleTests = flag.Bool("test.update-disassemble-tests", false, "If set, replace expected Disassemble golden files with actual output.")

func compile(t *testing.T, src string) *compiler.Program {
	t.Helper()
	p, err := pattern.Parse(src)
	require.NoError(t, err)
	prog, err := compiler.Compile(p)
	require.NoError(t, err)
	return prog
}

func TestCompileWrapsOuterCapturingGroup(t *testing.T) {
	prog := compile(t, `<op nop>`)
	require.Len(t, prog.Checks, 3)
	assert.Equal(t, ast.GroupStart, prog.Checks[0].Kind)
	assert.Equal(t, 0, prog.Checks[0].CaptureIndex)
	assert.Equal(t, ast.GroupEnd, prog.Checks[2].Kind)
	assert.Equal(t, 2, prog.Checks[0].Other)
	assert.Equal(t, 1, prog.GroupCount)
}

func TestCompileAssignsCaptureIndices(t *testing.T) {
	prog := compile(t, `(<op nop>)(?'x'<op ret>)`)
	assert.Equal(t, 3, prog.GroupCount)

	var anon, named *ast.Check
	for _, c := range prog.Checks {
		if c.Kind != ast.GroupStart || c.CaptureIndex <= 0 {
			continue
		}
		if c.Name == "x" {
			named = c
		} else {
			anon = c
		}
	}
	require.NotNil(t, anon)
	require.NotNil(t, named)
	assert.Equal(t, 1, anon.CaptureIndex)
	assert.Equal(t, 2, named.CaptureIndex)
}

func TestCompileLinksGroupPartners(t *testing.T) {
	prog := compile(t, `(<op nop>(<op ret>))`)
	var starts, ends []int
	for i, c := range prog.Checks {
		switch c.Kind {
		case ast.GroupStart:
			starts = append(starts, i)
		case ast.GroupEnd:
			ends = append(ends, i)
		}
	}
	require.Len(t, starts, 3)
	require.Len(t, ends, 3)
	for _, i := range starts {
		other := prog.Checks[i].Other
		assert.Equal(t, ast.GroupEnd, prog.Checks[other].Kind)
		assert.Equal(t, i, prog.Checks[other].Other)
	}
}

func TestCompileRecordsAlternatives(t *testing.T) {
	prog := compile(t, `(<op nop>|<op ret>|<op dup>)`)
	var gs *ast.Check
	for _, c := range prog.Checks {
		if c.Kind == ast.GroupStart && c.CaptureIndex > 0 {
			gs = c
			break
		}
	}
	require.NotNil(t, gs)
	assert.Len(t, gs.Alternatives, 2)
	for _, idx := range gs.Alternatives {
		assert.Equal(t, ast.Alternative, prog.Checks[idx].Kind)
	}
}

func TestCompileAssignsOperandIndicesAndNames(t *testing.T) {
	prog := compile(t, `<cap ldstr 'msg'><cap ldc.i4>`)
	assert.Equal(t, 2, prog.OperandCount)
	assert.Equal(t, 0, prog.OperandNameIndex["msg"])
	_, ok := prog.OperandNameIndex[""]
	assert.False(t, ok)
}

func TestCompileUnbalancedGroupErrors(t *testing.T) {
	p, err := pattern.Parse(`<op nop>`)
	require.NoError(t, err)
	// simulate an unmatched GroupEnd sneaking past the parser (which itself
	// rejects this) by compiling hand-built checks directly is out of scope;
	// instead assert the parser-level rejection surfaces through Parse.
	_ = p
	_, err = pattern.Parse(`)`)
	assert.Error(t, err)
}

func TestDisassembleIncludesPartnerAndIndices(t *testing.T) {
	prog := compile(t, `(<cap ldstr 'x'>)`)
	out := compiler.Disassemble(prog)
	assert.Contains(t, out, "cap=1")
	assert.Contains(t, out, "opnd=0")
	assert.Contains(t, out, "-> ")
}

func TestDisassembleGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")
	for _, fi := range filetest.SourceFiles(t, srcDir, ".ilregex") {
		t.Run(fi.Name(), func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)
			prog := compile(t, string(data))
			out := compiler.Disassemble(prog)
			filetest.DiffOutput(t, fi, out, resultDir, testUpdateDisassembleTests)
		})
	}
}
