package unit

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revision-lang/revision/internal/ast"
	"github.com/revision-lang/revision/internal/config"
	"github.com/revision-lang/revision/internal/diag"
	"github.com/revision-lang/revision/internal/keyword"
	"github.com/revision-lang/revision/internal/lexer"
)

func quiet() Option {
	l := log.New()
	l.SetHandler(log.DiscardHandler())
	return WithLogger(l)
}

func TestNewInitializesKeywords(t *testing.T) {
	u := New(config.Unit{}, quiet())
	defer u.Release()

	kw := u.Keywords()
	require.Equal(t, len(keyword.All()), kw.Len())
	for _, k := range keyword.All() {
		n, ok := u.Table().Lookup(k.String())
		require.True(t, ok, k.String())
		assert.True(t, kw.IsKeyword(n), k.String())
	}
}

func TestLoadPrimesLexer(t *testing.T) {
	u := New(config.Unit{}, quiet())
	defer u.Release()

	u.Load("a.rv", "while x")
	lx := u.Lexer()
	assert.True(t, lx.IsKeyword(u.Keywords().Name(keyword.While)))
	lx.NextToken()
	assert.Equal(t, lexer.NAME, lx.Token().Type)
	assert.Equal(t, "x", lx.Token().Text())
	assert.Equal(t, "a.rv", u.Filename())
}

func TestDiagnosticsAreCollectedAndForwarded(t *testing.T) {
	var forwarded []diag.Diagnostic
	fwd := diag.ReporterFunc(func(d diag.Diagnostic) { forwarded = append(forwarded, d) })

	u := New(config.Unit{}, quiet(), WithReporter(fwd))
	defer u.Release()

	toks := u.Tokenize("bad.rv", "x = $;\n'")
	assert.Equal(t, lexer.EOF, toks[len(toks)-1].Type)
	require.True(t, u.HasErrors())
	require.Len(t, u.Diagnostics(), 2)
	assert.Len(t, forwarded, 2)
	assert.Equal(t, 1, u.Diagnostics()[0].Span.Line)
	assert.Equal(t, 2, u.Diagnostics()[1].Span.Line)

	// A new load starts with a clean slate.
	u.Load("good.rv", "x = 1;")
	assert.False(t, u.HasErrors())
	assert.Empty(t, u.Diagnostics())
}

func TestFlushReplaysInOrder(t *testing.T) {
	u := New(config.Unit{}, quiet())
	defer u.Release()

	u.Tokenize("f.rv", "$ @ `")
	sink := diag.NewCollector()
	u.Flush(sink)
	assert.Equal(t, 2, sink.Len())
	assert.Empty(t, u.Diagnostics())
}

func TestArenaBlockSizeIsHonored(t *testing.T) {
	u := New(config.Unit{ArenaBlockSize: 1 << 20}, quiet())
	defer u.Release()
	assert.Equal(t, 1<<20, u.Arena().BlockSize())
}

func TestBuilderSharesUnitArena(t *testing.T) {
	u := New(config.Unit{}, quiet())
	defer u.Release()

	toks := u.Tokenize("e.rv", "a + b")
	require.Len(t, toks, 4)
	b := u.Builder()
	e := b.NewBinaryExpr(toks[1].Span.Pos, toks[1].Type,
		b.NewNameExpr(toks[0].Span.Pos, toks[0].Name),
		b.NewNameExpr(toks[2].Span.Pos, toks[2].Name))
	assert.Equal(t, "(+ a b)", ast.Print(e))
	assert.Positive(t, u.Arena().Stats().Objects)
}

func TestReleaseInvalidatesUnit(t *testing.T) {
	u := New(config.Unit{}, quiet())
	u.Load("r.rv", "x")
	u.Release()
	u.Release()

	assert.Panics(t, func() { u.Load("r.rv", "y") })
	assert.Panics(t, func() { u.Lexer() })
	assert.Panics(t, func() { u.Table() })
}

func TestUnitsAreIndependent(t *testing.T) {
	const n = 8
	var wg sync.WaitGroup
	results := make([][]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := New(config.Unit{ArenaBlockSize: 4096}, quiet())
			defer u.Release()

			var src strings.Builder
			for j := 0; j < 200; j++ {
				fmt.Fprintf(&src, "v%d_%d = %d; ", i, j, j)
			}
			var names []string
			for _, tok := range u.Tokenize(fmt.Sprintf("u%d.rv", i), src.String()) {
				if tok.Type == lexer.NAME {
					names = append(names, tok.Text())
				}
			}
			assert.False(t, u.HasErrors())
			results[i] = names
		}(i)
	}
	wg.Wait()

	for i, names := range results {
		require.Len(t, names, 200)
		assert.Equal(t, fmt.Sprintf("v%d_0", i), names[0])
		assert.Equal(t, fmt.Sprintf("v%d_199", i), names[199])
	}
}
