// Package unit bundles the per-compilation state: one arena, the intern table
// and keyword registry built on it, a lexer, an AST builder and the
// diagnostics collected while scanning. Units share nothing, so separate
// units may be used from separate goroutines.
package unit

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/revision-lang/revision/internal/arena"
	"github.com/revision-lang/revision/internal/ast"
	"github.com/revision-lang/revision/internal/config"
	"github.com/revision-lang/revision/internal/diag"
	"github.com/revision-lang/revision/internal/intern"
	"github.com/revision-lang/revision/internal/keyword"
	"github.com/revision-lang/revision/internal/lexer"
)

type Option func(*options)

type options struct {
	reporter diag.Reporter
	logger   log.Logger
}

// WithReporter forwards every diagnostic to r in addition to the unit's own
// collector.
func WithReporter(r diag.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithLogger sets the logger for unit lifecycle events. The default is the
// root logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Unit is a single compilation unit. It is not safe for concurrent use.
type Unit struct {
	arena    *arena.Arena
	table    *intern.Table
	keywords *keyword.Registry
	lexer    *lexer.Lexer
	builder  *ast.Builder
	diags    *diag.Collector
	log      log.Logger

	filename string
	released bool
}

// New creates a unit configured by cfg. The keyword registry is initialized
// before New returns.
func New(cfg config.Unit, opts ...Option) *Unit {
	o := options{logger: log.Root()}
	for _, opt := range opts {
		opt(&o)
	}

	var a *arena.Arena
	if cfg.ArenaBlockSize > 0 {
		a = arena.NewWithBlockSize(cfg.ArenaBlockSize)
	} else {
		a = arena.New()
	}

	u := &Unit{
		arena: a,
		diags: diag.NewCollector(),
		log:   o.logger,
	}
	u.table = intern.NewTable(a)
	u.keywords = keyword.NewRegistry(u.table)
	u.lexer = lexer.New(u.table, u.keywords, lexer.WithReporter(diag.Multi(u.diags, o.reporter)))
	u.builder = ast.NewBuilder(a)
	return u
}

// Load points the lexer at src and scans the first token. Diagnostics from a
// previous Load are discarded; names interned earlier stay valid.
func (u *Unit) Load(filename, src string) {
	u.mustBeLive()
	u.filename = filename
	u.diags.Reset()
	u.lexer.Init(filename, src)
	u.log.Debug("Loaded source", "file", filename, "bytes", len(src))
}

// Tokenize loads src and returns every token through EOF.
func (u *Unit) Tokenize(filename, src string) []lexer.Token {
	u.mustBeLive()
	u.filename = filename
	u.diags.Reset()
	toks := u.lexer.Tokenize(filename, src)
	st := u.arena.Stats()
	u.log.Debug("Tokenized source", "file", filename, "tokens", len(toks),
		"errors", u.diags.ErrorCount(), "names", u.table.Len(), "arena", st.Used)
	return toks
}

// Release frees the arena. Every name, node and token obtained from the unit
// becomes invalid and the unit must not be used again.
func (u *Unit) Release() {
	if u.released {
		return
	}
	st := u.arena.Stats()
	u.log.Debug("Released unit", "file", u.filename, "blocks", st.Blocks,
		"reserved", st.Reserved, "used", st.Used, "objects", st.Objects)
	u.arena.Release()
	u.table = nil
	u.keywords = nil
	u.lexer = nil
	u.builder = nil
	u.released = true
}

func (u *Unit) mustBeLive() {
	if u.released {
		panic("unit: use after Release")
	}
}

// Diagnostics returns the diagnostics reported since the last Load.
func (u *Unit) Diagnostics() []diag.Diagnostic { return u.diags.Diagnostics() }

// HasErrors reports whether any error diagnostic was reported since the
// last Load.
func (u *Unit) HasErrors() bool { return u.diags.HasErrors() }

// Flush replays the collected diagnostics to r and clears them.
func (u *Unit) Flush(r diag.Reporter) { u.diags.Flush(r) }

func (u *Unit) Filename() string { return u.filename }

func (u *Unit) Lexer() *lexer.Lexer {
	u.mustBeLive()
	return u.lexer
}

func (u *Unit) Builder() *ast.Builder {
	u.mustBeLive()
	return u.builder
}

func (u *Unit) Table() *intern.Table {
	u.mustBeLive()
	return u.table
}

func (u *Unit) Keywords() *keyword.Registry {
	u.mustBeLive()
	return u.keywords
}

func (u *Unit) Arena() *arena.Arena {
	u.mustBeLive()
	return u.arena
}
