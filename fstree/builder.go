package fstree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Policy decides what happens to lines the builder cannot apply.
type Policy uint8

const (
	// Permissive logs problems, records them as warnings and keeps going.
	// Malformed listings become empty placeholder nodes.
	Permissive Policy = iota
	// Strict aborts the build on the first problem.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// Warning is a problem a permissive build recovered from.
type Warning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %v (%q)", w.Line, w.Err, w.Text)
}

// Option configures Build and BuildReader.
type Option func(*builder)

// WithPolicy selects how malformed lines are handled. The default is
// Permissive.
func WithPolicy(p Policy) Option {
	return func(b *builder) {
		b.policy = p
	}
}

// WithLogger sets the logger warnings are reported to. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

type builder struct {
	tree     *Tree
	cursor   NodeID
	policy   Policy
	log      *zap.Logger
	line     int
	warnings []Warning
}

func newBuilder(opts []Option) *builder {
	b := &builder{
		tree:   NewTree(),
		cursor: RootID,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build replays a transcript and returns the reconstructed filesystem.
// A failed build never returns a partially built tree.
func Build(lines []string, opts ...Option) (*Filesystem, error) {
	b := newBuilder(opts)
	for _, line := range lines {
		if err := b.apply(line); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// BuildReader is Build for a newline-separated transcript read from r.
func BuildReader(r io.Reader, opts ...Option) (*Filesystem, error) {
	b := newBuilder(opts)
	sc := bufio.NewScanner(r)
	// Generous line limit; transcript lines are short, names are not bounded
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := b.apply(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return b.finish(), nil
}

func (b *builder) apply(text string) error {
	b.line++
	cmd, err := ParseLine(text)
	if err != nil {
		return b.reject(text, err)
	}

	switch cmd.Op {
	case OpBlank, OpLs, OpCdRoot:
		// the cursor starts at the root and ls output is self-describing
	case OpCdUp:
		parent, ok := b.tree.Parent(b.cursor)
		if !ok {
			return b.lineError(ErrAscendPastRoot)
		}
		b.cursor = parent
	case OpCd:
		child, created := b.tree.ensureChild(b.cursor, cmd.Name)
		if created {
			b.warn(text, fmt.Errorf("%w: %q", ErrImplicitDirectory, cmd.Name))
		}
		if err := b.declare(text, child, KindDir); err != nil {
			return err
		}
		b.cursor = child
	case OpDir:
		child, _ := b.tree.ensureChild(b.cursor, cmd.Name)
		return b.declare(text, child, KindDir)
	case OpFile:
		child, _ := b.tree.ensureChild(b.cursor, cmd.Name)
		if err := b.declare(text, child, KindFile); err != nil {
			return err
		}
		b.tree.nodes[child].size = cmd.Size
	}
	return nil
}

// declare records what a line says a node is. When the declaration disagrees
// with an earlier one the later declaration wins in permissive mode.
func (b *builder) declare(text string, id NodeID, kind Kind) error {
	n := &b.tree.nodes[id]
	if n.kind == KindUnknown || n.kind == kind {
		n.kind = kind
		return nil
	}
	err := fmt.Errorf("%w: %q listed as %s after %s", ErrKindConflict, n.name, kind, n.kind)
	if b.policy == Strict {
		return b.lineError(err)
	}
	b.warn(text, err)
	if kind == KindDir {
		n.size = 0
	}
	n.kind = kind
	return nil
}

// reject handles a line ParseLine could not classify.
func (b *builder) reject(text string, err error) error {
	if b.policy == Strict {
		return b.lineError(err)
	}
	b.warn(text, err)
	if !errors.Is(err, ErrMalformedLine) {
		return nil
	}
	if name := placeholderName(text); name != "" {
		child, created := b.tree.ensureChild(b.cursor, name)
		b.log.Debug("synthesized placeholder node",
			zap.Int("line", b.line),
			zap.String("path", b.tree.Path(child)),
			zap.Bool("created", created),
		)
	}
	return nil
}

func (b *builder) warn(text string, err error) {
	b.warnings = append(b.warnings, Warning{
		Line:   b.line,
		Text:   text,
		Reason: err.Error(),
		Err:    err,
	})
	b.log.Warn("transcript problem",
		zap.Int("line", b.line),
		zap.String("text", strings.TrimSuffix(text, "\r")),
		zap.String("cwd", b.tree.Path(b.cursor)),
		zap.Error(err),
	)
}

func (b *builder) lineError(err error) error {
	return fmt.Errorf("line %d: %w", b.line, err)
}

// finish discards the cursor and hands the tree over to a Filesystem.
func (b *builder) finish() *Filesystem {
	b.log.Debug("transcript replayed",
		zap.Int("lines", b.line),
		zap.Int("nodes", b.tree.Len()),
		zap.Int("warnings", len(b.warnings)),
		zap.String("policy", b.policy.String()),
	)
	fsys := &Filesystem{tree: b.tree, warnings: b.warnings}
	b.tree = nil
	b.cursor = noParent
	return fsys
}
