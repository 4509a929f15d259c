package metadata

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	metaerrors "github.com/jacoelho/romdict/errors"
	"github.com/jacoelho/romdict/internal/markup"
	"github.com/jacoelho/romdict/validator"
)

type (
	// Attr is one tag attribute.
	Attr = markup.Attr
	// Attributes is the attribute list of a start tag.
	Attributes = markup.Attributes
	// Position is a 1-based line and column in the definition source.
	Position = markup.Position
	// Limits bounds the shape of accepted definition documents.
	Limits = markup.Limits
)

// Config configures a Builder.
type Config struct {
	// Validators resolves ValueValidator and SemanticValidator class
	// identifiers. Nil uses validator.Default().
	Validators *validator.Registry
	// Logger receives build diagnostics. Nil discards them.
	Logger *slog.Logger
	// Limits bounds the markup accepted by Parse.
	Limits Limits
}

// Builder turns a stream of tag events into a Dictionary. Recoverable
// errors are collected and parsing continues; a fatal error aborts the
// build and is returned by every later call.
type Builder struct {
	dict       *Dictionary
	validators *validator.Registry
	logger     *slog.Logger

	stack   []frame
	errs    metaerrors.DefinitionList
	pos     Position
	fatal   error
	sawRoot bool
	done    bool
}

type frame struct {
	state parseState
	label string
}

// NewBuilder returns a builder targeting a new dictionary.
func NewBuilder(cfg Config) *Builder {
	b := &Builder{
		dict:       NewDictionary(),
		validators: cfg.Validators,
		logger:     cfg.Logger,
	}
	if b.validators == nil {
		b.validators = validator.Default()
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	b.stack = append(b.stack, frame{state: &documentState{}})
	return b
}

// Parse reads a definition document and returns the finalized dictionary.
// A document with recoverable errors yields a metaerrors.DefinitionList
// holding all of them; malformed markup and fatal definition errors yield
// a *metaerrors.Fatal.
func Parse(r io.Reader, cfg Config) (*Dictionary, error) {
	b := NewBuilder(cfg)
	if err := markup.Read(r, b, cfg.Limits); err != nil {
		if metaerrors.IsFatal(err) {
			return nil, err
		}
		fatal := metaerrors.NewFatal(metaerrors.ErrMarkupParse, "malformed definition markup", err)
		var syntax *markup.SyntaxError
		if errors.As(err, &syntax) {
			fatal.Line, fatal.Column = syntax.Pos.Line, syntax.Pos.Column
		}
		b.logger.Error("definition parse failed", "err", err)
		return nil, fatal
	}
	return b.Finish()
}

// StartElement handles a start tag.
func (b *Builder) StartElement(name string, attrs Attributes, pos Position) error {
	if err := b.usable(); err != nil {
		return err
	}
	b.pos = pos
	parent := b.top()

	label := name
	if n := strings.TrimSpace(attrs.Value(attrName)); n != "" {
		label = name + "[" + n + "]"
	}

	if r, ok := parent.(rejecter); ok && r.rejected() {
		b.push(&skipState{}, label)
		return nil
	}
	next := b.child(parent, canonicalTag(name))
	if next == nil {
		b.push(&skipState{}, label)
		if _, atDocument := parent.(*documentState); atDocument {
			b.errorf(metaerrors.ErrInvalidRoot, "root tag must be %s, found %s", tagRoot, name)
		} else {
			b.errorf(metaerrors.ErrUnknownTag, "tag %s is not allowed here", name)
		}
		return nil
	}
	b.push(next, label)
	if err := next.begin(b, attrs); err != nil {
		return b.fail(err)
	}
	return nil
}

// CharData handles character data.
func (b *Builder) CharData(text []byte, pos Position) error {
	if err := b.usable(); err != nil {
		return err
	}
	if sink, ok := b.top().(textSink); ok {
		sink.appendText(text)
	}
	return nil
}

// EndElement handles an end tag.
func (b *Builder) EndElement(name string, pos Position) error {
	if err := b.usable(); err != nil {
		return err
	}
	b.pos = pos
	if len(b.stack) <= 1 {
		return b.fail(metaerrors.NewFatal(metaerrors.ErrMarkupParse, "unbalanced end tag "+name, nil))
	}
	state := b.top()
	err := state.end(b)
	b.stack = b.stack[:len(b.stack)-1]
	if err != nil {
		return b.fail(err)
	}
	return nil
}

// Finish ends the build. It returns the recoverable errors if any were
// recorded, otherwise it finalizes and returns the dictionary.
func (b *Builder) Finish() (*Dictionary, error) {
	if err := b.usable(); err != nil {
		return nil, err
	}
	b.done = true
	if len(b.stack) > 1 {
		return nil, b.fail(metaerrors.NewFatal(metaerrors.ErrMarkupParse, "definition document ended inside "+b.stack[len(b.stack)-1].label, nil))
	}
	if len(b.errs) > 0 {
		b.logger.Warn("definition has errors", "count", len(b.errs))
		return nil, b.errs
	}
	if !b.sawRoot {
		return nil, b.fail(metaerrors.NewFatal(metaerrors.ErrInvalidRoot, "definition document has no "+tagRoot+" root", nil))
	}
	if err := b.dict.Finalize(); err != nil {
		b.logger.Warn("dictionary finalize failed", "err", err)
		return nil, err
	}
	c := b.dict.Counts()
	b.logger.Info("dictionary finalized",
		"elements", c.Elements,
		"structures", c.Structures,
		"choiceSets", c.ChoiceSets,
		"classes", c.Classes,
	)
	return b.dict, nil
}

// Errors returns the recoverable errors recorded so far.
func (b *Builder) Errors() metaerrors.DefinitionList {
	return append(metaerrors.DefinitionList(nil), b.errs...)
}

func (b *Builder) usable() error {
	if b.fatal != nil {
		return b.fatal
	}
	if b.done {
		return metaerrors.NewFatal(metaerrors.ErrAlreadyFinalized, "builder already finished", nil)
	}
	return nil
}

func (b *Builder) top() parseState { return b.stack[len(b.stack)-1].state }

func (b *Builder) push(s parseState, label string) {
	b.stack = append(b.stack, frame{state: s, label: label})
}

// path renders the open tags, for example
// "/ReportMetaData/Element[Label]/Property[text]".
func (b *Builder) path() string {
	var sb strings.Builder
	for _, f := range b.stack[1:] {
		sb.WriteByte('/')
		sb.WriteString(f.label)
	}
	return sb.String()
}

func (b *Builder) errorf(code metaerrors.ErrorCode, format string, args ...any) {
	d := metaerrors.NewDefinitionf(code, b.path(), format, args...)
	d.Line, d.Column = b.pos.Line, b.pos.Column
	b.errs = append(b.errs, d)
	b.logger.Debug("definition error", "code", d.Code, "path", d.Path, "line", d.Line, "msg", d.Message)
}

func (b *Builder) fail(err error) error {
	var fatal *metaerrors.Fatal
	if errors.As(err, &fatal) {
		if fatal.Path == "" {
			fatal.Path = b.path()
		}
		if fatal.Line == 0 {
			fatal.Line, fatal.Column = b.pos.Line, b.pos.Column
		}
	}
	b.fatal = err
	b.logger.Error("definition build aborted", "err", err)
	return err
}

// require returns the trimmed attribute value, recording code when it is
// missing or blank.
func (b *Builder) require(attrs Attributes, name string, code metaerrors.ErrorCode) (string, bool) {
	v := attr(attrs, name)
	if v == "" {
		b.errorf(code, "attribute %s is required", name)
		return "", false
	}
	return v, true
}

func attr(attrs Attributes, name string) string {
	return strings.TrimSpace(attrs.Value(name))
}

// attrBool reads a boolean attribute; anything other than "true" or
// "false" yields def.
func attrBool(attrs Attributes, name string, def bool) bool {
	v, ok := attrBoolSet(attrs, name)
	if !ok {
		return def
	}
	return v
}

func attrBoolSet(attrs Attributes, name string) (bool, bool) {
	switch strings.ToLower(attr(attrs, name)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
