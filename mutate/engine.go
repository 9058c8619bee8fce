// Package mutate performs structural, idempotent edits to existing text
// source files: inserting, replacing, or removing lines and whole nested
// blocks, without a language parser. Every operation reads the whole file
// through a chisel.Adapter, locates its target with the scan package, builds
// a new line sequence, and writes the full content back through the same
// adapter. If the target cannot be located, the file is left unmodified and
// a *chisel.MissingTargetError is returned.
package mutate

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chiselfs/chisel"
	"github.com/chiselfs/chisel/config"
	"github.com/chiselfs/chisel/internal/util"
	"github.com/chiselfs/chisel/scan"
)

// Engine orchestrates read → locate → transform → write operations. A single
// Engine is not safe for concurrent callers sharing one adapter instance.
type Engine struct {
	fs          chisel.Adapter
	cfg         *config.Config
	classHeader scan.Target
	log         zerolog.Logger
}

// New creates an Engine over the given adapter. A nil cfg uses defaults.
func New(fs chisel.Adapter, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Engine{
		fs:          fs,
		cfg:         cfg,
		classHeader: scan.Regexp(regexp.MustCompile(cfg.ClassHeader)),
		log:         util.GetLogger("mutate"),
	}
}

// document is a file loaded into line form, remembering its own terminator
// and whether the original content ended with one.
type document struct {
	lines    []string
	term     string
	trailing bool
}

func (e *Engine) load(path string) (*document, error) {
	data, err := e.fs.Read(path)
	if err != nil {
		return nil, err
	}
	content := string(data)
	term := e.cfg.Terminator
	// Sniff the terminator from the first line break only, so a stray
	// literal "\r\n" later in an LF file does not flip the whole file.
	if i := strings.Index(content, "\n"); i > 0 && content[i-1] == '\r' {
		term = "\r\n"
	}
	return &document{
		lines:    chisel.SplitLines(data, term),
		term:     term,
		trailing: strings.HasSuffix(content, term),
	}, nil
}

func (e *Engine) save(path string, d *document) error {
	if len(d.lines) == 0 {
		return e.fs.Write(path, []byte{})
	}
	out := strings.Join(d.lines, d.term)
	if d.trailing {
		out += d.term
	}
	return e.fs.Write(path, []byte(out))
}

// splitContent breaks a single logical edit into the lines it expands to,
// so multi-line content splices in as a contiguous run.
func splitContent(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	parts := strings.Split(content, "\n")
	for i := range parts {
		parts[i] = strings.TrimSuffix(parts[i], "\r")
	}
	return parts
}

func insertAt(lines []string, at int, add []string) []string {
	out := make([]string, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	out = append(out, lines[at:]...)
	return out
}

func (e *Engine) missing(path string, target scan.Target) error {
	err := &chisel.MissingTargetError{Path: path, Target: target.String()}
	e.log.Debug().Str("path", path).Str("target", target.String()).Msg("Target not found")
	return err
}

func (e *Engine) opLogger(op, path string) zerolog.Logger {
	return e.log.With().Str("op", op).Str("id", uuid.New().String()).Str("path", path).Logger()
}

// Unshift prepends line as the new first line of the file.
func (e *Engine) Unshift(path, line string) error {
	logger := e.opLogger("unshift", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	d.lines = insertAt(d.lines, 0, splitContent(line))
	logger.Debug().Msg("Prepended line(s)")
	return e.save(path, d)
}

// Append appends line as the new last line of the file. If line carries its
// own leading terminator, it is not doubled into a blank line: append is
// idempotent with respect to trailing terminators.
func (e *Engine) Append(path, line string) error {
	logger := e.opLogger("append", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	line = strings.TrimPrefix(line, "\r\n")
	line = strings.TrimPrefix(line, "\n")
	d.lines = append(d.lines, splitContent(line)...)
	logger.Debug().Msg("Appended line(s)")
	return e.save(path, d)
}

// ReplaceFirstLine replaces the first line matching target with replacement,
// which may expand into multiple lines.
func (e *Engine) ReplaceFirstLine(path string, target scan.Target, replacement string) error {
	return e.replaceLine(path, target, replacement, scan.FindFirst)
}

// ReplaceLastLine replaces the last line matching target with replacement.
func (e *Engine) ReplaceLastLine(path string, target scan.Target, replacement string) error {
	return e.replaceLine(path, target, replacement, scan.FindLast)
}

func (e *Engine) replaceLine(path string, target scan.Target, replacement string, find func([]string, scan.Target) int) error {
	logger := e.opLogger("replace_line", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	idx := find(d.lines, target)
	if idx == -1 {
		return e.missing(path, target)
	}
	d.lines = insertAt(append(d.lines[:idx:idx], d.lines[idx+1:]...), idx, splitContent(replacement))
	logger.Debug().Int("line", idx).Msg("Replaced line")
	return e.save(path, d)
}

// InjectBefore inserts content immediately before the first line matching
// target.
func (e *Engine) InjectBefore(path string, target scan.Target, content string) error {
	return e.inject(path, target, content, scan.FindFirst, 0)
}

// InjectBeforeLast inserts content immediately before the last line matching
// target.
func (e *Engine) InjectBeforeLast(path string, target scan.Target, content string) error {
	return e.inject(path, target, content, scan.FindLast, 0)
}

// InjectAfter inserts content immediately after the first line matching
// target.
func (e *Engine) InjectAfter(path string, target scan.Target, content string) error {
	return e.inject(path, target, content, scan.FindFirst, 1)
}

// InjectAfterLast inserts content immediately after the last line matching
// target.
func (e *Engine) InjectAfterLast(path string, target scan.Target, content string) error {
	return e.inject(path, target, content, scan.FindLast, 1)
}

func (e *Engine) inject(path string, target scan.Target, content string, find func([]string, scan.Target) int, offset int) error {
	logger := e.opLogger("inject_line", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	idx := find(d.lines, target)
	if idx == -1 {
		return e.missing(path, target)
	}
	d.lines = insertAt(d.lines, idx+offset, splitContent(content))
	logger.Debug().Int("line", idx+offset).Msg("Injected line(s)")
	return e.save(path, d)
}

// RemoveLine deletes the first line matching target.
func (e *Engine) RemoveLine(path string, target scan.Target) error {
	logger := e.opLogger("remove_line", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	idx := scan.FindFirst(d.lines, target)
	if idx == -1 {
		return e.missing(path, target)
	}
	d.lines = append(d.lines[:idx:idx], d.lines[idx+1:]...)
	logger.Debug().Int("line", idx).Msg("Removed line")
	return e.save(path, d)
}

// findBlock locates the first line matching target that opens a block with
// the default markers, plus the line where cumulative depth returns to zero.
func (e *Engine) findBlock(lines []string, target scan.Target) (start, end int) {
	start = scan.FindBlockStart(lines, target, e.cfg.BlockOpen)
	if start == -1 {
		return -1, -1
	}
	end = scan.MatchingBlockEnd(lines, start, e.cfg.BlockOpen, e.cfg.BlockClose)
	if end == -1 {
		return -1, -1
	}
	return start, end
}

// InjectAtBlockTop inserts content as the new first line inside the body of
// the block opened by the first line matching target, immediately after the
// opening line. Nested blocks of the same kind are handled by the
// depth-counting scan.
func (e *Engine) InjectAtBlockTop(path string, target scan.Target, content string) error {
	logger := e.opLogger("inject_block_top", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	start, end := e.findBlock(d.lines, target)
	if start == -1 {
		return e.missing(path, target)
	}
	d.lines = insertAt(d.lines, start+1, splitContent(content))
	logger.Debug().Int("start", start).Int("end", end).Msg("Injected at block top")
	return e.save(path, d)
}

// InjectAtBlockBottom inserts content as the new last line inside the block's
// body, immediately before the computed closing line.
func (e *Engine) InjectAtBlockBottom(path string, target scan.Target, content string) error {
	logger := e.opLogger("inject_block_bottom", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	start, end := e.findBlock(d.lines, target)
	if start == -1 {
		return e.missing(path, target)
	}
	d.lines = insertAt(d.lines, end, splitContent(content))
	logger.Debug().Int("start", start).Int("end", end).Msg("Injected at block bottom")
	return e.save(path, d)
}

// RemoveBlock deletes every line from the block's opening line through its
// computed closing line, inclusive, including nested content.
func (e *Engine) RemoveBlock(path string, target scan.Target) error {
	logger := e.opLogger("remove_block", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	start, end := e.findBlock(d.lines, target)
	if start == -1 {
		return e.missing(path, target)
	}
	d.lines = append(d.lines[:start:start], d.lines[end+1:]...)
	logger.Debug().Int("start", start).Int("end", end).Msg("Removed block")
	return e.save(path, d)
}

// InjectAtClassBottom inserts content as the new last line of the body of the
// class/module-like construct enclosing the first line matching target,
// before its closing line. The closing boundary comes from a fresh forward
// depth scan over the class marker set, so nested blocks inside the construct
// are not mistaken for its end. Inserted lines are indented one level past
// the header line.
func (e *Engine) InjectAtClassBottom(path string, target scan.Target, content string) error {
	logger := e.opLogger("inject_class_bottom", path)
	d, err := e.load(path)
	if err != nil {
		return err
	}
	idx := scan.FindFirst(d.lines, target)
	if idx == -1 {
		return e.missing(path, target)
	}
	header := scan.EnclosingBlockStart(d.lines, idx, e.classHeader)
	if header == -1 {
		return e.missing(path, target)
	}
	end := scan.MatchingBlockEnd(d.lines, header, e.cfg.ClassOpen, e.cfg.ClassClose)
	if end == -1 {
		return e.missing(path, target)
	}
	indent := leadingWhitespace(d.lines[header]) + e.cfg.Indent
	add := splitContent(content)
	for i := range add {
		add[i] = indent + add[i]
	}
	d.lines = insertAt(d.lines, end, add)
	logger.Debug().Int("header", header).Int("end", end).Msg("Injected at class bottom")
	return e.save(path, d)
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
