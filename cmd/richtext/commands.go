package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/config"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/convert"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/editordoc"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/htmlimport"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/plaintext"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/render"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownFormat  = errors.New("unknown format")
)

type command struct {
	name        string
	description string
	run         func(a *app, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"editor", "blocks JSON to TipTap editor document", (*app).editorCmd},
		{"blocks", "TipTap editor document to blocks JSON", (*app).blocksCmd},
		{"render", "render blocks to html, markdown, json, text or editor", (*app).renderCmd},
		{"text", "plain text of blocks", (*app).textCmd},
		{"stats", "word and character counts with excerpt", (*app).statsCmd},
		{"import-html", "legacy HTML to blocks JSON", (*app).importHTMLCmd},
		{"migrate", "legacy string content to blocks JSON", (*app).migrateCmd},
	}
}

type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
}

func run(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: command required", ErrUnknownCommand)
	}
	a := &app{cfg: cfg, stdin: stdin, stdout: stdout}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(a, args[1:])
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
}

// inputFlags - общие флаги источника данных.
type inputFlags struct {
	in   string
	yaml bool
}

func newFlagSet(name string, input *inputFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&input.in, "in", "", "Input file, stdin by default")
	fs.BoolVar(&input.yaml, "yaml", false, "Input is YAML instead of JSON")
	return fs
}

func (a *app) readInput(input inputFlags) ([]byte, error) {
	r := a.stdin
	if input.in != "" {
		f, err := os.Open(input.in)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if input.yaml {
		return yamlToJSON(data)
	}
	return data, nil
}

// yamlToJSON перекодирует YAML в JSON, чтобы дальше работал обычный разбор.
func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	res, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return res, nil
}

func (a *app) readContent(input inputFlags) (blocks.Content, error) {
	data, err := a.readInput(input)
	if err != nil {
		return blocks.Content{}, err
	}
	c, err := blocks.Parse(bytes.NewReader(data))
	if err != nil {
		return blocks.Content{}, err
	}
	if c.Kind == blocks.ContentInvalid {
		slog.Warn("Content is neither blocks nor legacy string, treated as empty")
	}
	slog.Debug("Read content", "kind", c.Kind.String(), "blocks", len(c.Blocks))
	return c, nil
}

func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) writeString(s string) error {
	_, err := io.WriteString(a.stdout, s+"\n")
	return err
}

func (a *app) writeEditor(doc *editordoc.Document) error {
	return a.writeJSON(editordoc.ToTipTap(doc))
}

func (a *app) editorCmd(args []string) error {
	var input inputFlags
	if err := newFlagSet("editor", &input).Parse(args); err != nil {
		return err
	}
	c, err := a.readContent(input)
	if err != nil {
		return err
	}
	return a.writeEditor(convert.ContentToEditorDocument(c))
}

func (a *app) blocksCmd(args []string) error {
	var input inputFlags
	if err := newFlagSet("blocks", &input).Parse(args); err != nil {
		return err
	}
	data, err := a.readInput(input)
	if err != nil {
		return err
	}
	doc, err := editordoc.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return a.writeJSON(convert.ToBlocks(doc))
}

func (a *app) renderCmd(args []string) error {
	var input inputFlags
	fs := newFlagSet("render", &input)
	format := fs.String("format", a.cfg.Format, "Output format: html, markdown, json, text, editor")
	sanitize := fs.Bool("sanitize", a.cfg.HTMLSanitize, "Sanitize HTML output")
	minify := fs.Bool("minify", a.cfg.HTMLMinify, "Minify HTML output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := a.readContent(input)
	if err != nil {
		return err
	}

	switch *format {
	case "html":
		var opts []render.HTMLOption
		if *sanitize {
			opts = append(opts, render.WithSanitize())
		}
		if *minify {
			opts = append(opts, render.WithMinify())
		}
		res, err := render.NewHTMLRenderer(opts...).String(render.Render(c))
		if err != nil {
			return err
		}
		return a.writeString(res)
	case "markdown":
		return render.Markdown(a.stdout, render.Render(c))
	case "json":
		return a.writeJSON(render.Render(c))
	case "text":
		return a.writeString(plaintext.Lines(c))
	case "editor":
		return a.writeEditor(convert.ContentToEditorDocument(c))
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, *format)
}

func (a *app) textCmd(args []string) error {
	var input inputFlags
	fs := newFlagSet("text", &input)
	mode := fs.String("mode", "lines", "Text mode: lines or paragraphs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := a.readContent(input)
	if err != nil {
		return err
	}

	switch *mode {
	case "lines":
		return a.writeString(plaintext.Lines(c))
	case "paragraphs":
		if c.Kind != blocks.ContentBlocks {
			return a.writeString(plaintext.Lines(c))
		}
		return a.writeString(plaintext.Paragraphs(c.Blocks))
	}
	return fmt.Errorf("%w: mode %q", ErrUnknownFormat, *mode)
}

type statsResult struct {
	plaintext.DocumentStats
	Kind    string `json:"kind"`
	Excerpt string `json:"excerpt"`
}

func (a *app) statsCmd(args []string) error {
	var input inputFlags
	fs := newFlagSet("stats", &input)
	limit := fs.Int("excerpt", a.cfg.ExcerptLength, "Excerpt length in characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := a.readContent(input)
	if err != nil {
		return err
	}
	return a.writeJSON(statsResult{
		DocumentStats: plaintext.CountDocument(c),
		Kind:          c.Kind.String(),
		Excerpt:       plaintext.Excerpt(plaintext.Lines(c), *limit),
	})
}

func (a *app) importHTMLCmd(args []string) error {
	var input inputFlags
	fs := flag.NewFlagSet("import-html", flag.ContinueOnError)
	fs.StringVar(&input.in, "in", "", "Input file, stdin by default")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := a.readInput(input)
	if err != nil {
		return err
	}
	doc, err := htmlimport.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	slog.Debug("Imported html", "blocks", len(doc))
	return a.writeJSON(doc)
}

func (a *app) migrateCmd(args []string) error {
	var input inputFlags
	if err := newFlagSet("migrate", &input).Parse(args); err != nil {
		return err
	}

	c, err := a.readContent(input)
	if err != nil {
		return err
	}

	doc := blocks.Document{}
	switch c.Kind {
	case blocks.ContentLegacy:
		doc = convert.LegacyToBlocks(c.Legacy)
	case blocks.ContentBlocks:
		doc = c.Blocks
	}
	return a.writeJSON(doc)
}
