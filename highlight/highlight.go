// Package highlight colours Sigma rule YAML for terminal display.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// YAML highlights YAML text with ANSI 256-colour escapes.
type YAML struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewYAML builds a highlighter using the named chroma style. Unknown style
// names fall back to chroma's default style.
func NewYAML(style string) *YAML {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &YAML{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(style),
		formatter: formatters.Get("terminal256"),
	}
}

func (h *YAML) Highlight(text string) (string, error) {
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", err
	}
	return b.String(), nil
}
