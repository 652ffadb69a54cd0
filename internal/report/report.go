package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

// ErrNoResults is returned when there is nothing ranked to report on.
var ErrNoResults = errors.New("report requires scored results")

// Input is everything a report is built from. Results are in rank order.
type Input struct {
	DecisionName string
	Criteria     []scoring.Criterion
	Options      []scoring.Option
	Results      []scoring.ScoredOption
	GeneratedAt  time.Time
}

func (in Input) validate() error {
	if len(in.Results) == 0 {
		return ErrNoResults
	}
	return nil
}

// Renderer turns an Input into a printable document.
type Renderer interface {
	Render(ctx context.Context, in Input) ([]byte, error)
	ContentType() string
	Extension() string
}

// Options configure the renderers that need external tools.
type Options struct {
	ChromePath string
	PDFTimeout time.Duration
}

// ForFormat picks the renderer for "md", "html" or "pdf".
func ForFormat(format string, opts Options) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "md", "markdown":
		return MarkdownRenderer{}, nil
	case "", "html":
		return NewHTMLRenderer(), nil
	case "pdf":
		return NewPDFRenderer(opts.ChromePath, opts.PDFTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(path[i+1:])
}
