package report

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const pageCSS = `body{font-family:Arial,Helvetica,sans-serif;margin:20px;color:#222;}
.report{max-width:960px;margin:0 auto;}
h1{text-align:center;font-size:24px;margin-bottom:6px;}
h1+p,h1+p+p{text-align:center;color:#555;}
h2.section-title{font-size:18px;border-bottom:1px solid #ddd;padding-bottom:5px;margin:30px 0 15px;}
table{width:100%;border-collapse:collapse;margin-bottom:20px;}
th,td{border:1px solid #ddd;padding:8px;text-align:left;}
th{background-color:#f2f2f2;}
blockquote{background-color:#f9f9f9;padding:15px;border-left:4px solid #4CAF50;margin:0 0 20px 0;}
hr{border:0;border-top:1px solid #eee;margin-top:30px;}
hr+p{text-align:center;font-size:12px;color:#777;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{body{margin:0;padding:0;} h2.section-title{break-after:avoid;} table,blockquote{break-inside:avoid;}}`

// HTMLRenderer converts the Markdown report into a standalone printable page.
type HTMLRenderer struct {
	md goldmark.Markdown
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (r *HTMLRenderer) Extension() string   { return "html" }

func (r *HTMLRenderer) Render(_ context.Context, in Input) ([]byte, error) {
	doc, err := r.buildHTML(in)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (r *HTMLRenderer) buildHTML(in Input) (string, error) {
	md, err := Markdown(in)
	if err != nil {
		return "", err
	}

	var content bytes.Buffer
	if err := r.md.Convert([]byte(md), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'>" +
		"<title>Decision Report: " + html.EscapeString(in.DecisionName) + "</title>" +
		"<style>" + pageCSS + "</style></head><body><main class='report'>" +
		applyPrintLayoutHooks(content.String()) +
		"</main></body></html>", nil
}

var reSectionHeading = regexp.MustCompile(`<h2([^>]*)>`)

// applyPrintLayoutHooks tags section headings so print CSS can keep them with
// the table that follows.
func applyPrintLayoutHooks(contentHTML string) string {
	return reSectionHeading.ReplaceAllString(contentHTML, `<h2$1 class="section-title">`)
}
