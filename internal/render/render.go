// Package render turns a resume document into one of the printable layouts.
// Every empty field falls back to the layout's sample value so that a partly
// filled builder form still previews as a complete resume.
package render

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/resume"
	"github.com/a-h/templ"
)

// Variant names a layout.
type Variant string

const (
	Minimalist   Variant = "minimalist"
	Modern       Variant = "modern"
	Professional Variant = "professional"
)

var ErrUnknownVariant = errors.New("unknown resume template")

// Variants lists the layouts in the order the builder offers them.
func Variants() []Variant {
	return []Variant{Minimalist, Modern, Professional}
}

// ParseVariant accepts a layout name in any case.
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}
	return "", ErrUnknownVariant
}

// Render returns the document for doc in the given layout. An unknown variant
// renders nothing.
func Render(v Variant, doc resume.Document) templ.Component {
	switch v {
	case Minimalist:
		return minimalist(resolve(doc, minimalistSample))
	case Modern:
		return modern(resolve(doc, modernSample))
	case Professional:
		return professional(resolve(doc, professionalSample))
	default:
		return templ.NopComponent
	}
}

// stylesheet writes a layout's CSS in a style element carrying the request's
// CSP nonce, when there is one.
func stylesheet(css string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := "<style>"
		if nonce := templ.GetNonce(ctx); nonce != "" {
			open = `<style nonce="` + templ.EscapeString(nonce) + `">`
		}
		_, err := io.WriteString(w, open+css+"</style>")
		return err
	})
}
