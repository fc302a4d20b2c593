package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/resume"
	"github.com/a-h/templ"
)

func renderString(t *testing.T, v Variant, doc resume.Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(v, doc).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render(%s): %v", v, err)
	}
	return buf.String()
}

func TestMinimalistBlankDraftUsesPlaceholders(t *testing.T) {
	doc := resume.Draft{Name: "", Skills: ""}.Document()
	out := renderString(t, Minimalist, doc)

	for _, want := range []string{"John", "Javascript", "CSS", "john.doe@gmail.com", "KlowdBox", "Sample Institute of Technology"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing placeholder %q", want)
		}
	}
	if got := strings.Count(out, `class="slot filled"`); got != 4 {
		t.Errorf("filled slots = %d, want 4 (two skills at level 2)", got)
	}
	if got := strings.Count(out, `class="slot`); got != 10 {
		t.Errorf("slots = %d, want 10", got)
	}
}

func TestUserValuesWin(t *testing.T) {
	doc := resume.Draft{
		Name:     "Ada",
		LastName: "Lovelace",
		Title:    "Analyst",
		Skills:   "Math, Engines",
		Experiences: []resume.DraftExperience{
			{Company: "Babbage & Co"},
		},
	}.Document()

	for _, v := range Variants() {
		out := renderString(t, v, doc)
		for _, want := range []string{"Ada", "Lovelace", "Analyst", "Math", "Engines", "Babbage &amp; Co"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: missing %q", v, want)
			}
		}
		for _, gone := range []string{"John", "ALEX", "JANE", "KlowdBox"} {
			if strings.Contains(out, gone) {
				t.Errorf("%s: placeholder %q shown despite user value", v, gone)
			}
		}
		// Blank entry fields fall back per field.
		if !strings.Contains(out, "Role") || !strings.Contains(out, "Period") {
			t.Errorf("%s: missing per-entry placeholders", v)
		}
	}
}

func TestLevelIndicatorIsNotRevalidated(t *testing.T) {
	doc := resume.Document{Skills: []resume.Skill{{Name: "Go", Level: 5}, {Name: "Rust", Level: 0}}}
	out := renderString(t, Minimalist, doc)
	if got := strings.Count(out, `class="slot filled"`); got != 5 {
		t.Errorf("filled slots = %d, want 5", got)
	}
}

func TestRenderEscapes(t *testing.T) {
	doc := resume.Document{PersonalInfo: resume.PersonalInfo{Name: `<script>alert("x")</script>`}}
	for _, v := range Variants() {
		out := renderString(t, v, doc)
		if strings.Contains(out, "<script>") {
			t.Errorf("%s: unescaped user input in output", v)
		}
	}
}

func TestEachVariantHasItsOwnPlaceholders(t *testing.T) {
	tests := map[Variant]string{
		Minimalist:   "Front-End Developer",
		Modern:       "UX/UI Designer &amp; Web Developer",
		Professional: "Project Management Professional (PMP)",
	}
	for v, want := range tests {
		if out := renderString(t, v, resume.Document{}); !strings.Contains(out, want) {
			t.Errorf("%s: missing %q", v, want)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderReturnsWriterError(t *testing.T) {
	err := Render(Modern, resume.Sample()).Render(context.Background(), failingWriter{})
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("err = %v, want the writer's error", err)
	}
}

func TestParseVariant(t *testing.T) {
	for _, name := range []string{"minimalist", " Modern ", "PROFESSIONAL"} {
		if _, err := ParseVariant(name); err != nil {
			t.Errorf("ParseVariant(%q): %v", name, err)
		}
	}
	if _, err := ParseVariant("fancy"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("ParseVariant(fancy) = %v", err)
	}
	var buf bytes.Buffer
	if err := Render("fancy", resume.Sample()).Render(context.Background(), &buf); err != nil || buf.Len() != 0 {
		t.Errorf("unknown variant wrote %q, %v", buf.String(), err)
	}
}

func TestRenderUsesContextNonce(t *testing.T) {
	var buf bytes.Buffer
	ctx := templ.WithNonce(context.Background(), "abc123")
	if err := Render(Professional, resume.Document{}).Render(ctx, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<style nonce="abc123">`) {
		t.Error("style block does not carry the request nonce")
	}
}

func TestRenderIsAWholePage(t *testing.T) {
	for _, v := range Variants() {
		out := renderString(t, v, resume.Sample())
		if !strings.HasPrefix(out, "<!doctype html>") || !strings.HasSuffix(out, "</body></html>") {
			t.Errorf("%s: output is not a full document", v)
		}
		if !strings.Contains(out, "<style>") {
			t.Errorf("%s: stylesheet missing without a nonce", v)
		}
	}
}
