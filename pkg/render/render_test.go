package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
)

// family3 is the diagram of ada + bob with child cy.
func family3(t *testing.T) diagram.Diagram {
	t.Helper()
	members := []family.Member{
		{ID: "ada", Name: "Ada", Gender: family.Female, BirthDate: "1815-12-10", DeathDate: "1852",
			Relations: family.Relations{SpouseID: "bob", ChildrenIDs: []string{"cy"}}},
		{ID: "bob", Name: "Bob & Co", Gender: family.Male,
			Relations: family.Relations{SpouseID: "ada", ChildrenIDs: []string{"cy"}}},
		{ID: "cy", Name: "Cy", Gender: family.Other,
			Relations: family.Relations{FatherID: "bob", MotherID: "ada", ChildrenIDs: []string{}}},
	}
	return layout.Compute(members, layout.DefaultConfig()).Diagram
}

func TestSVG(t *testing.T) {
	svg := string(SVG(family3(t), WithTitle("Lovelace")))

	checks := []struct {
		name, want string
		count      int
	}{
		{"root", `<svg xmlns="http://www.w3.org/2000/svg"`, 1},
		{"title", "<title>Lovelace</title>", 1},
		{"member cards", `class="member"`, 3},
		{"junction", `class="junction"`, 1},
		{"parent edges", `class="edge parent"`, 3},
		{"spouse edge", `class="edge spouse"`, 1},
		{"dashed", `stroke-dasharray="6 4"`, 1},
		{"married label", ">married</text>", 1},
		{"escaped name", "Bob &amp; Co ♂", 1},
		{"lifespan", ">1815–1852</text>", 1},
		{"female card", `stroke="#ec4899" stroke-width="2"/>`, 1},
	}
	for _, c := range checks {
		if got := strings.Count(svg, c.want); got != c.count {
			t.Errorf("%s: %q appears %d times, want %d", c.name, c.want, got, c.count)
		}
	}
	if strings.Contains(svg, "Bob & Co") {
		t.Error("names must be escaped")
	}
}

func TestSVG_WithoutLabels(t *testing.T) {
	svg := string(SVG(family3(t), WithoutLabels()))
	if strings.Contains(svg, "married") {
		t.Error("label drawn despite WithoutLabels")
	}
}

func TestSVG_ViewBoxCoversCards(t *testing.T) {
	// ada sits at x=-40, so the viewBox must start left of it.
	svg := string(SVG(family3(t), WithPadding(10)))
	if !strings.Contains(svg, `viewBox="-50.0 90.0 `) {
		t.Errorf("viewBox does not cover the leftmost card:\n%s", svg[:strings.Index(svg, "\n")])
	}
}

func TestSVG_SkipsDanglingEdges(t *testing.T) {
	d := diagram.Diagram{
		Nodes: []diagram.Node{{ID: "a", Kind: diagram.KindMember}},
		Edges: []diagram.Edge{{ID: "e", Source: "a", Target: "ghost", Role: diagram.RoleParent}},
	}
	if strings.Contains(string(SVG(d)), `id="e"`) {
		t.Error("edge to a missing node was drawn")
	}
}

func TestSVG_Empty(t *testing.T) {
	svg := string(SVG(diagram.Diagram{}))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("empty diagram SVG malformed: %s", svg)
	}
}

func TestAnchor(t *testing.T) {
	n := diagram.Node{ID: "m", Kind: diagram.KindMember, X: 100, Y: 200}
	tests := []struct {
		handle string
		want   point
	}{
		{diagram.HandleChild, point{175, 280}},
		{diagram.HandleParent, point{175, 200}},
		{diagram.HandleSpouseRight, point{250, 240}},
		{diagram.HandleSpouseLeft, point{100, 240}},
		{"", point{175, 240}},
	}
	for _, tt := range tests {
		if got := anchor(n, tt.handle); got != tt.want {
			t.Errorf("anchor(%q) = %v, want %v", tt.handle, got, tt.want)
		}
	}
	j := diagram.Node{ID: "j", Kind: diagram.KindJunction, X: 10, Y: 20}
	if got := anchor(j, diagram.HandleToChildren); got != (point{10, 20}) {
		t.Errorf("junction anchor = %v", got)
	}
}

func TestSpouseAnchors_FacingSides(t *testing.T) {
	left := diagram.Node{ID: "l", Kind: diagram.KindMember, X: 0}
	right := diagram.Node{ID: "r", Kind: diagram.KindMember, X: 280}
	a, b := spouseAnchors(right, left)
	if a.X != 280 || b.X != CardWidth {
		t.Errorf("spouseAnchors(right, left) = %v, %v", a, b)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(family3(t))

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		`"ada" [label="Ada ♀\n1815–1852"`,
		`"junction-ada-bob" [shape=point`,
		`style=dashed`,
		`label="married"`,
		`"junction-ada-bob" -> "cy"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "!\"]"); got != 4 {
		t.Errorf("pinned nodes = %d, want 4", got)
	}
}

func TestToDOT_FlipsY(t *testing.T) {
	d := diagram.Diagram{Nodes: []diagram.Node{
		{ID: "top", Kind: diagram.KindMember, X: 0, Y: 0},
		{ID: "bottom", Kind: diagram.KindMember, X: 0, Y: 200},
	}}
	dot := ToDOT(d)
	// extent is y 0..280; top center 40 -> 240, bottom center 240 -> 40.
	if !strings.Contains(dot, `"top" [label="top", color="#9ca3af", fillcolor="#f3f4f6", pos="75.0,240.0!"]`) {
		t.Errorf("top not mirrored:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="75.0,40.0!"`) {
		t.Errorf("bottom not mirrored:\n%s", dot)
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		code    errors.Code
	}{
		{[]string{"svg"}, ""},
		{[]string{"SVG", "dot", "png", "pdf", "json"}, ""},
		{nil, errors.ErrCodeInvalidInput},
		{[]string{"svg", "gif"}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		err := ValidateFormats(tt.formats)
		if tt.code == "" && err != nil {
			t.Errorf("ValidateFormats(%v) = %v", tt.formats, err)
		}
		if tt.code != "" && !errors.Is(err, tt.code) {
			t.Errorf("ValidateFormats(%v) = %v, want %s", tt.formats, err, tt.code)
		}
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	d := family3(t)

	svg, err := Render(ctx, d, "svg", Options{})
	if err != nil || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg: %v", err)
	}
	dot, err := Render(ctx, d, "dot", Options{})
	if err != nil || !bytes.HasPrefix(dot, []byte("digraph")) {
		t.Errorf("dot: %v", err)
	}
	js, err := Render(ctx, d, "json", Options{})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	back, err := diagram.UnmarshalDiagram(js)
	if err != nil || len(back.Nodes) != len(d.Nodes) {
		t.Errorf("json round trip: %v", err)
	}

	if _, err := Render(ctx, d, "gif", Options{}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("gif: %v, want UNSUPPORTED", err)
	}
	if _, err := Render(ctx, d, "svg", Options{Engine: "cairo"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad engine: %v, want INVALID_INPUT", err)
	}
}

func TestRenderGraphviz(t *testing.T) {
	ctx := context.Background()
	dot := ToDOT(family3(t))

	svg, err := RenderGraphviz(ctx, dot, FormatSVG)
	if err != nil {
		t.Fatalf("RenderGraphviz(svg): %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Error("graphviz SVG root not normalized")
	}

	png, err := RenderGraphviz(ctx, dot, FormatPNG)
	if err != nil {
		t.Fatalf("RenderGraphviz(png): %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	if _, err := RenderGraphviz(ctx, dot, FormatPDF); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("pdf via graphviz: %v, want UNSUPPORTED", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("no viewBox: %s", got)
	}
}
