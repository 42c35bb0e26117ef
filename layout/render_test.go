package layout

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/parser"
	"github.com/tsawler/docmark/resolver"
)

func mustParse(t *testing.T, src string) *model.Document {
	t.Helper()
	doc, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return doc
}

func mustRender(t *testing.T, src string, eval resolver.Evaluator) *Document {
	t.Helper()
	rd, err := Render(context.Background(), mustParse(t, src), eval)
	if err != nil {
		t.Fatalf("render %q: %v", src, err)
	}
	return rd
}

func TestRenderRuns(t *testing.T) {
	url := model.URL("https://go.dev")
	id := model.ID("intro")
	vars := &resolver.MapEvaluator{Vars: map[string]string{"name": "World", "empty": ""}}

	tests := []struct {
		name string
		src  string
		want []Run
	}{
		{
			name: "merged text",
			src:  `p "Hello, " $name "!"`,
			want: []Run{{Text: "Hello, World!"}},
		},
		{
			name: "styles",
			src:  `p "a" (b "b") (i (b "c") "d") c "e"`,
			want: []Run{
				{Text: "a"},
				{Text: "b", Style: Style{Bold: true}},
				{Text: "c", Style: Style{Bold: true, Italic: true}},
				{Text: "d", Style: Style{Italic: true}},
				{Text: "e", Style: Style{Pre: true}},
			},
		},
		{
			name: "groups flatten",
			src:  `p ("a" ("b")) "c"`,
			want: []Run{{Text: "abc"}},
		},
		{
			name: "bare location",
			src:  `p "see " #"intro"`,
			want: []Run{{Text: "see "}, {Text: "intro", Link: &id}},
		},
		{
			name: "link",
			src:  `p l "the " (b "Go") " site" @"https://go.dev" "."`,
			want: []Run{
				{Text: "the ", Link: &url},
				{Text: "Go", Style: Style{Bold: true}, Link: &url},
				{Text: " site", Link: &url},
				{Text: "."},
			},
		},
		{
			name: "nested link keeps outer target",
			src:  `p l (l "x" #"intro") @"https://go.dev"`,
			want: []Run{{Text: "x", Link: &url}},
		},
		{
			name: "empty placeholder dropped",
			src:  `p "a" (b $empty) "b"`,
			want: []Run{{Text: "ab"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := mustRender(t, tt.src, vars)
			if len(rd.Blocks) != 1 || rd.Blocks[0].Kind != model.BlockTypeParagraph {
				t.Fatalf("expected one paragraph, got %+v", rd.Blocks)
			}
			if got := rd.Blocks[0].Runs; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("runs = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderImage(t *testing.T) {
	rd := mustRender(t, `i /"img/a.png" alt "A"`, nil)
	b := rd.Blocks[0]
	if b.Kind != model.BlockTypeImage || b.Image == nil {
		t.Fatalf("expected an image block, got %+v", b)
	}
	if b.Image.Location != model.Internal("img/a.png") || b.Image.Alt != "A" {
		t.Errorf("unexpected image %+v", b.Image)
	}
}

func TestRenderImageAltPlaceholder(t *testing.T) {
	vars := &resolver.MapEvaluator{Vars: map[string]string{"caption": "Chart"}}
	rd := mustRender(t, `i /"img/a.png" alt $caption`, vars)
	if img := rd.Blocks[0].Image; img == nil || img.Alt != "Chart" {
		t.Errorf("unexpected image %+v", img)
	}

	if _, err := Render(context.Background(), mustParse(t, `i /"img/a.png" alt $missing`), vars); err == nil {
		t.Error("expected an unresolved alt to fail")
	}
}

func TestRenderTable(t *testing.T) {
	rd := mustRender(t, `t "T" { { h "a" rows 2, h "b" } { "c" } }`, nil)
	table := rd.Blocks[0].Table
	if table == nil {
		t.Fatal("expected a table")
	}
	if PlainText(table.Title) != "T" {
		t.Errorf("title = %q", PlainText(table.Title))
	}
	if len(table.Rows) != 2 || len(table.Rows[0]) != 2 || len(table.Rows[1]) != 1 {
		t.Fatalf("unexpected row shape %v", table.Rows)
	}

	a, b, c := table.Rows[0][0], table.Rows[0][1], table.Rows[1][0]
	if PlainText(a.Runs) != "a" || !a.Header || a.Anchor.RowSpan != 2 {
		t.Errorf("unexpected cell a %+v", a)
	}
	if PlainText(b.Runs) != "b" || !b.Header {
		t.Errorf("unexpected cell b %+v", b)
	}
	if PlainText(c.Runs) != "c" || c.Header || c.Anchor.Col != 1 {
		t.Errorf("unexpected cell c %+v", c)
	}
	if table.Grid.ColCount() != 2 {
		t.Errorf("grid has %d columns, want 2", table.Grid.ColCount())
	}
}

func TestRenderEmptyTable(t *testing.T) {
	table := mustRender(t, `t "Empty" { }`, nil).Blocks[0].Table
	if !table.Grid.IsEmpty() || len(table.Rows) != 0 {
		t.Errorf("expected an empty table, got %+v", table)
	}
}

func TestRenderDocumentOrder(t *testing.T) {
	var seen []string
	ev := resolver.EvaluatorFunc(func(ctx context.Context, c resolver.Call) (string, error) {
		seen = append(seen, c.Text)
		return c.Text, nil
	})

	src := `p $a b $b
t $c { { $d, $e } { $f } }
p $g`
	mustRender(t, src, ev)

	want := []string{"a", "b", "c", "d", "e", "f", "g"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("evaluation order = %v, want %v", seen, want)
	}
}

func TestRenderFailFast(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	ev := resolver.EvaluatorFunc(func(ctx context.Context, c resolver.Call) (string, error) {
		calls++
		if c.Text == "bad" {
			return "", boom
		}
		return "ok", nil
	})

	rd, err := Render(context.Background(), mustParse(t, `p $a $bad $c p $d`), ev)
	if rd != nil {
		t.Error("no document should be returned on failure")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected the evaluator's error, got %v", err)
	}
	var evalErr *resolver.EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Call.Text != "bad" {
		t.Errorf("expected an EvaluationError for $bad, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls before stopping, got %d", calls)
	}
}

func TestRenderNoEvaluator(t *testing.T) {
	_, err := Render(context.Background(), mustParse(t, `p "x" $y`), nil)
	if !errors.Is(err, ErrNoEvaluator) {
		t.Errorf("expected ErrNoEvaluator, got %v", err)
	}

	if _, err := Render(context.Background(), mustParse(t, `p "x"`), nil); err != nil {
		t.Errorf("documents without placeholders need no evaluator: %v", err)
	}
}

func TestRenderNilDocument(t *testing.T) {
	rd, err := Render(context.Background(), nil, nil)
	if err != nil || len(rd.Blocks) != 0 {
		t.Errorf("got %+v, %v", rd, err)
	}
}

func TestAppendRun(t *testing.T) {
	loc := model.ID("a")
	same := model.ID("a")
	runs := appendRun(nil, Run{Text: "x", Link: &loc})
	runs = appendRun(runs, Run{Text: "y", Link: &same})
	runs = appendRun(runs, Run{Text: ""})
	runs = appendRun(runs, Run{Text: "z"})
	if len(runs) != 2 || runs[0].Text != "xy" || runs[1].Text != "z" {
		t.Errorf("unexpected runs %+v", runs)
	}
}
