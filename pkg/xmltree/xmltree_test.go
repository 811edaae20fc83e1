package xmltree

import (
	"strings"
	"testing"
)

// ============== Parse Tests ==============

func TestParseSimpleDocument(t *testing.T) {
	root, err := ParseString(`<catalog version="2"><item id="a">First</item><item id="b"/></catalog>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, want nil", err)
	}

	if root.Tag != "catalog" {
		t.Errorf("root.Tag = %s, want catalog", root.Tag)
	}
	if v, ok := root.Attr("version"); !ok || v != "2" {
		t.Errorf("Attr(version) = %q, %v, want 2, true", v, ok)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(root.Children))
	}

	first := root.Children[0]
	if first.Tag != "item" || first.Text != "First" {
		t.Errorf("first child = <%s>%q, want <item>First", first.Tag, first.Text)
	}
	if id, _ := first.Attr("id"); id != "a" {
		t.Errorf("first child id = %s, want a", id)
	}

	second := root.Children[1]
	if second.Text != "" || len(second.Children) != 0 {
		t.Error("self-closing child should have no text and no children")
	}
}

func TestParseAttributeOrder(t *testing.T) {
	root, err := ParseString(`<e c="3" a="1" b="2"/>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	want := []string{"c", "a", "b"}
	if len(root.Attrs) != len(want) {
		t.Fatalf("len(Attrs) = %d, want %d", len(root.Attrs), len(want))
	}
	for i, name := range want {
		if root.Attrs[i].Name != name {
			t.Errorf("Attrs[%d].Name = %s, want %s", i, root.Attrs[i].Name, name)
		}
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	root, err := ParseString("<doc>\n  <name>\n    spell\n  </name>\n</doc>")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if root.Text != "" {
		t.Errorf("root.Text = %q, want empty for element-only content", root.Text)
	}
	if got := root.Children[0].Text; got != "spell" {
		t.Errorf("child.Text = %q, want spell", got)
	}
}

func TestParseEntities(t *testing.T) {
	root, err := ParseString(`<e note="a &amp; b">1 &lt; 2</e>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if v, _ := root.Attr("note"); v != "a & b" {
		t.Errorf("Attr(note) = %q, want 'a & b'", v)
	}
	if root.Text != "1 < 2" {
		t.Errorf("Text = %q, want '1 < 2'", root.Text)
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		if _, err := ParseString(""); err == nil {
			t.Error("ParseString() should fail for empty input")
		}
	})

	t.Run("NoElements", func(t *testing.T) {
		if _, err := ParseString("<!-- only a comment -->"); err == nil {
			t.Error("ParseString() should fail without a root element")
		}
	})

	t.Run("MismatchedTags", func(t *testing.T) {
		if _, err := ParseString("<a><b></a>"); err == nil {
			t.Error("ParseString() should fail for mismatched tags")
		}
	})

	t.Run("MultipleRoots", func(t *testing.T) {
		if _, err := ParseString("<a/><b/>"); err == nil {
			t.Error("ParseString() should fail for multiple root elements")
		}
	})
}

func TestAttrOr(t *testing.T) {
	root, err := ParseString(`<e name="x"/>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got := root.AttrOr("name", "fallback"); got != "x" {
		t.Errorf("AttrOr(name) = %s, want x", got)
	}
	if got := root.AttrOr("missing", "fallback"); got != "fallback" {
		t.Errorf("AttrOr(missing) = %s, want fallback", got)
	}
}

// ============== Format Tests ==============

func TestFormat(t *testing.T) {
	root, err := ParseString(`<catalog version="2"><item id="a">First</item><group><item id="b"/></group></catalog>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	want := []string{
		`<catalog version="2">`,
		`  <item id="a">First</item>`,
		`  <group>`,
		`    <item id="b"/>`,
		`  </group>`,
		`</catalog>`,
	}

	got := Format(root)
	if len(got) != len(want) {
		t.Fatalf("Format() returned %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatDeterministic(t *testing.T) {
	root, err := ParseString(`<a x="1"><b>t</b><c/><c/></a>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	first := strings.Join(Format(root), "\n")
	second := strings.Join(Format(root), "\n")
	if first != second {
		t.Error("Format() should return identical output for the same tree")
	}
}

func TestFormatEscaping(t *testing.T) {
	root, err := ParseString("<e note=\"a &amp; b\">x &lt; y</e>")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	lines := Format(root)
	if len(lines) != 1 {
		t.Fatalf("Format() returned %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "a &amp; b") {
		t.Errorf("attribute not re-escaped: %s", lines[0])
	}
	if !strings.Contains(lines[0], "x &lt; y") {
		t.Errorf("text not re-escaped: %s", lines[0])
	}
}

func TestFormatMixedContent(t *testing.T) {
	root, err := ParseString("<e>leading<child/></e>")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	want := []string{
		"<e>",
		"  leading",
		"  <child/>",
		"</e>",
	}
	got := Format(root)
	if len(got) != len(want) {
		t.Fatalf("Format() returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != nil {
		t.Errorf("Format(nil) = %v, want nil", got)
	}
	if got := FormatString(nil); got != "" {
		t.Errorf("FormatString(nil) = %q, want empty", got)
	}
}

func TestFormatString(t *testing.T) {
	root, err := ParseString(`<a/>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got := FormatString(root); got != "<a/>\n" {
		t.Errorf("FormatString() = %q, want \"<a/>\\n\"", got)
	}
}
