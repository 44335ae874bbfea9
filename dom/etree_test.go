package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEtreeProvider_ParseAndWalk(t *testing.T) {
	provider := NewEtreeProvider()

	doc, err := provider.Parse(`<a id="1">text<b/><!--c--><?t i?><![CDATA[raw]]></a>`)
	require.NoError(t, err)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, KindElement, root.Kind())
	assert.Equal(t, "a", root.Name())
	assert.Equal(t, []Attr{{Key: "id", Value: "1"}}, root.Attrs())

	children := root.Children()
	require.Len(t, children, 5)
	assert.Equal(t, KindText, children[0].Kind())
	assert.Equal(t, "text", children[0].Text())
	assert.Equal(t, KindElement, children[1].Kind())
	assert.Equal(t, "b", children[1].Name())
	assert.Equal(t, KindComment, children[2].Kind())
	assert.Equal(t, "c", children[2].Text())
	assert.Equal(t, KindProcInst, children[3].Kind())
	assert.Equal(t, "t", children[3].Name())
	assert.Equal(t, "i", children[3].Text())
	assert.Equal(t, KindCData, children[4].Kind())
	assert.Equal(t, "raw", children[4].Text())
}

func TestEtreeProvider_ParseRejectsMalformedInput(t *testing.T) {
	provider := NewEtreeProvider()

	_, err := provider.Parse(`<a><b></a>`)
	assert.Error(t, err)
}

func TestEtreeProvider_NamespaceResolution(t *testing.T) {
	provider := NewEtreeProvider()

	doc, err := provider.Parse(`<x:a xmlns:x="http://example.com/ns"><x:b/><c/></x:a>`)
	require.NoError(t, err)

	root := doc.Root()
	assert.Equal(t, "a", root.Name())
	assert.Equal(t, "x", root.Space())
	assert.Equal(t, "http://example.com/ns", root.NamespaceURI())

	var b, c Node
	for _, ch := range root.Children() {
		switch ch.Name() {
		case "b":
			b = ch
		case "c":
			c = ch
		}
	}
	require.NotNil(t, b)
	require.NotNil(t, c)
	assert.Equal(t, "http://example.com/ns", b.NamespaceURI())
	assert.Equal(t, "", c.NamespaceURI())
}

func TestEtreeDocument_TopLevelNodesSkipDeclaration(t *testing.T) {
	provider := NewEtreeProvider()

	doc, err := provider.Parse(
		"<?xml version=\"1.0\"?><?style sheet?><!--before--><a/>")
	require.NoError(t, err)

	nodes := doc.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, KindProcInst, nodes[0].Kind())
	assert.Equal(t, "style", nodes[0].Name())
	assert.Equal(t, KindComment, nodes[1].Kind())
	assert.Equal(t, KindElement, nodes[2].Kind())
}

func TestEtreeDocument_BuildAndSerialize(t *testing.T) {
	provider := NewEtreeProvider()

	doc := provider.NewDocument()
	doc.AddProcInst("style", "sheet")
	root := doc.AddElement("a")
	root.AddAttr("id", "1")
	root.AddText("hi ")
	child := root.AddElement("b")
	child.AddCData("x < y")
	root.AddComment("done")

	out, err := doc.Serialize(SerializeOptions{})
	require.NoError(t, err)
	assert.Equal(t, `<?style sheet?><a id="1">hi <b><![CDATA[x < y]]></b><!--done--></a>`, out)
}

func TestEtreeDocument_SerializeWithDeclaration(t *testing.T) {
	provider := NewEtreeProvider()

	doc := provider.NewDocument()
	doc.AddElement("a")

	out, err := doc.Serialize(SerializeOptions{Declaration: true})
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<a/>", out)
}

func TestEtreeDocument_SerializePretty(t *testing.T) {
	provider := NewEtreeProvider()

	doc := provider.NewDocument()
	root := doc.AddElement("a")
	root.AddElement("b").AddText("x")

	out, err := doc.Serialize(SerializeOptions{Pretty: true, Indent: 4})
	require.NoError(t, err)
	assert.Equal(t, "<a>\n    <b>x</b>\n</a>", out)
}

func TestAttr_FullKeyAndNamespaceDecl(t *testing.T) {
	tests := []struct {
		name    string
		attr    Attr
		fullKey string
		isDecl  bool
	}{
		{"plain", Attr{Key: "id", Value: "1"}, "id", false},
		{"prefixed", Attr{Space: "x", Key: "id"}, "x:id", false},
		{"default namespace", Attr{Key: "xmlns", Value: "u"}, "xmlns", true},
		{"prefixed namespace", Attr{Space: "xmlns", Key: "x", Value: "u"}, "xmlns:x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fullKey, tt.attr.FullKey())
			assert.Equal(t, tt.isDecl, tt.attr.IsNamespaceDecl())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "element", KindElement.String())
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "cdata", KindCData.String())
	assert.Equal(t, "comment", KindComment.String())
	assert.Equal(t, "procinst", KindProcInst.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
