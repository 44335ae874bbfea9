package e2e_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/xjx"
)

// generateCatalogXML builds an XML document with itemCount entries,
// mixing attributes, repeated elements and nested structure.
func generateCatalogXML(itemCount int) string {
	rng := rand.New(rand.NewSource(42))

	var b strings.Builder
	b.WriteString(`<catalog>`)
	for i := 0; i < itemCount; i++ {
		fmt.Fprintf(&b, `<item sku="SKU-%d" active="%t">`, i+1, rng.Intn(2) == 1)
		fmt.Fprintf(&b, `<name>Item %d</name>`, i+1)
		fmt.Fprintf(&b, `<price>%.2f</price>`, rng.Float64()*1000)
		b.WriteString(`<tags>`)
		for j := 0; j <= rng.Intn(3); j++ {
			fmt.Fprintf(&b, `<tag>tag%d</tag>`, j+1)
		}
		b.WriteString(`</tags>`)
		b.WriteString(`</item>`)
	}
	b.WriteString(`</catalog>`)
	return b.String()
}

// generateNestedXML builds a document of the given depth and fanout.
func generateNestedXML(depth, width int) string {
	var build func(b *strings.Builder, level int)
	build = func(b *strings.Builder, level int) {
		if level <= 0 {
			b.WriteString(`<leaf>data</leaf>`)
			return
		}
		for i := 0; i < width; i++ {
			fmt.Fprintf(b, `<node_%d_%d>`, level, i)
			build(b, level-1)
			fmt.Fprintf(b, `</node_%d_%d>`, level, i)
		}
	}

	var b strings.Builder
	b.WriteString(`<root>`)
	build(&b, depth)
	b.WriteString(`</root>`)
	return b.String()
}

func BenchmarkXmlToJson(b *testing.B) {
	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
		{"10000Items", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			xml := generateCatalogXML(size.itemCount)
			conv, err := xjx.New(xjx.DefaultOptions())
			require.NoError(b, err)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := conv.XmlToJson(xml)
				require.NoError(b, err)
			}
		})
	}
}

func BenchmarkXmlToJson_HighFidelity(b *testing.B) {
	xml := generateCatalogXML(1000)
	conv, err := xjx.New(xjx.HighFidelityOptions())
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := conv.XmlToJson(xml)
		require.NoError(b, err)
	}
}

func BenchmarkJsonToXml(b *testing.B) {
	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			conv, err := xjx.New(xjx.DefaultOptions())
			require.NoError(b, err)
			tree, err := conv.XmlToJson(generateCatalogXML(size.itemCount))
			require.NoError(b, err)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := conv.JsonToXml(tree)
				require.NoError(b, err)
			}
		})
	}
}

func BenchmarkRoundTrip_HighFidelity(b *testing.B) {
	opts := xjx.HighFidelityOptions()
	opts.Formatting.Declaration = false
	conv, err := xjx.New(opts)
	require.NoError(b, err)

	xml := generateCatalogXML(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, err := conv.XmlToJson(xml)
		require.NoError(b, err)
		_, err = conv.JsonToXml(tree)
		require.NoError(b, err)
	}
}

func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},
		{"Depth5Width2", 5, 2},
		{"Depth2Width10", 2, 10},
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			xml := generateNestedXML(depth.depth, depth.width)
			conv, err := xjx.New(xjx.DefaultOptions())
			require.NoError(b, err)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := conv.XmlToJson(xml)
				require.NoError(b, err)
			}
		})
	}
}
