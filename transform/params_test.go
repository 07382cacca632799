/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package transform

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = `<?xml version="1.0"?>
<xsl:stylesheet version="1.0" xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
  <xsl:param name="handle_value">default</xsl:param>
  <xsl:param name="other" select="'keep'"/>
  <xsl:template match="/">
    <xsl:param name="handle_value" select="'inner'"/>
    <out><xsl:value-of select="$handle_value"/></out>
  </xsl:template>
</xsl:stylesheet>`

func TestInjectParams(t *testing.T) {
	out, err := InjectParams([]byte(sheet), map[string]string{
		"handle_value": "http://hdl.handle.net/1234567/abc:123",
		"undeclared":   "x",
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	params := doc.Root().SelectElements("param")
	require.Len(t, params, 2)
	assert.Equal(t, "'http://hdl.handle.net/1234567/abc:123'", params[0].SelectAttrValue("select", ""))
	assert.Empty(t, params[0].Child)
	assert.Equal(t, "'keep'", params[1].SelectAttrValue("select", ""))

	inner := doc.Root().SelectElement("template").SelectElement("param")
	assert.Equal(t, "'inner'", inner.SelectAttrValue("select", ""))
}

func TestInjectParamsNoop(t *testing.T) {
	out, err := InjectParams([]byte("not even xml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "not even xml", string(out))
}

func TestInjectParamsRejectsNonStylesheet(t *testing.T) {
	_, err := InjectParams([]byte("<mods/>"), map[string]string{"handle_value": "x"})
	assert.Error(t, err)

	_, err = InjectParams([]byte("<xsl:stylesheet"), map[string]string{"handle_value": "x"})
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", `"it's"`},
		{`a'b"c`, `concat('a', "'", 'b"c')`},
		{"", "''"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Literal(tt.in), tt.in)
	}
}
