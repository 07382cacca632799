//go:build cgo && integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package libxslt

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appendIdentifier = `<?xml version="1.0"?>
<xsl:stylesheet version="1.0" xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
  <xsl:param name="handle_value"/>
  <xsl:template match="@*|node()">
    <xsl:copy><xsl:apply-templates select="@*|node()"/></xsl:copy>
  </xsl:template>
  <xsl:template match="/mods">
    <xsl:copy>
      <xsl:apply-templates select="@*|node()"/>
      <identifier type="hdl"><xsl:value-of select="$handle_value"/></identifier>
    </xsl:copy>
  </xsl:template>
</xsl:stylesheet>`

func TestTransform(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	out, err := tr.Transform(context.Background(), []byte(appendIdentifier), []byte(`<mods><title>T</title></mods>`),
		map[string]string{"handle_value": "http://hdl.handle.net/1234567/it's"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), `<identifier type="hdl">http://hdl.handle.net/1234567/it's</identifier>`), string(out))
}

func TestTransformBadStylesheet(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	_, err = tr.Transform(context.Background(), []byte("<nope/>"), []byte("<mods/>"), nil)
	assert.Error(t, err)
}
