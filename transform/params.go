/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package transform

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// XSLTNamespace is the namespace of XSLT instructions.
const XSLTNamespace = "http://www.w3.org/1999/XSL/Transform"

// InjectParams binds string values to the top-level xsl:param declarations
// of stylesheet by rewriting their select attribute to a string literal.
// Declarations not named in params, and names without a declaration, are
// left alone.
func InjectParams(stylesheet []byte, params map[string]string) ([]byte, error) {
	if len(params) == 0 {
		return stylesheet, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(stylesheet); err != nil {
		return nil, fmt.Errorf("failed to parse stylesheet: %w", err)
	}
	root := doc.Root()
	if root == nil || root.NamespaceURI() != XSLTNamespace || (root.Tag != "stylesheet" && root.Tag != "transform") {
		return nil, fmt.Errorf("document is not an XSLT stylesheet")
	}

	for _, el := range root.ChildElements() {
		if el.Tag != "param" || el.NamespaceURI() != XSLTNamespace {
			continue
		}
		value, ok := params[el.SelectAttrValue("name", "")]
		if !ok {
			continue
		}
		for len(el.Child) > 0 {
			el.RemoveChildAt(0)
		}
		el.CreateAttr("select", Literal(value))
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize stylesheet: %w", err)
	}
	return out, nil
}

// Literal quotes s as an XPath 1.0 string expression.
func Literal(s string) string {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	for i, p := range parts {
		parts[i] = "'" + p + "'"
	}
	return "concat(" + strings.Join(parts, `, "'", `) + ")"
}
