// Package programming provides node constructors for programming languages,
// typically used to depict external APIs or SDK integrations.
package programming

import (
	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/icons"
)

func node(name, label string) *diagram.Node {
	return diagram.NewNode(label, icons.New(icons.ProviderProgramming, icons.CategoryLanguage, name))
}

// Python creates a Python language node.
func Python(label string) *diagram.Node { return node("python", label) }

// Go creates a Go language node.
func Go(label string) *diagram.Node { return node("go", label) }

// NodeJS creates a Node.js language node.
func NodeJS(label string) *diagram.Node { return node("nodejs", label) }
