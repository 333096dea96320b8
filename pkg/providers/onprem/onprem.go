// Package onprem provides node constructors for on-premises entities:
// human clients, container runtimes, and generic servers.
package onprem

import (
	"github.com/cloudgram/cloudgram/pkg/diagram"
	"github.com/cloudgram/cloudgram/pkg/icons"
)

func node(category, name, label string) *diagram.Node {
	return diagram.NewNode(label, icons.New(icons.ProviderOnPrem, category, name))
}

// User creates a human user node.
func User(label string) *diagram.Node { return node(icons.CategoryClient, "user", label) }

// Client creates a generic client device node.
func Client(label string) *diagram.Node { return node(icons.CategoryClient, "client", label) }

// Docker creates a Docker container runtime node.
func Docker(label string) *diagram.Node { return node(icons.CategoryContainer, "docker", label) }

// Server creates a generic server node.
func Server(label string) *diagram.Node { return node(icons.CategoryCompute, "server", label) }
