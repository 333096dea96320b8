// Package icons maps provider/category/name icon identifiers to node display
// attributes.
//
// Every diagram node carries an [Icon] naming the provider (aws, onprem,
// programming), the service category (compute, network, security, ...) and the
// concrete service. The registry resolves an icon to Graphviz node attributes:
// a category fill color by default, or an image reference when an icon asset
// directory is configured.
//
// Asset directories follow the layout <dir>/<provider>/<category>/<name>.png.
// A missing directory or file degrades to the colored-box rendering, so
// diagrams stay renderable without any assets installed.
package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cloudgram/cloudgram/pkg/errors"
)

// Providers.
const (
	ProviderAWS         = "aws"
	ProviderOnPrem      = "onprem"
	ProviderProgramming = "programming"
)

// Categories.
const (
	CategoryCompute     = "compute"
	CategoryNetwork     = "network"
	CategorySecurity    = "security"
	CategoryManagement  = "management"
	CategoryIntegration = "integration"
	CategoryStorage     = "storage"
	CategoryClient      = "client"
	CategoryContainer   = "container"
	CategoryLanguage    = "language"
)

// Icon identifies a node glyph by provider, category, and service name.
// The zero value is not a valid icon; use [New].
type Icon struct {
	Provider string
	Category string
	Name     string
}

// New creates an icon identifier. Inputs are lowercased; no validation is
// performed here since providers construct icons from known constants.
// Use [Parse] for untrusted input such as manifest files.
func New(provider, category, name string) Icon {
	return Icon{
		Provider: strings.ToLower(provider),
		Category: strings.ToLower(category),
		Name:     strings.ToLower(name),
	}
}

// Key returns the canonical "provider/category/name" form.
func (i Icon) Key() string {
	return i.Provider + "/" + i.Category + "/" + i.Name
}

// String returns the canonical key.
func (i Icon) String() string { return i.Key() }

// Parse parses a "provider/category/name" key into an Icon.
// The provider and category must be known to the registry.
func Parse(key string) (Icon, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Icon{}, errors.New(errors.ErrCodeIconNotFound, "invalid icon key %q (want provider/category/name)", key)
	}
	ic := New(parts[0], parts[1], parts[2])
	if _, ok := palette[ic.Provider]; !ok {
		return Icon{}, errors.New(errors.ErrCodeIconNotFound, "unknown icon provider %q", ic.Provider)
	}
	if _, ok := palette[ic.Provider][ic.Category]; !ok {
		return Icon{}, errors.New(errors.ErrCodeIconNotFound, "unknown icon category %q for provider %q", ic.Category, ic.Provider)
	}
	return ic, nil
}

// fill holds the colors used when no image asset is available.
type fill struct {
	color     string // box fill
	fontColor string // label text
}

// palette maps provider -> category -> fallback colors. AWS categories use the
// official architecture-icon palette; other providers use neutral tones.
var palette = map[string]map[string]fill{
	ProviderAWS: {
		CategoryCompute:     {color: "#ED7100", fontColor: "white"},
		CategoryNetwork:     {color: "#8C4FFF", fontColor: "white"},
		CategorySecurity:    {color: "#DD344C", fontColor: "white"},
		CategoryManagement:  {color: "#E7157B", fontColor: "white"},
		CategoryIntegration: {color: "#E7157B", fontColor: "white"},
		CategoryStorage:     {color: "#7AA116", fontColor: "white"},
	},
	ProviderOnPrem: {
		CategoryClient:    {color: "#E8E8E8", fontColor: "black"},
		CategoryContainer: {color: "#2496ED", fontColor: "white"},
		CategoryCompute:   {color: "#B8B8B8", fontColor: "black"},
	},
	ProviderProgramming: {
		CategoryLanguage: {color: "#4B8BBE", fontColor: "white"},
	},
}

// Attrs resolves the icon to Graphviz node attributes.
//
// With an asset directory containing <provider>/<category>/<name>.png the node
// renders as the image with the label beneath it. Otherwise the node is a
// filled box in the category color.
func (i Icon) Attrs(assetDir string) map[string]string {
	if assetDir != "" {
		path := filepath.Join(assetDir, i.Provider, i.Category, i.Name+".png")
		if _, err := os.Stat(path); err == nil {
			return map[string]string{
				"shape":      "none",
				"image":      path,
				"imagescale": "true",
				"fixedsize":  "true",
				"width":      "1.0",
				"height":     "1.4",
				"labelloc":   "b",
			}
		}
	}

	f, ok := palette[i.Provider][i.Category]
	if !ok {
		f = fill{color: "#D8D8D8", fontColor: "black"}
	}
	return map[string]string{
		"shape":     "box",
		"style":     "rounded,filled",
		"fillcolor": f.color,
		"fontcolor": f.fontColor,
	}
}

// catalogEntry is one row in the icon catalog shown by "cloudgram icons".
type catalogEntry struct {
	icon  Icon
	title string
}

var catalog = []catalogEntry{
	{New(ProviderAWS, CategoryCompute, "ec2"), "Amazon EC2"},
	{New(ProviderAWS, CategoryCompute, "lambda"), "AWS Lambda"},
	{New(ProviderAWS, CategoryNetwork, "cloudfront"), "Amazon CloudFront"},
	{New(ProviderAWS, CategoryNetwork, "route53"), "Amazon Route 53"},
	{New(ProviderAWS, CategoryNetwork, "vpc"), "Amazon VPC"},
	{New(ProviderAWS, CategorySecurity, "waf"), "AWS WAF"},
	{New(ProviderAWS, CategorySecurity, "secrets-manager"), "AWS Secrets Manager"},
	{New(ProviderAWS, CategorySecurity, "iam-role"), "AWS IAM Role"},
	{New(ProviderAWS, CategorySecurity, "inspector"), "Amazon Inspector"},
	{New(ProviderAWS, CategorySecurity, "guardduty"), "Amazon GuardDuty"},
	{New(ProviderAWS, CategoryManagement, "systems-manager"), "AWS Systems Manager"},
	{New(ProviderAWS, CategoryManagement, "cloudwatch"), "Amazon CloudWatch"},
	{New(ProviderAWS, CategoryIntegration, "eventbridge"), "Amazon EventBridge"},
	{New(ProviderOnPrem, CategoryClient, "user"), "User"},
	{New(ProviderOnPrem, CategoryContainer, "docker"), "Docker"},
	{New(ProviderOnPrem, CategoryCompute, "server"), "Server"},
	{New(ProviderProgramming, CategoryLanguage, "python"), "Python"},
	{New(ProviderProgramming, CategoryLanguage, "go"), "Go"},
	{New(ProviderProgramming, CategoryLanguage, "nodejs"), "Node.js"},
}

// CatalogEntry is a public view of one registered icon.
type CatalogEntry struct {
	Icon  Icon
	Title string
}

// Catalog returns all registered icons sorted by key.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	for i, e := range catalog {
		out[i] = CatalogEntry{Icon: e.icon, Title: e.title}
	}
	slices.SortFunc(out, func(a, b CatalogEntry) int {
		return strings.Compare(a.Icon.Key(), b.Icon.Key())
	})
	return out
}

// Providers returns the known provider names, sorted.
func Providers() []string {
	out := make([]string, 0, len(palette))
	for p := range palette {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Categories returns the known categories for a provider, sorted.
func Categories(provider string) ([]string, error) {
	cats, ok := palette[strings.ToLower(provider)]
	if !ok {
		return nil, errors.New(errors.ErrCodeIconNotFound, "unknown icon provider %q", provider)
	}
	out := make([]string, 0, len(cats))
	for c := range cats {
		out = append(out, c)
	}
	slices.Sort(out)
	return out, nil
}

// Title returns the human-readable title for an icon, or a derived one when
// the icon is not in the catalog.
func Title(i Icon) string {
	for _, e := range catalog {
		if e.icon == i {
			return e.title
		}
	}
	return fmt.Sprintf("%s (%s)", i.Name, i.Provider)
}
