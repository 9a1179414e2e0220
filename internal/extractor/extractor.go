// Package extractor holds the per-site strategies that pull a title and lead
// out of a parsed article page.
package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Names of the built-in strategies.
const (
	OpenGraph = "opengraph"
	Selector  = "selector"
)

// Result is what a strategy found on the page. Empty fields mean "not found";
// the caller decides on fallbacks.
type Result struct {
	Title string
	Lead  string
}

// Extractor captures a single strategy implementation.
type Extractor interface {
	Name() string
	Extract(doc *goquery.Document, opts map[string]string) Result
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[string]Extractor{}}
}

// DefaultRegistry returns a registry with the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(OpenGraphExtractor{})
	r.Register(SelectorExtractor{})
	return r
}

// Register adds or replaces an extractor implementation.
func (r *Registry) Register(e Extractor) {
	if r.extractors == nil {
		r.extractors = map[string]Extractor{}
	}
	r.extractors[e.Name()] = e
}

// Resolve returns an extractor by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Extractor, error) {
	if e, ok := r.extractors[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("extractor %s is not registered", name)
}

// OpenGraphExtractor reads the first h1 (or og:title) and og:description.
type OpenGraphExtractor struct{}

// Name identifies the strategy inside the registry.
func (OpenGraphExtractor) Name() string { return OpenGraph }

// Extract ignores options.
func (OpenGraphExtractor) Extract(doc *goquery.Document, _ map[string]string) Result {
	title := collapse(doc.Find("h1").First().Text())
	if title == "" {
		title = metaContent(doc, "og:title")
	}
	return Result{
		Title: title,
		Lead:  metaContent(doc, "og:description"),
	}
}

// SelectorExtractor uses the "title" and "lead" CSS selectors from site
// options. A missing selector falls back to the opengraph rule for that field.
type SelectorExtractor struct{}

// Name identifies the strategy inside the registry.
func (SelectorExtractor) Name() string { return Selector }

func (SelectorExtractor) Extract(doc *goquery.Document, opts map[string]string) Result {
	fallback := OpenGraphExtractor{}.Extract(doc, nil)

	res := Result{
		Title: selectText(doc, opts["title"]),
		Lead:  selectText(doc, opts["lead"]),
	}
	if strings.TrimSpace(opts["title"]) == "" {
		res.Title = fallback.Title
	}
	if strings.TrimSpace(opts["lead"]) == "" {
		res.Lead = fallback.Lead
	}
	return res
}

func selectText(doc *goquery.Document, selector string) string {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return ""
	}
	return collapse(doc.Find(selector).First().Text())
}

func metaContent(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property="%s"]`, property)).First()
	if sel.Length() == 0 {
		sel = doc.Find(fmt.Sprintf(`meta[name="%s"]`, property)).First()
	}
	content, _ := sel.Attr("content")
	return collapse(content)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
