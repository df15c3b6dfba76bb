package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elves/gallery/pkg/ui"
)

// SampleText is the text shown by most demos, one sentence per item.
var SampleText = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"Vivamus lacinia sollicitudin congue.",
	"Aliquam mollis ornare tellus, scelerisque consequat leo laoreet id.",
	"Etiam elit velit, pretium sed tincidunt et, lacinia a lorem.",
	"Pellentesque sem augue, luctus id lorem at, tincidunt elementum odio.",
	"Suspendisse consectetur ex in ex commodo tincidunt.",
	"Donec convallis leo dolor, eget varius quam tincidunt eget.",
}

// Demo is a canned gallery configuration.
type Demo struct {
	Name        string
	Description string
	// Whether to use the inset variant.
	Inset bool
	// Custom item renderer; nil to show items as they are.
	Render func(string) ui.Text
	// Builds the source. A new source is built for every run.
	Source func() Source[string]
}

// AsyncDelay is how long the async demo takes to deliver.
var AsyncDelay = 1500 * time.Millisecond

// Demos lists all demos, in the order they are listed to the user.
var Demos = []Demo{
	{Name: "strings", Description: "sample sentences",
		Source: func() Source[string] { return Static(SampleText) }},
	{Name: "inset", Description: "sample sentences, inset", Inset: true,
		Source: func() Source[string] { return Static(SampleText) }},
	{Name: "render", Description: "sample sentences with a rendering function",
		Render: RenderSentence,
		Source: func() Source[string] { return Static(SampleText) }},
	{Name: "large", Description: "10000 random UUIDs",
		Source: func() Source[string] { return Static(uuids(10000)) }},
	{Name: "empty", Description: "no items",
		Source: func() Source[string] { return Static([]string{}) }},
	{Name: "one", Description: "one item",
		Source: func() Source[string] { return Static(numbered(1)) }},
	{Name: "two", Description: "two items",
		Source: func() Source[string] { return Static(numbered(2)) }},
	{Name: "three", Description: "three items",
		Source: func() Source[string] { return Static(numbered(3)) }},
	{Name: "loading", Description: "items that never arrive",
		Source: Never[string]},
	{Name: "async", Description: "items that arrive after a delay",
		Source: func() Source[string] { return Delayed(Static(cats(10)), AsyncDelay) }},
}

// FindDemo finds a demo by name.
func FindDemo(name string) (Demo, bool) {
	for _, d := range Demos {
		if d.Name == name {
			return d, true
		}
	}
	return Demo{}, false
}

// DemoNames returns the names of all demos.
func DemoNames() []string {
	names := make([]string, len(Demos))
	for i, d := range Demos {
		names[i] = d.Name
	}
	return names
}

// RenderSentence renders the first word of a sentence in bold and the rest in
// italic.
func RenderSentence(s string) ui.Text {
	first, rest, found := strings.Cut(s, " ")
	if !found {
		return ui.T(s, ui.Bold, ui.FgCyan)
	}
	return ui.Concat(ui.T(first, ui.Bold, ui.FgCyan), ui.T(" "+rest, ui.Italic))
}

func uuids(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = uuid.NewString()
	}
	return items
}

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("Item%d", i+1)
	}
	return items
}

func cats(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("Cat %s", uuid.NewString()[:8])
	}
	return items
}
