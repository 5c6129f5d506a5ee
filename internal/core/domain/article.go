package domain

import (
	"fmt"
	"strings"
)

// SectionImage is an illustrative image attached to an article section.
type SectionImage struct {
	// URL is the image location (thumbnail-sized for articles).
	URL string

	// DescriptionURL links to the image's source page.
	DescriptionURL string

	// Alt is the alternative text.
	Alt string

	// Artist is the attribution line, plain text.
	Artist string

	// Licence is the short licence name, if known.
	Licence string
}

// Section is one heading + body block of a generated article.
type Section struct {
	// Heading is the section heading.
	Heading string

	// Image optionally illustrates the section.
	Image *SectionImage

	// Body is the cleaned body text.
	Body string
}

// FrontMatter is the metadata header prefixed to a rendered article.
type FrontMatter struct {
	Layout     string
	Title      string
	Subtitle   string
	Date       string
	Background string
	Categories []string
	Tags       []string
}

// Article is an ordered sequence of sections with a metadata header.
// Assembled once per generation request.
type Article struct {
	FrontMatter FrontMatter
	Sections    []Section
}

// Render serialises the article to a flat document: a key:value metadata
// header followed by heading + body blocks, each optionally preceded by
// an image block with attribution.
func (a Article) Render() string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "layout: %s\n", a.FrontMatter.Layout)
	fmt.Fprintf(&b, "title: %q\n", a.FrontMatter.Title)
	fmt.Fprintf(&b, "subtitle: %q\n", a.FrontMatter.Subtitle)
	fmt.Fprintf(&b, "date: %s\n", a.FrontMatter.Date)
	if a.FrontMatter.Background != "" {
		fmt.Fprintf(&b, "background: '%s'\n", a.FrontMatter.Background)
	}
	if len(a.FrontMatter.Categories) > 0 {
		fmt.Fprintf(&b, "categories: [%s]\n", strings.Join(a.FrontMatter.Categories, ", "))
	}
	if len(a.FrontMatter.Tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(a.FrontMatter.Tags, ", "))
	}
	b.WriteString("---\n\n")

	for _, s := range a.Sections {
		if s.Image != nil {
			b.WriteString(s.Image.render())
		}
		fmt.Fprintf(&b, "<h2 class=\"section-heading\">%s</h2>\n", s.Heading)
		b.WriteString(s.Body)
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (img SectionImage) render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "<img class=\"img-fluid section-image\" src=%q alt=%q>\n", img.URL, img.Alt)

	caption := img.Alt
	if img.Artist != "" {
		caption += " | Photo: " + img.Artist
	}
	if img.Licence != "" {
		caption += " | Licence: " + img.Licence
	}
	if img.DescriptionURL != "" {
		fmt.Fprintf(&b, "<span class=\"caption text-muted\">%s | <a href=%q>Source</a></span>\n\n", caption, img.DescriptionURL)
	} else {
		fmt.Fprintf(&b, "<span class=\"caption text-muted\">%s</span>\n\n", caption)
	}

	return b.String()
}
