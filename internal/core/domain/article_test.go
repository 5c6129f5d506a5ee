package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleRender(t *testing.T) {
	article := Article{
		FrontMatter: FrontMatter{
			Layout:     "post",
			Title:      "Growing Aloe ferox",
			Subtitle:   "A complete guide",
			Date:       "2026-08-23 10:30:00",
			Background: "/img/posts/default-plant.jpg",
			Categories: []string{"Flora"},
			Tags:       []string{"aloe-ferox", "plant-guide"},
		},
		Sections: []Section{
			{Heading: "Description", Body: "<p>A tall single-stemmed aloe.</p>"},
			{Heading: "Uses", Body: "<p>The bitter latex is harvested.</p>"},
		},
	}

	doc := article.Render()

	assert.True(t, strings.HasPrefix(doc, "---\n"))
	assert.Contains(t, doc, "layout: post\n")
	assert.Contains(t, doc, `title: "Growing Aloe ferox"`)
	assert.Contains(t, doc, `subtitle: "A complete guide"`)
	assert.Contains(t, doc, "date: 2026-08-23 10:30:00\n")
	assert.Contains(t, doc, "background: '/img/posts/default-plant.jpg'\n")
	assert.Contains(t, doc, "categories: [Flora]\n")
	assert.Contains(t, doc, "tags: [aloe-ferox, plant-guide]\n")
	assert.Contains(t, doc, "---\n\n")
	assert.Contains(t, doc, `<h2 class="section-heading">Description</h2>`)
	assert.Contains(t, doc, `<h2 class="section-heading">Uses</h2>`)
	assert.True(t, strings.HasSuffix(doc, "harvested.</p>\n"), "document ends with a single newline")
}

func TestArticleRenderOmitsEmptyOptionalFields(t *testing.T) {
	article := Article{
		FrontMatter: FrontMatter{Layout: "post", Title: "Aloe ferox", Date: "2026-08-23 10:30:00"},
		Sections:    []Section{{Heading: "Description", Body: "<p>Text.</p>"}},
	}

	doc := article.Render()

	assert.NotContains(t, doc, "background:")
	assert.NotContains(t, doc, "categories:")
	assert.NotContains(t, doc, "tags:")
}

func TestArticleRenderImageBlock(t *testing.T) {
	article := Article{
		FrontMatter: FrontMatter{Layout: "post", Title: "Aloe ferox", Date: "2026-08-23 10:30:00"},
		Sections: []Section{{
			Heading: "Description",
			Image: &SectionImage{
				URL:            "https://commons.example/aloe.jpg",
				DescriptionURL: "https://commons.example/wiki/File:Aloe.jpg",
				Alt:            "Aloe ferox - Description",
				Artist:         "J. Bloggs",
				Licence:        "CC BY-SA 4.0",
			},
			Body: "<p>Text.</p>",
		}},
	}

	doc := article.Render()

	assert.Contains(t, doc, `<img class="img-fluid section-image" src="https://commons.example/aloe.jpg" alt="Aloe ferox - Description">`)
	assert.Contains(t, doc, "Photo: J. Bloggs")
	assert.Contains(t, doc, "Licence: CC BY-SA 4.0")
	assert.Contains(t, doc, `<a href="https://commons.example/wiki/File:Aloe.jpg">Source</a>`)

	imgIdx := strings.Index(doc, "<img")
	headingIdx := strings.Index(doc, "<h2")
	assert.Less(t, imgIdx, headingIdx, "image precedes the section heading")
}
