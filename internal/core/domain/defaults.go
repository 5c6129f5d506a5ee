package domain

import "time"

// DefaultSettings returns the pipeline defaults: a South African flora
// research profile with tiered regional search, the domain-trust table,
// and the five-section article layout. Callers may overlay values from
// a config file before wiring components.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			Delay:          1500 * time.Millisecond,
			MaxSources:     20,
			RequestTimeout: 30 * time.Second,
			UserAgent:      "florascribe/1.0 (research pipeline)",
			Tiers: []SearchTier{
				{Format: "%s plant site:.ac.za", Priority: PriorityHigh},
				{Format: "%s plant site:.za", Priority: PriorityMedium},
				{Format: "%s plant botanical", Priority: PriorityLow},
			},
			SkipDomains: []string{
				"pinterest.com", "youtube.com", "amazon.com", "ebay.com",
			},
			UnsupportedExtensions: []string{
				".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
				".zip", ".rar", ".tar", ".gz",
				".jpg", ".jpeg", ".png", ".gif", ".bmp",
				".mp4", ".avi", ".mov", ".mp3", ".wav",
			},
			TopicKeywords: []string{
				"plant", "botanical", "species", "cultivation", "growing", "care", "garden",
			},
			PathKeywords:      []string{"/plant/", "/species/", "/wiki/", "/flora/"},
			RegionalDomainCap: 5,
			DomainCap:         3,
			MinContentLength:  150,
		},
		Reliability: ReliabilitySettings{
			Domains: map[string]map[string]float64{
				"regional_academic": {
					"up.ac.za": 0.98, "uct.ac.za": 0.98, "wits.ac.za": 0.98,
					"sun.ac.za": 0.98, "ru.ac.za": 0.97, "ukzn.ac.za": 0.97,
					"ufs.ac.za": 0.97, "unisa.ac.za": 0.96, "nwu.ac.za": 0.96,
				},
				"regional_biodiversity": {
					"sanbi.org": 0.98, "sanbi.org.za": 0.98, "plantzafrica.com": 0.97,
					"ispotnature.org": 0.95, "pza.sanbi.org": 0.97,
					"redlist.sanbi.org": 0.97, "biodiversityadvisor.sanbi.org": 0.97,
				},
				"international_reference": {
					"en.wikipedia.org": 0.93, "kew.org": 0.95,
					"powo.science.kew.org": 0.95, "missouribotanicalgarden.org": 0.88,
					"britannica.com": 0.87, "rhs.org.uk": 0.86,
				},
				"general": {
					"extension.wisc.edu": 0.80, "ces.ncsu.edu": 0.80,
					"extension.umn.edu": 0.80, "thespruce.com": 0.70,
					"plants.usda.gov": 0.85, "plantnet.rbgsyd.nsw.gov.au": 0.82,
				},
			},
			SourceNames: map[string]string{
				"up.ac.za":          "University of Pretoria",
				"uct.ac.za":         "University of Cape Town",
				"wits.ac.za":        "University of Witwatersrand",
				"sun.ac.za":         "Stellenbosch University",
				"ru.ac.za":          "Rhodes University",
				"ukzn.ac.za":        "University of KwaZulu-Natal",
				"ufs.ac.za":         "University of Free State",
				"unisa.ac.za":       "University of South Africa",
				"nwu.ac.za":         "North-West University",
				"sanbi.org":         "South African National Biodiversity Institute",
				"sanbi.org.za":      "South African National Biodiversity Institute",
				"plantzafrica.com":  "PlantZAfrica",
				"en.wikipedia.org":  "Wikipedia",
				"www.britannica.com": "Encyclopædia Britannica",
				"www.thespruce.com": "The Spruce",
				"www.rhs.org.uk":    "Royal Horticultural Society",
				"www.kew.org":       "Royal Botanic Gardens, Kew",
				"powo.science.kew.org": "Plants of the World Online",
				"www.missouribotanicalgarden.org": "Missouri Botanical Garden",
			},
			RegionalMarkers: []string{".za", "sanbi"},
		},
		Retrieval: RetrievalSettings{
			TopK:                    5,
			ConfidenceThreshold:     0.6,
			MinConfidentDocs:        2,
			MeanSimilarityThreshold: 0.5,
			MaxContextLength:        2000,
			MaxTokens:               500,
			Temperature:             0.3,
			Strict:                  true,
		},
		Article: ArticleSettings{
			Layout: "post",
			Headings: []HeadingTemplate{
				{Title: "The Complete Guide to %s", Subtitle: "Discover the facts, care tips, and benefits of this remarkable plant"},
				{Title: "Everything You Need to Know About %s", Subtitle: "A comprehensive guide to growing and caring for this beautiful species"},
				{Title: "%s: Nature's Hidden Treasure", Subtitle: "Uncover the secrets of this extraordinary South African plant"},
				{Title: "Growing %s: Expert Tips and Insights", Subtitle: "Master the art of cultivating this stunning native plant"},
				{Title: "%s Revealed", Subtitle: "Explore the fascinating world of this unique botanical specimen"},
			},
			Categories: []string{"South African Plants", "Botany", "Plant Care"},
			Sections: []SectionSpec{
				{
					ID:          "introduction",
					Heading:     "Introduction",
					Prompt:      "Write an engaging introduction about %s, including its origin and significance",
					TopK:        3,
					MaxTokens:   300,
					Temperature: 0.7,
					Fallback: "Welcome to our comprehensive guide on %s, one of South Africa's most fascinating indigenous plants. " +
						"This remarkable species has captured the attention of botanists, gardeners, and plant enthusiasts due to its " +
						"unique characteristics. In this article we explore everything from its natural habitat to practical care tips.",
				},
				{
					ID:          "facts",
					Heading:     "Fascinating Facts",
					Prompt:      "What are the most interesting botanical facts about %s?",
					TopK:        5,
					MaxTokens:   400,
					Temperature: 0.7,
					Fallback: "%s is part of South Africa's incredible botanical heritage, which includes over 20,000 plant species. " +
						"This plant has evolved unique adaptations to thrive in its native environment, showcasing nature's ability " +
						"to create specialised solutions for survival.",
				},
				{
					ID:          "care",
					Heading:     "Care & Cultivation",
					Prompt:      "How do you care for and cultivate %s? Include watering, light, soil, and propagation.",
					TopK:        5,
					MaxTokens:   500,
					Temperature: 0.6,
					Fallback: "Proper care is essential for helping your %s thrive. Most South African plants prefer full sun to " +
						"partial shade and well-draining soil. Water moderately during the growing season, allowing soil to dry " +
						"between waterings, and reduce watering in winter to prevent root rot.",
				},
				{
					ID:          "benefits",
					Heading:     "Benefits & Traditional Uses",
					Prompt:      "What are the medicinal, ecological, and cultural benefits of %s?",
					TopK:        5,
					MaxTokens:   400,
					Temperature: 0.7,
					Fallback: "%s offers multiple benefits to both ecosystems and people. It provides food and habitat for " +
						"pollinators, birds, and insects, and indigenous knowledge systems have long recognised the value of " +
						"native species, from medicinal applications to practical household uses.",
				},
				{
					ID:          "conclusion",
					Heading:     "Conclusion",
					Prompt:      "Summarize the key points about %s including its importance, care needs, and value",
					TopK:        5,
					MaxTokens:   350,
					Temperature: 0.6,
					Fallback: "%s exemplifies the extraordinary botanical diversity of South Africa. From its unique adaptations " +
						"to its ecological importance and practical benefits, this plant represents a valuable component of our " +
						"natural heritage, and understanding it contributes to wider conservation efforts.",
				},
			},
			FetchImages:   true,
			FallbackImage: "/img/posts/default-plant.jpg",
			Cleaning: CleaningSettings{
				RemoveCitations:     true,
				RemoveSourceMarkers: true,
				RemoveIncomplete:    true,
				MinParagraphLength:  50,
			},
		},
	}
}
