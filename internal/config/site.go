package config

// Coords is a latitude/longitude pair for the service map.
type Coords struct {
	Lat float64
	Lng float64
}

// Site holds the static, deployment-specific constants of the website.
type Site struct {
	Title       string
	Description string
	// UseSections selects the category → section → article structure.
	// When false categories link straight to articles.
	UseSections bool

	AboutUsArticleID int
	// CategoriesToHide and MenuCategoriesToHide are independent lists: a
	// category can be hidden from the page body yet still appear in the menu.
	CategoriesToHide     []int
	MenuCategoriesToHide []int

	CategoryIcons map[int]string
	SectionIcons  map[int]string

	SearchIndex      string
	MapDefaultCoords Coords

	GoogleSiteVerification string
	OGImage                string
}

// DefaultSite returns the Refugee.Info Greece constants.
func DefaultSite() Site {
	return Site{
		Title:            "Refugee.Info Greece",
		Description:      "Refugee Info Greece website",
		UseSections:      true,
		AboutUsArticleID: 4414269690519,
		CategoriesToHide: []int{
			1500000433801,
			4414269724311,
		},
		MenuCategoriesToHide: []int{
			1500000433801,
		},
		CategoryIcons: map[int]string{
			4414269722007: "gavel",
			4414269724951: "local_hospital",
			4414269726487: "school",
			4414269728791: "work",
			4414269731479: "home",
		},
		SectionIcons: map[int]string{
			4414269746327: "how_to_reg",
			4414269753239: "description",
			4414269764759: "family_restroom",
			4414269771031: "medical_services",
			4414269776791: "psychology",
			4414269786007: "menu_book",
			4414269793431: "business_center",
			4414269801879: "house",
		},
		SearchIndex: "zendesk_greece_articles",
		MapDefaultCoords: Coords{
			Lat: 37.98381,
			Lng: 23.727539,
		},
		GoogleSiteVerification: "PrE2eX5nD9nGPXSEETbC8TVgIhz80mc4aDlBisKUXN8",
		OGImage:                "https://greece.refugee.info/api/og-image",
	}
}

