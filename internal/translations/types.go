package translations

// DynamicContent maps a placeholder name to its localized string.
type DynamicContent map[string]string

// CookieBannerStrings labels the consent banner.
type CookieBannerStrings struct {
	Content string
	Accept  string
	Reject  string
}

type SearchBarStrings struct {
	SearchHint string
}

type FooterStrings struct {
	DisclaimerSummary string
}

// CardsListStrings heads the categories block on the home page.
type CardsListStrings struct {
	Title       string
	Description string
}

type PopupStrings struct {
	ContactButtonLabel string
	ViewServiceLabel   string
}

type DistanceAwayStrings struct {
	InformationTooltip string
}

// ServiceMapStrings labels the service map and list widget.
type ServiceMapStrings struct {
	Title                     string
	Description               string
	SelectRegionTitle         string
	RegionDefaultValue        string
	SelectCityTitle           string
	CityDefaultValue          string
	SelectServiceTitle        string
	ServiceDefaultValue       string
	ServiceListStringOf       string
	ServiceListStringServices string
	MapTab                    string
	ListTab                   string
	AllRegionsOption          string
	AllCitiesOption           string
	AllCategoriesOption       string
	MyLocationOption          string
	AllServicesTypeOption     string
	AllProvidersOption        string
	AllPopulationsOption      string
	AllAccessibilitiesOption  string
	DistanceAway              DistanceAwayStrings
	Popup                     PopupStrings
}

// HomePageStrings is the full string bundle of the home page.
type HomePageStrings struct {
	CardsList    CardsListStrings
	CookieBanner CookieBannerStrings
	ServiceMap   ServiceMapStrings
	SearchBar    SearchBarStrings
	TopBanner    string
	Footer       FooterStrings
}

// HeaderBannerStrings labels the welcome banner above the home page.
type HeaderBannerStrings struct {
	WelcomeTitle           string
	SocialMediaTitle       string
	SocialMediaDescription string
}

type Link struct {
	Title string
	Href  string
}

// SocialMediaLinks are the channels advertised in the header banner.
type SocialMediaLinks struct {
	Facebook  Link
	Messenger Link
	WhatsApp  Link
}

type ShareButtonStrings struct {
	Label            string
	NotificationText string
	LinkShareButton  string
}

// ErrorStrings labels an error page or an article error state.
type ErrorStrings struct {
	Title           string
	Subtitle        string
	Description     string
	HomeButtonLabel string
}

type Custom404Strings struct {
	Error        ErrorStrings
	CookieBanner CookieBannerStrings
	SearchBar    SearchBarStrings
	Footer       FooterStrings
}

type SectionStrings struct {
	CookieBanner     CookieBannerStrings
	SelectTopicLabel string
	SearchBar        SearchBarStrings
	Footer           FooterStrings
}

type CategoryStrings struct {
	CookieBanner        CookieBannerStrings
	SelectTopicLabel    string
	SelectSubTopicLabel string
	SearchBar           SearchBarStrings
	Footer              FooterStrings
}

// MenuOverlayStrings labels the fixed entries of the navigation menu.
type MenuOverlayStrings struct {
	Home        string
	Information string
	About       string
}

type FilterSelectStrings struct {
	FilterLabel string
	MostRecent  string
	MostPopular string
}

type ArticleContentStrings struct {
	TextReaderTitle string
	ShareButton     ShareButtonStrings
}

type ArticlePageStrings struct {
	ArticleContent   ArticleContentStrings
	SearchBar        SearchBarStrings
	CookieBanner     CookieBannerStrings
	ArticleError     ErrorStrings
	LastUpdatedLabel string
	Footer           FooterStrings
}

type ServicePageStrings struct {
	ServiceContent   ArticleContentStrings
	SearchBar        SearchBarStrings
	CookieBanner     CookieBannerStrings
	ServiceError     ErrorStrings
	LastUpdatedLabel string
	Footer           FooterStrings
}

// ResultSummaryFunc formats the search results headline for one request.
type ResultSummaryFunc func(firstOnPage, lastOnPage, totalCount int, query string) string

type SearchResultsStrings struct {
	LastEditedLabel string
	ResultSummary   ResultSummaryFunc
}

type SearchResultsPageStrings struct {
	SearchBar            SearchBarStrings
	LastEditedLabel      string
	ResultsFoundForQuery string
	AllResultsTab        string
	InformationTab       string
	ServicesTab          string
	Footer               FooterStrings
}
