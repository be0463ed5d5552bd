package translations

// PageType selects the placeholder set requested for a page.
type PageType string

const (
	PageHome          PageType = "home"
	PageError         PageType = "error"
	PageSection       PageType = "section"
	PageCategory      PageType = "category"
	PageSearchResults PageType = "search"
	PageArticle       PageType = "article"
)

// CommonPlaceholders are requested by every page.
var CommonPlaceholders = []string{
	// Header.
	"default_menu_home_title",
	"default_information_title",
	"default_menu_about_title",
	// Cookie banner.
	"default_cookie_banner",
	"default_accept",
	"default_reject",
	// General.
	"default_search_hint",
	"default_share",
	"default_share_notification_text",
	"default_download",
	"default_last_updated",
	"default_article_reader_title",
	"default_banner_link_share_title",
	"default_filter_label",
	"default_most_recent_filter_option",
	"default_most_popular_filter_option",
	"default_home_disclaimer",
}

var HomePagePlaceholders = []string{
	// Header banner and social media.
	"ri_greece_mission_statement",
	"default_banner_social_media_title",
	"default_banner_social_media_description",
	"ri_greece_banner_social_media_description",
	"default_banner_facebook_title",
	"default_banner_messenger_title",
	"default_banner_whatsapp_title",
	"default_banner_telegram_title",
	"ri_greece_facebook_link",
	"ri_greece_messenger_link",
	"ri_greece_whatsapp_link",
	"ri_greece_telegram_link",
	// Main body.
	"default_information_title",
	"ri_greece_information_description",
	"default_service_map_title",
	"ri_greece_service_map_description",
	"default_service_map_select_region",
	"default_service_map_all_regions",
	"default_service_map_select_city",
	"default_service_map_all_cities",
	"default_service_map_select_services",
	"default_services_list_count_of",
	"default_services_list_count_services",
	"default_service_map_map_tab",
	"default_service_map_list_tab",
	"default_service_map_all_services",
	"default_service_map_all_regions_option",
	"default_service_map_all_cities_option",
	"default_service_map_all_categories_option",
	"default_service_map_my_location_option",
	"HC_RI_GREECE_WELCOME_BANNER_TEXT_UCL",
	"default_all_services_type_option",
	"default_all_providers_option",
	"default_all_populations_option",
	"default_all_accessibilities_option",
	"default_distance_away_tooltip",
	"default_contact_button_label",
	"default_view_service_label",
}

var CategoryPlaceholders = []string{
	"default_select_topic",
	"default_select_subtopic",
}

var SectionPlaceholders = []string{"default_select_topic"}

var SearchResultsPlaceholders = []string{
	"default_search_results_found",
	"default_all_results_tab",
	"default_information_results_tab",
	"default_services_results_tab",
}

var ErrorPlaceholders = []string{
	"default_error_indicator",
	"default_error_page_does_not_exist",
	"default_error_page_under_construction",
	"default_error_translation_missing",
	"default_error_home_button_title",
}

// PagePlaceholders returns the page-specific list for page, or nil for an unknown page.
func PagePlaceholders(page PageType) []string {
	switch page {
	case PageHome:
		return HomePagePlaceholders
	case PageError, PageArticle:
		return ErrorPlaceholders
	case PageSection:
		return SectionPlaceholders
	case PageCategory:
		return CategoryPlaceholders
	case PageSearchResults:
		return SearchResultsPlaceholders
	}
	return nil
}

// PlaceholdersFor concatenates the common list with the page list into a fresh slice.
func PlaceholdersFor(page PageType) []string {
	specific := PagePlaceholders(page)
	out := make([]string, 0, len(CommonPlaceholders)+len(specific))
	out = append(out, CommonPlaceholders...)
	return append(out, specific...)
}
