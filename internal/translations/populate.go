package translations

import "fmt"

// The mappers below are plain key lookups. Values pass through verbatim and
// a key missing from the map yields "".

// PopulateSocialMediaLinks returns the titles and links of the social media buttons.
func PopulateSocialMediaLinks(dc DynamicContent) SocialMediaLinks {
	return SocialMediaLinks{
		Facebook: Link{
			Title: dc["default_banner_facebook_title"],
			Href:  dc["ri_greece_facebook_link"],
		},
		Messenger: Link{
			Title: dc["default_banner_messenger_title"],
			Href:  dc["ri_greece_messenger_link"],
		},
		WhatsApp: Link{
			Title: dc["default_banner_whatsapp_title"],
			Href:  dc["ri_greece_whatsapp_link"],
		},
	}
}

// PopulateHeaderBannerStrings returns the welcome and social media texts of the header banner.
func PopulateHeaderBannerStrings(dc DynamicContent) HeaderBannerStrings {
	return HeaderBannerStrings{
		WelcomeTitle:           dc["ri_greece_mission_statement"],
		SocialMediaTitle:       dc["default_banner_social_media_title"],
		SocialMediaDescription: dc["default_banner_social_media_description"],
	}
}

// PopulateServiceMapStrings labels the service map filters, tabs and popup.
func PopulateServiceMapStrings(dc DynamicContent) ServiceMapStrings {
	return ServiceMapStrings{
		Title:                     dc["default_service_map_title"],
		Description:               dc["ri_greece_service_map_description"],
		SelectRegionTitle:         dc["default_service_map_select_region"],
		RegionDefaultValue:        dc["default_service_map_all_regions"],
		SelectCityTitle:           dc["default_service_map_select_city"],
		CityDefaultValue:          dc["default_service_map_all_cities"],
		SelectServiceTitle:        dc["default_service_map_all_services"],
		ServiceDefaultValue:       dc["default_service_map_select_services"],
		ServiceListStringOf:       dc["default_services_list_count_of"],
		ServiceListStringServices: dc["default_services_list_count_services"],
		MapTab:                    dc["default_service_map_map_tab"],
		ListTab:                   dc["default_service_map_list_tab"],
		AllRegionsOption:          dc["default_service_map_all_regions_option"],
		AllCitiesOption:           dc["default_service_map_all_cities_option"],
		AllCategoriesOption:       dc["default_service_map_all_categories_option"],
		MyLocationOption:          dc["default_service_map_my_location_option"],
		AllServicesTypeOption:     dc["default_all_services_type_option"],
		AllProvidersOption:        dc["default_all_providers_option"],
		AllPopulationsOption:      dc["default_all_populations_option"],
		AllAccessibilitiesOption:  dc["default_all_accessibilities_option"],
		DistanceAway: DistanceAwayStrings{
			InformationTooltip: dc["default_distance_away_tooltip"],
		},
		Popup: PopulatePopupStrings(dc),
	}
}

// PopulateCategoriesSectionStrings labels the categories block on the home page.
func PopulateCategoriesSectionStrings(dc DynamicContent) CardsListStrings {
	return CardsListStrings{
		Title:       dc["default_information_title"],
		Description: dc["ri_greece_information_description"],
	}
}

// PopulateCookieBannerStrings returns the cookie banner text and buttons.
func PopulateCookieBannerStrings(dc DynamicContent) CookieBannerStrings {
	return CookieBannerStrings{
		Content: dc["default_cookie_banner"],
		Accept:  dc["default_accept"],
		Reject:  dc["default_reject"],
	}
}

// LastUpdatedLabel prefixes article dates.
func LastUpdatedLabel(dc DynamicContent) string {
	return dc["default_last_updated"]
}

// ShareButton labels the share button and its notification.
func ShareButton(dc DynamicContent) ShareButtonStrings {
	return ShareButtonStrings{
		Label:            dc["default_share"],
		NotificationText: dc["default_share_notification_text"],
		LinkShareButton:  dc["default_banner_link_share_title"],
	}
}

// GenerateArticleErrorProps is shown when an article or service cannot be loaded.
func GenerateArticleErrorProps(dc DynamicContent) ErrorStrings {
	return ErrorStrings{
		Title:           dc["default_error_indicator"],
		Subtitle:        dc["default_error_page_under_construction"],
		Description:     dc["default_error_translation_missing"],
		HomeButtonLabel: dc["default_error_home_button_title"],
	}
}

// Generate404ErrorProps has no description line.
func Generate404ErrorProps(dc DynamicContent) ErrorStrings {
	return ErrorStrings{
		Title:           dc["default_error_indicator"],
		Subtitle:        dc["default_error_page_does_not_exist"],
		HomeButtonLabel: dc["default_error_home_button_title"],
	}
}

// PopulateSearchResultsStrings returns a formatter rather than a fixed headline;
// only the total count and the query are interpolated.
func PopulateSearchResultsStrings(dc DynamicContent) SearchResultsStrings {
	phrase := dc["default_search_results_found"]
	return SearchResultsStrings{
		LastEditedLabel: dc["default_last_updated"],
		ResultSummary: func(_, _, totalCount int, query string) string {
			return fmt.Sprintf("%d %s \"%s\"", totalCount, phrase, query)
		},
	}
}

// SelectTopicLabel heads the topic picker of section pages.
func SelectTopicLabel(dc DynamicContent) string {
	return dc["default_select_topic"]
}

// PopulateArticleContentStrings labels the text reader and share button of an article.
func PopulateArticleContentStrings(dc DynamicContent) ArticleContentStrings {
	return ArticleContentStrings{
		TextReaderTitle: dc["default_article_reader_title"],
		ShareButton:     ShareButton(dc),
	}
}

// PopulateMenuOverlayStrings labels the fixed menu entries.
func PopulateMenuOverlayStrings(dc DynamicContent) MenuOverlayStrings {
	return MenuOverlayStrings{
		Home:        dc["default_menu_home_title"],
		Information: dc["default_information_title"],
		About:       dc["default_menu_about_title"],
	}
}

// PopulateHomePageStrings gathers every string block of the home page.
func PopulateHomePageStrings(dc DynamicContent) HomePageStrings {
	return HomePageStrings{
		CardsList:    PopulateCategoriesSectionStrings(dc),
		CookieBanner: PopulateCookieBannerStrings(dc),
		ServiceMap:   PopulateServiceMapStrings(dc),
		SearchBar:    PopulateSearchBarStrings(dc),
		TopBanner:    dc["HC_RI_GREECE_WELCOME_BANNER_TEXT_UCL"],
		Footer:       PopulateFooterStrings(dc),
	}
}

// PopulateSearchBarStrings returns the search box placeholder.
func PopulateSearchBarStrings(dc DynamicContent) SearchBarStrings {
	return SearchBarStrings{SearchHint: dc["default_search_hint"]}
}

// PopulateFilterSelectStrings labels the article sort filter.
func PopulateFilterSelectStrings(dc DynamicContent) FilterSelectStrings {
	return FilterSelectStrings{
		FilterLabel: dc["default_filter_label"],
		MostRecent:  dc["default_most_recent_filter_option"],
		MostPopular: dc["default_most_popular_filter_option"],
	}
}

// PopulateCategoryStrings gathers the strings of a category page.
func PopulateCategoryStrings(dc DynamicContent) CategoryStrings {
	return CategoryStrings{
		CookieBanner:        PopulateCookieBannerStrings(dc),
		SelectTopicLabel:    SelectTopicLabel(dc),
		SearchBar:           PopulateSearchBarStrings(dc),
		Footer:              PopulateFooterStrings(dc),
		SelectSubTopicLabel: dc["default_select_subtopic"],
	}
}

// PopulateSectionStrings gathers the strings of a section page.
func PopulateSectionStrings(dc DynamicContent) SectionStrings {
	return SectionStrings{
		CookieBanner:     PopulateCookieBannerStrings(dc),
		SelectTopicLabel: SelectTopicLabel(dc),
		SearchBar:        PopulateSearchBarStrings(dc),
		Footer:           PopulateFooterStrings(dc),
	}
}

// PopulateCustom404Strings gathers the strings of the 404 page.
func PopulateCustom404Strings(dc DynamicContent) Custom404Strings {
	return Custom404Strings{
		Error:        Generate404ErrorProps(dc),
		CookieBanner: PopulateCookieBannerStrings(dc),
		SearchBar:    PopulateSearchBarStrings(dc),
		Footer:       PopulateFooterStrings(dc),
	}
}

// PopulateSearchResultsPageStrings gathers the strings of the search results page.
func PopulateSearchResultsPageStrings(dc DynamicContent) SearchResultsPageStrings {
	return SearchResultsPageStrings{
		SearchBar:            PopulateSearchBarStrings(dc),
		LastEditedLabel:      LastUpdatedLabel(dc),
		ResultsFoundForQuery: dc["default_search_results_found"],
		AllResultsTab:        dc["default_all_results_tab"],
		InformationTab:       dc["default_information_results_tab"],
		ServicesTab:          dc["default_services_results_tab"],
		Footer:               PopulateFooterStrings(dc),
	}
}

// PopulateArticlePageStrings gathers the strings of an article page.
func PopulateArticlePageStrings(dc DynamicContent) ArticlePageStrings {
	return ArticlePageStrings{
		ArticleContent:   PopulateArticleContentStrings(dc),
		SearchBar:        PopulateSearchBarStrings(dc),
		CookieBanner:     PopulateCookieBannerStrings(dc),
		ArticleError:     GenerateArticleErrorProps(dc),
		LastUpdatedLabel: LastUpdatedLabel(dc),
		Footer:           PopulateFooterStrings(dc),
	}
}

// PopulateFooterStrings returns the footer disclaimer.
func PopulateFooterStrings(dc DynamicContent) FooterStrings {
	return FooterStrings{DisclaimerSummary: dc["default_home_disclaimer"]}
}

// PopulatePopupStrings labels the service popup on the map.
func PopulatePopupStrings(dc DynamicContent) PopupStrings {
	return PopupStrings{
		ContactButtonLabel: dc["default_contact_button_label"],
		ViewServiceLabel:   dc["default_view_service_label"],
	}
}

// PopulateServicePageStrings gathers the strings of a service page.
func PopulateServicePageStrings(dc DynamicContent) ServicePageStrings {
	return ServicePageStrings{
		ServiceContent:   PopulateArticleContentStrings(dc),
		SearchBar:        PopulateSearchBarStrings(dc),
		CookieBanner:     PopulateCookieBannerStrings(dc),
		ServiceError:     GenerateArticleErrorProps(dc),
		LastUpdatedLabel: LastUpdatedLabel(dc),
		Footer:           PopulateFooterStrings(dc),
	}
}
