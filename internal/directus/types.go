package directus

import "strings"

// Service is a directory entry shown on the service map.
type Service struct {
	ID            int
	Name          string
	Description   string
	Address       string
	Phone         string
	Email         string
	Website       string
	Lat           float64
	Lon           float64
	ProviderID    int
	Categories    []int
	Populations   []int
	Accessibility []int
}

// Term is an id/name pair: service type, provider, population or accessibility tag.
type Term struct {
	ID   int
	Name string
}

type rawTranslation struct {
	LanguagesCode string `json:"languages_code"`
	Name          string `json:"name"`
	Description   string `json:"description"`
}

type rawLocation struct {
	Coordinates []float64 `json:"coordinates"`
}

type rawService struct {
	ID            flexID           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Address       string           `json:"address"`
	Phone         string           `json:"phone"`
	Email         string           `json:"email"`
	Website       string           `json:"website"`
	Location      *rawLocation     `json:"location"`
	Provider      flexID           `json:"provider"`
	Translations  []rawTranslation `json:"translations"`
	Categories    []rawJunction    `json:"categories"`
	Populations   []rawJunction    `json:"populations_served"`
	Accessibility []rawJunction    `json:"accessibility"`
}

type rawJunction struct {
	CategoryID      flexID `json:"service_categories_id"`
	PopulationID    flexID `json:"populations_served_id"`
	AccessibilityID flexID `json:"accessibility_id"`
}

func (j rawJunction) id() int {
	switch {
	case j.CategoryID != 0:
		return int(j.CategoryID)
	case j.PopulationID != 0:
		return int(j.PopulationID)
	default:
		return int(j.AccessibilityID)
	}
}

type rawTerm struct {
	ID          flexID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (t rawTerm) label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Description
}

func (r rawService) toService(lang string) Service {
	s := Service{
		ID:          int(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		Website:     r.Website,
		ProviderID:  int(r.Provider),
	}
	for _, tr := range r.Translations {
		if !strings.EqualFold(tr.LanguagesCode, lang) {
			continue
		}
		if tr.Name != "" {
			s.Name = tr.Name
		}
		if tr.Description != "" {
			s.Description = tr.Description
		}
		break
	}
	// GeoJSON points are [lon, lat]
	if r.Location != nil && len(r.Location.Coordinates) == 2 {
		s.Lon = r.Location.Coordinates[0]
		s.Lat = r.Location.Coordinates[1]
	}
	s.Categories = junctionIDs(r.Categories)
	s.Populations = junctionIDs(r.Populations)
	s.Accessibility = junctionIDs(r.Accessibility)
	return s
}

func junctionIDs(js []rawJunction) []int {
	if len(js) == 0 {
		return nil
	}
	out := make([]int, 0, len(js))
	for _, j := range js {
		if id := j.id(); id != 0 {
			out = append(out, id)
		}
	}
	return out
}
