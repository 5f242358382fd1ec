package models

type IntegrationCategory string

const (
	CategoryProductivity  IntegrationCategory = "productivity"
	CategoryCommunication IntegrationCategory = "communication"
	CategoryStorage       IntegrationCategory = "storage"
	CategorySocial        IntegrationCategory = "social"
	CategoryFinance       IntegrationCategory = "finance"
	CategoryOther         IntegrationCategory = "other"
)

type Integration struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    IntegrationCategory `json:"category"`
	Icon        string              `json:"icon"`
	Connected   bool                `json:"connected"`
	Free        bool                `json:"free"`
	ComingSoon  bool                `json:"comingSoon,omitempty"`
}

type IntegrationCategoryOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type IntegrationStats struct {
	Connected int `json:"connected"`
	Free      int `json:"free"`
	Total     int `json:"total"`
}
