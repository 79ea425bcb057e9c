package model

import "time"

const (
	ThreatLow      = "low"
	ThreatMedium   = "medium"
	ThreatHigh     = "high"
	ThreatCritical = "critical"
)

// InfectionRecord is one daily infection sample for a sector
type InfectionRecord struct {
	ID            int64     `json:"id"`
	Sector        string    `json:"sector"`
	Date          time.Time `json:"date"`
	InfectionRate float64   `json:"infection_rate"` // Percentage, 0-100
	InfectedCount int       `json:"infected_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ResourceData holds supply levels for a sector, all percentages 0-100
type ResourceData struct {
	ID         int64     `json:"id"`
	Sector     string    `json:"sector"`
	Food       float64   `json:"food"`
	Water      float64   `json:"water"`
	Medicine   float64   `json:"medicine"`
	Ammunition float64   `json:"ammunition"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SectorActivity describes what is currently happening in a sector
type SectorActivity struct {
	ID            int64     `json:"id"`
	Sector        string    `json:"sector"`
	ActivityLevel float64   `json:"activity_level"` // Percentage, 0-100
	ThreatLevel   string    `json:"threat_level"`
	Population    int       `json:"population"`
	LastEvent     string    `json:"last_event"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SectorResources is the response of the resource-data endpoint; either side may be nil
type SectorResources struct {
	Resource *ResourceData   `json:"resource"`
	Activity *SectorActivity `json:"activity"`
}

// Percentage reports whether v is within the inclusive 0-100 range
func Percentage(v float64) bool {
	return v >= 0 && v <= 100
}

// Validate checks the ranges the store also enforces
func (r *InfectionRecord) Validate() bool {
	return r.Sector != "" && Percentage(r.InfectionRate) && r.InfectedCount >= 0
}

func (r *ResourceData) Validate() bool {
	return r.Sector != "" &&
		Percentage(r.Food) && Percentage(r.Water) &&
		Percentage(r.Medicine) && Percentage(r.Ammunition)
}

func (a *SectorActivity) Validate() bool {
	switch a.ThreatLevel {
	case ThreatLow, ThreatMedium, ThreatHigh, ThreatCritical:
	default:
		return false
	}
	return a.Sector != "" && Percentage(a.ActivityLevel) && a.Population >= 0
}
