package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"qzone/internal/model"
	"qzone/internal/repository"
)

// HistoryLimit caps how many infection records a sector query returns
const HistoryLimit = 7

var sectors = []string{
	"Boston QZ",
	"Pittsburgh QZ",
	"Kansas City QZ",
	"Jackson",
	"Salt Lake City",
	"Seattle QZ",
	"Bill's Town",
	"Lincoln",
}

var sectorEvents = []string{
	"Patrol returned without losses",
	"Clicker nest cleared",
	"Supply convoy arrived",
	"Perimeter breach contained",
	"Spore levels rising in lower districts",
	"Firefly graffiti reported",
	"Curfew extended",
}

// SectorService serves per-sector analytics and reseeds sample data
type SectorService interface {
	Sectors() []string
	InfectionHistory(ctx context.Context, sector string) ([]model.InfectionRecord, error)
	ResourceData(ctx context.Context, sector string) (*model.SectorResources, error)
	SeedInfection(ctx context.Context) (int64, error)
	SeedResources(ctx context.Context) (string, error)
}

type sectorService struct {
	repo repository.SectorRepository
	now  func() time.Time

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

// NewSectorService creates a SectorService. rnd drives sample data generation.
func NewSectorService(repo repository.SectorRepository, rnd *rand.Rand) SectorService {
	return &sectorService{repo: repo, now: time.Now, rnd: rnd}
}

// Sectors returns a copy of the static sector list
func (s *sectorService) Sectors() []string {
	out := make([]string, len(sectors))
	copy(out, sectors)
	return out
}

func (s *sectorService) InfectionHistory(ctx context.Context, sector string) ([]model.InfectionRecord, error) {
	records, err := s.repo.InfectionHistory(ctx, sector, HistoryLimit)
	if err != nil {
		return nil, wrapStorage("failed to get infection history", err)
	}
	return records, nil
}

func (s *sectorService) ResourceData(ctx context.Context, sector string) (*model.SectorResources, error) {
	resource, err := s.repo.LatestResource(ctx, sector)
	if err != nil {
		return nil, wrapStorage("failed to get resource data", err)
	}
	activity, err := s.repo.LatestActivity(ctx, sector)
	if err != nil {
		return nil, wrapStorage("failed to get sector activity", err)
	}
	return &model.SectorResources{Resource: resource, Activity: activity}, nil
}

// SeedInfection replaces all infection history with HistoryLimit daily samples per sector
func (s *sectorService) SeedInfection(ctx context.Context) (int64, error) {
	records := s.sampleInfection()
	n, err := s.repo.ReplaceInfectionHistory(ctx, records)
	if err != nil {
		return 0, wrapStorage("failed to seed infection history", err)
	}
	return n, nil
}

// SeedResources replaces all resource and activity data with one sample per sector
func (s *sectorService) SeedResources(ctx context.Context) (string, error) {
	resources, activity := s.sampleResources()
	if err := s.repo.ReplaceResources(ctx, resources, activity); err != nil {
		return "", wrapStorage("failed to seed resources", err)
	}
	return fmt.Sprintf("Seeded resource and activity data for %d sectors", len(resources)), nil
}

func (s *sectorService) sampleInfection() []model.InfectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	records := make([]model.InfectionRecord, 0, len(sectors)*HistoryLimit)
	for _, sector := range sectors {
		rate := 5 + s.rnd.Float64()*40
		for day := HistoryLimit - 1; day >= 0; day-- {
			rate = clampPercent(rate + (s.rnd.Float64()*6 - 3))
			records = append(records, model.InfectionRecord{
				Sector:        sector,
				Date:          today.AddDate(0, 0, -day),
				InfectionRate: round1(rate),
				InfectedCount: int(rate * float64(20+s.rnd.Intn(30))),
				CreatedAt:     now,
			})
		}
	}
	return records
}

func (s *sectorService) sampleResources() ([]model.ResourceData, []model.SectorActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	resources := make([]model.ResourceData, 0, len(sectors))
	activity := make([]model.SectorActivity, 0, len(sectors))
	for _, sector := range sectors {
		resources = append(resources, model.ResourceData{
			Sector:     sector,
			Food:       round1(s.rnd.Float64() * 100),
			Water:      round1(s.rnd.Float64() * 100),
			Medicine:   round1(s.rnd.Float64() * 100),
			Ammunition: round1(s.rnd.Float64() * 100),
			UpdatedAt:  now,
		})
		level := round1(s.rnd.Float64() * 100)
		activity = append(activity, model.SectorActivity{
			Sector:        sector,
			ActivityLevel: level,
			ThreatLevel:   threatFor(level),
			Population:    500 + s.rnd.Intn(20000),
			LastEvent:     sectorEvents[s.rnd.Intn(len(sectorEvents))],
			UpdatedAt:     now,
		})
	}
	return resources, activity
}

func threatFor(level float64) string {
	switch {
	case level >= 85:
		return model.ThreatCritical
	case level >= 60:
		return model.ThreatHigh
	case level >= 30:
		return model.ThreatMedium
	default:
		return model.ThreatLow
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
