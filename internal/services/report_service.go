package services

import (
	"strings"

	"hungerscrm/internal/models"
)

// Filter is the active dashboard/board filter state. Zero values mean
// "All": no search term, any country, any seller.
type Filter struct {
	Search  string
	Country string
	Seller  string
}

// FilterDeals applies the filter: case-insensitive substring match of
// the search term against title, organization or contact name, plus
// exact country and seller matches. Order is preserved.
func FilterDeals(deals []models.Deal, f Filter) []models.Deal {
	term := strings.ToLower(f.Search)
	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Title), term) &&
			!strings.Contains(strings.ToLower(d.Organization), term) &&
			!strings.Contains(strings.ToLower(d.ContactName), term) {
			continue
		}
		if f.Country != "" && f.Country != "All" && string(d.Country) != f.Country {
			continue
		}
		if f.Seller != "" && f.Seller != "All" && d.SellerID != f.Seller {
			continue
		}
		out = append(out, d)
	}
	return out
}

// GroupByStage partitions filtered deals by pipeline stage. Every
// active stage is present, empty stages included; relative order
// within a bucket follows the filtered order.
func GroupByStage(deals []models.Deal, f Filter) map[models.DealStatus][]models.Deal {
	filtered := FilterDeals(deals, f)
	grouped := make(map[models.DealStatus][]models.Deal, len(models.PipelineStages))
	for _, stage := range models.PipelineStages {
		grouped[stage] = []models.Deal{}
	}
	for _, d := range filtered {
		if bucket, ok := grouped[d.Status]; ok {
			grouped[d.Status] = append(bucket, d)
		}
	}
	return grouped
}

// TotalValue sums the USD value over the filtered deals.
func TotalValue(deals []models.Deal, f Filter) float64 {
	var total float64
	for _, d := range FilterDeals(deals, f) {
		total += d.Value
	}
	return total
}

// SeriesPoint is one chart bar/slice.
type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StageValueSeries sums value per pipeline stage, in stage order.
func StageValueSeries(deals []models.Deal, f Filter) []SeriesPoint {
	filtered := FilterDeals(deals, f)
	series := make([]SeriesPoint, 0, len(models.PipelineStages))
	for _, stage := range models.PipelineStages {
		var sum float64
		for _, d := range filtered {
			if d.Status == stage {
				sum += d.Value
			}
		}
		series = append(series, SeriesPoint{Name: string(stage), Value: sum})
	}
	return series
}

// PriorityCountSeries counts filtered deals per priority, low to high.
func PriorityCountSeries(deals []models.Deal, f Filter) []SeriesPoint {
	filtered := FilterDeals(deals, f)
	priorities := []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
	series := make([]SeriesPoint, 0, len(priorities))
	for _, p := range priorities {
		var n float64
		for _, d := range filtered {
			if d.Priority == p {
				n++
			}
		}
		series = append(series, SeriesPoint{Name: strings.ToUpper(string(p)), Value: n})
	}
	return series
}

// DashboardSummary is the aggregate the dashboard renders.
type DashboardSummary struct {
	TotalValueUSD  float64          `json:"totalValueUsd"`
	TotalValueCOP  float64          `json:"totalValueCop"`
	TotalValueMXN  float64          `json:"totalValueMxn"`
	ActiveDeals    int              `json:"activeDeals"`
	StageValues    []SeriesPoint    `json:"stageValues"`
	PriorityCounts []SeriesPoint    `json:"priorityCounts"`
	SyncState      models.SyncState `json:"syncState"`
}

// StageColumn is one pipeline board column.
type StageColumn struct {
	Stage      models.DealStatus `json:"stage"`
	Deals      []models.Deal     `json:"deals"`
	StageValue float64           `json:"stageValue"`
}

// ReportService derives dashboard and board views from the deal
// collection. All computation is re-derived per request; the dataset
// is small and nothing is cached.
type ReportService struct {
	Deals  *DealService
	Backup *BackupService
}

func NewReportService(deals *DealService, backup *BackupService) *ReportService {
	return &ReportService{Deals: deals, Backup: backup}
}

func (s *ReportService) Dashboard(f Filter) (*DashboardSummary, error) {
	deals, err := s.Deals.List()
	if err != nil {
		return nil, err
	}
	filtered := FilterDeals(deals, f)
	total := TotalValue(deals, f)
	summary := &DashboardSummary{
		TotalValueUSD:  total,
		TotalValueCOP:  total * models.RateCOP,
		TotalValueMXN:  total * models.RateMXN,
		ActiveDeals:    len(filtered),
		StageValues:    StageValueSeries(deals, f),
		PriorityCounts: PriorityCountSeries(deals, f),
	}
	if s.Backup != nil {
		summary.SyncState = s.Backup.State()
	}
	return summary, nil
}

// Pipeline returns the board columns in stage order.
func (s *ReportService) Pipeline(f Filter) ([]StageColumn, error) {
	deals, err := s.Deals.List()
	if err != nil {
		return nil, err
	}
	grouped := GroupByStage(deals, f)
	columns := make([]StageColumn, 0, len(models.PipelineStages))
	for _, stage := range models.PipelineStages {
		var sum float64
		for _, d := range grouped[stage] {
			sum += d.Value
		}
		columns = append(columns, StageColumn{Stage: stage, Deals: grouped[stage], StageValue: sum})
	}
	return columns, nil
}
