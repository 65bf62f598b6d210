package services

import (
	"fmt"
	"strings"

	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/samber/lo"
)

// ExportCSVHeader is the literal header row of the influencer export.
const ExportCSVHeader = "Name, Email, Coupon Code, Commission Rate, Total Orders, Total Sales (₹), Total Commission (₹), Status, Created At"

type ExportService struct {
	influencerService *InfluencerService
}

func NewExportService() *ExportService {
	return &ExportService{influencerService: NewInfluencerService()}
}

// InfluencerCSV renders the influencer roster with per-influencer sales
// totals as comma-joined rows under ExportCSVHeader.
func (s *ExportService) InfluencerCSV() (string, error) {
	influencers, err := s.influencerService.List()
	if err != nil {
		return "", err
	}

	rows := make([]string, 0, len(influencers)+1)
	rows = append(rows, ExportCSVHeader)
	for _, influencer := range influencers {
		stats, err := s.influencerService.StatsFor(influencer.ID)
		if err != nil {
			return "", err
		}
		rows = append(rows, formatExportRow(&influencer, stats))
	}
	return strings.Join(rows, "\n") + "\n", nil
}

func formatExportRow(influencer *models.Influencer, stats *models.InfluencerStats) string {
	status := lo.Ternary(influencer.Active, "Active", "Inactive")
	fields := []string{
		influencer.Name,
		influencer.Email,
		influencer.CouponCode,
		fmt.Sprintf("%g%%", influencer.CommissionRate),
		fmt.Sprintf("%d", stats.TotalOrders),
		fmt.Sprintf("%.2f", stats.TotalSales),
		fmt.Sprintf("%.2f", stats.TotalCommission),
		status,
		influencer.CreatedAt.Format("2006-01-02"),
	}
	return strings.Join(fields, ",")
}
