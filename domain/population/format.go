package population

import (
	"github.com/montanaflynn/stats"

	"popgen/internal/errors"
)

// SummaryRow is one age band of the per-pyramid numeric table. Values are
// in thousands, matching the ingested counts.
type SummaryRow struct {
	AgeGroup string  `json:"age_group"`
	Male     float64 `json:"male"`
	Female   float64 `json:"female"`
	Total    float64 `json:"total"`
}

// SummaryTable is the Male/Female/Total breakdown for one resolved
// selection, one row per age band in input order.
type SummaryTable struct {
	Rows        []SummaryRow `json:"rows"`
	TotalMale   float64      `json:"total_male"`
	TotalFemale float64      `json:"total_female"`
	Total       float64      `json:"total"`
}

// FormatSummary assembles the summary table from two count vectors. The
// vectors are expected to come from Row.Counts, so non-numeric source cells
// have already defaulted to zero; a zero-length label set yields an empty
// table rather than an error.
func FormatSummary(male, female []float64, labels []string) (*SummaryTable, error) {
	if len(male) != len(labels) || len(female) != len(labels) {
		return nil, errors.InvalidInput("count vectors and age labels must have equal length")
	}

	table := &SummaryTable{Rows: make([]SummaryRow, len(labels))}
	for i, label := range labels {
		table.Rows[i] = SummaryRow{
			AgeGroup: label,
			Male:     male[i],
			Female:   female[i],
			Total:    male[i] + female[i],
		}
	}

	table.TotalMale = sumOrZero(male)
	table.TotalFemale = sumOrZero(female)
	table.Total = table.TotalMale + table.TotalFemale
	return table, nil
}

func sumOrZero(values []float64) float64 {
	sum, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return sum
}
