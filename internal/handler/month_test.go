package handler

import "testing"

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		start, end  string
	}{
		{"leap february", 2024, 1, "2024-02-01", "2024-02-29"},
		{"plain february", 2023, 1, "2023-02-01", "2023-02-28"},
		{"january", 2024, 0, "2024-01-01", "2024-01-31"},
		{"april has 30 days", 2024, 3, "2024-04-01", "2024-04-30"},
		{"december", 2024, 11, "2024-12-01", "2024-12-31"},
		{"month 12 rolls into next year", 2024, 12, "2025-01-01", "2025-01-31"},
		{"month -1 rolls into previous year", 2024, -1, "2023-12-01", "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := monthRange(tt.year, tt.month)
			if start != tt.start || end != tt.end {
				t.Errorf("monthRange(%d, %d) = (%s, %s), want (%s, %s)",
					tt.year, tt.month, start, end, tt.start, tt.end)
			}
		})
	}
}
