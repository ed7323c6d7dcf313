package dashboard

import "time"

// Money values are rendered with two decimals so clients never see float noise.

type MonthlyPoint struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

type Stats struct {
	TotalLoans     int64          `json:"totalLoans"`
	TotalBorrowers int64          `json:"totalBorrowers"`
	TotalAmount    string         `json:"totalAmount"`
	DefaultedLoans int64          `json:"defaultedLoans"`
	MonthlyLoans   []MonthlyPoint `json:"monthlyLoans"`
}

type MonthFigures struct {
	Loans  int64  `json:"loans"`
	Amount string `json:"amount"`
}

type Analytics struct {
	TotalActiveLoans int64            `json:"totalActiveLoans"`
	TotalBorrowers   int64            `json:"totalBorrowers"`
	CurrentMonth     MonthFigures     `json:"currentMonth"`
	LoansByStatus    map[string]int64 `json:"loansByStatus"`
	TotalAmount      string           `json:"totalAmount"`
	LastUpdated      time.Time        `json:"lastUpdated"`
}
