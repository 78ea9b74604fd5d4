package contracts

import (
	"errors"
	"testing"
	"time"
)

func TestFilterCriteriaValidate(t *testing.T) {
	tests := []struct {
		name     string
		criteria FilterCriteria
		wantErr  bool
	}{
		{
			name: "valid",
			criteria: FilterCriteria{
				MinPrice: 5, MaxPrice: 1000,
				MinRsi: 25, MaxRsi: 75,
				MinDataPoints: 200, MaxVolatility: 0.05,
			},
			wantErr: false,
		},
		{
			name: "price bounds inverted",
			criteria: FilterCriteria{
				MinPrice: 100, MaxPrice: 50,
				MinRsi: 25, MaxRsi: 75,
			},
			wantErr: true,
		},
		{
			name: "rsi bounds inverted",
			criteria: FilterCriteria{
				MinPrice: 5, MaxPrice: 1000,
				MinRsi: 80, MaxRsi: 20,
			},
			wantErr: true,
		},
		{
			name: "rsi above 100",
			criteria: FilterCriteria{
				MinPrice: 5, MaxPrice: 1000,
				MinRsi: 25, MaxRsi: 120,
			},
			wantErr: true,
		},
		{
			name: "negative volatility cap",
			criteria: FilterCriteria{
				MinPrice: 5, MaxPrice: 1000,
				MinRsi: 25, MaxRsi: 75,
				MaxVolatility: -0.01,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected validation error, got nil")
				}
				if !errors.Is(err, ErrInvalidCriteria) {
					t.Errorf("Expected ErrInvalidCriteria, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestPositionHelpers(t *testing.T) {
	entry := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	p := &Position{
		Symbol:     "AAPL",
		Shares:     10,
		EntryPrice: 100,
		EntryDate:  entry,
	}

	now := entry.AddDate(0, 0, 7)
	if got := p.HoldingDays(now); got != 7 {
		t.Errorf("HoldingDays() = %d, want 7", got)
	}

	if got := p.ReturnPct(110); got != 0.10 {
		t.Errorf("ReturnPct(110) = %f, want 0.10", got)
	}

	if got := p.ReturnPct(94); got != -0.06 {
		t.Errorf("ReturnPct(94) = %f, want -0.06", got)
	}
}

func TestIndicatorSeriesLast(t *testing.T) {
	empty := &IndicatorSeries{Symbol: "AAPL"}
	if empty.Last() != nil {
		t.Error("Expected nil Last() for empty series")
	}

	s := &IndicatorSeries{
		Symbol: "AAPL",
		Rows: []IndicatorRow{
			{PricePoint: PricePoint{Close: 100}},
			{PricePoint: PricePoint{Close: 101}},
		},
	}

	last := s.Last()
	if last == nil {
		t.Fatal("Expected non-nil Last()")
	}
	if last.Close != 101 {
		t.Errorf("Last().Close = %f, want 101", last.Close)
	}
}
