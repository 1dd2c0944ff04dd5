package sleep

import (
	"math"
	"testing"
	"time"

	"github.com/somnia-app/somnia-api/internal/domain"
)

func nightSession(hours float64, awakeSeconds float64, awakenings int) *domain.SleepSession {
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	return &domain.SleepSession{
		StartTime:    start,
		EndTime:      start.Add(time.Duration(hours * float64(time.Hour))),
		AwakeSeconds: awakeSeconds,
		Awakenings:   awakenings,
	}
}

func TestQualityNightSessions(t *testing.T) {
	tests := []struct {
		name       string
		hours      float64
		awakeSec   float64
		awakenings int
		want       float64
	}{
		{
			name:  "ideal eight hour night",
			hours: 8,
			want:  1.0,
		},
		{
			name:       "fragmented short night",
			hours:      4,
			awakeSec:   4 * 3600 * 0.3,
			awakenings: 8,
			// 0.4*(4/7) + 0.4*0.6 + 0.2*0.4
			want: 0.4*(4.0/7.0) + 0.24 + 0.08,
		},
		{
			name:  "oversleep penalized",
			hours: 12,
			// 0.4*(9/12) + 0.4 + 0.2
			want: 0.9,
		},
		{
			name:       "moderate awakenings",
			hours:      7.5,
			awakenings: 3,
			// 0.4 + 0.4 + 0.2*0.8
			want: 0.96,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quality(nightSession(tt.hours, tt.awakeSec, tt.awakenings), false)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Quality() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQualityNaps(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{
			name:  "micro nap",
			hours: 0.1,
			want:  0.4,
		},
		{
			name:  "optimal 25 minute nap",
			hours: 25.0 / 60.0,
			want:  1.0,
		},
		{
			name:  "full cycle nap with inertia penalty",
			hours: 1.5,
			// duration score 0.9, penalty 0.4
			want: 0.5,
		},
		{
			name:  "overlong nap",
			hours: 2.5,
			// duration score 0.3, penalty 0.4, clamped at 0
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quality(nightSession(tt.hours, 0, 0), true)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Quality() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyAndScoreSparselyStagedNight(t *testing.T) {
	// Classification and scoring must agree on the session span: an 8h
	// night with only 2.5h of recorded stages goes down the night branch
	// and keeps its full-duration score.
	s := nightSession(8, 0, 0)
	s.Stages = []domain.SleepStage{
		{
			StartTime: s.StartTime,
			EndTime:   s.StartTime.Add(150 * time.Minute),
			Stage:     domain.StageLight,
		},
	}

	isNap := IsNap(s)
	if isNap {
		t.Fatal("sparsely staged 8h night classified as nap")
	}
	if got := Quality(s, isNap); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Quality() = %v, want 1.0", got)
	}
}

func TestQualityAlwaysInUnitInterval(t *testing.T) {
	durations := []float64{0, 0.05, 0.17, 0.3, 0.5, 0.9, 1, 1.5, 2, 3, 5, 7, 8, 9, 12, 16}
	awakeFractions := []float64{0, 0.1, 0.3, 0.5, 0.9, 1}
	awakenings := []int{0, 1, 3, 5, 7, 20}

	for _, d := range durations {
		for _, f := range awakeFractions {
			for _, a := range awakenings {
				s := nightSession(d, d*3600*f, a)
				for _, nap := range []bool{true, false} {
					got := Quality(s, nap)
					if got < 0 || got > 1 {
						t.Fatalf("Quality(d=%v, awakeFrac=%v, awakenings=%d, nap=%v) = %v, out of [0,1]",
							d, f, a, nap, got)
					}
				}
			}
		}
	}
}
