package finalize

import "testing"

func f(v float64) *float64 { return &v }

func TestCutoffsNearestRank(t *testing.T) {
	// 10 values: rank ceil(10·0.33)=4 -> 4th ascending; ceil(10·0.67)=7.
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	c := CutoffsFor(values)
	if !c.Valid {
		t.Fatal("cutoffs not valid for a populated pool")
	}
	if c.P33 != 40 {
		t.Errorf("p33 = %v, want 40", c.P33)
	}
	if c.P67 != 70 {
		t.Errorf("p67 = %v, want 70", c.P67)
	}
}

func TestTierBoundaries(t *testing.T) {
	c := CutoffsFor([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})

	tests := []struct {
		name string
		v    *float64
		want int
	}{
		{"exactly p67", f(70), TierTop},
		{"above p67", f(95), TierTop},
		{"exactly p33", f(40), TierMiddle},
		{"between cutoffs", f(55), TierMiddle},
		{"strictly below p33", f(39.9), TierBottom},
		{"missing value", nil, TierBottom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tier(tc.v, c); got != tc.want {
				t.Errorf("tier = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTierEmptyPool(t *testing.T) {
	c := CutoffsFor(nil)
	if c.Valid {
		t.Fatal("cutoffs valid for an empty pool")
	}
	if got := Tier(f(99), c); got != TierBottom {
		t.Errorf("tier = %d, want bottom tier when no pool exists", got)
	}
}
