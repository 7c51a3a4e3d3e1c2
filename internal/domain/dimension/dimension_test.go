package dimension

import (
	"errors"
	"math"
	"testing"

	"github.com/adoptiq/maturity/internal/domain"
)

func TestDefaultWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("DefaultWeights().Validate() = %v, want nil", err)
	}
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{
			name:    "default table",
			weights: DefaultWeights(),
		},
		{
			name: "equal weights",
			weights: Weights{
				Data: 0.2, Process: 0.2, People: 0.2, Technology: 0.2, Governance: 0.2,
			},
		},
		{
			name: "within tolerance",
			weights: Weights{
				Data: 0.2004, Process: 0.2, People: 0.2, Technology: 0.2, Governance: 0.2,
			},
		},
		{
			name: "sum off by too much",
			weights: Weights{
				Data: 0.3, Process: 0.2, People: 0.2, Technology: 0.2, Governance: 0.2,
			},
			wantErr: true,
		},
		{
			name: "missing dimension",
			weights: Weights{
				Data: 0.4, Process: 0.2, People: 0.2, Technology: 0.2,
			},
			wantErr: true,
		},
		{
			name: "unknown dimension",
			weights: Weights{
				Data: 0.2, Process: 0.2, People: 0.2, Technology: 0.2, Governance: 0.1,
				Dimension("culture"): 0.1,
			},
			wantErr: true,
		},
		{
			name: "negative weight",
			weights: Weights{
				Data: -0.2, Process: 0.6, People: 0.2, Technology: 0.2, Governance: 0.2,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Validate() = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestOrderFollowsDeclaration(t *testing.T) {
	want := []Dimension{Data, Process, People, Technology, Governance}
	for i, d := range want {
		if All[i] != d {
			t.Errorf("All[%d] = %s, want %s", i, All[i], d)
		}
		if Order(d) != i {
			t.Errorf("Order(%s) = %d, want %d", d, Order(d), i)
		}
	}
	if Order("culture") >= 0 {
		t.Error("Order accepted an unknown dimension")
	}
}

func TestAverageRenormalizes(t *testing.T) {
	items := []Weighted{
		{Value: 80, Weight: 3},
		{Value: 40, Weight: 1},
	}
	got, err := Average(items, true)
	if err != nil {
		t.Fatalf("Average() error: %v", err)
	}
	if want := 70.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Average() = %v, want %v", got, want)
	}
}

func TestAverageWeightedSum(t *testing.T) {
	items := []Weighted{
		{Value: 80, Weight: 0.25},
		{Value: 60, Weight: 0.20},
		{Value: 40, Weight: 0.20},
		{Value: 60, Weight: 0.20},
		{Value: 20, Weight: 0.15},
	}
	got, err := Average(items, false)
	if err != nil {
		t.Fatalf("Average() error: %v", err)
	}
	if want := 55.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Average() = %v, want %v", got, want)
	}
}

func TestAverageRejectsDegenerateInput(t *testing.T) {
	if _, err := Average(nil, true); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Average(empty) = %v, want ErrValidation", err)
	}
	if _, err := Average([]Weighted{{Value: 1, Weight: -1}}, true); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Average(negative weight) = %v, want ErrValidation", err)
	}
	if _, err := Average([]Weighted{{Value: 1, Weight: 0}}, true); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Average(zero total weight) = %v, want ErrValidation", err)
	}
}
