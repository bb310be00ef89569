package ann

import (
	"testing"

	"github.com/brigitte-bigi/annago/core/errors"
)

func TestNewPoint(t *testing.T) {
	tests := []struct {
		name     string
		midpoint float64
		radius   float64
		wantErr  bool
	}{
		{"exact", 1.5, 0, false},
		{"with radius", 1.5, 0.005, false},
		{"zero", 0, 0, false},
		{"negative midpoint", -1, 0, true},
		{"negative radius", 1, -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPoint(tt.midpoint, tt.radius)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewPoint() expected error, got nil")
				}
				if !errors.Is(err, errors.ErrNegativeValue) {
					t.Errorf("error = %v, want ErrNegativeValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPoint() error = %v", err)
			}
			if p.Midpoint() != tt.midpoint || p.Radius() != tt.radius {
				t.Errorf("got (%v, %v), want (%v, %v)", p.Midpoint(), p.Radius(), tt.midpoint, tt.radius)
			}
		})
	}
}

func TestPointFuzzyEquality(t *testing.T) {
	tests := []struct {
		name   string
		m1, r1 float64
		m2, r2 float64
		want   bool
	}{
		{"exact equal", 1.0, 0, 1.0, 0, true},
		{"exact different", 1.0, 0, 1.001, 0, false},
		{"within combined radius", 1.0, 0.01, 1.015, 0.01, true},
		{"at combined radius", 1.0, 0.01, 1.02, 0.01, true},
		{"outside combined radius", 1.0, 0.01, 1.021, 0.01, false},
		{"one-sided radius", 1.0, 0.05, 1.04, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, _ := NewPoint(tt.m1, tt.r1)
			p2, _ := NewPoint(tt.m2, tt.r2)
			if got := p1.Equal(p2); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			// equality is symmetric
			if got := p2.Equal(p1); got != tt.want {
				t.Errorf("Equal() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointOrderingConsistentWithEquality(t *testing.T) {
	// Two fuzzily equal points are neither before nor after each other.
	p1, _ := NewPoint(1.0, 0.01)
	p2, _ := NewPoint(1.015, 0.01)
	if !p1.Equal(p2) {
		t.Fatal("test points should be fuzzily equal")
	}
	if p1.Before(p2) || p1.After(p2) || p2.Before(p1) || p2.After(p1) {
		t.Error("equal points must not be ordered")
	}

	p3, _ := NewPoint(2.0, 0)
	if !p1.Before(p3) || !p3.After(p1) {
		t.Error("distinct points must be ordered by midpoint")
	}
}

func TestComparePoint(t *testing.T) {
	a, _ := NewPoint(1.0, 0)
	b, _ := NewPoint(2.0, 0)
	c, _ := NewPoint(1.0, 0)

	if got := ComparePoint(a, b); got != -1 {
		t.Errorf("ComparePoint(a, b) = %d, want -1", got)
	}
	if got := ComparePoint(b, a); got != 1 {
		t.Errorf("ComparePoint(b, a) = %d, want 1", got)
	}
	if got := ComparePoint(a, c); got != 0 {
		t.Errorf("ComparePoint(a, c) = %d, want 0", got)
	}
}

func TestPointSetters(t *testing.T) {
	p, _ := NewPoint(1.0, 0)
	if err := p.SetMidpoint(-2); err == nil {
		t.Error("SetMidpoint(-2) should fail")
	}
	if err := p.SetRadius(-0.5); err == nil {
		t.Error("SetRadius(-0.5) should fail")
	}
	if err := p.SetMidpoint(2.5); err != nil {
		t.Errorf("SetMidpoint(2.5) error = %v", err)
	}
	if p.Midpoint() != 2.5 {
		t.Errorf("Midpoint() = %v, want 2.5", p.Midpoint())
	}
}

func TestPointDuration(t *testing.T) {
	p, _ := NewPoint(1.0, 0.02)
	d := p.Duration()
	if d.Value != 0 || d.Margin != 0.04 {
		t.Errorf("Duration() = %+v, want {0 0.04}", d)
	}
}
