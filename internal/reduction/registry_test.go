package reduction

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestDefaultRegistry_List(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()

	want := []string{"multiply", "product", "sum"}
	if got := r.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	wantCanonical := []string{"product", "sum"}
	if got := r.Canonical(); !reflect.DeepEqual(got, wantCanonical) {
		t.Errorf("Canonical() = %v, want %v", got, wantCanonical)
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()

	tests := []struct {
		name     string
		lookup   string
		wantName string
		wantErr  bool
	}{
		{name: "sum", lookup: "sum", wantName: "sum"},
		{name: "product", lookup: "product", wantName: "product"},
		{name: "alias", lookup: "multiply", wantName: "product"},
		{name: "case and spaces", lookup: "  SUM ", wantName: "sum"},
		{name: "unknown", lookup: "median", wantErr: true},
		{name: "empty", lookup: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := r.Get(tt.lookup)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStrategy) {
					t.Fatalf("Get(%q) error = %v, want ErrUnknownStrategy", tt.lookup, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) unexpected error: %v", tt.lookup, err)
			}
			if s.Name() != tt.wantName {
				t.Errorf("Get(%q).Name() = %q, want %q", tt.lookup, s.Name(), tt.wantName)
			}
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	if err := r.Register("", Sum{}); err == nil {
		t.Error("Register with empty name should fail")
	}
	if err := r.Register("sum", nil); err == nil {
		t.Error("Register with nil strategy should fail")
	}
	if err := r.Register("Total", Sum{}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := r.Get("total"); err != nil {
		t.Errorf("Get after Register failed: %v", err)
	}
	// "total" is an alias: the strategy names itself "sum".
	if got := r.Canonical(); len(got) != 0 {
		t.Errorf("Canonical() = %v, want empty", got)
	}
}

func TestRegistry_MustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustGet of unknown strategy should panic")
		}
	}()
	NewRegistry().MustGet("sum")
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.MustGet("sum").Operate([]float64{1, 2})
		}()
		go func() {
			defer wg.Done()
			r.MustRegister("product", Product{})
		}()
	}
	wg.Wait()

	if GlobalRegistry() == nil {
		t.Fatal("GlobalRegistry() returned nil")
	}
}
