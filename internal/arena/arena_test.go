package arena

import (
	"errors"
	"testing"
)

func TestAllocAlignment(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		align int
	}{
		{"byte-aligned", []int{1, 1, 1}, 1},
		{"eight-byte-aligned", []int{3, 5, 1}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(4096)
			for _, sz := range tt.sizes {
				b, err := a.Alloc(sz, tt.align)
				if err != nil {
					t.Fatalf("Alloc(%d,%d): %v", sz, tt.align, err)
				}
				if len(b) != sz {
					t.Fatalf("got len %d, want %d", len(b), sz)
				}
				if start := a.Used() - sz; tt.align > 1 && start%tt.align != 0 {
					t.Fatalf("allocation start %d not aligned to %d", start, tt.align)
				}
			}
		})
	}
}

func TestAllocOOM(t *testing.T) {
	a := New(16)
	if _, err := a.Alloc(8, 1); err != nil {
		t.Fatalf("first alloc: %v", err)
	}
	_, err := a.Alloc(16, 1)
	if !errors.Is(err, ErrOOM) {
		t.Fatalf("expected ErrOOM, got %v", err)
	}
	if a.Used() != 8 {
		t.Fatalf("failed alloc must not mutate offset, got %d", a.Used())
	}
}

func TestReset(t *testing.T) {
	a := New(64)
	if _, err := a.Alloc(32, 8); err != nil {
		t.Fatal(err)
	}
	a.Reset()
	if a.Used() != 0 {
		t.Fatalf("Used() after Reset = %d, want 0", a.Used())
	}
	if _, err := a.Alloc(64, 8); err != nil {
		t.Fatalf("alloc after reset should succeed: %v", err)
	}
}

func TestCopyString(t *testing.T) {
	a := New(64)
	s, err := a.CopyString("hello")
	if err != nil {
		t.Fatal(err)
	}
	if s != "hello" {
		t.Fatalf("got %q", s)
	}
}
