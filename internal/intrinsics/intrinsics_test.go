package intrinsics

import "testing"

func TestNamesReturnsSortedTableKeys(t *testing.T) {
	names := Names()
	if len(names) != len(Table) {
		t.Fatalf("expected %d names, got %d", len(Table), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("expected sorted names, got %v", names)
		}
	}
	if _, ok := Lookup("vertex"); !ok {
		t.Fatal("expected vertex to be a registered builtin")
	}
}
