package sparsevector

import (
	"reflect"
	"testing"
)

func TestFromDense(t *testing.T) {
	v := FromDense([]int{0, 5, 0, 0, 7, 0})
	if v.Size() != 6 {
		t.Fatalf("size = %d, want 6", v.Size())
	}
	wantOffsets := []int{1, 4}
	wantValues := []int{5, 7}
	if !reflect.DeepEqual(v.Offsets(), wantOffsets) {
		t.Errorf("offsets = %v, want %v", v.Offsets(), wantOffsets)
	}
	if !reflect.DeepEqual(v.Values(), wantValues) {
		t.Errorf("values = %v, want %v", v.Values(), wantValues)
	}
}

func TestGetAbsentReturnsZero(t *testing.T) {
	v := FromDense([]int{0, 5, 0})
	if got := v.Get(0); got != 0 {
		t.Errorf("Get(0) = %d, want 0", got)
	}
	if got := v.Get(1); got != 5 {
		t.Errorf("Get(1) = %d, want 5", got)
	}
}

func TestGetMutAppendsPastEnd(t *testing.T) {
	v := New[int](10)
	*v.GetMut(3) = 9
	*v.GetMut(7) = 2

	if got := v.Get(3); got != 9 {
		t.Errorf("Get(3) = %d, want 9", got)
	}
	if got := v.Get(7); got != 2 {
		t.Errorf("Get(7) = %d, want 2", got)
	}
	if !reflect.DeepEqual(v.Offsets(), []int{3, 7}) {
		t.Errorf("offsets = %v", v.Offsets())
	}
}

func TestGetMutInsertsInOrder(t *testing.T) {
	v := New[int](10)
	*v.GetMut(7) = 2
	*v.GetMut(3) = 9 // out of order relative to the previous insert

	if !reflect.DeepEqual(v.Offsets(), []int{3, 7}) {
		t.Fatalf("offsets = %v, want ascending", v.Offsets())
	}
	if !reflect.DeepEqual(v.Values(), []int{9, 2}) {
		t.Fatalf("values = %v", v.Values())
	}
}

func TestGetMutReusesExistingSlot(t *testing.T) {
	v := New[int](10)
	*v.GetMut(4) = 1
	p := v.GetMut(4)
	*p = 2

	if v.NonZeroSize() != 1 {
		t.Fatalf("non-zero size = %d, want 1", v.NonZeroSize())
	}
	if got := v.Get(4); got != 2 {
		t.Errorf("Get(4) = %d, want 2", got)
	}
}

func TestResizeShrink(t *testing.T) {
	v := FromDense([]int{1, 2, 3, 4, 5})
	v.Resize(3, 0)
	if v.Size() != 3 {
		t.Fatalf("size = %d, want 3", v.Size())
	}
	if !reflect.DeepEqual(v.Offsets(), []int{0, 1, 2}) {
		t.Errorf("offsets = %v", v.Offsets())
	}
}

func TestResizeGrowWithFill(t *testing.T) {
	v := New[int](2)
	v.Resize(5, 9)
	if !reflect.DeepEqual(v.Dense(), []int{0, 0, 9, 9, 9}) {
		t.Errorf("dense = %v", v.Dense())
	}
}

func TestResizeGrowWithZeroFillKeepsSparse(t *testing.T) {
	v := New[int](2)
	v.Resize(5, 0)
	if v.NonZeroSize() != 0 {
		t.Errorf("non-zero size = %d, want 0", v.NonZeroSize())
	}
	if v.Size() != 5 {
		t.Errorf("size = %d, want 5", v.Size())
	}
}

func TestResizeToZeroClears(t *testing.T) {
	v := FromDense([]int{1, 2, 3})
	v.Resize(0, 0)
	if v.Size() != 0 || v.NonZeroSize() != 0 {
		t.Errorf("expected empty vector, got size=%d nonzero=%d", v.Size(), v.NonZeroSize())
	}
}

func TestDenseRoundTrip(t *testing.T) {
	dense := []int{0, 1, 0, 0, 2, 3, 0}
	v := FromDense(dense)
	if !reflect.DeepEqual(v.Dense(), dense) {
		t.Errorf("dense round trip = %v, want %v", v.Dense(), dense)
	}
}

func TestDot(t *testing.T) {
	a := FromSparse([]int{2, 3}, []int{1, 4}, 6)
	b := FromSparse([]int{5, 7, 1}, []int{1, 2, 4}, 6)

	// Offset 1: 2*5=10. Offset 4: 3*1=3. Offset 2 only in b, ignored.
	got := Dot(a, b, 0, func(x, y int) int { return x * y }, func(x, y int) int { return x + y })
	if got != 13 {
		t.Errorf("dot = %d, want 13", got)
	}
}

func TestDotDisjoint(t *testing.T) {
	a := FromSparse([]int{1}, []int{0}, 4)
	b := FromSparse([]int{1}, []int{3}, 4)
	got := Dot(a, b, 0, func(x, y int) int { return x * y }, func(x, y int) int { return x + y })
	if got != 0 {
		t.Errorf("dot = %d, want 0", got)
	}
}

func TestReserveDoesNotChangeContents(t *testing.T) {
	v := FromDense([]int{1, 0, 2})
	v.Reserve(100)
	if !reflect.DeepEqual(v.Dense(), []int{1, 0, 2}) {
		t.Errorf("dense changed after Reserve: %v", v.Dense())
	}
}
