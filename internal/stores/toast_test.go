package stores

import (
	"testing"
	"time"

	"github.com/SeimoDev/LightShop/domain"
)

func TestToastStore_AddAssignsMonotonicIDs(t *testing.T) {
	s := NewToastStore()

	first := s.Add("one", domain.ToastInfo, 0)
	second := s.Add("two", domain.ToastError, 0)
	third := s.Add("three", domain.ToastSuccess, 0)

	if first >= second || second >= third {
		t.Fatalf("ids not monotonically increasing: %d, %d, %d", first, second, third)
	}

	messages := s.Messages()
	if len(messages) != 3 {
		t.Fatalf("expected 3 live messages, got %d", len(messages))
	}
	for i, want := range []string{"one", "two", "three"} {
		if messages[i].Message != want {
			t.Errorf("display order broken at %d: got %q, want %q", i, messages[i].Message, want)
		}
	}
}

func TestToastStore_ExpiresAfterDuration(t *testing.T) {
	s := NewToastStore()

	id := s.Add("x", domain.ToastError, 100*time.Millisecond)
	if !s.Contains(id) {
		t.Fatal("message should be live immediately after add")
	}

	deadline := time.After(2 * time.Second)
	for s.Contains(id) {
		select {
		case <-deadline:
			t.Fatal("message never expired")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestToastStore_ZeroDurationPersists(t *testing.T) {
	s := NewToastStore()

	id := s.Add("sticky", domain.ToastWarning, 0)
	time.Sleep(50 * time.Millisecond)
	if !s.Contains(id) {
		t.Fatal("zero-duration message must persist until dismissed")
	}

	s.Remove(id)
	if s.Contains(id) {
		t.Fatal("message still live after explicit removal")
	}
}

func TestToastStore_RemoveUnknownIDIsNoop(t *testing.T) {
	s := NewToastStore()
	id := s.Add("keep", domain.ToastInfo, 0)

	s.Remove(9999)
	s.Remove(id)
	s.Remove(id) // second removal of the same id

	if len(s.Messages()) != 0 {
		t.Fatal("queue should be empty")
	}
}

func TestToastStore_ConvenienceWrappersFixType(t *testing.T) {
	s := NewToastStore()
	s.Success("a")
	s.Error("b")
	s.Warning("c")
	s.Info("d")

	got := s.Messages()
	want := []domain.ToastType{domain.ToastSuccess, domain.ToastError, domain.ToastWarning, domain.ToastInfo}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i, typ := range want {
		if got[i].Type != typ {
			t.Errorf("message %d: got type %q, want %q", i, got[i].Type, typ)
		}
	}
}
