package models

import "testing"

func TestStatusNext(t *testing.T) {
	steps := map[Status]Status{
		StatusNew:        StatusProcessing,
		StatusProcessing: StatusReady,
		StatusReady:      StatusCompleted,
	}
	for from, want := range steps {
		next, ok := from.Next()
		if !ok || next != want {
			t.Fatalf("Next(%s) = %s, %v; want %s", from, next, ok, want)
		}
	}

	if _, ok := StatusCompleted.Next(); ok {
		t.Fatal("Completed must be terminal")
	}
	if !StatusCompleted.Terminal() {
		t.Fatal("expected Terminal() for Completed")
	}
}

func TestCanTransitionRejectsSkipsAndBackward(t *testing.T) {
	illegal := [][2]Status{
		{StatusNew, StatusReady},
		{StatusNew, StatusCompleted},
		{StatusProcessing, StatusNew},
		{StatusReady, StatusProcessing},
		{StatusCompleted, StatusNew},
		{StatusNew, StatusNew},
	}
	for _, pair := range illegal {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("transition %s → %s should be illegal", pair[0], pair[1])
		}
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "New", want: StatusNew},
		{in: "processing", want: StatusProcessing},
		{in: " Ready ", want: StatusReady},
		{in: "Completed", want: StatusCompleted},
		{in: "Delivered", want: StatusCompleted},
		{in: "Burnt", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ToStatus(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ToStatus(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ToStatus(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
	}
}

func TestToSlot(t *testing.T) {
	if slot, err := ToSlot("Morning"); err != nil || slot != SlotMorning {
		t.Fatalf("ToSlot(Morning) = %s, %v", slot, err)
	}
	if slot, err := ToSlot("afternoon"); err != nil || slot != SlotAfternoon {
		t.Fatalf("ToSlot(afternoon) = %s, %v", slot, err)
	}
	if _, err := ToSlot("evening"); err == nil {
		t.Fatal("ToSlot(evening) expected error")
	}
}
