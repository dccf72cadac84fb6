package service

import (
	"testing"

	"adscribe-server/models"
)

func TestAssembleScript(t *testing.T) {
	descs := []frameDescription{
		{Timestamp: 0, Text: "A man walks into a kitchen."},
		{Timestamp: 15, Text: "He opens the refrigerator."},
		{Timestamp: 40, Text: "He pours a glass of milk."},
	}

	units := assembleScript("proj-1", descs)

	if len(units) != len(descs)+1 {
		t.Fatalf("got %d units, want %d", len(units), len(descs)+1)
	}

	intro := units[0]
	if intro.Kind != models.UnitKindIntroNote {
		t.Errorf("first unit kind = %q, want %q", intro.Kind, models.UnitKindIntroNote)
	}
	if intro.Order != 0 || intro.Timestamp != 0 {
		t.Errorf("intro order/timestamp = %d/%d, want 0/0", intro.Order, intro.Timestamp)
	}
	if intro.Text != introNoteText {
		t.Errorf("intro text = %q", intro.Text)
	}

	for i, d := range descs {
		u := units[i+1]
		if u.Kind != models.UnitKindDescription {
			t.Errorf("unit %d kind = %q, want %q", i+1, u.Kind, models.UnitKindDescription)
		}
		if u.Order != i+1 {
			t.Errorf("unit %d order = %d", i+1, u.Order)
		}
		if u.Timestamp != d.Timestamp || u.Text != d.Text {
			t.Errorf("unit %d = (%d, %q), want (%d, %q)", i+1, u.Timestamp, u.Text, d.Timestamp, d.Text)
		}
		if u.ProjectID != "proj-1" {
			t.Errorf("unit %d project id = %q", i+1, u.ProjectID)
		}
		if u.ID == "" {
			t.Errorf("unit %d has empty id", i+1)
		}
	}
}

func TestAssembleScriptEmptyInput(t *testing.T) {
	units := assembleScript("proj-1", nil)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if units[0].Kind != models.UnitKindIntroNote {
		t.Errorf("lone unit kind = %q, want intro note", units[0].Kind)
	}
}
