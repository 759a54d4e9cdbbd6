package squad

import (
	"testing"

	"github.com/victorgomez09/fantasy-manager/internal/domain/formation"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
)

func testFormation() formation.Formation {
	return formation.Formation{
		ID:   "f-433",
		Name: "4-3-3",
		Slots: []formation.Slot{
			{ID: "gk", Name: "GK", Position: player.PositionGoalkeeper},
			{ID: "cb1", Name: "CB", Position: player.PositionDefender},
			{ID: "st", Name: "ST", Position: player.PositionForward},
		},
	}
}

func TestCanOccupy(t *testing.T) {
	slotGK := formation.Slot{ID: "gk", Position: player.PositionGoalkeeper}
	slotDEF := formation.Slot{ID: "cb1", Position: player.PositionDefender}

	midfielder := player.Player{ID: "p1", Position: player.PositionMidfielder}
	if CanOccupy(midfielder, slotGK) {
		t.Fatal("midfielder-only player must not occupy a goalkeeper slot")
	}

	versatile := player.Player{
		ID:                   "p2",
		Position:             player.PositionMidfielder,
		AlternativePositions: []player.Position{player.PositionDefender},
	}
	if !CanOccupy(versatile, slotDEF) {
		t.Fatal("player with DEF among alternatives must occupy a defender slot")
	}
}

func TestCompleteness_ReturnsEveryViolation(t *testing.T) {
	f := testFormation()
	s := Squad{
		TeamID:      "team-1",
		FormationID: f.ID,
		Assignments: map[string]string{
			"gk": "p-gk",
			"st": "p-mid", // midfielder in a forward slot
			// cb1 left empty
		},
	}

	players := map[string]player.Player{
		"p-gk":  {ID: "p-gk", Position: player.PositionGoalkeeper, OwnerTeamID: "team-1"},
		"p-mid": {ID: "p-mid", Position: player.PositionMidfielder, OwnerTeamID: "team-1"},
	}

	violations := Completeness(f, s, "team-1", players)
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %+v", len(violations), violations)
	}

	byReason := make(map[ViolationReason]Violation, len(violations))
	for _, v := range violations {
		byReason[v.Reason] = v
	}
	if v, ok := byReason[ViolationSlotEmpty]; !ok || v.SlotID != "cb1" {
		t.Fatalf("expected empty-slot violation for cb1, got %+v", byReason)
	}
	if v, ok := byReason[ViolationPositionMismatch]; !ok || v.PlayerID != "p-mid" {
		t.Fatalf("expected position-mismatch violation for p-mid, got %+v", byReason)
	}
}

func TestCompleteness_SoldPlayerBecomesNotOwned(t *testing.T) {
	f := testFormation()
	s := Squad{
		TeamID:      "team-1",
		FormationID: f.ID,
		Assignments: map[string]string{"gk": "p-gk", "cb1": "p-def", "st": "p-fwd"},
	}

	players := map[string]player.Player{
		"p-gk":  {ID: "p-gk", Position: player.PositionGoalkeeper, OwnerTeamID: "team-1"},
		"p-def": {ID: "p-def", Position: player.PositionDefender, OwnerTeamID: "team-2"},
		"p-fwd": {ID: "p-fwd", Position: player.PositionForward, OwnerTeamID: "team-1"},
	}

	violations := Completeness(f, s, "team-1", players)
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	if violations[0].Reason != ViolationPlayerNotOwned || violations[0].PlayerID != "p-def" {
		t.Fatalf("unexpected violation: %+v", violations[0])
	}
}

func TestSquad_SlotOf(t *testing.T) {
	s := Squad{
		TeamID:      "team-1",
		FormationID: "f-433",
		Assignments: map[string]string{"gk": "p-gk"},
	}

	slotID, ok := s.SlotOf("p-gk")
	if !ok || slotID != "gk" {
		t.Fatalf("expected p-gk in slot gk, got %s ok=%v", slotID, ok)
	}
	if _, ok := s.SlotOf("p-unknown"); ok {
		t.Fatal("expected no slot for unknown player")
	}
}
