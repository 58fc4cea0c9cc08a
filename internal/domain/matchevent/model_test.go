package matchevent

import (
	"errors"
	"testing"
)

func TestEventValidate(t *testing.T) {
	t.Parallel()

	base := Event{ID: "e1", MatchID: "m1", TeamID: "t1", PlayerID: "p1", Type: TypeGoal, Minute: 12}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	withAssist := base
	withAssist.SecondaryPlayerID = "p2"
	if err := withAssist.Validate(); err != nil {
		t.Fatalf("unexpected error for assisted goal: %v", err)
	}

	selfAssist := base
	selfAssist.SecondaryPlayerID = "p1"
	if err := selfAssist.Validate(); !errors.Is(err, ErrSameSecondaryPlayer) {
		t.Fatalf("expected ErrSameSecondaryPlayer, got %v", err)
	}

	cardWithSecondary := base
	cardWithSecondary.Type = TypeYellowCard
	cardWithSecondary.SecondaryPlayerID = "p2"
	if err := cardWithSecondary.Validate(); err == nil {
		t.Fatalf("expected error for card with secondary player")
	}

	negative := base
	negative.Minute = -1
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected error for negative minute")
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	cases := map[string]Type{
		"Gol":             TypeGoal,
		"goal":            TypeGoal,
		"Cartão Amarelo":  TypeYellowCard,
		"red_card":        TypeRedCard,
		"Substituição":    TypeSubstitution,
		" assist ":        TypeAssist,
	}
	for raw, want := range cases {
		got, err := ParseType(raw)
		if err != nil || got != want {
			t.Fatalf("ParseType(%q) got=%q err=%v want=%q", raw, got, err, want)
		}
	}
	if _, err := ParseType("offside"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
