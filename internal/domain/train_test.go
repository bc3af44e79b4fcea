package domain

import "testing"

func TestTrainCanAcceptEmpty(t *testing.T) {
	train := NewPersonalTrain("p1")
	enginePip := 9

	if !train.CanAccept(NewTile(9, 4), enginePip) {
		t.Fatalf("expected tile touching engine pip to be accepted on an empty train")
	}
	if train.CanAccept(NewTile(3, 4), enginePip) {
		t.Fatalf("expected tile not touching engine pip to be rejected on an empty train")
	}
}

func TestTrainPlaceOrientsTail(t *testing.T) {
	train := NewPersonalTrain("p1")
	enginePip := 9

	tail := train.Place(NewTile(9, 4), enginePip)
	if tail != 4 {
		t.Fatalf("expected tail 4, got %d", tail)
	}
	if train.HeadValue(enginePip) != 4 {
		t.Fatalf("expected head value 4 after placement, got %d", train.HeadValue(enginePip))
	}

	tail = train.Place(NewTile(4, 4), enginePip)
	if tail != 4 {
		t.Fatalf("expected double tile to expose tail 4, got %d", tail)
	}
	if !train.UnsatisfiedDouble {
		t.Fatalf("expected UnsatisfiedDouble to be set after placing a double")
	}
}

func TestHandSizeByPlayerCount(t *testing.T) {
	cases := []struct {
		players, want int
	}{
		{1, 16}, {2, 16}, {3, 15}, {4, 15}, {5, 12}, {6, 12}, {7, 10}, {8, 10},
	}
	for _, c := range cases {
		if got := HandSize(c.players); got != c.want {
			t.Errorf("HandSize(%d) = %d, want %d", c.players, got, c.want)
		}
	}
}

func TestFullSetSize(t *testing.T) {
	tiles := FullSet(12)
	if len(tiles) != 91 {
		t.Fatalf("expected 91 tiles for max pip 12, got %d", len(tiles))
	}
}
