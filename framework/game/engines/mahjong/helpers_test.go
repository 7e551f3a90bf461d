package mahjong

import "testing"

func mustReady(t testing.TB, s string) ReadyHand {
	t.Helper()
	r, err := ParseReadyHand(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return r
}

func mustTile(t testing.TB, s string) Tile {
	t.Helper()
	tile, err := ParseTile(s)
	if err != nil {
		t.Fatalf("parse tile %q: %v", s, err)
	}
	return tile
}

func mustFull(t testing.TB, hand, draw string) FullHand {
	t.Helper()
	f, err := mustReady(t, hand).Draw(mustTile(t, draw))
	if err != nil {
		t.Fatalf("draw %q into %q: %v", draw, hand, err)
	}
	return f
}
