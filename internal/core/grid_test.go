package core

import (
	"slices"
	"testing"
)

func TestWallRectBorder(t *testing.T) {
	g := NewGrid(5, 4)
	g.WallRect(0, 0, 5, 4)

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			border := x == 0 || y == 0 || x == 4 || y == 3
			got := g.Get(Point{x, y})
			if border && got != Wall {
				t.Fatalf("border cell (%d,%d) = %v, want wall", x, y, got)
			}
			if !border && got != Empty {
				t.Fatalf("interior cell (%d,%d) = %v, want empty", x, y, got)
			}
		}
	}
	if n := g.Count(Wall); n != 14 {
		t.Fatalf("expected 14 border walls, got %d", n)
	}
}

func TestGetOutOfBoundsIsWall(t *testing.T) {
	g := NewGrid(3, 3)
	if g.Get(Point{-1, 0}) != Wall || g.Get(Point{3, 1}) != Wall {
		t.Fatal("out-of-bounds reads must report wall")
	}
	g.Set(Point{5, 5}, Lava)
	if g.Count(Lava) != 0 {
		t.Fatal("out-of-bounds writes must be ignored")
	}
}

func TestCloneAndDiff(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(Point{1, 1}, Goal)
	c := g.Clone()
	if d := g.Diff(c); d != 0 {
		t.Fatalf("clone differs in %d cells", d)
	}

	c.Set(Point{2, 2}, Lava)
	c.Set(Point{1, 1}, Sand)
	if d := g.Diff(c); d != 2 {
		t.Fatalf("expected 2 differing cells, got %d", d)
	}
	if g.Get(Point{2, 2}) != Empty || g.Get(Point{1, 1}) != Goal {
		t.Fatal("mutating the clone leaked into the original")
	}

	other := g.Clone()
	other.Set(Point{0, 0}, Wall)
	if slices.Equal(g.Cells(), other.Cells()) {
		t.Fatal("expected cell slices to differ after a write")
	}
}

func TestFindAndParseObject(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(Point{3, 2}, Goal)
	p, ok := g.Find(Goal)
	if !ok || p != (Point{3, 2}) {
		t.Fatalf("Find(goal) = %v, %v", p, ok)
	}
	for _, obj := range []Object{Empty, Wall, Lava, Sand, Goal} {
		parsed, ok := ParseObject(obj.String())
		if !ok || parsed != obj {
			t.Fatalf("ParseObject(%q) = %v, %v", obj.String(), parsed, ok)
		}
	}
	if _, ok := ParseObject("door"); ok {
		t.Fatal("unknown names must not parse")
	}
}

func TestGridString(t *testing.T) {
	g := NewGrid(3, 3)
	g.WallRect(0, 0, 3, 3)
	g.Set(Point{1, 1}, Lava)
	want := "###\n#~#\n###\n"
	if got := g.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
