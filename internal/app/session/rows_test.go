package session

import (
	"testing"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

func TestRenderRows(t *testing.T) {
	rows := RenderRows([]players.Player{
		{ID: 1, Number: 23, Name: "Jordan", Position: "SG", GamesPlayed: 1072, PointsAvg: 30.12},
		{ID: 2, Number: 6, Name: "LeBron"},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := Row{ID: 1, Number: "23", Name: "Jordan", Position: "SG", GamesPlayed: "1072", PointsAvg: "30.1"}
	if rows[0] != want {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Position != "N/A" || rows[1].PointsAvg != "0.0" || rows[1].GamesPlayed != "0" {
		t.Fatalf("unexpected defaults in row %+v", rows[1])
	}
}

func TestRenderRowsEmpty(t *testing.T) {
	if rows := RenderRows(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
