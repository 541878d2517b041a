package session

import (
	"fmt"
	"strconv"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

// Row is one rendered table line.
type Row struct {
	ID          int64
	Number      string
	Name        string
	Position    string
	GamesPlayed string
	PointsAvg   string
}

// Headers are the table column titles in display order.
var Headers = []string{"#", "Name", "Position", "Games", "PPG"}

// Rows renders the roster in insertion order.
func (s *Session) Rows() []Row {
	return RenderRows(s.roster.List())
}

// RenderRows formats players for display.
func RenderRows(list []players.Player) []Row {
	rows := make([]Row, 0, len(list))
	for _, p := range list {
		rows = append(rows, Row{
			ID:          p.ID,
			Number:      strconv.Itoa(p.Number),
			Name:        p.Name,
			Position:    p.PositionOrDefault(),
			GamesPlayed: strconv.Itoa(p.GamesPlayed),
			PointsAvg:   fmt.Sprintf("%.1f", p.PointsAvg),
		})
	}
	return rows
}
