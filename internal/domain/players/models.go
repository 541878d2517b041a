package players

// Player is the persisted roster record. Field names match the stored
// JSON layout exactly so existing slots round-trip unchanged.
type Player struct {
	ID          int64   `json:"id"`
	Number      int     `json:"number"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	GamesPlayed int     `json:"gamesPlayed"`
	PointsAvg   float64 `json:"pointsAvg"`
}

// PositionOrDefault returns the position, or "N/A" when unset.
func (p Player) PositionOrDefault() string {
	if p.Position == "" {
		return "N/A"
	}
	return p.Position
}
