package services

// Config holds the points schedule and lifecycle knobs. Injected into the
// services so tests can run alternate schedules.
type Config struct {
	PointsPerLevel          int
	DonationCreatedPoints   int
	DeliveryCompletedPoints int
	CompostCompletedPoints  int
	BadgeBonusPoints        int

	// StrictTransitions rejects status updates that are not a forward step
	// along the lifecycle. Off by default: the permissive behavior doubles
	// as an admin override.
	StrictTransitions bool
}

var DefaultConfig = Config{
	PointsPerLevel:          100,
	DonationCreatedPoints:   10,
	DeliveryCompletedPoints: 15,
	CompostCompletedPoints:  20,
	BadgeBonusPoints:        50,
	StrictTransitions:       false,
}

// LevelForPoints derives the display level from a cumulative balance.
func (c Config) LevelForPoints(totalPoints int) int {
	perLevel := c.PointsPerLevel
	if perLevel <= 0 {
		perLevel = DefaultConfig.PointsPerLevel
	}
	return totalPoints/perLevel + 1
}
