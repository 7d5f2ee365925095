package game

import "math"

// ObstacleHit reports whether the player at world x playerX (z fixed at
// PlayerZ) overlaps the obstacle.
func ObstacleHit(playerX float64, e *Entity) bool {
	distX := math.Abs(playerX - e.X)
	distZ := math.Abs(PlayerZ - e.Z)
	return distX < ObstacleHitX && distZ < ObstacleHitZ
}

// PowerUpHit reports whether the player picks up the power-up. Pickups use
// a tighter window than obstacle hits.
func PowerUpHit(playerX float64, e *Entity) bool {
	distX := math.Abs(playerX - e.X)
	distZ := math.Abs(PlayerZ - e.Z)
	return distX < PowerUpHitX && distZ < PowerUpHitZ
}

func distance2D(dx, dz float64) float64 {
	return math.Hypot(dx, dz)
}
