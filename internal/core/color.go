package core

// Color is the semantic foreground color of a screen cell.
// The platform maps each value to a terminal color.
type Color uint8

const (
	ColorDefault  Color = iota
	ColorGrass          // Empty ground tiles
	ColorRoad           // Road surface and markings
	ColorBuilding       // Solid blocks
	ColorVehicle        // Parked or empty vehicles
	ColorOccupied       // The vehicle the player drives
	ColorPlayer         // Player on foot
	ColorTarget         // Shootable targets
	ColorTracer         // Weapon tracer and impact marker
	ColorHUD            // HUD text
	ColorAlert          // Warnings, game over
	ColorDim            // Secondary text
)
