package core

// Color is a semantic foreground color for a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

const (
	ColorDefault  Color = iota
	ColorBorder         // Play area frame
	ColorWall           // Lane walls
	ColorLane           // Lane center guide
	ColorObstacle       // Rectangular obstacles
	ColorShroom         // Circular obstacles
	ColorBall           // Entity with input released
	ColorBallHeld       // Entity with input held
	ColorHUD            // Score line
	ColorTitle          // Menu title
	ColorMuted          // Hints and secondary text
)
