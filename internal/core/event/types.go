package event

// Collision is emitted once per pair of players within collision range.
// A sorts before B.
type Collision struct {
	Tick int
	A    string
	B    string
}

// GameOver is emitted when the rules name a winner.
type GameOver struct {
	Tick   int
	Winner string
}
