package tetris

// lineScores is the base award indexed by rows cleared at once.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// Points returns the score for clearing lines rows at once on a level.
// Counts outside 1..4 score nothing.
func Points(lines, level int) int {
	if lines < 1 || lines >= len(lineScores) {
		return 0
	}
	return lineScores[lines] * (level + 1)
}

// LevelFor returns the level reached after totalLines cleared lines when
// the game started at startLevel. The level rises by one every ten lines.
func LevelFor(startLevel, totalLines int) int {
	return (startLevel - 1) + (totalLines+10)/10
}
