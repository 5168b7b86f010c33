package worldconfig

import (
	"embed"
	"fmt"

	"github.com/samuelfneumann/lle/world"
)

//go:embed levels/*.txt
var levelFS embed.FS

// numLevels is the count of built-in level presets (spec.md §6.3).
const numLevels = 6

// Level builds the world.Config for the n-th built-in level preset, levels
// being numbered 1..numLevels inclusive.
func Level(n int) (world.Config, error) {
	if n < 1 || n > numLevels {
		return world.Config{}, world.NewInvalidLevelError(n, 1, numLevels)
	}
	data, err := levelFS.ReadFile(fmt.Sprintf("levels/level%d.txt", n))
	if err != nil {
		// A missing embedded asset is a build-time defect, not a caller
		// error; surface it plainly rather than wrapping it as ParsingError.
		panic(fmt.Sprintf("worldconfig: missing embedded level asset: %v", err))
	}
	return ParsePlainString(string(data))
}

// NumLevels reports how many built-in level presets are available.
func NumLevels() int {
	return numLevels
}
