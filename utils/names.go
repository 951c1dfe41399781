package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	courseAdjectives = []string{
		"Windy", "Sunny", "Hidden", "Rolling", "Misty", "Golden", "Quiet", "Crooked", "Lazy", "Wild",
		"Emerald", "Silver", "Sandy", "Twisting", "Breezy", "Frosty", "Dusty", "Royal", "Old", "Lucky",
	}

	courseNouns = []string{
		"Dunes", "Links", "Meadow", "Hollow", "Ridge", "Valley", "Pines", "Creek", "Heath", "Bluff",
		"Greens", "Glen", "Harbor", "Fairways", "Orchard", "Marsh", "Downs", "Canyon", "Mesa", "Point",
	}
)

// GenerateCourseName creates a random session name in the format "<Adjective> <Noun> #<hole>"
func GenerateCourseName() string {
	return courseName(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func courseName(r *rand.Rand) string {
	adj := courseAdjectives[r.Intn(len(courseAdjectives))]
	noun := courseNouns[r.Intn(len(courseNouns))]
	hole := r.Intn(18) + 1

	return fmt.Sprintf("%s %s #%d", adj, noun, hole)
}
