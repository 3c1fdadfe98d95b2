package stats

// Rank is the title awarded for a final WPM.
type Rank struct {
	Name  string
	Color string
	Emoji string
}

type rankTier struct {
	minWPM     int
	rank       Rank
	percentile int
}

var (
	rankCyberdemon   = Rank{Name: "CYBERDEMON", Color: "#ff006e", Emoji: "👾"}
	rankNeuralHacker = Rank{Name: "NEURAL HACKER", Color: "#bf00ff", Emoji: "🧠"}
	rankCodeNinja    = Rank{Name: "CODE NINJA", Color: "#00f0ff", Emoji: "⚡"}
	rankKiddiePlus   = Rank{Name: "SCRIPT KIDDIE+", Color: "#39ff14", Emoji: "💻"}
	rankKiddie       = Rank{Name: "SCRIPT KIDDIE", Color: "#f5f520", Emoji: "🔰"}
	rankNoob         = Rank{Name: "N00B", Color: "#666666", Emoji: "🐣"}
)

// Ordered from fastest to slowest; the last tier catches everything.
var rankTiers = []rankTier{
	{minWPM: 120, rank: rankCyberdemon, percentile: 1},
	{minWPM: 100, rank: rankNeuralHacker, percentile: 2},
	{minWPM: 80, rank: rankCodeNinja, percentile: 5},
	{minWPM: 70, rank: rankKiddiePlus, percentile: 10},
	{minWPM: 60, rank: rankKiddiePlus, percentile: 20},
	{minWPM: 50, rank: rankKiddie, percentile: 35},
	{minWPM: 40, rank: rankKiddie, percentile: 50},
	{minWPM: 30, rank: rankNoob, percentile: 70},
	{minWPM: 0, rank: rankNoob, percentile: 85},
}

// RankFor returns the rank title for a WPM.
func RankFor(wpm int) Rank {
	return tierFor(wpm).rank
}

// Percentile returns the "top N%" bracket for a WPM.
func Percentile(wpm int) int {
	return tierFor(wpm).percentile
}

func tierFor(wpm int) rankTier {
	for _, tier := range rankTiers {
		if wpm >= tier.minWPM {
			return tier
		}
	}
	return rankTiers[len(rankTiers)-1]
}
