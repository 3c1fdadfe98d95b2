package generator

// DefaultParagraphs is the built-in pool used when no paragraph file is configured.
var DefaultParagraphs = []string{
	"the city never sleeps under a sky of neon rain and every street hums with the sound of machines talking to each other",
	"she jacked into the grid at midnight and watched the data streams fold into towers of light that reached past the clouds",
	"a quiet hacker learns that speed means nothing without accuracy and that every mistake echoes through the network",
	"the old terminal blinked once then filled with green text that scrolled faster than any human eye could follow",
	"drones drifted over the market selling noodles and memory chips while the rain washed the chrome streets clean",
	"keep your hands light on the keys and your eyes on the next word because the meter is always draining",
	"somewhere in the core a process woke up and began to count every keystroke it could hear across the wire",
	"the signal was weak but steady and it carried a message that only the fastest typist in the sector could decode",
	"power flows through the cables beneath the city like blood through veins and the lights pulse with every beat",
	"when the combo meter fills the whole screen glows and for a few seconds every word you type burns brighter",
	"they built the tower from glass and code and they filled it with servers that dreamed in binary all night long",
	"a good run starts slow and careful then builds into a rhythm where the words seem to type themselves",
}
