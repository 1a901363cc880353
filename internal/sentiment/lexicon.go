package sentiment

var positiveWords = []string{
	"achieve", "attain", "beat", "beats", "benefit", "better", "bullish", "buy",
	"climb", "climbs", "competitive", "enhance", "excellent", "exceptional",
	"expand", "expansion", "favorable", "gain", "gains", "good", "great", "grew",
	"growth", "high", "higher", "improve", "improved", "improvement", "innovation",
	"jump", "jumps", "leader", "leading", "milestone", "optimistic", "outperform",
	"positive", "profit", "profitable", "profits", "progress", "rally", "rallies",
	"record", "rebound", "rebounds", "remarkable", "rise", "rises", "robust",
	"soar", "soars", "solid", "strength", "strong", "stronger", "succeed",
	"success", "successful", "superior", "surge", "surges", "surpass", "upbeat",
	"upgrade", "upgraded", "upgrades", "upside", "win", "wins", "winning", "won",
}

var negativeWords = []string{
	"adverse", "bearish", "challenge", "challenging", "concern", "concerns",
	"crash", "crashes", "crisis", "cut", "cuts", "damage", "debt", "decline",
	"declines", "decrease", "default", "deficit", "deteriorate", "difficult",
	"disappoint", "disappointing", "downgrade", "downgraded", "downgrades",
	"downturn", "drop", "drops", "erode", "fail", "failure", "fall", "falls",
	"falling", "fear", "fears", "fraud", "headwind", "headwinds", "impairment",
	"lawsuit", "loss", "losses", "low", "lower", "miss", "misses", "negative",
	"penalty", "plunge", "plunges", "poor", "probe", "problem", "recession",
	"risk", "risks", "sell", "selloff", "sink", "sinks", "slide", "slides",
	"slip", "slips", "slowdown", "slump", "slumps", "tumble", "tumbles",
	"uncertain", "uncertainty", "underperform", "unfavorable", "unprofitable",
	"volatile", "weak", "weaker", "weakness", "worse", "worst",
}

// Contractions are split at the apostrophe, so "didn't" arrives as "didn".
var negationWords = []string{
	"not", "no", "never", "without", "cannot", "didn", "doesn", "isn",
	"wasn", "aren", "don", "hardly",
}
