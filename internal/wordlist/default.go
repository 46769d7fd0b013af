package wordlist

// Default returns the built-in English practice words used when no word
// list file is supplied.
func Default() []string {
	return []string{
		"the", "of", "and", "to", "in", "for", "that", "with", "this", "from",
		"have", "not", "are", "but", "what", "all", "were", "when", "your", "can",
		"said", "there", "each", "which", "their", "time", "will", "about", "many",
		"then", "them", "write", "would", "like", "these", "long", "make", "thing",
		"see", "him", "two", "has", "look", "more", "day", "could", "come", "did",
		"number", "sound", "most", "people", "over", "know", "water", "than", "call",
		"first", "who", "may", "down", "side", "been", "now", "find", "any", "new",
		"work", "part", "take", "get", "place", "made", "live", "where", "after",
		"back", "little", "only", "round", "man", "year", "came", "show", "every",
		"good", "give", "our", "under", "name", "very", "through", "just", "form",
		"sentence", "great", "think", "say", "help", "low", "line", "differ",
	}
}
