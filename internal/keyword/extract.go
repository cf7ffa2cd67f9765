package keyword

import "unicode/utf8"

// stopWords are low-information words dropped by ExtractKeywords.
var stopWords = map[string]struct{}{
	// articles
	"a": {}, "an": {}, "the": {},
	// conjunctions
	"and": {}, "or": {}, "but": {}, "nor": {}, "yet": {}, "so": {},
	// prepositions
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "into": {}, "onto": {}, "over": {}, "under": {}, "about": {}, "near": {},
	"off": {}, "up": {}, "out": {}, "than": {}, "via": {}, "without": {},
	// copulas
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "am": {},
}

// IsStopWord reports whether the lower-case word is a stop word.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// ExtractKeywords returns the informative lower-case tokens of query in order.
// Tokens of two runes or fewer and stop words are dropped; duplicates are kept.
func ExtractKeywords(query string) []string {
	tokens := Tokenize(query)
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) <= 2 || IsStopWord(token) {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}
