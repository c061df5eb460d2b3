package intent

import (
	"regexp"
	"strings"
)

var (
	sentenceBreak = regexp.MustCompile(`[?!]+`)
	conjunction   = regexp.MustCompile(`(?i)\s*,?\s+(?:and also|and|also|plus|additionally|furthermore)\s+`)
	questionWords = phraseRegexp([]string{
		"what", "what's", "whats", "how", "when", "where", "where's", "why",
		"who", "who's", "which", "can you", "could you", "would you", "can i",
		"could i", "may i", "do you", "is there", "are there", "tell me",
		"explain", "describe", "i want", "i'd like", "i would like", "i need",
		"i'm looking", "i am looking", "i'm here", "i am here", "show me", "give me",
	})
	leadingAux = regexp.MustCompile(`(?i)^(?:is|are|does|do|did|can|could|will|would|has|have|was)\b`)
)

// Split breaks an utterance into independent questions. Sentence breaks
// (? and !) always split. Within a sentence, a conjunction splits only when
// the piece after it reads as its own question; otherwise the piece stays
// with the one before, so "meet Raj and Priya" is a single sub-query.
func Split(text string) []string {
	text = normalize(text)
	if text == "" {
		return nil
	}
	var out []string
	for _, sentence := range sentenceBreak.Split(text, -1) {
		sentence = strings.TrimSpace(strings.Trim(sentence, " ,.;"))
		if sentence == "" {
			continue
		}
		out = append(out, splitSentence(sentence)...)
	}
	if len(out) == 0 {
		return []string{text}
	}
	return out
}

func splitSentence(s string) []string {
	seps := conjunction.FindAllStringIndex(s, -1)
	if len(seps) == 0 {
		return []string{s}
	}
	var groups []string
	start := 0
	current := ""
	for _, sep := range seps {
		piece := strings.TrimSpace(s[start:sep[0]])
		current = joinPiece(current, piece, &groups)
		current += s[sep[0]:sep[1]]
		start = sep[1]
	}
	current = joinPiece(current, strings.TrimSpace(s[start:]), &groups)
	if current = strings.TrimSpace(current); current != "" {
		groups = append(groups, current)
	}
	return groups
}

// joinPiece either extends the current group with piece or closes the group
// and starts a new one when piece is a question in its own right.
func joinPiece(current, piece string, groups *[]string) string {
	if strings.TrimSpace(current) == "" {
		return piece
	}
	if isQuestion(piece) {
		*groups = append(*groups, strings.TrimSpace(trimConjunction(current)))
		return piece
	}
	return current + piece
}

func trimConjunction(s string) string {
	loc := conjunction.FindAllStringIndex(s, -1)
	if len(loc) > 0 && loc[len(loc)-1][1] == len(s) {
		return s[:loc[len(loc)-1][0]]
	}
	return s
}

func isQuestion(piece string) bool {
	return questionWords.MatchString(piece) || leadingAux.MatchString(piece)
}
