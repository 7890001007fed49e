package shell

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota
	wordCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "whitespace", matcher.NewWhiteSpace())
	wordToken       = parsly.NewToken(wordCode, "word", newWordMatcher())
)

type wordMatcher struct{}

// Match consumes a maximal run of non-space bytes.
func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if isSpace(cursor.Input[i]) {
			break
		}
		matched++
	}
	return matched
}

func newWordMatcher() *wordMatcher {
	return &wordMatcher{}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// Tokenize splits a command line into whitespace-separated words.
func Tokenize(line string) []string {
	cursor := parsly.NewCursor("", []byte(line), 0)
	var tokens []string
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAny(whitespaceToken, wordToken)
		switch matched.Code {
		case whitespaceCode:
		case wordCode:
			tokens = append(tokens, matched.Text(cursor))
		default:
			return tokens
		}
	}
	return tokens
}
