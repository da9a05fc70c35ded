package commands

import "strings"

// quotePairs maps an opening quote to the closing quote the tokenizer then
// expects. Plain ASCII quotes close themselves.
var quotePairs = map[rune]rune{
	'"':      '"',
	'\'':     '\'',
	'“': '”', // “ ”
	'‘': '’', // ‘ ’
	'«': '»', // « »
}

// argReader walks the argument portion of a message rune by rune.
type argReader struct {
	runes []rune
	pos   int
}

func newArgReader(s string) *argReader {
	return &argReader{runes: []rune(s)}
}

func (r *argReader) eof() bool {
	return r.pos >= len(r.runes)
}

func (r *argReader) skipSpaces() {
	for !r.eof() && r.runes[r.pos] == ' ' {
		r.pos++
	}
}

// rest consumes and returns everything left, trimmed of surrounding spaces.
func (r *argReader) rest() string {
	s := strings.TrimSpace(string(r.runes[r.pos:]))
	r.pos = len(r.runes)
	return s
}

// word consumes a plain space-delimited token with no quote handling. Used
// for the command name.
func (r *argReader) word() string {
	r.skipSpaces()
	start := r.pos
	for !r.eof() && r.runes[r.pos] != ' ' {
		r.pos++
	}
	return string(r.runes[start:r.pos])
}

// quotedWord consumes one argument token. A token starting with an opening
// quote runs to the matching closing quote and may contain spaces; a
// backslash escapes the next rune. Inside a non-quoted token a quote mark is
// an error.
func (r *argReader) quotedWord() (string, error) {
	if r.eof() {
		return "", nil
	}

	current := r.runes[r.pos]
	if closing, ok := quotePairs[current]; ok {
		r.pos++
		return r.readQuoted(closing)
	}

	var b strings.Builder
	escaped := false
	for !r.eof() {
		ch := r.runes[r.pos]
		if escaped {
			b.WriteRune(ch)
			escaped = false
			r.pos++
			continue
		}
		switch {
		case ch == '\\':
			escaped = true
			r.pos++
		case ch == ' ':
			return b.String(), nil
		default:
			if _, isQuote := quotePairs[ch]; isQuote {
				return "", NewUnexpectedQuoteError(ch)
			}
			b.WriteRune(ch)
			r.pos++
		}
	}
	return b.String(), nil
}

func (r *argReader) readQuoted(closing rune) (string, error) {
	var b strings.Builder
	escaped := false
	for !r.eof() {
		ch := r.runes[r.pos]
		if escaped {
			b.WriteRune(ch)
			escaped = false
			r.pos++
			continue
		}
		switch ch {
		case '\\':
			escaped = true
			r.pos++
		case closing:
			r.pos++
			// the closing quote must end the token
			if !r.eof() && r.runes[r.pos] != ' ' {
				return "", NewInvalidEndOfQuotedStringError(r.runes[r.pos])
			}
			return b.String(), nil
		default:
			b.WriteRune(ch)
			r.pos++
		}
	}
	return "", NewExpectedClosingQuoteError(closing)
}

// TokenizeArguments splits input into argument tokens using the same quoting
// rules as command dispatch. Exposed for adapters and tests.
func TokenizeArguments(input string) ([]string, error) {
	r := newArgReader(input)
	var tokens []string
	for {
		r.skipSpaces()
		if r.eof() {
			return tokens, nil
		}
		word, err := r.quotedWord()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, word)
	}
}
