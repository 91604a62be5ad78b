package articut

import (
	"regexp"
	"strings"
)

// tokenPattern matches one <TAG>text</TAG> run in the service's POS
// markup. Untagged runs in between (sentence punctuation) carry no tag
// and are skipped.
var tokenPattern = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9_]*)>([^<]*)</[A-Za-z][A-Za-z0-9_]*>`)

// ParseTokens extracts the annotated tokens from a single POS markup
// string as returned in Response.ResultPos.
func ParseTokens(markup string) []PosTag {
	matches := tokenPattern.FindAllStringSubmatch(markup, -1)
	if len(matches) == 0 {
		return nil
	}

	tokens := make([]PosTag, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, PosTag{Pos: m[1], Text: m[2]})
	}
	return tokens
}

// IsVerb reports whether the token is a verb, light verbs included.
func (t PosTag) IsVerb() bool {
	return t.Pos == "ACTION_verb" || t.Pos == "ACTION_lightVerb" || t.Pos == "VerbP"
}

// IsNoun reports whether the token carries one of the noun tags.
func (t PosTag) IsNoun() bool {
	switch t.Pos {
	case "ENTITY_noun", "ENTITY_nounHead", "ENTITY_nouny", "ENTITY_oov":
		return true
	}
	return false
}

// IsEntity reports whether the token carries any ENTITY family tag.
func (t PosTag) IsEntity() bool {
	return strings.HasPrefix(t.Pos, "ENTITY_")
}

// IsPerson reports whether the token was tagged as a person name.
func (t PosTag) IsPerson() bool {
	return t.Pos == "ENTITY_person"
}

// IsTime reports whether the token is a time expression.
func (t PosTag) IsTime() bool {
	return strings.HasPrefix(t.Pos, "TIME_")
}

// IsLocation reports whether the token names a place, including the
// knowledge tags produced by the open data and Wikidata lookups.
func (t PosTag) IsLocation() bool {
	return t.Pos == "LOCATION" || strings.HasPrefix(t.Pos, "KNOWLEDGE_place")
}

// IsPunctuation reports whether the token is sentence punctuation. The
// structured result includes punctuation tokens; the POS markup leaves
// them untagged between runs.
func (t PosTag) IsPunctuation() bool {
	return t.Pos == "PUNCTUATION"
}

// Persons returns the text of every token tagged as a person name.
func (r *Response) Persons() []string {
	return r.collect(func(t PosTag) bool { return t.IsPerson() })
}

// Locations returns the text of every token tagged as a place.
func (r *Response) Locations() []string {
	return r.collect(func(t PosTag) bool { return t.IsLocation() })
}

// Times returns the text of every token tagged as a time expression.
func (r *Response) Times() []string {
	return r.collect(func(t PosTag) bool { return t.IsTime() })
}

// Verbs returns the text of every verb token.
func (r *Response) Verbs() []string {
	return r.collect(func(t PosTag) bool { return t.IsVerb() })
}

// Nouns returns the text of every noun token.
func (r *Response) Nouns() []string {
	return r.collect(func(t PosTag) bool { return t.IsNoun() })
}

func (r *Response) collect(match func(PosTag) bool) []string {
	var texts []string
	for _, token := range r.Tokens() {
		if match(token) {
			texts = append(texts, token.Text)
		}
	}
	return texts
}
