package articut

import (
	"fmt"
	"strings"
)

// Level selects the annotation depth of a parse. The service exposes
// three tiers: lv1 gives the finest word segmentation, lv2 merges
// tokens into semantic units, and lv3 adds knowledge-based annotation.
type Level string

const (
	// LevelLv1 requests the finest-grained segmentation.
	LevelLv1 Level = "lv1"
	// LevelLv2 requests semantic-unit segmentation, the service default.
	LevelLv2 Level = "lv2"
	// LevelLv3 requests knowledge-enhanced annotation.
	LevelLv3 Level = "lv3"
)

// Validate checks that the level is one of the three known tiers.
// ParseWithOptions does not call this; the server decides what exists.
func (l Level) Validate() error {
	switch l {
	case LevelLv1, LevelLv2, LevelLv3:
		return nil
	}
	return fmt.Errorf("unknown level %q", string(l))
}

// Pinyin selects the romanization scheme for returned readings.
type Pinyin string

const (
	// PinyinHanyu requests Hanyu Pinyin readings.
	PinyinHanyu Pinyin = "HANYU"
	// PinyinBopomofo requests Bopomofo readings, the service default.
	PinyinBopomofo Pinyin = "BOPOMOFO"
)

// Validate checks that the scheme is one of the two known variants.
func (p Pinyin) Validate() error {
	switch p {
	case PinyinHanyu, PinyinBopomofo:
		return nil
	}
	return fmt.Errorf("unknown pinyin scheme %q", string(p))
}

// PosTag is a single annotated token: the token text and its
// part-of-speech tag as reported by the service.
type PosTag struct {
	Pos  string `json:"pos"`
	Text string `json:"text"`
}

// Response is the deserialized reply for a successful parse. Fields the
// server omits decode to their zero values.
type Response struct {
	// Version is the service version that handled the request, e.g. "v291".
	Version string `json:"version"`

	// Level echoes the annotation level that was applied.
	Level Level `json:"level"`

	// ExecTime is the server-side processing time in seconds.
	ExecTime float64 `json:"exec_time"`

	// ResultPos holds one POS markup string per sentence, e.g.
	// "<ENTITY_pronoun>我</ENTITY_pronoun><ACTION_verb>想</ACTION_verb>".
	ResultPos []string `json:"result_pos"`

	// ResultObj holds the structured form of ResultPos, one token list
	// per sentence.
	ResultObj [][]PosTag `json:"result_obj"`

	// ResultSegmentation is the input text with slash-delimited token
	// boundaries.
	ResultSegmentation string `json:"result_segmentation"`

	// WordCountBalance is the remaining account quota after this call.
	WordCountBalance int `json:"word_count_balance"`
}

// Segments returns the segmented tokens in reading order, split out of
// ResultSegmentation. Empty runs from leading, trailing or doubled
// slashes are dropped.
func (r *Response) Segments() []string {
	if r.ResultSegmentation == "" {
		return nil
	}

	parts := strings.Split(r.ResultSegmentation, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Tokens returns every annotated token in reading order across all
// sentences. It prefers the structured ResultObj and falls back to
// parsing the ResultPos markup when the structured form is absent.
func (r *Response) Tokens() []PosTag {
	if len(r.ResultObj) > 0 {
		var tokens []PosTag
		for _, sentence := range r.ResultObj {
			tokens = append(tokens, sentence...)
		}
		return tokens
	}

	var tokens []PosTag
	for _, markup := range r.ResultPos {
		tokens = append(tokens, ParseTokens(markup)...)
	}
	return tokens
}
