package parser

import (
	"strings"

	"github.com/ccollicutt/pssraw/pkg/model"
)

// Header shape limits used to tell the header line from a bus record.
const (
	minHeaderFields = 4
	maxHeaderFields = 7
	minBusFields    = 11
)

// Header field positions.
const (
	headerNewCase = iota
	headerBaseMVA
	headerRevision
	headerTransformerRating
	headerBranchRating
	headerBaseFrequency
)

func looksLikeHeader(tokens []string) bool {
	return len(tokens) >= minHeaderFields && len(tokens) <= maxHeaderFields
}

func looksLikeBus(tokens []string) bool {
	return len(tokens) >= minBusFields && numericStart(tokens[0])
}

// DecodeHeader decodes the case identification line. Every field falls back
// to its default on its own, so a damaged header still yields a usable value.
func DecodeHeader(tokens []string, defaultRevision int) model.Header {
	h := model.DefaultHeader(defaultRevision)
	if v, ok := ParseInt(Token(tokens, headerNewCase)); ok {
		h.NewCase = v
	}
	if v, ok := ParseFloat(Token(tokens, headerBaseMVA)); ok {
		h.BaseMVA = v
	}
	if v, ok := ParseInt(Token(tokens, headerRevision)); ok && v > 0 {
		h.Revision = v
	}
	if v, ok := ParseInt(Token(tokens, headerTransformerRating)); ok {
		h.TransformerRating = v
	}
	if v, ok := ParseInt(Token(tokens, headerBranchRating)); ok {
		h.BranchRating = v
	}
	if v, ok := ParseFloat(Token(tokens, headerBaseFrequency)); ok {
		h.BaseFrequency = v
	}
	return h
}

// readTitles fills the header titles from the lines in [from, to), at most two.
func readTitles(h *model.Header, lines *Lines, from, to int) {
	for i, n := from, 0; i < to && n < len(h.Titles); i, n = i+1, n+1 {
		line := lines.At(i)
		if classify(line) == lineMarker {
			return
		}
		if _, ok := Fields(line); !ok {
			continue
		}
		h.Titles[n] = strings.TrimSpace(string(line))
	}
}
