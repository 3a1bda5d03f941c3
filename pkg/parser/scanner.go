package parser

import (
	"github.com/ccollicutt/pssraw/pkg/model"
)

// lookAhead bounds the bootstrap search for the header and the first bus line.
const lookAhead = 6

// titleLines is the number of title lines that follow the header.
const titleLines = 2

// Layout is the result of scanning a case: its header and one section per
// kind in the era's file order.
type Layout struct {
	Header model.Header

	// HeaderLine is the index of the header line, or -1 for header-less files.
	HeaderLine int

	// Sections lists every kind of the era in file order. Kinds the file never
	// reached have empty ranges at End.
	Sections []model.Section

	// Markers is the number of section markers seen.
	Markers int

	// End is the line where case data stops: the "Q" line or the end of file.
	End int
}

// Era is the revision classification every decoder uses.
func (l *Layout) Era() model.Era {
	return l.Header.Era()
}

// Section returns the range of a kind.
func (l *Layout) Section(kind model.SectionKind) (model.Section, bool) {
	for _, s := range l.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return model.Section{}, false
}

// ExpectedMarkers is the number of markers a complete file of this era holds.
// Legacy files have no marker ahead of the bus data.
func (l *Layout) ExpectedMarkers() int {
	n := len(l.Sections)
	if l.Era() == model.Legacy || l.HeaderLine < 0 {
		n--
	}
	return n
}

// Scan locates the header and every section of a case in one forward pass.
//
// The first substantive line within the look-ahead window is the header when
// it has 4 to 7 fields; a line with more than 10 fields and a numeric first
// token is a bus record. Modern files end the header block (titles and
// system-wide data) with a marker, so the bus data starts after it. Legacy
// files go straight from the titles to the bus data, which is located by
// shape. From there each marker closes the current section and opens the next.
func Scan(lines *Lines, defaultRevision int) *Layout {
	layout := &Layout{
		Header:     model.DefaultHeader(defaultRevision),
		HeaderLine: -1,
	}
	n := lines.Len()

	busStart, firstMarker, firstData := -1, -1, -1
	for i := 0; i < n && i < lookAhead; i++ {
		c := classify(lines.At(i))
		if c == lineEnd && isTitle(layout.HeaderLine, i) {
			continue
		}
		if c == lineMarker || c == lineEnd {
			firstMarker = i
			break
		}
		if c != lineData {
			continue
		}
		tokens, ok := lines.Tokens(i)
		if !ok {
			continue
		}
		if firstData < 0 {
			firstData = i
			if looksLikeHeader(tokens) {
				layout.HeaderLine = i
				layout.Header = DecodeHeader(tokens, defaultRevision)
				if layout.Era() == model.Modern {
					break
				}
				continue
			}
		}
		if looksLikeBus(tokens) {
			busStart = i
			break
		}
	}

	order := model.KindOrder(layout.Era())
	sections := make([]model.Section, len(order))
	for i, k := range order {
		sections[i].Kind = k
	}

	// cur indexes order; start is where the current section began and from
	// is where the sweep begins.
	var cur, start, from int
	hdr := layout.HeaderLine
	switch {
	case hdr >= 0 && layout.Era() == model.Modern:
		start, from = hdr+1, titlesEnd(lines, hdr)
		readTitles(&layout.Header, lines, hdr+1, min(hdr+1+titleLines, n))
	default:
		if busStart < 0 {
			busStart = legacyBusStart(lines, hdr, firstData, firstMarker)
		}
		if hdr >= 0 {
			sections[0].Start, sections[0].End = hdr+1, busStart
			readTitles(&layout.Header, lines, hdr+1, busStart)
		} else {
			sections[0].Start, sections[0].End = busStart, busStart
		}
		cur, start, from = 1, busStart, busStart
	}

	layout.End = n
sweep:
	for i := from; i < n && cur < len(order); i++ {
		switch classify(lines.At(i)) {
		case lineMarker:
			sections[cur].Start, sections[cur].End = start, i
			layout.Markers++
			cur++
			start = i + 1
			if cur == len(order) {
				layout.End = start
			}
		case lineEnd:
			layout.End = i
			break sweep
		}
	}
	if cur < len(order) {
		sections[cur].Start, sections[cur].End = min(start, layout.End), layout.End
		cur++
	}
	for ; cur < len(order); cur++ {
		sections[cur].Start, sections[cur].End = layout.End, layout.End
	}

	layout.Sections = sections
	return layout
}

// legacyBusStart places the bus section when no line in the look-ahead window
// had the shape of a bus record: after the header and its two titles, but never
// past the first marker.
func legacyBusStart(lines *Lines, hdr, firstData, firstMarker int) int {
	if hdr < 0 {
		if firstData >= 0 {
			return firstData
		}
		if firstMarker >= 0 {
			return firstMarker
		}
		return 0
	}
	return titlesEnd(lines, hdr)
}

// titlesEnd returns the line after the two title lines that follow the header,
// or the first marker among them. Titles are free text, so one starting with
// "Q" does not end the case.
func titlesEnd(lines *Lines, hdr int) int {
	pos := min(hdr+1+titleLines, lines.Len())
	for i := hdr + 1; i < pos; i++ {
		if classify(lines.At(i)) == lineMarker {
			return i
		}
	}
	return pos
}

func isTitle(hdr, i int) bool {
	return hdr >= 0 && i > hdr && i <= hdr+titleLines
}
