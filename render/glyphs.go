package render

// Lattice points sit between cells. Each point joins up to four wall segments
// and its glyph is chosen from the set of segments present.
const (
	segUp = 1 << iota
	segRight
	segDown
	segLeft
)

var cornerGlyphs = [16]rune{
	0:                                    ' ',
	segUp:                                '╵',
	segRight:                             '╶',
	segDown:                              '╷',
	segLeft:                              '╴',
	segUp | segDown:                      '│',
	segLeft | segRight:                   '─',
	segDown | segRight:                   '╭',
	segDown | segLeft:                    '╮',
	segUp | segRight:                     '╰',
	segUp | segLeft:                      '╯',
	segUp | segDown | segRight:           '├',
	segUp | segDown | segLeft:            '┤',
	segLeft | segRight | segDown:         '┬',
	segLeft | segRight | segUp:           '┴',
	segUp | segRight | segDown | segLeft: '┼',
}

const (
	horizontalGlyph = '─'
	verticalGlyph   = '│'
	blockedGlyph    = '█'
	pathGlyph       = '•'
	entryGlyph      = 'E'
	exitGlyph       = 'X'

	cellWidth  = 4 // Columns per cell including its left wall.
	cellHeight = 2 // Rows per cell including its top wall.
)
