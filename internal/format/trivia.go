package format

import "bytes"

// comment is one comment found between two tokens.
type comment struct {
	text string
	// linesBefore counts newlines between the previous token or comment
	// and this one.
	linesBefore int
	line        bool // "//" comment, needs a newline after it
}

// splitTrivia extracts the comments of a gap and counts the newlines
// after the last of them.
func splitTrivia(gap []byte) (comments []comment, linesAfter int) {
	lines := 0
	for i := 0; i < len(gap); {
		switch {
		case gap[i] == '\n':
			lines++
			i++
		case bytes.HasPrefix(gap[i:], []byte("//")):
			end := bytes.IndexByte(gap[i:], '\n')
			if end < 0 {
				end = len(gap) - i
			}
			comments = append(comments, comment{text: string(bytes.TrimRight(gap[i:i+end], " \t\r")), linesBefore: lines, line: true})
			lines = 0
			i += end
		case bytes.HasPrefix(gap[i:], []byte("/*")):
			end := bytes.Index(gap[i+2:], []byte("*/"))
			if end < 0 {
				end = len(gap) - i
			} else {
				end += 4
			}
			comments = append(comments, comment{text: string(gap[i : i+end]), linesBefore: lines})
			lines = 0
			i += end
		default:
			i++
		}
	}
	return comments, lines
}
