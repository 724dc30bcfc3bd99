package notestate

import "strings"

type TodoItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

const (
	todoDoneMark = "[x] "
	todoOpenMark = "[ ] "
)

// ParseChecklist turns note content into todo items, one per non-blank line.
// Lines may carry a "[x] " or "[ ] " marker; unmarked lines are open items.
func ParseChecklist(content string) []TodoItem {
	items := []TodoItem{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		item := TodoItem{Text: line}
		if text, ok := cutMark(line, todoDoneMark); ok {
			item = TodoItem{Text: text, Done: true}
		} else if text, ok := cutMark(line, todoOpenMark); ok {
			item = TodoItem{Text: text}
		}
		items = append(items, item)
	}
	return items
}

// cutMark strips a leading marker from a trimmed line. A bare marker is an
// item with empty text.
func cutMark(line, mark string) (string, bool) {
	bare := strings.TrimSpace(mark)
	if len(line) < len(bare) || !strings.EqualFold(line[:len(bare)], bare) {
		return "", false
	}
	rest := line[len(bare):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// FormatChecklist is the inverse of ParseChecklist.
func FormatChecklist(items []TodoItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		mark := todoOpenMark
		if item.Done {
			mark = todoDoneMark
		}
		lines = append(lines, mark+item.Text)
	}
	return strings.Join(lines, "\n")
}
