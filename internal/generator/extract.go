package generator

import (
	"regexp"
	"strings"
)

var jsonFence = regexp.MustCompile("```json\\n?([\\s\\S]*?)\\n?```")

// ExtractJSON pulls a JSON document out of model output. Models often wrap
// the script in a markdown fence or surround it with prose, so try the fence
// first, then the outermost brace span, then the text as-is.
func ExtractJSON(content string) string {
	if m := jsonFence.FindStringSubmatch(content); m != nil {
		return m[1]
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}

	return content
}
