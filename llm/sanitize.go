package llm

import "regexp"

// Reasoning-capable models wrap their chain of thought in tags that must not
// leak into reviews or reports. Patterns match lazily so multiple blocks in
// one reply are each removed.
var reasoningTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)<think>.*?</think>`),
	regexp.MustCompile(`(?s)<thinking>.*?</thinking>`),
	regexp.MustCompile(`(?s)<reasoning>.*?</reasoning>`),
	regexp.MustCompile(`(?s)<internal>.*?</internal>`),
}

// StripReasoning removes reasoning tag blocks and their contents from
// LLM-generated text. Text without such tags is returned unchanged.
func StripReasoning(text string) string {
	for _, pattern := range reasoningTagPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return text
}
