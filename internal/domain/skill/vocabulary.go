package skill

import (
	"strings"
	"unicode"
)

type term struct {
	keyword string
	display string
}

// vocabulary is the keyword list recognised in free text (resumes, scraped job
// descriptions). Keywords are lower-case.
var vocabulary = []term{
	{"javascript", "JavaScript"},
	{"python", "Python"},
	{"java", "Java"},
	{"react", "React"},
	{"node.js", "Node.js"},
	{"html", "HTML"},
	{"css", "CSS"},
	{"sql", "SQL"},
	{"mongodb", "MongoDB"},
	{"express", "Express"},
	{"angular", "Angular"},
	{"vue", "Vue"},
	{"typescript", "TypeScript"},
	{"php", "PHP"},
	{"c++", "C++"},
	{"c#", "C#"},
	{"ruby", "Ruby"},
	{"go", "Go"},
	{"swift", "Swift"},
	{"kotlin", "Kotlin"},
	{"flutter", "Flutter"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"aws", "AWS"},
	{"azure", "Azure"},
	{"gcp", "GCP"},
	{"git", "Git"},
	{"linux", "Linux"},
	{"machine learning", "Machine Learning"},
	{"data science", "Data Science"},
	{"artificial intelligence", "Artificial Intelligence"},
	{"blockchain", "Blockchain"},
	{"cybersecurity", "Cybersecurity"},
}

// Extract returns the display names of vocabulary skills mentioned in text, in
// vocabulary order. Keywords only match as whole tokens, so "java" is not found
// inside "javascript".
func Extract(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0)
	for _, t := range vocabulary {
		if containsToken(lower, t.keyword) {
			out = append(out, t.display)
		}
	}
	return out
}

// Vocabulary returns the display names of every recognised skill.
func Vocabulary() []string {
	out := make([]string, 0, len(vocabulary))
	for _, t := range vocabulary {
		out = append(out, t.display)
	}
	return out
}

func containsToken(text, kw string) bool {
	from := 0
	for from <= len(text)-len(kw) {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if !wordByteBefore(text, start) && !wordByteAt(text, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func wordByteBefore(s string, i int) bool {
	if i <= 0 {
		return false
	}
	return isWordByte(s[i-1])
}

func wordByteAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	return isWordByte(s[i])
}

func isWordByte(b byte) bool {
	if b >= 0x80 {
		return true
	}
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '+' || r == '#'
}
