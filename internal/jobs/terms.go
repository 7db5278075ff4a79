package jobs

import (
	"regexp"
	"sort"
	"strings"
)

// MaxKeyTerms caps how many key terms an analysis carries
const MaxKeyTerms = 40

// minTokenFrequency is how often a plain token must appear to count as a key term
const minTokenFrequency = 2

// skillPhrases are matched as whole phrases regardless of frequency
var skillPhrases = []string{
	"javascript", "typescript", "python", "java", "c#", "c++", "ruby", "go", "golang", "rust",
	"react", "angular", "vue", "node", "express", "django", "flask", "spring",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ci/cd", "jenkins", "git",
	"sql", "nosql", "mongodb", "postgresql", "mysql", "oracle", "redis", "kafka",
	"rest", "graphql", "api", "microservices", "serverless", "machine learning",
	"agile", "scrum", "kanban", "jira", "confluence",
	"leadership", "management", "teamwork", "communication",
	"federal", "government", "clearance", "security", "public sector",
	"policy", "regulation", "civil service", "public administration", "public policy",
	"state agency", "human resources", "recruitment", "program management",
	"grants management", "procurement", "budget", "fiscal", "legislative", "compliance",
}

var stopwords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any",
	"are", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both",
	"but", "by", "can", "could", "did", "do", "does", "doing", "down", "during", "each", "etc",
	"every", "few", "for", "from", "further", "had", "has", "have", "having", "he", "her",
	"here", "hers", "him", "his", "how", "i", "if", "in", "into", "is", "it", "its", "itself",
	"just", "may", "me", "more", "most", "must", "my", "no", "nor", "not", "now", "of", "off",
	"on", "once", "only", "or", "other", "our", "ours", "out", "over", "own", "per", "same",
	"she", "should", "so", "some", "such", "than", "that", "the", "their", "theirs", "them",
	"then", "there", "these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "us", "very", "via", "was", "we", "well", "were", "what", "when", "where",
	"which", "while", "who", "whom", "why", "will", "with", "within", "would", "you", "your",
	"yours", "yourself",
	// posting boilerplate
	"apply", "applicant", "applicants", "candidate", "candidates", "including", "include",
	"includes", "job", "jobs", "position", "role", "team", "work", "working", "company",
	"opportunity", "years", "year", "new", "like", "able", "ability", "strong",
	"preferred", "required", "requirements", "responsibilities", "qualifications",
)

var (
	tokenRe      = regexp.MustCompile(`[a-z0-9][a-z0-9+#./-]*`)
	digitsOnlyRe = regexp.MustCompile(`^[0-9.,/-]+$`)
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// termPattern matches term as a whole word or phrase. Symbols such as + and #
// count as part of the word so "c" never matches inside "c++".
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^a-z0-9+#])` + regexp.QuoteMeta(strings.ToLower(term)) + `(?:$|[^a-z0-9+#])`)
}

var skillPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(skillPhrases))
	for i, p := range skillPhrases {
		out[i] = termPattern(p)
	}
	return out
}()

// Tokenize lowercases text and returns its word tokens with stopwords, tokens
// of two characters or fewer and bare numbers removed.
func Tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimRight(tok, "./-")
		if len(tok) <= 2 || stopwords[tok] || digitsOnlyRe.MatchString(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// KeyTerms extracts the notable terms of a posting: known skill phrases first
// in list order, then additional terms found in the text, then frequent
// tokens by descending count.
func KeyTerms(text string, additional ...string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var terms []string
	add := func(term string) {
		if !seen[term] && len(terms) < MaxKeyTerms {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	for i, re := range skillPatterns {
		if re.MatchString(lower) {
			add(skillPhrases[i])
		}
	}
	for _, term := range additional {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && termPattern(term).MatchString(lower) {
			add(term)
		}
	}

	counts := make(map[string]int)
	first := make(map[string]int)
	for i, tok := range Tokenize(text) {
		if _, ok := first[tok]; !ok {
			first[tok] = i
		}
		counts[tok]++
	}
	frequent := make([]string, 0, len(counts))
	for tok, n := range counts {
		if n >= minTokenFrequency {
			frequent = append(frequent, tok)
		}
	}
	sort.Slice(frequent, func(i, j int) bool {
		a, b := frequent[i], frequent[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return first[a] < first[b]
	})
	for _, tok := range frequent {
		add(tok)
	}
	return terms
}

// SplitSkills divides terms into required and desired lists using the
// "required" and "preferred" markers in the description. A term is desired
// when it is mentioned after "preferred" and never in the required part of
// the text. Everything else, including terms the description does not
// mention, is required. Without a "preferred" marker every term is required.
func SplitSkills(description string, terms []string) (required, desired []string) {
	lower := strings.ToLower(description)
	prefIdx := strings.Index(lower, "preferred")
	if prefIdx < 0 {
		return append([]string{}, terms...), nil
	}
	reqIdx := strings.Index(lower, "required")

	// Part of the text each marker governs
	prefEnd, reqStart, reqEnd := len(lower), reqIdx, len(lower)
	if reqIdx > prefIdx {
		prefEnd = reqIdx
	} else if reqIdx >= 0 {
		reqEnd = prefIdx
	} else {
		// No required marker, so anything before "preferred" is required text
		reqStart, reqEnd = 0, prefIdx
	}

	for _, term := range terms {
		var inPreferred, inRequired bool
		for _, loc := range termPattern(term).FindAllStringIndex(lower, -1) {
			switch at := loc[0]; {
			case at >= prefIdx && at < prefEnd:
				inPreferred = true
			case at >= reqStart && at < reqEnd:
				inRequired = true
			}
		}
		if inPreferred && !inRequired {
			desired = append(desired, term)
		} else {
			required = append(required, term)
		}
	}
	return required, desired
}
