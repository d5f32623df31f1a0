package usecase

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m-mizutani/devpost/pkg/domain/model"
)

// InsightExtractor parses review bot comments into a ReviewInsight. It never fails: text it cannot interpret is skipped.
type InsightExtractor struct {
	handles []string
	markers []string
}

func NewInsightExtractor(cfg model.BotConfig) *InsightExtractor {
	x := &InsightExtractor{}
	for _, h := range cfg.Handles {
		if h = normalizeHandle(h); h != "" {
			x.handles = append(x.handles, h)
		}
	}
	for _, m := range cfg.Markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			x.markers = append(x.markers, m)
		}
	}
	return x
}

func normalizeHandle(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.TrimSuffix(h, "[bot]")
}

// IsBotEntry returns true if the entry is authored by a bot handle or carries a bot marker
func (x *InsightExtractor) IsBotEntry(entry model.DiscussionEntry) bool {
	author := normalizeHandle(entry.Author)
	for _, h := range x.handles {
		if author == h {
			return true
		}
	}

	body := strings.ToLower(entry.Body)
	for _, m := range x.markers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

// Extract merges every bot entry into one insight. It returns nil if there is no bot entry or nothing recognizable in them.
func (x *InsightExtractor) Extract(entries []model.DiscussionEntry) *model.ReviewInsight {
	type indexed struct {
		idx   int
		entry model.DiscussionEntry
	}
	var bots []indexed
	for i, e := range entries {
		if x.IsBotEntry(e) {
			bots = append(bots, indexed{idx: i, entry: e})
		}
	}
	if len(bots) == 0 {
		return nil
	}

	sort.SliceStable(bots, func(i, j int) bool {
		if !bots[i].entry.CreatedAt.Equal(bots[j].entry.CreatedAt) {
			return bots[i].entry.CreatedAt.Before(bots[j].entry.CreatedAt)
		}
		return bots[i].idx < bots[j].idx
	})

	var (
		summary     string
		walkthrough string
		suggestions orderedSet
		categories  orderedSet
		scores      []model.Score
	)

	for _, b := range bots {
		p := parseBotBody(b.entry.Body)

		for _, s := range p.summaries {
			if utf8.RuneCountInString(s) > utf8.RuneCountInString(summary) {
				summary = s
			}
		}
		for _, s := range p.walkthroughs {
			if utf8.RuneCountInString(s) > utf8.RuneCountInString(walkthrough) {
				walkthrough = s
			}
		}
		for _, s := range p.suggestions {
			suggestions.add(normalizeSuggestion(s), s)
		}
		for _, line := range p.issueLines {
			for _, c := range detectCategories(line) {
				categories.add(string(c), string(c))
			}
		}
		scores = append(scores, p.scores...)
	}

	insight := &model.ReviewInsight{
		Summary:       summary,
		Suggestions:   suggestions.values,
		Score:         uniqueScore(scores),
		SourceEntries: len(bots),
	}
	if insight.Summary == "" {
		insight.Summary = walkthrough
	}
	for _, c := range categories.values {
		insight.Categories = append(insight.Categories, model.Category(c))
	}

	if insight.Empty() {
		return nil
	}
	return insight
}

type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionWalkthrough
	sectionSuggestions
	sectionIssues
)

// headerPrefixes maps normalized header text to a section by prefix
var headerPrefixes = []struct {
	prefix  string
	section section
}{
	{"summary", sectionSummary},
	{"walkthrough", sectionWalkthrough},
	{"suggestion", sectionSuggestions},
	{"recommendation", sectionSuggestions},
	{"nitpick", sectionSuggestions},
	{"potential issue", sectionIssues},
	{"issue", sectionIssues},
	{"actionable comment", sectionIssues},
}

var (
	ptnHeading     = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)
	ptnBoldLine    = regexp.MustCompile(`^\*\*([^*]+)\*\*:?$`)
	ptnSummaryTag  = regexp.MustCompile(`(?i)<summary>(.*?)</summary>`)
	ptnListItem    = regexp.MustCompile(`^ ?(?:[-*+]|\d+[.)])\s+(.+)$`)
	ptnHTMLTag     = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	ptnHTMLComment = regexp.MustCompile(`<!--.*?-->`)
	ptnScore       = regexp.MustCompile(`(?i)\bscore\b[^0-9\n]{0,20}(\d+(?:\.\d+)?)\s*(?:/|out of)\s*(\d+(?:\.\d+)?)`)
	ptnSpaces      = regexp.MustCompile(`\s+`)
)

type parsedBody struct {
	summaries    []string
	walkthroughs []string
	suggestions  []string
	issueLines   []string
	scores       []model.Score
}

// parseBotBody reads a comment body line by line. Fenced code blocks and HTML comments are skipped.
func parseBotBody(body string) parsedBody {
	var (
		p         parsedBody
		current   = sectionNone
		text      []string
		inFence   bool
		fence     string
		inComment bool

		// sections active when each open <details> block started
		details []section
	)

	flush := func() {
		joined := collapse(strings.Join(text, " "))
		text = nil
		if joined == "" {
			return
		}
		switch current {
		case sectionSummary:
			p.summaries = append(p.summaries, joined)
		case sectionWalkthrough:
			p.walkthroughs = append(p.walkthroughs, joined)
		}
	}

	for _, raw := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(raw)

		if inFence {
			if strings.HasPrefix(trimmed, fence) {
				inFence = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = true
			fence = trimmed[:3]
			continue
		}

		line := raw
		if inComment {
			end := strings.Index(line, "-->")
			if end < 0 {
				continue
			}
			line = line[end+3:]
			inComment = false
		}
		line = ptnHTMLComment.ReplaceAllString(line, "")
		if start := strings.Index(line, "<!--"); start >= 0 {
			line = line[:start]
			inComment = true
		}

		lower := strings.ToLower(line)
		for range strings.Count(lower, "</details>") {
			if len(details) == 0 {
				break
			}
			flush()
			current = details[len(details)-1]
			details = details[:len(details)-1]
		}
		for range strings.Count(lower, "<details") {
			details = append(details, current)
		}

		if header, ok := parseHeader(line); ok {
			flush()
			next := classifyHeader(header)
			// an unknown header nested in a details block, e.g. a per-file group, keeps the enclosing list section
			if next == sectionNone && len(details) > 0 {
				if outer := details[len(details)-1]; outer == sectionSuggestions || outer == sectionIssues {
					next = outer
				}
			}
			current = next
			continue
		}

		content := strings.TrimSpace(ptnHTMLTag.ReplaceAllString(line, ""))
		if content == "" {
			continue
		}

		if m := ptnScore.FindStringSubmatch(content); m != nil {
			if score, ok := parseScore(m[1], m[2]); ok {
				p.scores = append(p.scores, score)
			}
		}

		switch current {
		case sectionSummary, sectionWalkthrough:
			text = append(text, content)
		case sectionSuggestions:
			if m := ptnListItem.FindStringSubmatch(strings.TrimRight(ptnHTMLTag.ReplaceAllString(line, ""), " \t")); m != nil {
				if s := cleanSuggestion(m[1]); s != "" {
					p.suggestions = append(p.suggestions, s)
				}
			}
		case sectionIssues:
			p.issueLines = append(p.issueLines, content)
		}
	}
	flush()

	return p
}

// parseHeader returns the header text if line is a heading, a bold-only line or a <summary> element
func parseHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if m := ptnSummaryTag.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}
	if m := ptnHeading.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}
	if m := ptnBoldLine.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}
	return "", false
}

func classifyHeader(header string) section {
	h := normalizeHeader(header)
	for _, hp := range headerPrefixes {
		if strings.HasPrefix(h, hp.prefix) {
			return hp.section
		}
	}
	return sectionNone
}

// normalizeHeader lower-cases header text and trims emoji, punctuation and markup around it
func normalizeHeader(header string) string {
	h := ptnHTMLTag.ReplaceAllString(header, "")
	h = strings.NewReplacer("*", "", "_", "", "`", "").Replace(h)
	h = strings.ToLower(collapse(h))
	return strings.TrimFunc(h, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func cleanSuggestion(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return collapse(s)
}

// normalizeSuggestion is the identity of a suggestion for deduplication
func normalizeSuggestion(s string) string {
	s = strings.NewReplacer("*", "", "_", "", "`", "").Replace(s)
	s = strings.ToLower(collapse(s))
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

func collapse(s string) string {
	return strings.TrimSpace(ptnSpaces.ReplaceAllString(s, " "))
}

var categoryKeywords = []struct {
	category model.Category
	pattern  *regexp.Regexp
}{
	{model.CategorySecurity, regexp.MustCompile(`(?i)\b(security|vulnerab|injection|xss|csrf|credential|secret)`)},
	{model.CategoryPerformance, regexp.MustCompile(`(?i)\b(performance|latency|slow|inefficien|memory leak|allocation)`)},
	{model.CategoryBug, regexp.MustCompile(`(?i)\b(bug|crash|panic|nil pointer|null pointer|race condition|off-by-one|incorrect)`)},
	{model.CategoryMaintainability, regexp.MustCompile(`(?i)\b(maintainab|refactor|duplicat|complexity|readab)`)},
	{model.CategoryTesting, regexp.MustCompile(`(?i)\b(test|coverage)`)},
	{model.CategoryDocumentation, regexp.MustCompile(`(?i)\b(documentation|docstring|readme|godoc|doc comment)`)},
	{model.CategoryStyle, regexp.MustCompile(`(?i)\b(style|formatting|naming|lint|indentation|whitespace)`)},
}

func detectCategories(line string) []model.Category {
	var found []model.Category
	for _, ck := range categoryKeywords {
		if ck.pattern.MatchString(line) {
			found = append(found, ck.category)
		}
	}
	return found
}

func parseScore(value, maxValue string) (model.Score, bool) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return model.Score{}, false
	}
	m, err := strconv.ParseFloat(maxValue, 64)
	if err != nil || m <= 0 || v > m {
		return model.Score{}, false
	}
	return model.Score{Value: v, Max: m}, true
}

// uniqueScore returns the score only if every occurrence agrees
func uniqueScore(scores []model.Score) *model.Score {
	if len(scores) == 0 {
		return nil
	}
	for _, s := range scores[1:] {
		if s != scores[0] {
			return nil
		}
	}
	score := scores[0]
	return &score
}

// orderedSet keeps first-seen order of values identified by key
type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func (x *orderedSet) add(key, value string) {
	if key == "" {
		return
	}
	if x.seen == nil {
		x.seen = make(map[string]struct{})
	}
	if _, ok := x.seen[key]; ok {
		return
	}
	x.seen[key] = struct{}{}
	x.values = append(x.values, value)
}
