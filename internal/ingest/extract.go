// Package ingest fetches the college's published schedule pages and
// loads the section listings into storage. Runs are idempotent: every
// record upserts by (term, crn), so re-running a term refreshes it in
// place.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/opolyo01/etl-classes/internal/domain"
)

var (
	courseIDRe   = regexp.MustCompile(`^([A-Z&\s]{2,15})\s+([A-Z]?\d+[A-Z]*)$`)
	sectionRe    = regexp.MustCompile(`Section:\s*([A-Z&0-9\-.]+)`)
	crnRe        = regexp.MustCompile(`Course Number\s*\(CRN\):\s*(\d{4,6})`)
	courseNumRe  = regexp.MustCompile(`^([A-Z]*)0*(\d+)([A-Z]*)$`)
	sectionIDRe  = regexp.MustCompile(`^([A-Z&]+)-([A-Z0-9.]+)-`)
	modalityRe   = regexp.MustCompile(`Modality:\s*([^\n]+)`)
)

// Extractor fetches and parses one term's section listings from the
// public schedule page.
type Extractor struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewExtractor(baseURL, userAgent string, timeout time.Duration) *Extractor {
	return &Extractor{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: timeout},
	}
}

// FetchTerm downloads the schedule page for (term, dept) and parses
// out one Section per CRN. dept "every" means all departments.
func (e *Extractor) FetchTerm(ctx context.Context, term, dept string) ([]domain.Section, error) {
	params := url.Values{
		"Quarter":      {term},
		"dept":         {dept},
		"availability": {"all"},
		"modality":     {"anymodality"},
		"location":     {"anywhere"},
		"oer":          {"any"},
		"time":         {"Any Time"},
		"GEArea":       {"any"},
		"ADay":         {"A"},
		"type":         {"any"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", e.UserAgent)

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule page returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule page: %w", err)
	}
	return extractSections(doc, term, dept), nil
}

// courseContext tracks the course header most recently seen while
// walking the page in document order; section blocks inherit it.
type courseContext struct {
	subject string
	course  string
	title   string
}

// extractSections walks the parsed page. Course-id headers
// (h3.fh_course-id) set the current context, course-head headers carry
// the title, and each section container yields one record.
func extractSections(doc *html.Node, term, dept string) []domain.Section {
	var sections []domain.Section
	var ctx courseContext
	deptCode, _, _ := strings.Cut(dept, "|")

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "h3" && hasClass(n, "fh_course-id"):
				subject, course := parseCourseID(nodeText(n))
				ctx = courseContext{subject: subject, course: course}
				return
			case n.Data == "h3" && hasClass(n, "fh_course-head"):
				if ctx.title == "" {
					ctx.title = nodeText(n)
				}
				return
			case hasClass(n, "section") || hasClass(n, "fh_sched-wrap"):
				if sec, ok := parseSectionBlock(n, term, ctx); ok {
					if deptCode == "every" || sec.Subject == deptCode {
						sections = append(sections, sec)
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sections
}

// parseSectionBlock pulls one section record out of its container: the
// section label, the CRN, the meeting rows (room, days/time,
// instructor) and the modality line.
func parseSectionBlock(n *html.Node, term string, ctx courseContext) (domain.Section, bool) {
	text := blockText(n)

	crnMatch := crnRe.FindStringSubmatch(text)
	if crnMatch == nil {
		return domain.Section{}, false
	}

	sec := domain.Section{
		Term:    term,
		CRN:     crnMatch[1],
		Subject: ctx.subject,
		Course:  ctx.course,
		Title:   ctx.title,
	}

	if m := sectionRe.FindStringSubmatch(text); m != nil {
		sec.Section = m[1]
		// The section label encodes subject and course; use it when no
		// course header preceded the block.
		if sec.Subject == "" || sec.Course == "" {
			if id := sectionIDRe.FindStringSubmatch(m[1]); id != nil {
				sec.Subject = id[1]
				sec.Course = normalizeCourseNumber(id[2])
			}
		}
	}

	if m := modalityRe.FindStringSubmatch(text); m != nil {
		sec.Modality = strings.TrimSpace(m[1])
	}

	var rooms, daysTimes, instructors []string
	for _, row := range findAllByClass(n, "meet-tr") {
		cells := findAllByClass(row, "meet-td")
		if len(cells) < 4 {
			continue
		}
		rooms = append(rooms, nodeText(cells[1]))
		daysTimes = append(daysTimes, nodeText(cells[2]))
		instructors = append(instructors, nodeText(cells[3]))
	}
	sec.Room = joinDistinct(rooms)
	sec.DaysTime = joinDistinct(daysTimes)
	sec.Instructor = joinDistinct(instructors)

	if sec.Subject == "" || sec.Course == "" || sec.Section == "" {
		return domain.Section{}, false
	}
	return sec, true
}

// parseCourseID splits a course header like "CS 2C" or "C S 1A" into
// subject and normalized course number.
func parseCourseID(text string) (string, string) {
	text = strings.TrimSpace(text)
	if m := courseIDRe.FindStringSubmatch(text); m != nil {
		subject := strings.Join(strings.Fields(m[1]), "")
		return subject, normalizeCourseNumber(m[2])
	}
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", ""
	}
	return strings.Join(fields[:len(fields)-1], ""), normalizeCourseNumber(fields[len(fields)-1])
}

// normalizeCourseNumber strips leading zeros so "001A" aligns with the
// "1A" form used in course headers.
func normalizeCourseNumber(course string) string {
	m := courseNumRe.FindStringSubmatch(course)
	if m == nil {
		return course
	}
	num, err := strconv.Atoi(m[2])
	if err != nil {
		return course
	}
	return m[1] + strconv.Itoa(num) + m[3]
}

// joinDistinct joins non-empty values with "; ", deduping while
// preserving order (a section can have several identical meeting rows).
func joinDistinct(values []string) string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return strings.Join(out, "; ")
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node != n && hasClass(node, class) {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// nodeText flattens a node's text content, collapsing whitespace.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// blockText flattens a subtree inserting newlines at element
// boundaries, so line-oriented patterns (the Modality row) stay on
// their own line.
func blockText(n *html.Node) string {
	var b strings.Builder
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(node.Data))
			b.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if node.Type == html.ElementNode {
			switch node.Data {
			case "div", "p", "h3", "li", "br", "tr":
				b.WriteString("\n")
			}
		}
	}
	walk(n)
	return b.String()
}
