package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"career-portal/internal/domain/job"
	"career-portal/internal/domain/skill"
	"career-portal/internal/pkg/logger"

	"github.com/gocolly/colly/v2"
)

const userAgent = "CareerPortalImporter/1.0"

// JobWriter is the part of the job repository the importer needs.
type JobWriter interface {
	Upsert(ctx context.Context, jobs []job.Job) (int, error)
}

// Target describes one company careers page. ListURL may contain a %d verb
// which is replaced with the page number.
type Target struct {
	Company            string `yaml:"company"`
	Website            string `yaml:"website"`
	ListURL            string `yaml:"list_url"`
	LinkSelector       string `yaml:"link_selector"`
	TitleSelector      string `yaml:"title_selector"`
	LocationSelector   string `yaml:"location_selector"`
	DetailBodySelector string `yaml:"detail_body_selector"`
	JobType            string `yaml:"job_type"`
	WorkArrangement    string `yaml:"work_arrangement"`
	Industry           string `yaml:"industry"`
}

type Stats struct {
	Targets  int
	Listed   int
	Imported int
	Failed   int
}

type Option func(*Importer)

// WithRateLimit caps detail page fetches per second. Zero disables the cap.
func WithRateLimit(rps int) Option {
	return func(i *Importer) { i.rps = rps }
}

// WithDelay sets the colly per-domain delay between requests.
func WithDelay(d time.Duration) Option {
	return func(i *Importer) { i.delay = d }
}

type Importer struct {
	jobs  JobWriter
	log   *logger.Logger
	rps   int
	delay time.Duration
}

func NewImporter(jobs JobWriter, log *logger.Logger, opts ...Option) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	i := &Importer{jobs: jobs, log: log, rps: 3, delay: 450 * time.Millisecond}
	for _, o := range opts {
		o(i)
	}
	return i
}

type listItem struct {
	Link     string
	Title    string
	Location string
}

type detail struct {
	Title       string
	Location    string
	Description string
	URL         string
}

// Run crawls pages listing pages of every target, fetches each linked posting
// and upserts it as an active job whose requirements are the vocabulary skills
// found in the posting text. Per-item failures are logged and counted.
func (im *Importer) Run(ctx context.Context, targets []Target, pages int, workers int) (Stats, error) {
	var stats Stats
	if im == nil || im.jobs == nil {
		return stats, errors.New("importer: nil job writer")
	}
	if workers <= 0 {
		workers = 4
	}
	if pages < 1 {
		pages = 1
	}

	for _, t := range targets {
		t = withDefaults(t)
		if t.Company == "" || t.ListURL == "" {
			im.log.Warn("skipping target without company or list_url", "company", t.Company)
			continue
		}
		stats.Targets++

		var imported, failed atomic.Int64
		pool := NewWorkerPool(workers, workers*2)
		pool.SetRateLimit(im.rps)
		results := pool.Run(ctx)

		var drain sync.WaitGroup
		drain.Add(1)
		go func() {
			defer drain.Done()
			for res := range results {
				if res.Err != nil {
					failed.Add(1)
					im.log.Warn("import posting failed", "company", t.Company, "error", res.Err)
					continue
				}
				imported.Add(1)
			}
		}()

		last := pages
		if !strings.Contains(t.ListURL, "%d") {
			last = 1
		}
		for page := 1; page <= last; page++ {
			listURL := t.ListURL
			if strings.Contains(listURL, "%d") {
				listURL = fmt.Sprintf(listURL, page)
			}
			items, err := im.scrapeListingPage(ctx, t, listURL)
			if err != nil {
				im.log.Error("listing page failed", "company", t.Company, "page", page, "error", err)
				continue
			}
			stats.Listed += len(items)
			for _, it := range items {
				if !pool.Submit(ctx, func(ctx context.Context) error {
					return im.importPosting(ctx, t, it)
				}) {
					break
				}
			}
		}

		pool.Close()
		drain.Wait()
		stats.Imported += int(imported.Load())
		stats.Failed += int(failed.Load())
		im.log.Info("target imported", "company", t.Company, "imported", imported.Load(), "failed", failed.Load())

		if err := ctx.Err(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (im *Importer) importPosting(ctx context.Context, t Target, it listItem) error {
	d, err := im.scrapeDetailPage(ctx, t, it.Link)
	if err != nil {
		return fmt.Errorf("%s: %w", it.Link, err)
	}
	j := buildJob(t, it, d)
	if j.Title == "" {
		return fmt.Errorf("%s: no title", it.Link)
	}
	_, err = im.jobs.Upsert(ctx, []job.Job{j})
	return err
}

func buildJob(t Target, it listItem, d detail) job.Job {
	link := pickNonEmpty(d.URL, it.Link)
	names := skill.Extract(d.Title + "\n" + d.Description)
	reqs := make([]skill.Requirement, 0, len(names))
	for _, n := range names {
		reqs = append(reqs, skill.Requirement{Name: n, Level: skill.LevelIntermediate, Required: true})
	}
	return job.Job{
		Title:           pickNonEmpty(d.Title, it.Title),
		CompanyName:     t.Company,
		CompanyWebsite:  t.Website,
		Description:     d.Description,
		Location:        parseLocation(pickNonEmpty(d.Location, it.Location)),
		JobType:         t.JobType,
		WorkArrangement: t.WorkArrangement,
		Industry:        t.Industry,
		Skills:          reqs,
		Status:          job.StatusActive,
		Source:          "careers:" + hostFromURL(t.ListURL),
		SourceURL:       link,
		ExternalID:      stableExternalID(link),
	}
}

func (im *Importer) newCollector(rawURL string) *colly.Collector {
	var c *colly.Collector
	if host := hostFromURL(rawURL); host != "" {
		c = colly.NewCollector(colly.AllowedDomains(host), colly.UserAgent(userAgent))
	} else {
		c = colly.NewCollector(colly.UserAgent(userAgent))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: im.delay})
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	return c
}

func (im *Importer) scrapeListingPage(ctx context.Context, t Target, listURL string) ([]listItem, error) {
	c := im.newCollector(listURL)

	items := make([]listItem, 0)
	seen := map[string]struct{}{}
	c.OnHTML(t.LinkSelector, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		abs := normalizeURL(e.Request.AbsoluteURL(href))
		if abs == "" {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}

		it := listItem{Link: abs}
		if t.TitleSelector != "" {
			it.Title = strings.TrimSpace(e.DOM.Find(t.TitleSelector).Text())
		}
		if it.Title == "" {
			it.Title = strings.TrimSpace(e.Text)
		}
		if t.LocationSelector != "" {
			it.Location = strings.TrimSpace(e.DOM.Find(t.LocationSelector).Text())
		}
		items = append(items, it)
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return items, nil
}

func (im *Importer) scrapeDetailPage(ctx context.Context, t Target, jobURL string) (detail, error) {
	c := im.newCollector(jobURL)

	out := detail{URL: jobURL}
	c.OnHTML(t.TitleSelector, func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = strings.TrimSpace(e.Text)
		}
	})
	if t.LocationSelector != "" {
		c.OnHTML(t.LocationSelector, func(e *colly.HTMLElement) {
			if out.Location == "" {
				out.Location = strings.TrimSpace(e.Text)
			}
		})
	}
	c.OnHTML(t.DetailBodySelector, func(e *colly.HTMLElement) {
		out.Description = collapseSpace(e.Text)
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return detail{}, err
	}
	if err := c.Visit(jobURL); err != nil {
		return detail{}, err
	}
	c.Wait()
	if reqErr != nil {
		return detail{}, reqErr
	}
	return out, nil
}

func withDefaults(t Target) Target {
	t.Company = strings.TrimSpace(t.Company)
	t.ListURL = strings.TrimSpace(t.ListURL)
	if strings.TrimSpace(t.LinkSelector) == "" {
		t.LinkSelector = "a"
	}
	if strings.TrimSpace(t.TitleSelector) == "" {
		t.TitleSelector = "h1"
	}
	if strings.TrimSpace(t.DetailBodySelector) == "" {
		t.DetailBodySelector = "body"
	}
	if t.JobType == "" {
		t.JobType = "full-time"
	}
	if t.WorkArrangement == "" {
		t.WorkArrangement = "onsite"
	}
	return t
}

// parseLocation reads "City, Country" and "City, State, Country".
func parseLocation(s string) job.Location {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 0:
		return job.Location{}
	case 1:
		return job.Location{City: parts[0]}
	case 2:
		return job.Location{City: parts[0], Country: parts[1]}
	default:
		return job.Location{City: parts[0], State: parts[1], Country: parts[len(parts)-1]}
	}
}

func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

func stableExternalID(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	h := sha1.Sum([]byte(u))
	return "urlsha1-" + hex.EncodeToString(h[:])
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

func pickNonEmpty(a, b string) string {
	if a = strings.TrimSpace(a); a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
