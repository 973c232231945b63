package core

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// sitemap priority/changefreq policy: the home page ranks highest, category
// listings just below it, content pages age on a monthly cadence and the
// static pages trail.
const (
	sitemapPriorityHome     = "1.0"
	sitemapPriorityCategory = "0.9"
	sitemapPriorityContent  = "0.8"
	sitemapPriorityStatic   = "0.5"

	sitemapFreqStatic   = "weekly"
	sitemapFreqCategory = "daily"
	sitemapFreqContent  = "monthly"
)

// SitemapURL is one <url> entry of the sitemap document.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// sitemapDoc is the <urlset> root of the sitemap document.
type sitemapDoc struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapEntries enumerates every sitemap entry: the fixed pages, all
// categories and all content ids. Content entries carry the file's
// modification date; static and category entries carry today's date.
func (a *Assembler) SitemapEntries() []SitemapURL {
	base := strings.TrimSuffix(a.config.Server.BaseURL, "/")
	today := time.Now().Format("2006-01-02")

	entries := []SitemapURL{
		{Loc: base + "/", LastMod: today, ChangeFreq: sitemapFreqStatic, Priority: sitemapPriorityHome},
		{Loc: base + "/about", LastMod: today, ChangeFreq: sitemapFreqStatic, Priority: sitemapPriorityStatic},
		{Loc: base + "/privacy", LastMod: today, ChangeFreq: sitemapFreqStatic, Priority: sitemapPriorityStatic},
	}

	for _, cat := range a.catalog.Categories() {
		entries = append(entries, SitemapURL{
			Loc:        fmt.Sprintf("%s/category/%s", base, cat.Slug),
			LastMod:    today,
			ChangeFreq: sitemapFreqCategory,
			Priority:   sitemapPriorityCategory,
		})
	}

	for _, id := range a.repo.ListAllIDs() {
		lastMod := today
		if mt, err := a.repo.ModTime(id); err == nil {
			lastMod = mt.Format("2006-01-02")
		}
		entries = append(entries, SitemapURL{
			Loc:        fmt.Sprintf("%s/career/%s", base, id),
			LastMod:    lastMod,
			ChangeFreq: sitemapFreqContent,
			Priority:   sitemapPriorityContent,
		})
	}

	return entries
}

// Sitemap renders the sitemap as a well-formed XML document. Unlike the page
// views this error propagates: a broken sitemap has SEO impact worth
// alerting on, so the caller turns it into a server error and logs it.
func (a *Assembler) Sitemap() ([]byte, error) {
	doc := sitemapDoc{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  a.SitemapEntries(),
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSitemapRender, err)
	}

	return append([]byte(xml.Header), body...), nil
}
