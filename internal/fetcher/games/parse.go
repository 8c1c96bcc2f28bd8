package games

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/normalize"
)

// listing is one row of a shelf page.
type listing struct {
	Title     string
	Link      string
	Platform  string
	Image     string
	Started   *time.Time
	Completed *time.Time
}

// profile is the extra metadata scraped from a game's own page.
type profile struct {
	Description string
	Genres      []string
}

// parseShelf extracts game rows from the rendered shelf list. The first row
// inside each group is the header and carries no game.
func parseShelf(html string) ([]listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var listings []listing
	doc.Find("#user_games > div > div > div > div:not(:first-of-type)").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("a").First()
		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return
		}
		href, _ := anchor.Attr("href")
		img, _ := row.Find("img").First().Attr("src")
		started, completed := rowDates(row)

		listings = append(listings, listing{
			Title:     title,
			Link:      absoluteLink(href),
			Platform:  strings.TrimSpace(row.Find("span").First().Text()),
			Image:     absoluteLink(img),
			Started:   started,
			Completed: completed,
		})
	})
	return listings, nil
}

// parseProfile extracts the summary text and the "Genres:" labeled list
// from a rendered profile page.
func parseProfile(html string) (profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return profile{}, err
	}

	var p profile

	info := doc.Find("div[class^='GameSummary_profile_info']").First()
	// The truncation toggle leaves its label in the text when the click
	// did not land.
	p.Description = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(info.Text()), "...Read More"))

	doc.Find("div > strong").EachWithBreak(func(_ int, label *goquery.Selection) bool {
		if strings.TrimSpace(label.Text()) != "Genres:" {
			return true
		}
		container := label.Parent().Text()
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(container), "Genres:"))
		for _, genre := range strings.Split(value, ",") {
			if g := strings.TrimSpace(genre); g != "" {
				p.Genres = append(p.Genres, g)
			}
		}
		return false
	})

	return p, nil
}

// rowDates pulls start and finish dates from a row's datetime attributes.
// Shelves that do not track play dates simply have none.
func rowDates(row *goquery.Selection) (started, completed *time.Time) {
	var dates []*time.Time
	row.Find("[datetime]").Each(func(_ int, node *goquery.Selection) {
		raw, _ := node.Attr("datetime")
		if t := normalize.ParseTime(raw); t != nil {
			dates = append(dates, t)
		}
	})
	if len(dates) > 0 {
		started = dates[0]
	}
	if len(dates) > 1 {
		completed = dates[1]
	}
	return started, completed
}

// normalizeListing maps a shelf row onto the canonical schema. The id is
// the trailing segment of the game URL, which HLTB keeps stable.
func normalizeListing(l listing) domain.MediaItem {
	return domain.MediaItem{
		ID:          normalize.SlugFromLink(l.Link),
		Type:        domain.TypeGames,
		Title:       l.Title,
		Genres:      []string{},
		Link:        l.Link,
		Thumbnail:   l.Image,
		Platform:    l.Platform,
		StartedAt:   l.Started,
		CompletedAt: l.Completed,
	}
}
