// Package extract turns the markup of one listing page into movie records.
//
// Each movie card is processed by a fixed, ordered table of independent
// field rules. A rule that cannot locate its target fragment fails with a
// *FieldError, which is caught at the per-field boundary and replaced by
// the missing marker. Markup drift in one field never drops a row or
// aborts the page.
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/cine-tools/allocine/pkg/models"
)

// cardSelector identifies one movie card within a listing page
const cardSelector = "li.mdl"

var (
	nonDigits = regexp.MustCompile(`\D`)

	// Genre tags carry obfuscated, base64-looking class names ending in "=="
	genreTagClass = regexp.MustCompile(`==$`)

	// Person links (directors) share a class suffix across link variants
	personLinkClass = regexp.MustCompile(`blue-link$`)
)

// FieldError reports that one field rule could not locate or normalize its
// target fragment within a card. It is always recovered by the extractor.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// fieldRule binds one output field to its extraction function
type fieldRule struct {
	name string
	fn   func(card *goquery.Selection) (string, error)
	set  func(r *models.Record, v string)
}

// rules is the static dispatch table, in output column order
var rules = []fieldRule{
	{"id", fieldID, func(r *models.Record, v string) { r.ID = v }},
	{"title", fieldTitle, func(r *models.Record, v string) { r.Title = v }},
	{"release_date", fieldReleaseDate, func(r *models.Record, v string) { r.ReleaseDate = v }},
	{"duration", fieldDuration, func(r *models.Record, v string) { r.Duration = v }},
	{"genres", fieldGenres, func(r *models.Record, v string) { r.Genres = v }},
	{"directors", fieldDirectors, func(r *models.Record, v string) { r.Directors = v }},
	{"actors", fieldActors, func(r *models.Record, v string) { r.Actors = v }},
	{"press_rating", fieldPressRating, func(r *models.Record, v string) { r.PressRating = v }},
	{"spec_rating", fieldSpecRating, func(r *models.Record, v string) { r.SpecRating = v }},
	{"summary", fieldSummary, func(r *models.Record, v string) { r.Summary = v }},
}

// Page parses one listing page and returns a record per detected card.
// A document that fails to parse at all is a page-level error; anything
// narrower degrades to missing markers inside the affected records.
func Page(markup []byte) ([]models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page markup: %w", err)
	}

	var records []models.Record
	doc.Find(cardSelector).Each(func(i int, card *goquery.Selection) {
		records = append(records, extractCard(card))
	})
	return records, nil
}

func extractCard(card *goquery.Selection) models.Record {
	var rec models.Record
	for _, rule := range rules {
		value, err := rule.fn(card)
		if err != nil {
			log.Debug().Err(err).Msg("Field not extracted")
			value = models.Missing
		}
		rule.set(&rec, value)
	}
	return rec
}

func missing(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

func fieldID(card *goquery.Selection) (string, error) {
	href, ok := card.Find("div.content-title a").First().Attr("href")
	if !ok {
		return "", missing("id", "no title link")
	}
	// Strips every non-digit from the detail-page href. Assumes the id is
	// the only digit run in the path; a numeric segment elsewhere in the
	// href would corrupt the id.
	id := nonDigits.ReplaceAllString(href, "")
	if id == "" {
		return "", missing("id", "no digits in href "+href)
	}
	return id, nil
}

func fieldTitle(card *goquery.Selection) (string, error) {
	title := card.Find("div.content-title").First()
	if title.Length() == 0 {
		return "", missing("title", "no title container")
	}
	return strings.TrimSpace(title.Text()), nil
}

func fieldReleaseDate(card *goquery.Selection) (string, error) {
	date := card.Find("span.date").First()
	if date.Length() == 0 {
		return "", missing("release_date", "no date element")
	}
	return strings.TrimSpace(date.Text()), nil
}

// fieldDuration reads the text node immediately following the spacer marker
func fieldDuration(card *goquery.Selection) (string, error) {
	spacer := card.Find("span.spacer").First()
	if spacer.Length() == 0 {
		return "", missing("duration", "no spacer element")
	}
	next := spacer.Nodes[0].NextSibling
	if next == nil || next.Type != html.TextNode {
		return "", missing("duration", "no text after spacer")
	}
	return strings.TrimSpace(next.Data), nil
}

func fieldGenres(card *goquery.Selection) (string, error) {
	block := card.Find("div.meta-body-item.meta-body-info").First()
	if block.Length() == 0 {
		return "", missing("genres", "no meta info block")
	}
	var genres []string
	block.Find("span").Each(func(i int, s *goquery.Selection) {
		if anyClassMatches(s, genreTagClass) {
			genres = append(genres, s.Text())
		}
	})
	return strings.Join(genres, ", "), nil
}

func fieldDirectors(card *goquery.Selection) (string, error) {
	block := card.Find("div.meta-body-item.meta-body-direction").First()
	if block.Length() == 0 {
		return "", missing("directors", "no direction block")
	}
	var directors []string
	block.Find("a, span").Each(func(i int, s *goquery.Selection) {
		if anyClassMatches(s, personLinkClass) {
			directors = append(directors, s.Text())
		}
	})
	return strings.Join(directors, ", "), nil
}

// fieldActors drops the first entry of the actor block: it is the block's
// role label, not a name.
func fieldActors(card *goquery.Selection) (string, error) {
	block := card.Find("div.meta-body-item.meta-body-actor").First()
	if block.Length() == 0 {
		return "", missing("actors", "no actor block")
	}
	var actors []string
	block.Find("a, span").Each(func(i int, s *goquery.Selection) {
		actors = append(actors, s.Text())
	})
	if len(actors) <= 1 {
		return "", nil
	}
	return strings.Join(actors[1:], ", "), nil
}

func fieldPressRating(card *goquery.Selection) (string, error) {
	return ratingByLabel(card, "press_rating", "Presse")
}

func fieldSpecRating(card *goquery.Selection) (string, error) {
	return ratingByLabel(card, "spec_rating", "Spectateurs")
}

// ratingByLabel scans the card's rating items for the one labelled with the
// given audience and returns its star note. Absent ratings are routine for
// unreleased films.
func ratingByLabel(card *goquery.Selection, field, label string) (string, error) {
	var (
		note  string
		found bool
	)
	card.Find("div.rating-item").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), label) {
			return true
		}
		star := s.Find("span.stareval-note").First()
		if star.Length() == 0 {
			return true
		}
		note = strings.TrimSpace(star.Text())
		found = true
		return false
	})
	if !found {
		return "", missing(field, "no rating item labelled "+label)
	}
	return note, nil
}

func fieldSummary(card *goquery.Selection) (string, error) {
	synopsis := card.Find("div.synopsis").First()
	if synopsis.Length() == 0 {
		return "", missing("summary", "no synopsis container")
	}
	return strings.TrimSpace(synopsis.Text()), nil
}

// anyClassMatches reports whether any class token of the selection's first
// node matches the pattern.
func anyClassMatches(s *goquery.Selection, re *regexp.Regexp) bool {
	cls, ok := s.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(cls) {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}
