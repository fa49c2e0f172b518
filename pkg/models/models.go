package models

import "fmt"

// Missing is the sentinel written for a field that could not be extracted.
// It is distinct from an empty string, which means "present but blank".
const Missing = "N/A"

// Record represents one movie scraped from a listing card
type Record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Duration    string `json:"duration"`
	Genres      string `json:"genres"`
	Directors   string `json:"directors"`
	Actors      string `json:"actors"`
	PressRating string `json:"press_rating"`
	SpecRating  string `json:"spec_rating"`
	Summary     string `json:"summary"`
}

// Columns returns the dataset column names in their fixed output order
func Columns() []string {
	return []string{
		"id",
		"title",
		"release_date",
		"duration",
		"genres",
		"directors",
		"actors",
		"press_rating",
		"spec_rating",
		"summary",
	}
}

// Row returns the record's values in column order
func (r Record) Row() []string {
	return []string{
		r.ID,
		r.Title,
		r.ReleaseDate,
		r.Duration,
		r.Genres,
		r.Directors,
		r.Actors,
		r.PressRating,
		r.SpecRating,
		r.Summary,
	}
}

// FromRow builds a Record from a CSV row in column order
func FromRow(row []string) (Record, error) {
	if len(row) != len(Columns()) {
		return Record{}, fmt.Errorf("expected %d columns, got %d", len(Columns()), len(row))
	}
	return Record{
		ID:          row[0],
		Title:       row[1],
		ReleaseDate: row[2],
		Duration:    row[3],
		Genres:      row[4],
		Directors:   row[5],
		Actors:      row[6],
		PressRating: row[7],
		SpecRating:  row[8],
		Summary:     row[9],
	}, nil
}
