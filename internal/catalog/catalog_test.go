package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseTitleYear(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantYear  string
	}{
		{
			name:      "plain title with year",
			raw:       "Toy Story (1995)",
			wantTitle: "Toy Story",
			wantYear:  "1995",
		},
		{
			name:      "title containing parentheses keeps last group as year",
			raw:       "(500) Days of Summer (2009)",
			wantTitle: "(500) Days of Summer",
			wantYear:  "2009",
		},
		{
			name:      "no year shape",
			raw:       "Cosmos",
			wantTitle: "Cosmos",
			wantYear:  "",
		},
		{
			name:      "non-numeric trailing group is not a year",
			raw:       "The Lord of the Rings (film)",
			wantTitle: "The Lord of the Rings (film)",
			wantYear:  "",
		},
		{
			name:      "two-digit group is not a year",
			raw:       "Old Movie (95)",
			wantTitle: "Old Movie (95)",
			wantYear:  "",
		},
		{
			name:      "surrounding whitespace trimmed",
			raw:       "  Heat (1995) ",
			wantTitle: "Heat",
			wantYear:  "1995",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, year := ParseTitleYear(tt.raw)
			if title != tt.wantTitle || year != tt.wantYear {
				t.Errorf("ParseTitleYear(%q) = (%q, %q), want (%q, %q)",
					tt.raw, title, year, tt.wantTitle, tt.wantYear)
			}
		})
	}
}

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		name   string
		genres string
		want   []string
	}{
		{
			name:   "pipe delimited list",
			genres: "Adventure|Animation|Children",
			want:   []string{"Adventure", "Animation", "Children"},
		},
		{
			name:   "single genre",
			genres: "Drama",
			want:   []string{"Drama"},
		},
		{
			name:   "whitespace trimmed per genre",
			genres: "Comedy | Romance",
			want:   []string{"Comedy", "Romance"},
		},
		{
			name:   "empty list",
			genres: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitGenres(tt.genres)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitGenres(%q) = %v, want %v", tt.genres, got, tt.want)
			}
		})
	}
}

func TestLoadMovies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	content := "movieId,title,genres\n" +
		"1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy\n" +
		"2,\"American President, The (1995)\",Comedy|Drama|Romance\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	movies, err := LoadMovies(path)
	if err != nil {
		t.Fatalf("LoadMovies returned error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies, want 2", len(movies))
	}

	first := movies[0]
	if first.ID != 1 || first.Title != "Toy Story" || first.Year != "1995" {
		t.Errorf("first movie = %+v", first)
	}
	if len(first.Genres) != 5 || first.Genres[0] != "Adventure" {
		t.Errorf("first movie genres = %v", first.Genres)
	}

	second := movies[1]
	if second.Title != "American President, The" || second.Year != "1995" {
		t.Errorf("quoted title parsed as %q (%q)", second.Title, second.Year)
	}
	if second.Director != nil {
		t.Errorf("enrichment fields should start nil, got director %v", *second.Director)
	}
}

func TestLoadRatings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	content := "userId,movieId,rating,timestamp\n" +
		"1,1,4.0,964982703\n" +
		"2,1,3.5,847434962\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ratings, err := LoadRatings(path)
	if err != nil {
		t.Fatalf("LoadRatings returned error: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("got %d ratings, want 2", len(ratings))
	}
	if ratings[0].UserID != 1 || ratings[0].MovieID != 1 || ratings[0].Score != 4.0 {
		t.Errorf("first rating = %+v", ratings[0])
	}
	if got := ratings[0].RatedAt().Year(); got != 2000 {
		t.Errorf("RatedAt year = %d, want 2000", got)
	}
}

func TestLoadMoviesMissingFile(t *testing.T) {
	if _, err := LoadMovies(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
