// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

const ratingsCSV = `title,user_id,rating,image_url
Dune,u1,9,http://img/dune.jpg
Dune,u2,8,
Emma,u1,7,
Emma,u3,6,
Persuasion,u2,5,
Persuasion,u3,9,
Ulysses,u1,2,
Ulysses,u2,3,
`

// setupEnv points configuration at a temporary dataset and a fake Open
// Library, and returns the model directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	ratings := filepath.Join(dir, "final_rating.csv")
	if err := os.WriteFile(ratings, []byte(ratingsCSV), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("title") == "Nothing" {
			_, _ = io.WriteString(w, `{"docs":[]}`)
			return
		}
		_, _ = io.WriteString(w, `{"docs":[{"title":"Middlemarch","author_name":["George Eliot"],"key":"/works/OL1W"}]}`)
	}))
	t.Cleanup(srv.Close)

	modelDir := filepath.Join(dir, "model")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", filepath.Join(dir, "absent.env"))
	t.Setenv("RATINGS_PATH", ratings)
	t.Setenv("MODEL_DIR", modelDir)
	t.Setenv("CATALOG_BASE_URL", srv.URL)
	t.Setenv("CATALOG_COVER_BASE_URL", srv.URL)
	t.Setenv("RECOMMEND_ENRICH_LINKS", "false")
	return modelDir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	return v
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "folioctl dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestLookupCmd_JSON(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name        string
		args        []string
		wantOutcome recommend.Outcome
		wantTitles  []string
	}{
		{
			name:        "local without filter",
			args:        []string{"lookup", "Dune", "--min-rating", "0"},
			wantOutcome: recommend.OutcomeLocal,
		},
		{
			name:        "local filtered",
			args:        []string{"lookup", "Dune", "-m", "7"},
			wantOutcome: recommend.OutcomeLocal,
			wantTitles:  []string{"Persuasion"},
		},
		{
			name:        "remote ignores min rating",
			args:        []string{"lookup", "Some", "Unknown", "Book", "-m", "10"},
			wantOutcome: recommend.OutcomeRemote,
			wantTitles:  []string{"Middlemarch"},
		},
		{
			name:        "remote without matches",
			args:        []string{"lookup", "Nothing"},
			wantOutcome: recommend.OutcomeNoResults,
			wantTitles:  []string{},
		},
		{
			name:        "blank title",
			args:        []string{"lookup", "   "},
			wantOutcome: recommend.OutcomeEmptyInput,
			wantTitles:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append(tt.args, "-o", "json")...)
			if err != nil {
				t.Fatalf("lookup error = %v", err)
			}
			data := decode[models.RecommendationData](t, out)
			if data.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", data.Outcome, tt.wantOutcome)
			}
			if tt.wantTitles == nil {
				if len(data.Items) != 3 {
					t.Errorf("items = %d, want 3", len(data.Items))
				}
				return
			}
			if len(data.Items) != len(tt.wantTitles) {
				t.Fatalf("items = %+v, want titles %v", data.Items, tt.wantTitles)
			}
			for i, want := range tt.wantTitles {
				if data.Items[i].Title != want {
					t.Errorf("items[%d] = %q, want %q", i, data.Items[i].Title, want)
				}
			}
		})
	}
}

func TestLookupCmd_Text(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "lookup", "Dune", "--min-rating", "7")
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	for _, want := range []string{`Books similar to "Dune"`, "minimum average rating 7.00", "1. Persuasion", "7.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "lookup", "Nothing")
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	if !strings.Contains(out, `No results found for "Nothing"`) {
		t.Errorf("no results output = %q", out)
	}
}

func TestLookupCmd_Errors(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing title", []string{"lookup"}},
		{"negative min rating", []string{"lookup", "Dune", "-m", "-1"}},
		{"min rating above max", []string{"lookup", "Dune", "-m", "11"}},
		{"unknown output", []string{"lookup", "Dune", "-o", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("error = nil, want error")
			}
		})
	}
}

func TestTitlesCmd(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name      string
		args      []string
		wantTotal int
		want      []string
	}{
		{"all", []string{"titles"}, 4, []string{"Dune", "Emma", "Persuasion", "Ulysses"}},
		{"limited", []string{"titles", "-n", "2"}, 4, []string{"Dune", "Emma"}},
		{"prefix is case-insensitive", []string{"titles", "--prefix", "pers"}, 1, []string{"Persuasion"}},
		{"no match", []string{"titles", "--prefix", "zz"}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append(tt.args, "-o", "json")...)
			if err != nil {
				t.Fatalf("titles error = %v", err)
			}
			data := decode[models.TitlesData](t, out)
			if data.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", data.Total, tt.wantTotal)
			}
			if strings.Join(data.Titles, "|") != strings.Join(tt.want, "|") {
				t.Errorf("titles = %v, want %v", data.Titles, tt.want)
			}
		})
	}

	out, err := execute(t, "titles", "-n", "1")
	if err != nil {
		t.Fatalf("titles error = %v", err)
	}
	if !strings.Contains(out, "Dune") || !strings.Contains(out, "1 of 4 titles") {
		t.Errorf("text output = %q", out)
	}
}

func TestIndexCmds(t *testing.T) {
	modelDir := setupEnv(t)

	out, err := execute(t, "index", "list")
	if err != nil {
		t.Fatalf("index list error = %v", err)
	}
	if !strings.Contains(out, "No similarity artifacts stored.") {
		t.Errorf("empty list output = %q", out)
	}

	for i := 0; i < 2; i++ {
		if _, err := execute(t, "index", "build", "-o", "json"); err != nil {
			t.Fatalf("index build error = %v", err)
		}
	}

	out, err = execute(t, "index", "list", "-o", "json")
	if err != nil {
		t.Fatalf("index list error = %v", err)
	}
	listed := decode[[]storage.ModelMetadata](t, out)
	if len(listed) != 2 || listed[0].Version != 2 {
		t.Fatalf("listed = %+v, want versions 2 and 1", listed)
	}
	if listed[0].ItemCount != 4 || listed[0].UserCount != 3 || listed[0].RecordCount != 8 {
		t.Errorf("metadata = %+v", listed[0])
	}

	out, err = execute(t, "index", "build", "--keep", "1")
	if err != nil {
		t.Fatalf("index build --keep error = %v", err)
	}
	if !strings.Contains(out, "similarity") || !strings.Contains(out, "euclidean") {
		t.Errorf("build table = %q", out)
	}
	entries, err := os.ReadDir(modelDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("model dir holds %d files after --keep 1, want 1", len(entries))
	}

	other := t.TempDir()
	out, err = execute(t, "index", "build", "--out", other, "-o", "json")
	if err != nil {
		t.Fatalf("index build --out error = %v", err)
	}
	if meta := decode[storage.ModelMetadata](t, out); meta.Version != 1 {
		t.Errorf("--out version = %d, want 1", meta.Version)
	}
}

func TestRenderResult(t *testing.T) {
	rating := 8.25
	res := &recommend.Result{
		Query:    "Dune",
		Outcome:  recommend.OutcomeLocal,
		Degraded: true,
		Items: []recommend.Item{
			{Title: "Emma", AverageRating: &rating, Link: "https://openlibrary.org/works/OL2W"},
		},
	}

	var buf bytes.Buffer
	if err := renderResult(&buf, res, 0.5); err != nil {
		t.Fatalf("renderResult() error = %v", err)
	}
	for _, want := range []string{"1. Emma", "8.25", "OL2W", "catalog unavailable"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	empty := &recommend.Result{Query: "Dune", Outcome: recommend.OutcomeLocal, Items: []recommend.Item{}}
	if err := renderResult(&buf, empty, 9); err != nil {
		t.Fatalf("renderResult() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No similar titles meet the minimum rating.") {
		t.Errorf("empty local output = %q", buf.String())
	}
}
