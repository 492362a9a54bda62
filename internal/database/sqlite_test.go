package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ruddit-go/internal/model"
)

// newTestDB creates a new in-memory database with the schema migrated.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func testPost(id model.PostID, title, subreddit, facets string) model.Post {
	ts := int64(1718000000) + int64(id)
	return model.Post{
		ID:            id,
		Timestamp:     ts,
		FormattedDate: model.FormatTimestamp(ts),
		Title:         title,
		URL:           "https://example.com/" + id.String(),
		Permalink:     "https://reddit.com/r/" + subreddit + "/comments/" + id.String(),
		Subreddit:     subreddit,
		SortType:      facets,
		Score:         10,
		Author:        "gopher",
		NumComments:   3,
		Intent:        model.IntentLow,
		Name:          id.Fullname(),
		DateAdded:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestSQLiteDatabase_UpsertSaved(t *testing.T) {
	t.Run("inserts new posts", func(t *testing.T) {
		db := newTestDB(t)

		n, err := db.UpsertSaved([]model.Post{
			testPost(1, "first", "golang", "hot"),
			testPost(2, "second", "golang", "new"),
		})
		if err != nil {
			t.Fatalf("UpsertSaved() error = %v", err)
		}
		if n != 2 {
			t.Errorf("UpsertSaved() = %d, want 2", n)
		}
	})

	t.Run("re-insert keeps user-editable fields", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.UpsertSaved([]model.Post{testPost(1, "original", "golang", "hot")}); err != nil {
			t.Fatalf("UpsertSaved() error = %v", err)
		}
		if err := db.UpdateNotes(1, "call back monday"); err != nil {
			t.Fatalf("UpdateNotes() error = %v", err)
		}
		if err := db.UpdateAssignee(1, "sam"); err != nil {
			t.Fatalf("UpdateAssignee() error = %v", err)
		}
		if err := db.UpdateEngaged(1, true); err != nil {
			t.Fatalf("UpdateEngaged() error = %v", err)
		}

		again := testPost(1, "changed upstream", "golang", "hot,new")
		n, err := db.UpsertSaved([]model.Post{again})
		if err != nil {
			t.Fatalf("second UpsertSaved() error = %v", err)
		}
		if n != 0 {
			t.Errorf("second UpsertSaved() = %d, want 0", n)
		}

		got, err := db.FindSaved(1)
		if err != nil {
			t.Fatalf("FindSaved() error = %v", err)
		}
		if got == nil {
			t.Fatal("FindSaved() returned nil")
		}
		if got.Notes != "call back monday" {
			t.Errorf("Notes = %q, want %q", got.Notes, "call back monday")
		}
		if got.Assignee != "sam" {
			t.Errorf("Assignee = %q, want %q", got.Assignee, "sam")
		}
		if !got.Engaged {
			t.Error("Engaged = false, want true")
		}
		if got.Title != "original" {
			t.Errorf("Title = %q, want %q", got.Title, "original")
		}

		saved, _, _, err := db.Counts()
		if err != nil {
			t.Fatalf("Counts() error = %v", err)
		}
		if saved != 1 {
			t.Errorf("saved count = %d, want 1", saved)
		}
	})

	t.Run("round-trips optional fields", func(t *testing.T) {
		db := newTestDB(t)

		withBody := testPost(1, "self post", "golang", "hot")
		body := "text body"
		withBody.Selftext = &body
		withBody.IsSelf = true
		noBody := testPost(2, "link post", "golang", "hot")

		if _, err := db.UpsertSaved([]model.Post{withBody, noBody}); err != nil {
			t.Fatalf("UpsertSaved() error = %v", err)
		}

		got1, _ := db.FindSaved(1)
		if got1.Selftext == nil || *got1.Selftext != "text body" {
			t.Errorf("Selftext = %v, want %q", got1.Selftext, "text body")
		}
		if !got1.IsSelf {
			t.Error("IsSelf = false, want true")
		}
		got2, _ := db.FindSaved(2)
		if got2.Selftext != nil {
			t.Errorf("Selftext = %q, want nil", *got2.Selftext)
		}
		if got2.Thumbnail != nil {
			t.Errorf("Thumbnail = %q, want nil", *got2.Thumbnail)
		}
	})
}

func TestSQLiteDatabase_FindSaved_NotFound(t *testing.T) {
	db := newTestDB(t)

	got, err := db.FindSaved(99)
	if err != nil {
		t.Fatalf("FindSaved() error = %v", err)
	}
	if got != nil {
		t.Errorf("FindSaved() = %v, want nil", got)
	}
}

func TestSQLiteDatabase_UpdatesOnMissingID(t *testing.T) {
	db := newTestDB(t)

	if err := db.UpdateNotes(404, "x"); err != nil {
		t.Errorf("UpdateNotes() error = %v", err)
	}
	if err := db.UpdateAssignee(404, "x"); err != nil {
		t.Errorf("UpdateAssignee() error = %v", err)
	}
	if err := db.UpdateEngaged(404, true); err != nil {
		t.Errorf("UpdateEngaged() error = %v", err)
	}
	if err := db.UpdateCommentNotes("nope", "x"); err != nil {
		t.Errorf("UpdateCommentNotes() error = %v", err)
	}

	saved, _, _, _ := db.Counts()
	if saved != 0 {
		t.Errorf("saved count = %d, want 0", saved)
	}
}

func TestSQLiteDatabase_SavedReaders(t *testing.T) {
	db := newTestDB(t)

	posts := []model.Post{
		testPost(1, "Learning rust today", "programming", "hot"),
		testPost(2, "Go generics", "rust", "new"),
		testPost(3, "Rust is great", "programming", "hottest"),
		testPost(4, "weekly thread", "golang", "top,rust"),
		testPost(5, "unrelated", "golang", "hot,new"),
	}
	if _, err := db.UpsertSaved(posts); err != nil {
		t.Fatalf("UpsertSaved() error = %v", err)
	}

	ids := func(ps []model.Post) []model.PostID {
		out := make([]model.PostID, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}
	equal := func(a, b []model.PostID) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}

	tests := []struct {
		name string
		get  func() ([]model.Post, error)
		want []model.PostID
	}{
		{"recent", func() ([]model.Post, error) { return db.RecentSaved(2) }, []model.PostID{5, 4}},
		{"all newest first", db.AllSaved, []model.PostID{5, 4, 3, 2, 1}},
		{"by facet membership", func() ([]model.Post, error) { return db.SavedByFacet("hot") }, []model.PostID{5, 1}},
		{"by community", func() ([]model.Post, error) { return db.SavedByCommunity("programming") }, []model.PostID{3, 1}},
		{"substring over title, community and facet", func() ([]model.Post, error) { return db.SearchSaved("rust") }, []model.PostID{4, 2, 1}},
		{"substring is case-sensitive", func() ([]model.Post, error) { return db.SearchSaved("Rust") }, []model.PostID{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.get()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if !equal(ids(got), tt.want) {
				t.Errorf("ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestSQLiteDatabase_FacetCounts(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.UpsertSaved([]model.Post{
		testPost(1, "a", "golang", "hot,new"),
		testPost(2, "b", "golang", "hot"),
		testPost(3, "c", "golang", "top"),
	}); err != nil {
		t.Fatalf("UpsertSaved() error = %v", err)
	}

	counts, err := db.FacetCounts()
	if err != nil {
		t.Fatalf("FacetCounts() error = %v", err)
	}

	want := map[string]int64{"hot": 2, "new": 1, "top": 1}
	if len(counts) != len(want) {
		t.Fatalf("len(FacetCounts()) = %d, want %d", len(counts), len(want))
	}
	if counts[0].Facet != "hot" {
		t.Errorf("first facet = %q, want %q", counts[0].Facet, "hot")
	}
	for _, c := range counts {
		if want[c.Facet] != c.Count {
			t.Errorf("count[%s] = %d, want %d", c.Facet, c.Count, want[c.Facet])
		}
	}
}

func TestSQLiteDatabase_RemoveAndClearSaved(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.UpsertSaved([]model.Post{testPost(1, "a", "x", "hot"), testPost(2, "b", "x", "hot")}); err != nil {
		t.Fatalf("UpsertSaved() error = %v", err)
	}
	if err := db.AppendSearchResults([]model.Post{testPost(3, "c", "x", "hot")}); err != nil {
		t.Fatalf("AppendSearchResults() error = %v", err)
	}

	if err := db.RemoveSaved(1); err != nil {
		t.Fatalf("RemoveSaved() error = %v", err)
	}
	if got, _ := db.FindSaved(1); got != nil {
		t.Error("post 1 still saved after RemoveSaved")
	}

	if err := db.ClearSaved(); err != nil {
		t.Fatalf("ClearSaved() error = %v", err)
	}
	saved, search, _, err := db.Counts()
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if saved != 0 {
		t.Errorf("saved count = %d, want 0", saved)
	}
	if search != 1 {
		t.Errorf("search count = %d, want 1 (ClearSaved must not touch current search)", search)
	}
}

func TestSQLiteDatabase_SearchResults(t *testing.T) {
	t.Run("replace clears previous contents", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.ReplaceSearchResults([]model.Post{testPost(1, "a", "x", "hot"), testPost(2, "b", "x", "hot")}); err != nil {
			t.Fatalf("ReplaceSearchResults() error = %v", err)
		}
		if err := db.ReplaceSearchResults([]model.Post{testPost(3, "c", "x", "new")}); err != nil {
			t.Fatalf("ReplaceSearchResults() error = %v", err)
		}

		got, err := db.AllSearchResults()
		if err != nil {
			t.Fatalf("AllSearchResults() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != 3 {
			t.Errorf("AllSearchResults() = %v, want only post 3", got)
		}
	})

	t.Run("append keeps duplicate identities", func(t *testing.T) {
		db := newTestDB(t)

		p := testPost(1, "a", "x", "hot")
		if err := db.AppendSearchResults([]model.Post{p}); err != nil {
			t.Fatalf("AppendSearchResults() error = %v", err)
		}
		if err := db.AppendSearchResults([]model.Post{p}); err != nil {
			t.Fatalf("AppendSearchResults() error = %v", err)
		}

		_, search, _, _ := db.Counts()
		if search != 2 {
			t.Errorf("search count = %d, want 2", search)
		}
	})

	t.Run("find and clear", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.AppendSearchResults([]model.Post{testPost(7, "seven", "x", "top")}); err != nil {
			t.Fatalf("AppendSearchResults() error = %v", err)
		}
		got, err := db.FindSearchResult(7)
		if err != nil {
			t.Fatalf("FindSearchResult() error = %v", err)
		}
		if got == nil || got.Title != "seven" {
			t.Fatalf("FindSearchResult() = %v, want post seven", got)
		}

		if err := db.ClearSearchResults(); err != nil {
			t.Fatalf("ClearSearchResults() error = %v", err)
		}
		if got, _ := db.FindSearchResult(7); got != nil {
			t.Errorf("FindSearchResult() after clear = %v, want nil", got)
		}
	})
}

func TestSQLiteDatabase_AllPosts(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.UpsertSaved([]model.Post{testPost(1, "saved", "x", "hot")}); err != nil {
		t.Fatalf("UpsertSaved() error = %v", err)
	}
	if err := db.AppendSearchResults([]model.Post{testPost(1, "dup", "x", "hot"), testPost(2, "fresh", "x", "new")}); err != nil {
		t.Fatalf("AppendSearchResults() error = %v", err)
	}

	all, err := db.AllPosts()
	if err != nil {
		t.Fatalf("AllPosts() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(AllPosts()) = %d, want 2", len(all))
	}
	if all[0].Title != "saved" {
		t.Errorf("AllPosts()[0].Title = %q, want saved row first", all[0].Title)
	}
}

func TestSQLiteDatabase_Comments(t *testing.T) {
	comment := func(id, parent string) model.Comment {
		return model.Comment{
			ID:            id,
			PostID:        "abc",
			ParentID:      parent,
			Body:          "body " + id,
			Author:        "gopher",
			Timestamp:     1718000000,
			FormattedDate: model.FormatTimestamp(1718000000),
			Permalink:     "https://reddit.com/r/golang/comments/abc/x/" + id,
			Subreddit:     "golang",
			PostTitle:     "title",
		}
	}

	t.Run("append is insert-or-ignore", func(t *testing.T) {
		db := newTestDB(t)

		batch := []model.Comment{comment("c1", "t3_abc"), comment("c2", "t1_c1")}
		n, err := db.AppendComments(batch)
		if err != nil {
			t.Fatalf("AppendComments() error = %v", err)
		}
		if n != 2 {
			t.Errorf("AppendComments() = %d, want 2", n)
		}

		if err := db.UpdateCommentNotes("c1", "reply later"); err != nil {
			t.Fatalf("UpdateCommentNotes() error = %v", err)
		}

		n, err = db.AppendComments(append(batch, comment("c3", "t1_c2")))
		if err != nil {
			t.Fatalf("second AppendComments() error = %v", err)
		}
		if n != 1 {
			t.Errorf("second AppendComments() = %d, want 1", n)
		}

		got, err := db.CommentsForPost("abc")
		if err != nil {
			t.Fatalf("CommentsForPost() error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len(CommentsForPost()) = %d, want 3", len(got))
		}
		for i, id := range []string{"c1", "c2", "c3"} {
			if got[i].ID != id {
				t.Errorf("comments[%d].ID = %q, want %q", i, got[i].ID, id)
			}
		}
		if got[0].Notes != "reply later" {
			t.Errorf("Notes = %q, want %q", got[0].Notes, "reply later")
		}
	})

	t.Run("annotations and clear", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.AppendComments([]model.Comment{comment("c1", "t3_abc")}); err != nil {
			t.Fatalf("AppendComments() error = %v", err)
		}
		if err := db.UpdateCommentAssignee("c1", "ana"); err != nil {
			t.Fatalf("UpdateCommentAssignee() error = %v", err)
		}
		if err := db.UpdateCommentEngaged("c1", true); err != nil {
			t.Fatalf("UpdateCommentEngaged() error = %v", err)
		}

		all, err := db.AllComments()
		if err != nil {
			t.Fatalf("AllComments() error = %v", err)
		}
		if len(all) != 1 || all[0].Assignee != "ana" || !all[0].Engaged {
			t.Errorf("AllComments() = %+v, want assigned and engaged comment", all)
		}

		if err := db.ClearComments(); err != nil {
			t.Fatalf("ClearComments() error = %v", err)
		}
		_, _, comments, _ := db.Counts()
		if comments != 0 {
			t.Errorf("comment count = %d, want 0", comments)
		}
	})
}

func TestSQLiteDatabase_Operations(t *testing.T) {
	db := newTestDB(t)

	max, err := db.MaxOperationID()
	if err != nil {
		t.Fatalf("MaxOperationID() error = %v", err)
	}
	if max != 0 {
		t.Errorf("MaxOperationID() = %d, want 0", max)
	}

	op, err := db.CreateOperation("RunQuery", "r/golang")
	if err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}
	if op.ID == 0 {
		t.Error("operation ID is 0")
	}
	if op.Status != "running" {
		t.Errorf("Status = %q, want %q", op.Status, "running")
	}

	if err := db.FinishOperation(op.ID, "success"); err != nil {
		t.Fatalf("FinishOperation() error = %v", err)
	}
	if _, err := db.CreateOperation("SaveFromSearch", "1"); err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}

	ops, err := db.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("len(ListOperations()) = %d, want 2", len(ops))
	}
	if ops[0].Operation != "SaveFromSearch" {
		t.Errorf("ops[0].Operation = %q, want newest first", ops[0].Operation)
	}
	if ops[1].Status != "success" || !ops[1].FinishedAt.Valid {
		t.Errorf("ops[1] = %+v, want finished success", ops[1])
	}

	max, _ = db.MaxOperationID()
	if max != ops[0].ID {
		t.Errorf("MaxOperationID() = %d, want %d", max, ops[0].ID)
	}
}

func TestSQLiteDatabase_BackupTo(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.UpsertSaved([]model.Post{testPost(1, "keep me", "x", "hot")}); err != nil {
		t.Fatalf("UpsertSaved() error = %v", err)
	}

	dest := filepath.Join(t.TempDir(), "backup.db")
	if err := db.BackupTo(dest); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	restored, err := NewSQLiteDatabase(dest)
	if err != nil {
		t.Fatalf("opening backup: %v", err)
	}
	defer restored.Close()

	got, err := restored.FindSaved(1)
	if err != nil {
		t.Fatalf("FindSaved() error = %v", err)
	}
	if got == nil || got.Title != "keep me" {
		t.Errorf("FindSaved() on backup = %v, want saved post", got)
	}
}
