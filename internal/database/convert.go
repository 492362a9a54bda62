package database

import (
	"database/sql"
	"time"

	"ruddit-go/internal/database/sqlc"
	"ruddit-go/internal/model"
)

// postRow has the field layout shared by InsertSavedPostParams and
// InsertSearchResultParams, so it converts directly to either.
type postRow struct {
	ID            int64
	Timestamp     int64
	FormattedDate string
	Title         string
	Url           string
	SortType      string
	Subreddit     string
	Permalink     string
	Engaged       bool
	Assignee      string
	Notes         string
	Name          string
	Selftext      sql.NullString
	Author        string
	Score         int64
	Thumbnail     sql.NullString
	IsSelf        bool
	NumComments   int64
	Intent        string
	DateAdded     time.Time
}

func postParams(p *model.Post) postRow {
	added := p.DateAdded
	if added.IsZero() {
		added = time.Now().UTC()
	}
	formatted := p.FormattedDate
	if formatted == "" {
		formatted = model.FormatTimestamp(p.Timestamp)
	}
	intent := p.Intent
	if intent == "" {
		intent = model.IntentLow
	}
	return postRow{
		ID:            int64(p.ID),
		Timestamp:     p.Timestamp,
		FormattedDate: formatted,
		Title:         p.Title,
		Url:           p.URL,
		SortType:      p.SortType,
		Subreddit:     p.Subreddit,
		Permalink:     p.Permalink,
		Engaged:       p.Engaged,
		Assignee:      p.Assignee,
		Notes:         p.Notes,
		Name:          p.Name,
		Selftext:      nullString(p.Selftext),
		Author:        p.Author,
		Score:         p.Score,
		Thumbnail:     nullString(p.Thumbnail),
		IsSelf:        p.IsSelf,
		NumComments:   p.NumComments,
		Intent:        string(intent),
		DateAdded:     added,
	}
}

func (r postRow) toModel() model.Post {
	return model.Post{
		ID:            model.PostID(r.ID),
		Timestamp:     r.Timestamp,
		FormattedDate: r.FormattedDate,
		Title:         r.Title,
		URL:           r.Url,
		Permalink:     r.Permalink,
		Subreddit:     r.Subreddit,
		SortType:      r.SortType,
		Score:         r.Score,
		Selftext:      stringPtr(r.Selftext),
		Author:        r.Author,
		Thumbnail:     stringPtr(r.Thumbnail),
		IsSelf:        r.IsSelf,
		NumComments:   r.NumComments,
		Intent:        model.Intent(r.Intent),
		Name:          r.Name,
		Notes:         r.Notes,
		Assignee:      r.Assignee,
		Engaged:       r.Engaged,
		DateAdded:     r.DateAdded,
	}
}

func savedToModel(row sqlc.SavedPost) model.Post {
	return postRow(row).toModel()
}

func searchToModel(row sqlc.SearchResult) model.Post {
	return postRow{
		ID:            row.ID,
		Timestamp:     row.Timestamp,
		FormattedDate: row.FormattedDate,
		Title:         row.Title,
		Url:           row.Url,
		SortType:      row.SortType,
		Subreddit:     row.Subreddit,
		Permalink:     row.Permalink,
		Engaged:       row.Engaged,
		Assignee:      row.Assignee,
		Notes:         row.Notes,
		Name:          row.Name,
		Selftext:      row.Selftext,
		Author:        row.Author,
		Score:         row.Score,
		Thumbnail:     row.Thumbnail,
		IsSelf:        row.IsSelf,
		NumComments:   row.NumComments,
		Intent:        row.Intent,
		DateAdded:     row.DateAdded,
	}.toModel()
}

func savedRowsToModel(rows []sqlc.SavedPost) []model.Post {
	result := make([]model.Post, len(rows))
	for i := range rows {
		result[i] = savedToModel(rows[i])
	}
	return result
}

func commentRowsToModel(rows []sqlc.Comment) []model.Comment {
	result := make([]model.Comment, len(rows))
	for i, r := range rows {
		result[i] = model.Comment{
			ID:            r.ID,
			PostID:        r.PostID,
			ParentID:      r.ParentID,
			Body:          r.Body,
			Author:        r.Author,
			Timestamp:     r.Timestamp,
			FormattedDate: r.FormattedDate,
			Score:         r.Score,
			Permalink:     r.Permalink,
			Subreddit:     r.Subreddit,
			PostTitle:     r.PostTitle,
			Depth:         int(r.Depth),
			Notes:         r.Notes,
			Assignee:      r.Assignee,
			Engaged:       r.Engaged,
		}
	}
	return result
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
