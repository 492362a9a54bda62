package ruddit

import (
	"context"
	"fmt"

	"ruddit-go/internal/model"
)

// CommentResult reports one thread fetch.
type CommentResult struct {
	PostID   string
	Comments []model.Comment
	Inserted int // comments that were not stored before
	Stats    FlattenStats
}

// FetchComments fetches the thread for ref (a post id, fullname or URL),
// flattens it and appends the comments to the store. Comments already stored
// are left as they are.
func (s *Service) FetchComments(ctx context.Context, ref string) (*CommentResult, error) {
	postID, ok := model.ResolvePostRef(ref)
	if !ok {
		return nil, E(ErrInvalidIdentity, "fetching comments", fmt.Errorf("no post id in %q", ref))
	}

	token, err := s.tokens.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	var thread *Thread
	err = s.opts.Retry.Do(ctx, IsRetryable, func(ctx context.Context) error {
		var err error
		thread, err = s.source.Comments(ctx, token, CommentRequest{
			PostID: postID,
			Sort:   s.opts.CommentSort,
			Limit:  s.opts.CommentLimit,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", postID, err)
	}

	if st := thread.Stats; st.Duplicates+st.Truncated+st.Malformed > 0 {
		s.logger.Warn("comment tree pruned",
			"post", thread.PostID, "duplicates", st.Duplicates, "truncated", st.Truncated, "malformed", st.Malformed)
	}

	inserted, err := s.database.AppendComments(thread.Comments)
	if err != nil {
		return nil, E(ErrPersistence, "storing comments", err)
	}

	s.logger.Info("comments stored", "post", thread.PostID, "fetched", len(thread.Comments), "inserted", inserted)
	return &CommentResult{
		PostID:   thread.PostID,
		Comments: thread.Comments,
		Inserted: inserted,
		Stats:    thread.Stats,
	}, nil
}

// CommentsForPost returns stored comments in the order they were flattened.
func (s *Service) CommentsForPost(postID string) ([]model.Comment, error) {
	return s.database.CommentsForPost(postID)
}

// AllComments returns every stored comment.
func (s *Service) AllComments() ([]model.Comment, error) {
	return s.database.AllComments()
}

func (s *Service) UpdateCommentNotes(id, notes string) error {
	return s.database.UpdateCommentNotes(id, notes)
}

func (s *Service) UpdateCommentAssignee(id, assignee string) error {
	return s.database.UpdateCommentAssignee(id, assignee)
}

func (s *Service) UpdateCommentEngaged(id string, engaged bool) error {
	return s.database.UpdateCommentEngaged(id, engaged)
}

// ClearComments deletes every stored comment.
func (s *Service) ClearComments() error {
	return s.database.ClearComments()
}
