package ruddit

import (
	"context"
	"fmt"
	"strings"

	"ruddit-go/internal/model"
)

// Reply posts text as a reply to thingID (t1_ comment or t3_ post; a bare id is a post).
// It acts as the configured user account.
func (s *Service) Reply(ctx context.Context, thingID string, text string) (*model.Comment, error) {
	thingID = strings.TrimSpace(thingID)
	if !strings.HasPrefix(thingID, "t1_") && !strings.HasPrefix(thingID, "t3_") {
		id, err := model.ParsePostID(thingID)
		if err != nil {
			return nil, E(ErrInvalidIdentity, "reply", err)
		}
		thingID = id.Fullname()
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("reply text is empty")
	}

	token, err := s.tokens.UserToken(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.source.PostComment(ctx, token, thingID, text)
	if err != nil {
		return nil, fmt.Errorf("replying to %s: %w", thingID, err)
	}
	if c == nil {
		return nil, E(ErrParse, "reply", fmt.Errorf("replying to %s: no comment returned", thingID))
	}
	s.logger.Info("reply posted", "parent", thingID, "comment", c.ID)
	return c, nil
}
