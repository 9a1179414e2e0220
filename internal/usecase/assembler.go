package usecase

import (
	"fmt"
	"strings"
	"time"

	"CommentsAnalyzer/internal/domain"
)

// AssembleRecord attaches the category to the article and packages it with
// its classified comments. Comments keep their parsed order.
func AssembleRecord(meta domain.ArticleMetadata, category domain.Category, comments []domain.Comment, createdAt time.Time) (domain.NewsRecord, error) {
	if strings.TrimSpace(meta.ID) == "" {
		return domain.NewsRecord{}, fmt.Errorf("assemble record: article id is empty")
	}

	for i, c := range comments {
		if strings.TrimSpace(c.Content) == "" {
			return domain.NewsRecord{}, fmt.Errorf("assemble record: comment %d has no content", i)
		}
		if !c.Sentiment.Valid() {
			return domain.NewsRecord{}, fmt.Errorf("assemble record: comment %d has sentiment %q", i, c.Sentiment)
		}
	}

	meta.Category = category
	out := make([]domain.Comment, len(comments))
	copy(out, comments)

	return domain.NewsRecord{
		Article:   meta,
		Comments:  out,
		CreatedAt: createdAt.UTC(),
	}, nil
}
