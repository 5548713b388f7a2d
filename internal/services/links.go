package services

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/logging"
	"github.com/dmitrijs2005/savelinks/internal/models"
	"github.com/dmitrijs2005/savelinks/internal/repositories/links"
)

// LinkService manages the encrypted links of an authenticated user.
type LinkService interface {
	Add(ctx context.Context, userID int64, key []byte, topic, link string) error
	// Search returns the user's links whose topic contains query, ignoring
	// case, in storage order. Records that cannot be decrypted are skipped.
	Search(ctx context.Context, userID int64, key []byte, query string) ([]models.LinkView, error)
	// Delete removes the record if userID owns it. Deleting a missing or
	// foreign record succeeds without effect.
	Delete(ctx context.Context, userID, recordID int64) error
}

type linkService struct {
	links   links.Repository
	sec     SecurityCore
	workers int
	log     logging.Logger
}

// NewLinkService returns a LinkService that decrypts search candidates with
// at most workers goroutines.
func NewLinkService(repo links.Repository, sec SecurityCore, workers int, log logging.Logger) LinkService {
	if workers < 1 {
		workers = 1
	}
	return &linkService{links: repo, sec: sec, workers: workers, log: log.With("service", "links")}
}

var noSeparator = validation.By(func(v any) error {
	if s, _ := v.(string); strings.Contains(s, recordSeparator) {
		return errors.New("must not contain '" + recordSeparator + "'")
	}
	return nil
})

func (s *linkService) Add(ctx context.Context, userID int64, key []byte, topic, link string) error {
	err := validation.Errors{
		"topic": validation.Validate(strings.TrimSpace(topic), validation.Required, noSeparator),
		"link":  validation.Validate(strings.TrimSpace(link), validation.Required),
	}.Filter()
	if err != nil {
		return common.NewValidationError(err.Error())
	}

	token, err := s.sec.Encrypt(encodeRecord(topic, link), key)
	if err != nil {
		s.log.Error(ctx, "failed to encrypt link", "user_id", userID, "error", err)
		return common.NewDomainError("could not save link")
	}

	id, err := s.links.Insert(ctx, userID, token)
	if err != nil {
		s.log.Error(ctx, "failed to store link", "user_id", userID, "error", err)
		return common.NewDomainError("could not save link")
	}

	s.log.Debug(ctx, "link saved", "user_id", userID, "record_id", id)
	return nil
}

func (s *linkService) Search(ctx context.Context, userID int64, key []byte, query string) ([]models.LinkView, error) {
	records, err := s.links.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "failed to list links", "user_id", userID, "error", err)
		return nil, common.NewDomainError("search failed")
	}

	query = strings.ToLower(query)
	matches := make([]*models.LinkView, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = s.open(gctx, rec, key, query)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "search interrupted", "user_id", userID, "error", err)
		return nil, common.NewDomainError("search failed")
	}

	result := make([]models.LinkView, 0, len(records))
	for _, m := range matches {
		if m != nil {
			result = append(result, *m)
		}
	}
	return result, nil
}

// open decrypts rec and returns its view if the topic matches query, or nil.
func (s *linkService) open(ctx context.Context, rec models.Link, key []byte, query string) *models.LinkView {
	plaintext, err := s.sec.Decrypt(rec.Data, key)
	if err != nil {
		s.log.Warn(ctx, "skipping record that failed to decrypt", "record_id", rec.ID, "error", err)
		return nil
	}

	topic, link, err := decodeRecord(plaintext)
	common.WipeByteArray(plaintext)
	if err != nil {
		s.log.Warn(ctx, "skipping malformed record", "record_id", rec.ID, "error", err)
		return nil
	}

	if !strings.Contains(strings.ToLower(topic), query) {
		return nil
	}
	return &models.LinkView{ID: rec.ID, Topic: topic, Link: link}
}

func (s *linkService) Delete(ctx context.Context, userID, recordID int64) error {
	n, err := s.links.Delete(ctx, recordID, userID)
	if err != nil {
		s.log.Error(ctx, "failed to delete link", "user_id", userID, "record_id", recordID, "error", err)
		return common.NewDomainError("could not delete link")
	}
	if n == 0 {
		s.log.Debug(ctx, "nothing to delete", "user_id", userID, "record_id", recordID)
	}
	return nil
}
