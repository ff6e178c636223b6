package services

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/pkg/errors"
)

// MaxHashtagLength matches the hashtags.name column
const MaxHashtagLength = 100

var (
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)
)

// ExtractHashtags returns the lowercased hashtags of content in order of first
// appearance without duplicates. Tags too long to store are dropped.
func ExtractHashtags(content string) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, m := range hashtagPattern.FindAllStringSubmatch(content, -1) {
		tag := strings.ToLower(m[1])
		if seen[tag] || utf8.RuneCountInString(tag) > MaxHashtagLength {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// ExtractMentions returns the @usernames of content, case preserved, in order
// of first appearance without duplicates.
func ExtractMentions(content string) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

// NormalizeHashtag turns client input such as "#GoLang" into the stored form
func NormalizeHashtag(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
}

// applyExtraction derives the hashtag and tagged-user sets of a post from its
// content and replaces whatever the post was associated with before. Mentions
// of unknown users are ignored. Callers run it inside the transaction that
// wrote the post.
func applyExtraction(ctx context.Context, tx repositories.Store, postID uint, content string) error {
	names := ExtractHashtags(content)
	hashtags := make([]models.Hashtag, 0, len(names))
	for _, name := range names {
		h, err := tx.Hashtags().GetOrCreateHashtag(ctx, name)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve hashtag %q", name)
		}
		hashtags = append(hashtags, *h)
	}
	if err := tx.Posts().ReplaceHashtags(ctx, postID, hashtags); err != nil {
		return errors.Wrap(err, "failed to link hashtags")
	}

	tagged, err := tx.Users().GetUsersByUsernames(ctx, ExtractMentions(content))
	if err != nil {
		return errors.Wrap(err, "failed to resolve mentions")
	}
	if err := tx.Posts().ReplaceTaggedUsers(ctx, postID, tagged); err != nil {
		return errors.Wrap(err, "failed to link tagged users")
	}
	return nil
}
