package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// notFound swaps gorm's record-not-found for the caller's domain error.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

func page(q *gorm.DB, offset, limit int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

// likeEscaper makes user input match literally inside LIKE ... ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string { return "%" + likeEscaper.Replace(s) + "%" }
