package helpers

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

func IsUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), "(SQLSTATE "+code+")")
}

// DecodeBase64 accepts raw base64 as well as a data url ("data:image/png;base64,....").
func DecodeBase64(value string) ([]byte, error) {
	if idx := strings.Index(value, ";base64,"); idx >= 0 && strings.HasPrefix(value, "data:") {
		value = value[idx+len(";base64,"):]
	}
	value = strings.TrimSpace(value)
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(value)
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 content")
	}
	return data, nil
}

func IsEmail(value string) bool {
	return emailRe.MatchString(value)
}

func Ptr[T any](v T) *T {
	return &v
}
