package redis

import (
	"context"
	"strconv"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/db"
)

// StreamAdd appends an entry to a capped stream via XADD MAXLEN ~.
func (s *Store) StreamAdd(ctx context.Context, stream string, maxLen int64, fields map[string]string) error {
	cmd := s.b().Xadd().Key(stream).Maxlen().Almost().
		Threshold(strconv.FormatInt(maxLen, 10)).Id("*").FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpXAdd, Err: err}
	}
	return nil
}
