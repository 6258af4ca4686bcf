package cmd

import "github.com/jackc/pgx/v5/pgxpool"

// poolCloser lets callers defer Close on a zero value.
type poolCloser struct {
	*pgxpool.Pool
}

func (p poolCloser) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
