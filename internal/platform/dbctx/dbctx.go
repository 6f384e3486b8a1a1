package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns the transaction when set, otherwise base.
func (c Context) DB(base *gorm.DB) *gorm.DB {
	tx := c.Tx
	if tx == nil {
		tx = base
	}
	if c.Ctx != nil {
		return tx.WithContext(c.Ctx)
	}
	return tx
}

// WithTx returns a copy of c bound to tx.
func (c Context) WithTx(tx *gorm.DB) Context {
	return Context{Ctx: c.Ctx, Tx: tx}
}
