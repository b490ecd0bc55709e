// Package store wraps the tenant-scoped persistence collaborator. Every
// query carries an equality condition on tenant_id via tenant.Scoped and
// every method takes the request context, so cancelled or superseded
// requests abort their database work.
package store

import (
	"errors"

	"github.com/mikekiroz/maikitto-saas/internal/apperr"
	"gorm.io/gorm"
)

// wrapDB translates a gorm error into the typed taxonomy: missing rows
// become NotFound, everything else surfaces verbatim as Upstream.
func wrapDB(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.KindNotFound, msg, err)
	}
	return apperr.Wrap(apperr.KindUpstream, msg, err)
}
