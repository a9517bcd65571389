package auditlog

import (
	"context"
	"encoding/json"

	"github.com/jsocialogs/socialshop/internal/adapter/storage"
	"go.uber.org/zap"
)

// DBAuditLog appends business events to the audit_log table. It is strictly
// fire-and-forget: a failed insert is logged and swallowed so it can never
// abort the operation being recorded.
type DBAuditLog struct {
	db     *storage.DB
	logger *zap.Logger
}

func New(db *storage.DB, logger *zap.Logger) (*DBAuditLog, error) {
	return &DBAuditLog{db: db, logger: logger}, nil
}

func (a *DBAuditLog) Record(ctx context.Context, severity string, message string,
	logContext map[string]any) {
	var payload []byte
	if logContext != nil {
		var err error
		payload, err = json.Marshal(logContext)
		if err != nil {
			a.logger.Warn("audit context marshal failed", zap.Error(err))
			payload = nil
		}
	}

	sql, args, err := a.db.QueryBuilder.
		Insert("audit_log").
		Columns("severity", "message", "context").
		Values(severity, message, payload).
		ToSql()
	if err != nil {
		a.logger.Warn("audit insert build failed", zap.Error(err))
		return
	}

	if _, err := a.db.Exec(ctx, sql, args...); err != nil {
		a.logger.Warn("audit insert failed", zap.String("message", message), zap.Error(err))
	}
}
