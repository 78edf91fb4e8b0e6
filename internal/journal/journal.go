// internal/journal/journal.go
//
// Formrelay – Submission journal.
//
// Context
//   Operators want a record of what the contact page saw: how many attempts,
//   how many the endpoint rejected, and whether a spike is humans or bots.
//   Each attempt becomes one MySQL row with the outcome, a JSON snapshot of
//   the submitted fields, and light visitor diagnostics.  The journal is
//   strictly best-effort: a write failure is logged and the visitor flow
//   never notices.
//
// Schema
//   CREATE TABLE contact_submission (
//     id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     submitted_at DATETIME     NOT NULL,
//     outcome      VARCHAR(16)  NOT NULL,
//     data         JSON         NOT NULL,
//     remote_ip    VARCHAR(45)  NOT NULL DEFAULT '',
//     country_iso  CHAR(2)      NOT NULL DEFAULT '',
//     ua_label     VARCHAR(64)  NOT NULL DEFAULT '',
//     ua_bot       TINYINT(1)   NOT NULL DEFAULT 0
//   );
//
//------------------------------------------------------------------------------

package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/formrelay/internal/contact"
	"github.com/yanizio/formrelay/internal/requestinfo"
)

// Outcome labels for journal rows.
const (
	OutcomeAccepted = "accepted" // validated and acknowledged by the endpoint
	OutcomeRejected = "rejected" // failed field validation, never left the host
	OutcomeFailed   = "failed"   // validated but the relay attempt failed
)

const insertStmt = `
	INSERT INTO contact_submission
		(submitted_at, outcome, data, remote_ip, country_iso, ua_label, ua_bot)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// Journal writes submission rows.  A nil *Journal is a valid no-op, so
// callers never branch on whether persistence is configured.
type Journal struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// New returns a Journal over db.
func New(db *sqlx.DB, log *zap.SugaredLogger) *Journal {
	return &Journal{db: db, log: log}
}

// Record writes one row for a submission attempt.  Errors are logged, not
// returned; the journal must never interrupt the visitor flow.
func (j *Journal) Record(ctx context.Context, in contact.Input, outcome string, info requestinfo.Info) {
	if j == nil {
		return
	}

	data, err := json.Marshal(map[string]string{
		contact.FieldName:    in.Name,
		contact.FieldCompany: in.Company,
		contact.FieldEmail:   in.Email,
		contact.FieldPhone:   in.Phone,
		contact.FieldMessage: in.Message,
	})
	if err != nil {
		j.log.Errorw("journal marshal failed", "error", err)
		return
	}

	_, err = j.db.ExecContext(ctx, insertStmt,
		time.Now().UTC(),
		outcome,
		data,
		info.RemoteIP,
		info.CountryISO,
		info.UA.DeviceLabel(),
		info.UA.IsBot,
	)
	if err != nil {
		j.log.Errorw("journal insert failed", "outcome", outcome, "error", err)
	}
}
