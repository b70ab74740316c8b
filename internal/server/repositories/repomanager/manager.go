package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/worklog/internal/dbx"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/activities"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/logs"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/worklog/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can use the
// same repositories inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Logs(db dbx.DBTX) logs.Repository
	Activities(db dbx.DBTX) activities.Repository
}
