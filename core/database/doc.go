// Package database opens the optional GORM connection used by the sync
// history journal.
//
// # Drivers
//
// Two drivers are supported. "sqlite" (the default) keeps the journal in a
// local file named by Config.Name. "mysql" connects to a server and applies
// connection pool limits suited to a shared database.
//
// The database is off unless Config.Enabled is set. Connect returns
// ErrDisabled in that case so callers can run without a journal.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History journal unavailable", zap.Error(err))
//	}
package database
