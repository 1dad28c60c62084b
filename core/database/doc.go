// Package database opens the optional run history database with GORM.
//
// MySQL is the production driver; sqlite serves local runs and tests. The
// connection is verified with a ping bounded by Config.TimeoutSeconds.
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Run history disabled", zap.Error(err))
//	}
package database
