// Package database handles the optional results database.
//
// It wraps GORM to open a MySQL or SQLite connection from the application's
// configuration and offers schema inspection used by the table sink to add
// columns that a comparison produces but the target table lacks.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Results database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "city_comparison")
package database
