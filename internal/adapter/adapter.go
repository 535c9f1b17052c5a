package adapter

import (
	"github.com/oncall-dev/monitor-agent/internal/envconf"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a gorm database instance based on the environment
// configuration: sqlite when SQL_LITE is set (used by tests and local
// development), postgres via DATABASE_URL otherwise.
func New(conf *envconf.DBConf) (*gorm.DB, error) {
	if conf.SQLLite {
		return gorm.Open(sqlite.Open(conf.SQLLitePath), &gorm.Config{})
	}

	return gorm.Open(postgres.Open(conf.PostgresURL), &gorm.Config{})
}
