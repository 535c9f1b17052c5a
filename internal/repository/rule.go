package repository

import (
	"database/sql"

	"github.com/oncall-dev/monitor-agent/internal/models"
	"gorm.io/gorm"
)

type RuleRepository struct {
	db *gorm.DB
}

// NewRuleRepository returns pointer to repo along with the db
func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db}
}

func (r *RuleRepository) ListActiveRules() ([]*models.Rule, error) {
	rules := make([]*models.Rule, 0)

	if err := r.db.Where("active = ?", true).Order("id asc").Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

// RunHealthQuery executes a rule's stored health-check SQL and returns the
// first column of the first row as the measured value. No rows, or a NULL
// value, count as zero.
func (r *RuleRepository) RunHealthQuery(query string) (int64, error) {
	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, rows.Err()
	}

	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	var value sql.NullInt64

	dest := make([]interface{}, len(columns))
	dest[0] = &value

	for i := 1; i < len(dest); i++ {
		dest[i] = new(sql.RawBytes)
	}

	if err := rows.Scan(dest...); err != nil {
		return 0, err
	}

	if !value.Valid {
		return 0, nil
	}

	return value.Int64, nil
}
