package evaluator

import (
	"time"

	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"github.com/oncall-dev/monitor-agent/pkg/incident"
	"gorm.io/gorm"
)

// HeartbeatService names the singleton heartbeat row this agent owns.
const HeartbeatService = "monitor-agent"

// Evaluator runs one monitoring cycle per pulse: refresh the heartbeat,
// list active rules and evaluate each in its own transaction so a broken
// health-check query never takes down the rest of the cycle.
type Evaluator struct {
	DB         *gorm.DB
	Repository *repository.Repository
	Incidents  *incident.Manager
	Logger     *logger.Logger
}

func (e *Evaluator) Run() error {
	e.Logger.Info().Caller().Msgf("starting monitoring cycle")

	if err := e.Repository.SystemStatus.UpsertHeartbeat(HeartbeatService, time.Now()); err != nil {
		e.Logger.Error().Caller().Msgf("heartbeat refresh failed: %v", err)
	}

	rules, err := e.Repository.Rule.ListActiveRules()

	if err != nil {
		return err
	}

	for _, rule := range rules {
		if rule.MutedUntil != nil && rule.MutedUntil.UTC().After(time.Now().UTC()) {
			e.Logger.Info().Caller().Msgf("rule %q muted until %s, skipping", rule.Name, rule.MutedUntil)
			continue
		}

		e.evaluateRule(rule)
	}

	return nil
}

// evaluateRule runs a single rule's query and, on breach, reports it -
// all inside one transaction. Exactly one execution record is written
// afterwards in its own scope, whatever happened.
func (e *Evaluator) evaluateRule(rule *models.Rule) {
	e.Logger.Info().Caller().Msgf("executing rule: %s", rule.Name)

	startedAt := time.Now()

	var value int64

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewRepository(tx)

		measured, err := repo.Rule.RunHealthQuery(rule.Query)

		if err != nil {
			return err
		}

		value = measured

		if measured >= rule.Threshold {
			return e.Incidents.ReportBreach(repo, rule, measured)
		}

		return nil
	})

	finishedAt := time.Now()

	execution := &models.RuleExecution{
		RuleID:     rule.ID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Success:    err == nil,
		Value:      value,
	}

	if err != nil {
		e.Logger.Error().Caller().Msgf("rule %q failed: %v", rule.Name, err)
		execution.ErrorMessage = err.Error()
	}

	if _, logErr := e.Repository.RuleExecution.CreateRuleExecution(execution); logErr != nil {
		e.Logger.Error().Caller().Msgf("could not record execution of rule %q: %v", rule.Name, logErr)
	}
}
