package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/joeshaw/envdecode"

	"github.com/oncall-dev/monitor-agent/api/server/config"
	healthcheckHandlers "github.com/oncall-dev/monitor-agent/api/server/handlers/healthcheck"
	incidentHandlers "github.com/oncall-dev/monitor-agent/api/server/handlers/incident"
	statusHandlers "github.com/oncall-dev/monitor-agent/api/server/handlers/status"
	"github.com/oncall-dev/monitor-agent/internal/adapter"
	"github.com/oncall-dev/monitor-agent/internal/envconf"
	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"github.com/oncall-dev/monitor-agent/pkg/dispatcher"
	"github.com/oncall-dev/monitor-agent/pkg/escalation"
	"github.com/oncall-dev/monitor-agent/pkg/evaluator"
	"github.com/oncall-dev/monitor-agent/pkg/incident"
	"github.com/oncall-dev/monitor-agent/pkg/mailer"
	"github.com/oncall-dev/monitor-agent/pkg/oncall"
	"github.com/oncall-dev/monitor-agent/pkg/pulsar"
	"github.com/oncall-dev/monitor-agent/pkg/pushclient"
)

func main() {
	var envDecoderConf envconf.EnvDecoderConf = envconf.EnvDecoderConf{}

	if err := envdecode.StrictDecode(&envDecoderConf); err != nil {
		logger.NewErrorConsole(true).Fatal().Caller().Msgf("could not decode env conf: %v", err)

		os.Exit(1)
	}

	l := logger.NewConsole(envDecoderConf.Debug)

	// create database connection through adapter
	db, err := adapter.New(&envDecoderConf.DBConf)

	if err != nil {
		l.Fatal().Caller().Msgf("could not create database connection: %v", err)
	}

	if err := repository.AutoMigrate(db, false); err != nil {
		l.Fatal().Caller().Msgf("auto migration failed: %v", err)
	}

	repo := repository.NewRepository(db)

	push := pushclient.NewClient(envDecoderConf.PushConf.GatewayURL)

	smtpSender := mailer.NewSMTPSender(
		envDecoderConf.SMTPConf.Host,
		envDecoderConf.SMTPConf.Port,
		envDecoderConf.SMTPConf.Username,
		envDecoderConf.SMTPConf.Password,
	)

	resolver := &oncall.Resolver{
		DefaultAdminEmail: envDecoderConf.DefaultAdminEmail,
		Logger:            l,
	}

	incidents := &incident.Manager{
		Resolver: resolver,
		Push:     push,
		Mailer:   smtpSender,
		Logger:   l,
	}

	sched := envDecoderConf.SchedulerConf

	ruleEvaluator := &evaluator.Evaluator{
		DB:         db,
		Repository: repo,
		Incidents:  incidents,
		Logger:     l,
	}

	staleSweeper := &escalation.StaleIncidentSweeper{
		DB:                db,
		AdminEmail:        envDecoderConf.DefaultAdminEmail,
		SLA:               time.Duration(sched.EscalationSLAMinutes) * time.Minute,
		EscalatedPriority: sched.EscalatedPriority,
		Logger:            l,
	}

	ackSweeper := &escalation.ShiftAckSweeper{
		DB:        db,
		Push:      push,
		Lookahead: time.Duration(sched.ShiftAckLookaheadMinutes) * time.Minute,
		Logger:    l,
	}

	queueDispatcher := &dispatcher.Dispatcher{
		DB:     db,
		Mailer: smtpSender,
		Push:   push,
		Logger: l,
	}

	runOnPulse(l, "rule evaluation", ruleEvaluator.Run, pulsar.NewPulsar(sched.RuleIntervalSeconds, time.Second))
	runOnPulse(l, "notification drain", queueDispatcher.Run, pulsar.NewPulsar(sched.NotificationIntervalSeconds, time.Second))
	runOnPulse(l, "stale incident escalation", staleSweeper.Run, pulsar.NewPulsar(sched.EscalationIntervalMinutes, time.Minute))
	runOnPulse(l, "shift ack check", ackSweeper.Run, pulsar.NewPulsar(sched.ShiftAckIntervalMinutes, time.Minute))

	conf, err := config.GetConfig(&envDecoderConf, repo)

	if err != nil {
		l.Fatal().Caller().Msgf("server config loading failed: %v", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Method("GET", "/livez", healthcheckHandlers.NewLivezHandler(conf))
	r.Method("GET", "/readyz", healthcheckHandlers.NewReadyzHandler(conf))

	r.Method("GET", "/status", statusHandlers.NewGetStatusHandler(conf))

	r.Method("GET", "/incidents", incidentHandlers.NewListIncidentsHandler(conf))
	r.Method("GET", "/incidents/events", incidentHandlers.NewListIncidentEventsHandler(conf))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", envDecoderConf.ServerPort), r); err != nil {
		l.Error().Caller().Msgf("error starting API server: %v", err)
	}
}

// runOnPulse drives a job off its own pulsar. Each run completes before
// the next pulse is consumed, so a job never overlaps itself.
func runOnPulse(l *logger.Logger, name string, run func() error, p *pulsar.Pulsar) {
	go func() {
		for range p.Pulsate() {
			if err := run(); err != nil {
				l.Error().Caller().Msgf("%s exited with error: %v", name, err)
			}
		}
	}()
}
