package envconf

type DBConf struct {
	SQLLite     bool   `env:"SQL_LITE,default=false"`
	SQLLitePath string `env:"SQL_LITE_PATH,default=./monitor.db"`
	PostgresURL string `env:"DATABASE_URL"`
}

type SMTPConf struct {
	Host     string `env:"EMAIL_HOST,default=smtp.gmail.com"`
	Port     int    `env:"EMAIL_PORT,default=587"`
	Username string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
}

type PushConf struct {
	GatewayURL string `env:"PUSH_GATEWAY_URL,default=http://localhost:8000"`
}

// SchedulerConf holds the tick intervals for the four periodic jobs along
// with the thresholds the escalation sweeps apply.
type SchedulerConf struct {
	RuleIntervalSeconds         int `env:"RULE_INTERVAL_SECONDS,default=30"`
	NotificationIntervalSeconds int `env:"NOTIFICATION_INTERVAL_SECONDS,default=15"`
	EscalationIntervalMinutes   int `env:"ESCALATION_INTERVAL_MINUTES,default=5"`
	ShiftAckIntervalMinutes     int `env:"SHIFT_ACK_INTERVAL_MINUTES,default=5"`

	EscalationSLAMinutes     int `env:"ESCALATION_SLA_MINUTES,default=120"`
	EscalatedPriority        int `env:"ESCALATED_PRIORITY,default=1"`
	ShiftAckLookaheadMinutes int `env:"SHIFT_ACK_LOOKAHEAD_MINUTES,default=5"`
}

type EnvDecoderConf struct {
	Debug      bool `env:"DEBUG,default=true"`
	ServerPort uint `env:"SERVER_PORT,default=10001"`

	// DefaultAdminEmail is the address of last resort: the synthetic
	// on-call recipient when no shift or admin matches, and the target
	// of stale-incident escalation notices.
	DefaultAdminEmail string `env:"DEFAULT_ADMIN_EMAIL,default=admin@example.com"`

	DBConf        DBConf
	SMTPConf      SMTPConf
	PushConf      PushConf
	SchedulerConf SchedulerConf
}
