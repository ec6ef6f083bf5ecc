package mongodb

const (
	CollectionBills     = "gym_bills"
	CollectionCounters  = "counters"
	CollectionFollowups = "followups"
	CollectionOutbox    = "outbox"
	CollectionAuditLogs = "audit_logs"
)
