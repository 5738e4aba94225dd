package notifications

type JobKind string

const (
	JobKindRestoreEBS JobKind = "EBS restore"
	JobKindRestoreEC2 JobKind = "EC2 restore"
	JobKindCopy       JobKind = "Copy"
)

// JobEvent records a job this tool asked AWS Backup to start.
type JobEvent struct {
	Kind             JobKind
	JobID            string
	Vault            string
	Region           string
	RecoveryPointARN string
	SizeBytes        int64
}
