package backup_vault

// VaultActions are authorized against the backup-vault resource.
var VaultActions = []string{
	"backup:ListRecoveryPointsByBackupVault",
}

// RecoveryPointActions are authorized against recovery points or restore
// jobs, never the vault ARN.
var RecoveryPointActions = []string{
	"backup:DescribeRecoveryPoint",
	"backup:StartCopyJob",
	"backup:StartRestoreJob",
	"backup:DescribeRestoreJob",
}
