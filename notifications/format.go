package notifications

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

func FormatJobMessage(events []JobEvent) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("AWS Backup Job Summary (%d jobs started)\n\n", len(events)))

	eventsByVault := make(map[string][]JobEvent)
	var vaults []string
	for _, event := range events {
		if _, ok := eventsByVault[event.Vault]; !ok {
			vaults = append(vaults, event.Vault)
		}
		eventsByVault[event.Vault] = append(eventsByVault[event.Vault], event)
	}
	sort.Strings(vaults)

	for _, vault := range vaults {
		builder.WriteString(fmt.Sprintf("Vault: %s\n", vault))
		builder.WriteString("----------------------------------------\n")

		for _, event := range eventsByVault[vault] {
			builder.WriteString(fmt.Sprintf("Job: %s (%s)\n", event.JobID, event.Kind))
			builder.WriteString(fmt.Sprintf("Region: %s\n", event.Region))
			builder.WriteString(fmt.Sprintf("Recovery Point: %s\n", event.RecoveryPointARN))
			if event.SizeBytes > 0 {
				builder.WriteString(fmt.Sprintf("Backup Size: %s\n", humanize.IBytes(uint64(event.SizeBytes))))
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
