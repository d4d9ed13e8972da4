// Package export turns jobs into scheduler-native persisted artifacts: Salt
// SLS states (cron.present), crontab lines with taskware markers, run wrapper
// scripts, and systemd timer/service unit texts.
//
// Generators return artifact data only. Writing files and installing anything
// into a live scheduler is the caller's business; nothing here touches a
// crontab or talks to systemd.
package export
