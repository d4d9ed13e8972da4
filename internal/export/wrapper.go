package export

import (
	"fmt"
	"strings"

	"taskware/internal/job"
)

// runScriptPath is where the crontab artifact expects the run wrapper to
// live once the external writer installs it. Cron executes commands through
// /bin/sh, so $HOME expands at run time.
func runScriptPath(j job.Job) string {
	return fmt.Sprintf("$HOME/.local/share/taskware/jobs/%s.sh", j.ID)
}

func statusPath(j job.Job) string {
	return fmt.Sprintf("$HOME/.local/share/taskware/logs/%s.status", j.ID)
}

// RunScript builds the wrapper that cron actually invokes: it applies the
// biweekly and one-time guards, runs the user command, and appends a
// "timestamp|exit" line to the job's status log.
func RunScript(j job.Job) string {
	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	b.WriteString("set -o pipefail\n\n")
	b.WriteString("ts=$(date -Is)\n")
	b.WriteString("now=$(date +%s)\n")
	if j.Schedule.Biweekly {
		b.WriteString(biweeklyGuard(j.BiweeklyAnchor))
	}
	if j.OneTimeAt != "" {
		b.WriteString(oneTimeGuard(j.OneTimeAt))
	}
	b.WriteString("\n# Run user command\n")
	fmt.Fprintf(&b, "eval %s\n", shellQuote(j.Command))
	b.WriteString("status=$?\n")
	fmt.Fprintf(&b, "echo \"$ts|$status\" >> \"%s\"\n", statusPath(j))
	if j.OneTimeAt != "" {
		b.WriteString(oneTimeCleanup(j))
	}
	b.WriteString("exit $status\n")
	return b.String()
}

// biweeklyGuard exits 0 on off weeks. Parity counts whole weeks elapsed since
// the anchor date, so the anchor's own week is an "on" week. GNU date is
// tried first, BSD date second.
func biweeklyGuard(anchor string) string {
	return fmt.Sprintf(`
# Biweekly gate: run only on even weeks counted from the anchor
ANCHOR=%q
anchor_epoch=$(date -d "$ANCHOR 00:00:00" +%%s 2>/dev/null || date -j -f "%%Y-%%m-%%d %%H:%%M:%%S" "$ANCHOR 00:00:00" +%%s 2>/dev/null)
if [ -n "$anchor_epoch" ]; then weeks=$(( (now - anchor_epoch) / 604800 )); else weeks=0; fi
if [ $((weeks %% 2)) -ne 0 ]; then exit 0; fi
`, anchor)
}

// oneTimeGuard exits 0 until the wall clock reaches the target instant.
func oneTimeGuard(target string) string {
	return fmt.Sprintf(`
# One-time gate: no-op until the target instant
TARGET=%q
target_epoch=$(date -d "$TARGET" +%%s 2>/dev/null || date -j -f "%%Y-%%m-%%dT%%H:%%M" "$TARGET" +%%s 2>/dev/null)
if [ -n "$target_epoch" ] && [ "$now" -lt "$target_epoch" ]; then exit 0; fi
`, target)
}

// oneTimeCleanup removes the job's crontab line and its files after the
// single run, so a one-time job does not keep firing daily.
func oneTimeCleanup(j job.Job) string {
	return fmt.Sprintf(`
# One-time cleanup: remove job from crontab and delete files
tmpfile=$(mktemp)
crontab -l | sed '/taskware:id=%s /d' > "$tmpfile" && crontab "$tmpfile" && rm -f "$tmpfile"
rm -f "%s" "%s"
`, j.ID, runScriptPath(j), statusPath(j))
}

// shellQuote single-quotes s for eval, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
