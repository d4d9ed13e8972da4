package export

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"taskware/internal/job"
)

// Salt renders a job as a Salt SLS state file. Plain schedules become a
// single cron.present state. Biweekly schedules become two states: a
// file.managed wrapper script that gates on week parity, and a weekly
// cron.present that invokes it (the cron fields are identical to the
// non-biweekly case; the wrapper is the only place the biweekly flag lives).
func Salt(j job.Job) ([]File, error) {
	slug := job.Slug(j.ID)
	slsID := "taskware_job_" + slug

	fields := strings.Fields(j.Schedule.Cron())
	if len(fields) != 5 {
		return nil, fmt.Errorf("job %s: schedule did not produce five cron fields", j.ID)
	}
	minute, hour, daymonth, month, dayweek := fields[0], fields[1], fields[2], fields[3], fields[4]

	doc := &yaml.Node{Kind: yaml.MappingNode}

	if j.Schedule.Biweekly {
		wrapperName := "/usr/local/bin/taskware-biweekly-" + slug
		wrapperID := slsID + "_wrapper_script"

		appendPair(doc, scalar(wrapperID), mapping(
			scalar("file.managed"), sequence(
				singlePair("name", scalar(wrapperName)),
				singlePair("mode", quoted("0755")),
				singlePair("user", scalar("root")),
				singlePair("group", scalar("root")),
				singlePair("contents", literal(gateScript(j))),
			),
		))
		appendPair(doc, scalar(slsID), mapping(
			scalar("cron.present"), sequence(
				singlePair("name", quoted(wrapperName)),
				singlePair("user", quoted(j.User)),
				singlePair("minute", quoted(minute)),
				singlePair("hour", quoted(hour)),
				singlePair("dayweek", quoted(dayweek)),
				singlePair("comment", quoted(saltComment("Taskware Biweekly", j))),
				singlePair("require", sequence(singlePair("file", scalar(wrapperID)))),
			),
		))
	} else {
		appendPair(doc, scalar(slsID), mapping(
			scalar("cron.present"), sequence(
				singlePair("name", quoted(j.Command)),
				singlePair("user", quoted(j.User)),
				singlePair("minute", quoted(minute)),
				singlePair("hour", quoted(hour)),
				singlePair("daymonth", quoted(daymonth)),
				singlePair("month", quoted(month)),
				singlePair("dayweek", quoted(dayweek)),
				singlePair("comment", quoted(saltComment("Taskware", j))),
			),
		))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return []File{{Name: "taskware_" + slug + ".sls", Mode: 0o644, Body: buf.String()}}, nil
}

// gateScript is the Salt-managed biweekly wrapper: exec the command on the
// anchor-parity week, exit quietly otherwise.
func gateScript(j job.Job) string {
	return fmt.Sprintf(`#!/usr/bin/env bash
# taskware biweekly gate for %s
ANCHOR=%q
now=$(date +%%s)
anchor_epoch=$(date -d "$ANCHOR 00:00:00" +%%s 2>/dev/null || date -j -f "%%Y-%%m-%%d %%H:%%M:%%S" "$ANCHOR 00:00:00" +%%s 2>/dev/null)
if [ -n "$anchor_epoch" ]; then weeks=$(( (now - anchor_epoch) / 604800 )); else weeks=0; fi
if [ $((weeks %% 2)) -eq 0 ]; then
  exec %s
fi
exit 0
`, j.ID, j.BiweeklyAnchor, j.Command)
}

func saltComment(prefix string, j job.Job) string {
	c := prefix + " " + j.ID
	if j.Description != "" {
		c += " - " + j.Description
	}
	return c
}

// ---- yaml.Node helpers (deterministic key order, unlike map marshaling) ----

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: v}
}

func literal(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.LiteralStyle, Value: v}
}

func mapping(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func singlePair(key string, value *yaml.Node) *yaml.Node {
	return mapping(scalar(key), value)
}

func appendPair(m *yaml.Node, key, value *yaml.Node) {
	m.Content = append(m.Content, key, value)
}
