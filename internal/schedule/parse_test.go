package schedule

import (
	"testing"
	"time"
)

func TestParseFamilies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want Schedule
	}{
		{
			name: "every minute",
			in:   "every minute",
			want: Schedule{Kind: KindEveryMinute},
		},
		{
			name: "every n minutes",
			in:   "every 15 minutes",
			want: Schedule{Kind: KindEveryNMinutes, Every: 15},
		},
		{
			name: "every n minutes with window",
			in:   "every 15 minutes between 9a and 5p",
			want: Schedule{
				Kind: KindEveryNMinutes, Every: 15,
				Window: &TimeWindow{Start: TimeOfDay{Hour: 9}, End: TimeOfDay{Hour: 17}},
			},
		},
		{
			name: "window before frequency",
			in:   "between 9a and 5p every 15 minutes",
			want: Schedule{
				Kind: KindEveryNMinutes, Every: 15,
				Window: &TimeWindow{Start: TimeOfDay{Hour: 9}, End: TimeOfDay{Hour: 17}},
			},
		},
		{
			name: "hourly",
			in:   "every hour",
			want: Schedule{Kind: KindHourly},
		},
		{
			name: "hourly at minute",
			in:   "hourly at :30",
			want: Schedule{Kind: KindHourly, Minute: 30},
		},
		{
			name: "daily",
			in:   "every day at 9 am",
			want: Schedule{Kind: KindDaily, At: TimeOfDay{Hour: 9}},
		},
		{
			name: "daily 24h",
			in:   "daily at 02:30",
			want: Schedule{Kind: KindDaily, At: TimeOfDay{Hour: 2, Minute: 30}},
		},
		{
			name: "daily time first",
			in:   "at noon every day",
			want: Schedule{Kind: KindDaily, At: TimeOfDay{Hour: 12}},
		},
		{
			name: "weekly",
			in:   "every monday at 6 pm",
			want: Schedule{Kind: KindWeekly, At: TimeOfDay{Hour: 18}, Days: days(time.Monday)},
		},
		{
			name: "weekly list time first",
			in:   "at 5p every monday, wednesday and thursday",
			want: Schedule{Kind: KindWeekly, At: TimeOfDay{Hour: 17}, Days: days(time.Monday, time.Wednesday, time.Thursday)},
		},
		{
			name: "weekly list time last",
			in:   "every monday, wednesday and thursday at 5p",
			want: Schedule{Kind: KindWeekly, At: TimeOfDay{Hour: 17}, Days: days(time.Monday, time.Wednesday, time.Thursday)},
		},
		{
			name: "weekly on",
			in:   "weekly on sunday at 07:00",
			want: Schedule{Kind: KindWeekly, At: TimeOfDay{Hour: 7}, Days: days(time.Sunday)},
		},
		{
			name: "biweekly",
			in:   "every other tuesday at noon",
			want: Schedule{Kind: KindWeekly, At: TimeOfDay{Hour: 12}, Days: days(time.Tuesday), Biweekly: true},
		},
		{
			name: "mixed case and spacing",
			in:   "  Every   Other  Tuesday AT Noon ",
			want: Schedule{Kind: KindWeekly, At: TimeOfDay{Hour: 12}, Days: days(time.Tuesday), Biweekly: true},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !got.Equal(tt.want) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseUnparsed(t *testing.T) {
	t.Parallel()
	for _, in := range []string{
		"every blorpday at noon",      // bad weekday must not become an empty weekly
		"every 75 minutes",            // interval out of range, not clamped
		"every monday",                // weekly without a time
		"launch the missiles",         // no family at all
		"every 15 minutes between 5p and 9a", // window end before start
		"",
	} {
		got := Parse(in)
		if got.Kind != KindUnparsed {
			t.Errorf("Parse(%q).Kind = %v, want KindUnparsed", in, got.Kind)
			continue
		}
		if got.Raw != in {
			t.Errorf("Parse(%q).Raw = %q, want original text", in, got.Raw)
		}
	}
}

func TestParseWindowRetainedOnDaily(t *testing.T) {
	t.Parallel()
	// The window is kept as data on non-interval frequencies even though the
	// cron generator will not serialize it for them.
	got := Parse("every day at 9a between 8a and 6p")
	want := Schedule{
		Kind: KindDaily, At: TimeOfDay{Hour: 9},
		Window: &TimeWindow{Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 18}},
	}
	if !got.Equal(want) {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
	if got.Cron() != "0 9 * * *" {
		t.Fatalf("Cron = %q, want window omitted for daily", got.Cron())
	}
}
