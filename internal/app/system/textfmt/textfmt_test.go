package textfmt

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"John Doe", "JD"},
		{"Madonna", "M"},
		{"  ", ""},
		{"", ""},
		{"ada  lovelace king", "ALK"},
		{"élodie martin", "ÉM"},
	}
	for _, tt := range tests {
		if got := Initials(tt.in); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStageLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"new", "New"},
		{"in-progress", "In progress"},
		{"follow-up", "Follow up"},
		{"closed", "Closed"},
		{"a-b-c", "A b-c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StageLabel(tt.in); got != tt.want {
			t.Errorf("StageLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel("follow-up-sent"); got != "Follow up sent" {
		t.Errorf("StatusLabel = %q", got)
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"in-progress", "In Progress"},
		{"new", "New"},
		{"follow-up", "Follow Up"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleWords(tt.in); got != tt.want {
			t.Errorf("TitleWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOneDecimal(t *testing.T) {
	if got := OneDecimal(12.345); got != "12.3" {
		t.Errorf("OneDecimal = %q", got)
	}
	if got := OneDecimal(0); got != "0.0" {
		t.Errorf("OneDecimal(0) = %q", got)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "0 minutes ago"},
		{0, "0 minutes ago"},
		{90 * time.Second, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{90 * time.Minute, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{30 * time.Hour, "1 day ago"},
		{20 * 24 * time.Hour, "20 days ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestTimeAgoString(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	if got := TimeAgoString("2026-10-14T09:00:00.000Z", now); got != "3 hours ago" {
		t.Errorf("TimeAgoString = %q", got)
	}
	if got := TimeAgoString("not a date", now); got != "" {
		t.Errorf("TimeAgoString(bad) = %q", got)
	}
}

func TestDayLabel(t *testing.T) {
	if got := DayLabel("2026-10-08"); got != "08 Oct" {
		t.Errorf("DayLabel = %q", got)
	}
	if got := DayLabel("2026-10-08T00:00:00Z"); got != "08 Oct" {
		t.Errorf("DayLabel(ts) = %q", got)
	}
	if got := DayLabel("someday"); got != "someday" {
		t.Errorf("DayLabel(bad) = %q", got)
	}
}

func TestHighlight(t *testing.T) {
	got := Highlight(`New lead "Acme Corp" assigned to "Jane"`)
	want := []Segment{
		{Text: "New lead "},
		{Text: "Acme Corp", Emphasized: true},
		{Text: " assigned to "},
		{Text: "Jane", Emphasized: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v", got)
	}
}

func TestHighlight_NoQuotes(t *testing.T) {
	got := Highlight("Campaign sent")
	want := []Segment{{Text: "Campaign sent"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v", got)
	}
}

func TestHighlight_StripsMarkup(t *testing.T) {
	got := Highlight(`Lead "<img src=x onerror=alert(1)>Bob" & co <script>alert(1)</script>deleted`)
	for _, s := range got {
		for _, bad := range []string{"<", ">", "script", "onerror"} {
			if strings.Contains(s.Text, bad) {
				t.Fatalf("segment %q still contains %q", s.Text, bad)
			}
		}
	}
	if len(got) < 2 || !got[1].Emphasized || got[1].Text != "Bob" {
		t.Fatalf("Highlight = %#v", got)
	}
	if !strings.Contains(got[2].Text, "& co") {
		t.Errorf("entities should be unescaped, got %q", got[2].Text)
	}
}

func TestHighlight_KeepsBracketedNames(t *testing.T) {
	got := Highlight(`Lead "<Acme>" moved by <b>Jo</b>`)
	want := []Segment{
		{Text: "Lead "},
		{Text: "<Acme>", Emphasized: true},
		{Text: " moved by Jo"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlight = %#v", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"<script>alert(1)</script>ok", "ok"},
		{"a <Widget-X> b", "a <Widget-X> b"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHighlight_Empty(t *testing.T) {
	if got := Highlight(""); len(got) != 0 {
		t.Fatalf("Highlight(\"\") = %#v", got)
	}
}
