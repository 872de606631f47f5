package subtitle

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestParse_SingleCue(t *testing.T) {
	raw := "00:00:01.500 --> 00:00:03.000\nHello <i>world</i>\n\n"

	got := Parse(raw)

	want := []Cue{{StartMinute: 0, StartSecond: 1, StartCentisecond: 50, Text: "Hello world"}}
	if !reflect.DeepEqual(got.Cues, want) {
		t.Errorf("Parse() = %+v, want %+v", got.Cues, want)
	}
}

func TestParse_HourFoldsIntoMinute(t *testing.T) {
	got := Parse("01:05:10.250 --> 01:05:12.000\nLate line\n")

	if got.Len() != 1 {
		t.Fatalf("expected 1 cue, got %d", got.Len())
	}
	c := got.Cues[0]
	if c.StartMinute != 65 || c.StartSecond != 10 || c.StartCentisecond != 25 {
		t.Errorf("cue start = %d:%d.%d, want 65:10.25", c.StartMinute, c.StartSecond, c.StartCentisecond)
	}
}

func TestParse_TimestampFields(t *testing.T) {
	for h := 0; h < 3; h++ {
		for _, m := range []int{0, 7, 59} {
			for _, s := range []int{0, 31, 59} {
				for _, ms := range []int{0, 9, 10, 499, 999} {
					line := fmt.Sprintf("%02d:%02d:%02d.%03d --> 09:00:00.000\nx\n", h, m, s, ms)
					got := Parse(line)
					if got.Len() != 1 {
						t.Fatalf("%q: expected 1 cue, got %d", line, got.Len())
					}
					c := got.Cues[0]
					if c.StartMinute != uint(h*60+m) || c.StartSecond != uint(s) || c.StartCentisecond != uint(ms/10) {
						t.Errorf("%q: got %d:%d.%d", line, c.StartMinute, c.StartSecond, c.StartCentisecond)
					}
				}
			}
		}
	}
}

func TestParse_FractionWidths(t *testing.T) {
	tests := []struct {
		frac string
		want uint
	}{
		{"5", 0},
		{"50", 5},
		{"500", 50},
		{"999", 99},
		{"1234", 12},
		{"0999999", 9},
	}

	for _, tt := range tests {
		t.Run(tt.frac, func(t *testing.T) {
			got := Parse("0:00:01." + tt.frac + " --> 0:00:02.000\ntext\n")
			if got.Len() != 1 {
				t.Fatalf("expected 1 cue, got %d", got.Len())
			}
			if got.Cues[0].StartCentisecond != tt.want {
				t.Errorf("centisecond = %d, want %d", got.Cues[0].StartCentisecond, tt.want)
			}
		})
	}
}

func TestParse_MultiLineCueJoined(t *testing.T) {
	raw := strings.Join([]string{
		"WEBVTT",
		"Kind: captions",
		"Language: en",
		"",
		"1",
		"00:00:05.000 --> 00:00:07.000 align:start position:0%",
		"first line",
		"  second line  ",
		"",
		"00:00:08.000 --> 00:00:09.000",
		"♪",
		"<c>third</c>",
	}, "\n")

	got := Parse(raw)

	want := []Cue{
		{StartSecond: 5, Text: "first line second line"},
		{StartSecond: 8, Text: "third"},
	}
	if !reflect.DeepEqual(got.Cues, want) {
		t.Errorf("Parse() = %+v, want %+v", got.Cues, want)
	}
}

func TestParse_DropsEmptyCues(t *testing.T) {
	raw := "00:00:01.000 --> 00:00:02.000\n♪ ♪\n\n00:00:03.000 --> 00:00:04.000\n<i></i>\n\n00:00:05.000 --> 00:00:06.000\n\n"

	if got := Parse(raw); !got.Empty() {
		t.Errorf("expected no cues, got %+v", got.Cues)
	}
}

func TestParse_CRLF(t *testing.T) {
	got := Parse("WEBVTT\r\n\r\n00:00:02.340 --> 00:00:03.000\r\nWindows line\r\n\r\n")

	if got.Len() != 1 || got.Cues[0].Text != "Windows line" || got.Cues[0].StartCentisecond != 34 {
		t.Errorf("unexpected cues: %+v", got.Cues)
	}
}

func TestParse_PreservesOrderWithoutMerging(t *testing.T) {
	raw := "00:00:09.000 --> 00:00:10.000\nlater\n\n00:00:01.000 --> 00:00:02.000\nearlier\n\n00:00:01.000 --> 00:00:02.000\nearlier\n"

	got := Parse(raw)

	if got.Len() != 3 {
		t.Fatalf("expected 3 cues, got %d", got.Len())
	}
	if got.Cues[0].Text != "later" || got.Cues[1].Text != "earlier" || got.Cues[2].Text != "earlier" {
		t.Errorf("order not preserved: %+v", got.Cues)
	}
}

func TestParse_NeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"garbage --> more garbage",
		"00:00:01 --> 00:00:02\nno fraction\n",
		"00:01.000 --> 00:02.000\nno hours\n",
		"99999999999999999999:00:00.000 --> 00:00:00.000\noverflow\n",
	}
	for _, in := range inputs {
		if got := Parse(in); !got.Empty() {
			t.Errorf("Parse(%q) = %+v, want empty", in, got.Cues)
		}
	}
}

func TestParseStrict_Diagnostics(t *testing.T) {
	raw := "WEBVTT\n\n00:00:75.000 --> 00:00:76.000\nbad seconds\n\n00:00 --> 00:01\nbad timing\n\n00:00:01.000 --> 00:00:02.000\ngood\n"

	transcript, diags := ParseStrict(raw)

	if transcript.Len() != 1 || transcript.Cues[0].Text != "good" {
		t.Errorf("unexpected cues: %+v", transcript.Cues)
	}
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags), diags)
	}
	if diags[0].Line != 3 || diags[0].Reason != "seconds out of range" {
		t.Errorf("diags[0] = %v", diags[0])
	}
	if diags[1].Line != 6 || diags[1].Reason != "malformed timing line" {
		t.Errorf("diags[1] = %v", diags[1])
	}
}

func TestCue_Offset(t *testing.T) {
	c := Cue{StartMinute: 2, StartSecond: 3, StartCentisecond: 4}
	if c.Offset() != 12304 {
		t.Errorf("Offset() = %d, want 12304", c.Offset())
	}
}
