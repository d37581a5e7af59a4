package timeline

import (
	"reflect"
	"testing"

	"github.com/dage/karaoke/pkg/model"
)

func TestParseSentences(t *testing.T) {
	data := []byte("4.220\t[เพลง]\n\nsans-tab\nabc\tmauvais timestamp\n18.680\tหน้า\n")

	got := ParseSentences(data)
	want := []model.SentenceEntry{
		{StartMs: 4220, Text: "[เพลง]"},
		{StartMs: 18680, Text: "หน้า"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSentences = %+v, attendu %+v", got, want)
	}
}

func TestParseSentencesRoundTrip(t *testing.T) {
	sentences := []model.SentenceEntry{
		{StartMs: 0, Text: "สวัสดีครับ"},
		{StartMs: 1200, Text: "ผมชื่อสมชาย"},
	}
	got := ParseSentences(RenderSentences(sentences))
	if !reflect.DeepEqual(got, sentences) {
		t.Errorf("round-trip = %+v, attendu %+v", got, sentences)
	}
}
