package captions

import (
	"reflect"
	"testing"

	"github.com/dage/karaoke/pkg/model"
)

// Tests de bout en bout parse -> normalize -> build sur les deux formats.

const json3Fixture = `{"events": [
	{"tStartMs": 0, "dDurationMs": 1000, "segs": [
		{"utf8": "สวัสดี"},
		{"utf8": "ครับ", "tOffsetMs": 500}
	]},
	{"tStartMs": 1200, "segs": [
		{"utf8": "ผม"},
		{"utf8": "ชื่อ", "tOffsetMs": 200},
		{"utf8": "สมชาย", "tOffsetMs": 400}
	]}
]}`

const srv3Fixture = `<timedtext format="3"><body>
	<p t="0" d="1000"><s>สวัสดี</s><s t="500">ครับ</s></p>
	<p t="1200"><s>ผม</s><s t="200">ชื่อ</s><s t="400">สมชาย</s></p>
</body></timedtext>`

func runPipeline(t *testing.T, payload string, format model.Format) ([]model.WordEntry, []model.SentenceEntry) {
	t.Helper()
	cues, err := Parse([]byte(payload), format)
	if err != nil {
		t.Fatalf("Parse %s: %v", format, err)
	}
	events := Normalize(cues)
	return BuildWords(events), BuildSentences(events, DefaultBoundaryConfig())
}

// Deux payloads encodant le même transcript donnent la même timeline de mots.
func TestPipeline_FormatEquivalence(t *testing.T) {
	jsonWords, jsonSentences := runPipeline(t, json3Fixture, model.FormatJSON3)
	xmlWords, xmlSentences := runPipeline(t, srv3Fixture, model.FormatSRV3)

	if !reflect.DeepEqual(jsonWords, xmlWords) {
		t.Errorf("word timelines differ:\n json3: %#v\n srv3:  %#v", jsonWords, xmlWords)
	}
	if !reflect.DeepEqual(jsonSentences, xmlSentences) {
		t.Errorf("sentence timelines differ:\n json3: %#v\n srv3:  %#v", jsonSentences, xmlSentences)
	}
}

// Re-jouer le pipeline sur le même payload produit des séquences identiques :
// tout est fonction pure, pas d'état interne.
func TestPipeline_Idempotent(t *testing.T) {
	w1, s1 := runPipeline(t, json3Fixture, model.FormatJSON3)
	w2, s2 := runPipeline(t, json3Fixture, model.FormatJSON3)

	if !reflect.DeepEqual(w1, w2) {
		t.Errorf("word timelines not reproducible")
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("sentence timelines not reproducible")
	}
}

func TestPipeline_ZeroCuesIsNotAnError(t *testing.T) {
	words, sentences := runPipeline(t, `{"events": []}`, model.FormatJSON3)
	if len(words) != 0 || len(sentences) != 0 {
		t.Fatalf("expected empty timelines, got %d words / %d sentences", len(words), len(sentences))
	}
}
