package assessment

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeAnswers(t *testing.T) {
	r := DefaultRubric()
	tests := []struct {
		name    string
		blob    string
		want    Answers
		wantErr bool
	}{
		{name: "absent", blob: "", want: Answers{}},
		{name: "empty object", blob: `{}`, want: Answers{}},
		{name: "malformed", blob: `{"risk":`, want: Answers{}, wantErr: true},
		{name: "not an object", blob: `[1,2,3]`, want: Answers{}, wantErr: true},
		{
			name: "valid",
			blob: `{"risk":{"always_stop_loss":true,"max_daily_loss":false}}`,
			want: Answers{CategoryRisk: {"always_stop_loss": true, "max_daily_loss": false}},
		},
		{
			name: "unknown keys ignored",
			blob: `{"risk":{"always_stop_loss":true,"moon_phase":true},"astrology":{"x":true},"version":3}`,
			want: Answers{CategoryRisk: {"always_stop_loss": true}},
		},
		{
			name: "non-boolean values dropped",
			blob: `{"risk":{"always_stop_loss":"yes","position_sizing":1,"risk_reward":true},"system":"nope"}`,
			want: Answers{CategoryRisk: {"risk_reward": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var blob []byte
			if tt.blob != "" {
				blob = []byte(tt.blob)
			}
			got, err := DecodeAnswers(blob, r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	r := DefaultRubric()
	orig := Answers{
		CategoryKnowledge: {"trend_sideway": true, "multi_timeframe": false},
		CategoryExecution: {"weekly_review": true},
	}
	blob, err := EncodeAnswers(orig)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeAnswers(blob, r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("round trip: got %v, want %v", got, orig)
	}
}

func TestAnswers_EmptyAndClone(t *testing.T) {
	if !(Answers{}).Empty() {
		t.Error("zero answers should be empty")
	}
	if !(Answers{CategoryRisk: {}}).Empty() {
		t.Error("category without answers should be empty")
	}

	a := Answers{CategoryRisk: {"always_stop_loss": false}}
	if a.Empty() {
		t.Error("an explicit false answer is still a recorded answer")
	}

	c := a.Clone()
	c[CategoryRisk]["always_stop_loss"] = true
	if a.Get(CategoryRisk, "always_stop_loss") {
		t.Error("Clone must not share inner maps")
	}
}

func TestEncodeAnswersWith_KeepsUnrecognized(t *testing.T) {
	r := DefaultRubric()
	blob := []byte(`{"astrology":{"x":true},"version":3,"risk":{"always_stop_loss":true,"moon_phase":{"n":1}}}`)

	a, extra, err := DecodeAnswersWith(blob, r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if extra.Empty() {
		t.Fatal("expected unrecognized keys")
	}

	a = a.with(CategoryRisk, "position_sizing", true)
	out, err := EncodeAnswersWith(a, extra)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var got, want any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	_ = json.Unmarshal([]byte(`{"astrology":{"x":true},"version":3,"risk":{"always_stop_loss":true,"position_sizing":true,"moon_phase":{"n":1}}}`), &want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("encoded %s", out)
	}
}

func TestEncodeAnswersWith_EmptyExtrasMatchesEncode(t *testing.T) {
	a := Answers{CategoryRisk: {"always_stop_loss": true}}
	plain, _ := EncodeAnswers(a)
	merged, _ := EncodeAnswersWith(a, Unrecognized{})
	if string(plain) != string(merged) {
		t.Errorf("EncodeAnswersWith = %s, want %s", merged, plain)
	}
}
